package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/duelforge/duelforge/internal/store"
	"github.com/duelforge/duelforge/internal/web"
)

func main() {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("log_level", "info")

	v.SetConfigName("duelforge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/duelforge")
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
			os.Exit(1)
		}
	}

	v.SetEnvPrefix("DUELFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	logger, err := buildLogger(v.GetString("log_level"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	var st store.Store
	if dsn := v.GetString("database_url"); dsn != "" {
		pg, err := store.NewPostgresStore(ctx, dsn, logger)
		if err != nil {
			logger.Fatal("postgres store", zap.Error(err))
		}
		defer pg.Close()
		st = pg
		logger.Info("using postgres match store")
	} else {
		st = store.NewMemoryStore()
		logger.Info("using in-memory match store")
	}

	srv := web.NewServer(logger, st)
	if err := srv.ListenAndServe(v.GetString("addr")); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = lvl
	return cfg.Build()
}
