package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	duelmcp "github.com/duelforge/duelforge/internal/mcp"
)

func main() {
	s := server.NewMCPServer("duelforge", "1.0.0")
	duelmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
