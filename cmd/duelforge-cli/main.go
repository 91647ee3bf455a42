package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/bot"
	"github.com/duelforge/duelforge/internal/catalog"
	"github.com/duelforge/duelforge/internal/engine"
	"github.com/duelforge/duelforge/internal/log"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "duel":
		runDuel(os.Args[2:])
	case "decks":
		runDecks()
	case "cards":
		runCards()
	case "schema":
		runSchema()
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  duelforge duel [--deck1 NAME] [--deck2 NAME] [--seed N] [--max-turns N]")
	fmt.Println("  duelforge decks")
	fmt.Println("  duelforge cards")
	fmt.Println("  duelforge schema")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  duel    Run a bot-vs-bot duel and print the event log")
	fmt.Println("  decks   List the built-in decks")
	fmt.Println("  cards   List the built-in card set")
	fmt.Println("  schema  Print the JSON schema for card ability documents")
}

func runDuel(args []string) {
	names := catalog.BuiltinDeckNames()

	fs := flag.NewFlagSet("duel", flag.ExitOnError)
	deck1 := fs.String("deck1", names[0], "deck for player 1")
	deck2 := fs.String("deck2", names[len(names)-1], "deck for player 2")
	seed := fs.Int64("seed", 0, "RNG seed (0 = random)")
	maxTurns := fs.Int("max-turns", 0, "turn limit (0 = engine default)")
	fs.Parse(args)

	cards1, err := catalog.BuiltinDeck(*deck1)
	if err != nil {
		fatal(err)
	}
	cards2, err := catalog.BuiltinDeck(*deck2)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("P1: %s (%d cards)\n", *deck1, len(cards1))
	fmt.Printf("P2: %s (%d cards)\n\n", *deck2, len(cards2))

	duel := engine.NewDuel(engine.DuelConfig{
		Deck0:    cards1,
		Deck1:    cards2,
		Logger:   log.NewTextLogger(os.Stdout),
		Seed:     *seed,
		MaxTurns: *maxTurns,
	}, bot.New(0, *seed+1), bot.New(1, *seed+2))

	winner, err := duel.Run(context.Background())
	if err != nil {
		fatal(err)
	}

	fmt.Println()
	if winner < 0 {
		fmt.Printf("Draw: %s\n", duel.State.Result)
	} else {
		fmt.Printf("%s\n", duel.State.Result)
	}
}

func runDecks() {
	for _, name := range catalog.BuiltinDeckNames() {
		cards, err := catalog.BuiltinDeck(name)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("%s (%d cards)\n", name, len(cards))
	}
}

func runCards() {
	for _, c := range catalog.Builtin().Cards() {
		switch c.CardType {
		case engine.CardTypeMonster:
			fmt.Printf("%-20s %-10s Lv%d ATK %d / DEF %d\n", c.Name, c.CardType, c.Level, c.ATK, c.DEF)
		case engine.CardTypeSpell:
			fmt.Printf("%-20s %s Spell\n", c.Name, c.SpellSub)
		case engine.CardTypeTrap:
			fmt.Printf("%-20s %s Trap\n", c.Name, c.TrapSub)
		}
	}
}

func runSchema() {
	data, err := json.MarshalIndent(ability.Schema(), "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(data))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
