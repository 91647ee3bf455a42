package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/duelforge/duelforge/internal/engine"
)

//go:embed content/cards.yaml
var builtinCards []byte

//go:embed content/decks.yaml
var builtinDecks []byte

var (
	builtinOnce     sync.Once
	builtinCatalog  *Catalog
	builtinDeckSets map[string][]*engine.Card
)

// Builtin returns the embedded starter catalog. The content ships with the
// binary; a parse failure here is a build defect, so it panics.
func Builtin() *Catalog {
	loadBuiltin()
	return builtinCatalog
}

// BuiltinDeck returns a named deck from the embedded deck lists.
func BuiltinDeck(name string) ([]*engine.Card, error) {
	loadBuiltin()
	deck, found := builtinDeckSets[name]
	if !found {
		return nil, fmt.Errorf("unknown deck %q", name)
	}
	return deck, nil
}

// BuiltinDeckNames lists the embedded decks, sorted.
func BuiltinDeckNames() []string {
	loadBuiltin()
	names := make([]string, 0, len(builtinDeckSets))
	for name := range builtinDeckSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func loadBuiltin() {
	builtinOnce.Do(func() {
		c, err := Parse(builtinCards)
		if err != nil {
			panic(fmt.Sprintf("builtin card content is broken: %v", err))
		}
		decks, err := c.ParseDecks(builtinDecks)
		if err != nil {
			panic(fmt.Sprintf("builtin deck content is broken: %v", err))
		}
		builtinCatalog = c
		builtinDeckSets = decks
	})
}
