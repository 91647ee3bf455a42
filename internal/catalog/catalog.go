// Package catalog loads card definitions and deck lists from YAML content
// files. Ability documents are embedded JSON, parsed once at load time;
// malformed content fails the load rather than surfacing mid-duel.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/engine"
)

// CardDocument is the YAML shape of one card definition.
type CardDocument struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	CardType    string `yaml:"cardType"`
	Level       int    `yaml:"level,omitempty"`
	Archetype   string `yaml:"archetype,omitempty"`
	Rarity      string `yaml:"rarity,omitempty"`
	ATK         int    `yaml:"atk,omitempty"`
	DEF         int    `yaml:"def,omitempty"`
	SpellType   string `yaml:"spellType,omitempty"`
	TrapType    string `yaml:"trapType,omitempty"`

	// Ability is the embedded JSON ability document, verbatim.
	Ability string `yaml:"ability,omitempty"`
}

// File is the top-level YAML structure of a card content file.
type File struct {
	Cards []CardDocument `yaml:"cards"`
}

// DeckFile is the top-level YAML structure of a deck list file.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry is a single named deck.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardCount `yaml:"cards"`
}

// CardCount references a catalog card by ID with a copy count.
type CardCount struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// Catalog is an immutable, ID-keyed card library.
type Catalog struct {
	byID    map[string]*engine.Card
	ordered []*engine.Card
}

// Parse builds a catalog from raw YAML content.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse card YAML: %w", err)
	}

	c := &Catalog{byID: make(map[string]*engine.Card, len(f.Cards))}
	for i, doc := range f.Cards {
		card, err := buildCard(doc)
		if err != nil {
			return nil, fmt.Errorf("card %d (%s): %w", i, doc.ID, err)
		}
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		c.byID[card.ID] = card
		c.ordered = append(c.ordered, card)
	}
	return c, nil
}

// LoadFile reads and parses a card content file from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Lookup returns a card definition by ID.
func (c *Catalog) Lookup(id string) (*engine.Card, error) {
	card, found := c.byID[id]
	if !found {
		return nil, fmt.Errorf("unknown card id %q", id)
	}
	return card, nil
}

// Cards returns all definitions in file order.
func (c *Catalog) Cards() []*engine.Card {
	return c.ordered
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// Resolver adapts the catalog to the engine's rehydration hook.
func (c *Catalog) Resolver() engine.CardResolver {
	return c.Lookup
}

// Merge returns a catalog holding both card sets. Duplicate IDs are an
// error.
func (c *Catalog) Merge(other *Catalog) (*Catalog, error) {
	merged := &Catalog{byID: make(map[string]*engine.Card, len(c.ordered)+len(other.ordered))}
	for _, card := range append(append([]*engine.Card{}, c.ordered...), other.ordered...) {
		if _, dup := merged.byID[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		merged.byID[card.ID] = card
		merged.ordered = append(merged.ordered, card)
	}
	return merged, nil
}

// ParseDecks resolves a deck list file against this catalog into ready deck
// slices, keyed by deck name.
func (c *Catalog) ParseDecks(data []byte) (map[string][]*engine.Card, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	decks := make(map[string][]*engine.Card, len(df.Decks))
	for _, deck := range df.Decks {
		cards, err := c.resolveDeck(deck)
		if err != nil {
			return nil, err
		}
		decks[deck.Name] = cards
	}
	return decks, nil
}

func (c *Catalog) resolveDeck(deck DeckEntry) ([]*engine.Card, error) {
	var cards []*engine.Card
	for _, entry := range deck.Cards {
		card, err := c.Lookup(entry.ID)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", deck.Name, err)
		}
		count := entry.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

func buildCard(doc CardDocument) (*engine.Card, error) {
	if doc.ID == "" {
		return nil, fmt.Errorf("missing id")
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("missing name")
	}

	cardType, err := parseCardType(doc.CardType)
	if err != nil {
		return nil, err
	}

	card := &engine.Card{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		CardType:    cardType,
		Level:       doc.Level,
		Archetype:   doc.Archetype,
		Rarity:      doc.Rarity,
		ATK:         doc.ATK,
		DEF:         doc.DEF,
	}

	switch cardType {
	case engine.CardTypeSpell:
		card.SpellSub, err = parseSpellSubtype(doc.SpellType)
		if err != nil {
			return nil, err
		}
	case engine.CardTypeTrap:
		card.TrapSub, err = parseTrapSubtype(doc.TrapType)
		if err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(doc.Ability) != "" {
		card.Ability, err = ability.Parse([]byte(doc.Ability))
		if err != nil {
			return nil, fmt.Errorf("ability: %w", err)
		}
	} else if cardType != engine.CardTypeMonster {
		return nil, fmt.Errorf("%s card without an ability", doc.CardType)
	}

	return card, nil
}

func parseCardType(s string) (engine.CardType, error) {
	switch strings.ToLower(s) {
	case "monster":
		return engine.CardTypeMonster, nil
	case "spell":
		return engine.CardTypeSpell, nil
	case "trap":
		return engine.CardTypeTrap, nil
	default:
		return 0, fmt.Errorf("unknown card type %q", s)
	}
}

func parseSpellSubtype(s string) (engine.SpellSubtype, error) {
	switch strings.ToLower(s) {
	case "", "normal":
		return engine.SpellNormal, nil
	case "quick-play", "quickplay":
		return engine.SpellQuickPlay, nil
	case "continuous":
		return engine.SpellContinuous, nil
	case "field":
		return engine.SpellField, nil
	default:
		return 0, fmt.Errorf("unknown spell type %q", s)
	}
}

func parseTrapSubtype(s string) (engine.TrapSubtype, error) {
	switch strings.ToLower(s) {
	case "", "normal":
		return engine.TrapNormal, nil
	case "continuous":
		return engine.TrapContinuous, nil
	case "counter":
		return engine.TrapCounter, nil
	default:
		return 0, fmt.Errorf("unknown trap type %q", s)
	}
}
