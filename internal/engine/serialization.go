package engine

import (
	"encoding/json"
	"fmt"
)

// CardResolver maps a catalog card ID back to its definition when loading a
// persisted match.
type CardResolver func(cardID string) (*Card, error)

// MarshalState serializes a game state into its persistable document. The
// chain must be empty: matches persist between player decisions, never mid
// resolution.
func MarshalState(gs *GameState) ([]byte, error) {
	if gs.Chain != nil && len(gs.Chain.Links) > 0 {
		return nil, fmt.Errorf("cannot persist state with %d unresolved chain links", len(gs.Chain.Links))
	}
	return json.Marshal(gs)
}

// UnmarshalState loads a persisted match document and rehydrates every card
// instance's definition through the resolver.
func UnmarshalState(data []byte, resolve CardResolver) (*GameState, error) {
	gs := NewGameState()
	if err := json.Unmarshal(data, gs); err != nil {
		return nil, fmt.Errorf("decoding match state: %w", err)
	}

	for p := 0; p < 2; p++ {
		pl := gs.Players[p]
		if pl == nil {
			return nil, fmt.Errorf("match state missing player %d", p)
		}
		piles := [][]*CardInstance{pl.Deck, pl.Hand, pl.Graveyard, pl.Banished, pl.BoardCards()}
		for _, pile := range piles {
			for _, ci := range pile {
				card, err := resolve(ci.CardID)
				if err != nil {
					return nil, fmt.Errorf("rehydrating card %q: %w", ci.CardID, err)
				}
				ci.Card = card
			}
		}
	}

	return gs, nil
}
