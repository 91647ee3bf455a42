package engine

import (
	"fmt"
	"testing"
)

// TestStateRoundTrip: a match document survives marshal/unmarshal with card
// definitions rehydrated from the resolver.
func TestStateRoundTrip(t *testing.T) {
	drake := archetypeMonster("Infernal Drake", "Infernal", 4, 1500, 1000)
	ogre := vanillaMonster("Plain Ogre", 4, 1700, 1000)
	catalog := map[string]*Card{drake.ID: drake, ogre.ID: ogre}

	gs := NewGameState()
	gs.Turn = 5
	gs.TurnPlayer = 1
	gs.Phase = PhaseMain2
	gs.Players[0].LifePoints = 6200

	onBoard := gs.CreateCardInstance(drake, 0)
	onBoard.Face = FaceUp
	onBoard.AddModifier(StatModifier{Source: "x", ATK: 300, ExpiresTurn: 5})
	gs.Players[0].PlaceMonster(onBoard, 2)

	inDeck := gs.CreateCardInstance(ogre, 1)
	gs.Players[1].Deck = append(gs.Players[1].Deck, inDeck)

	data, err := MarshalState(gs)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	loaded, err := UnmarshalState(data, func(id string) (*Card, error) {
		c, found := catalog[id]
		if !found {
			return nil, fmt.Errorf("unknown card %q", id)
		}
		return c, nil
	})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if loaded.Turn != 5 || loaded.TurnPlayer != 1 || loaded.Phase != PhaseMain2 {
		t.Errorf("Turn state lost: turn=%d player=%d phase=%v", loaded.Turn, loaded.TurnPlayer, loaded.Phase)
	}
	if loaded.Players[0].LifePoints != 6200 {
		t.Errorf("LP = %d, want 6200", loaded.Players[0].LifePoints)
	}

	m := loaded.Players[0].MonsterZones[2]
	if m == nil {
		t.Fatal("Board monster missing after round trip")
	}
	if m.Card == nil || m.Card.Name != "Infernal Drake" {
		t.Error("Card definition not rehydrated")
	}
	if len(m.Modifiers) != 1 || m.Modifiers[0].ATK != 300 {
		t.Error("Stored modifier lost in the round trip")
	}
	if loaded.Players[1].DeckCount() != 1 || loaded.Players[1].Deck[0].Card.Name != "Plain Ogre" {
		t.Error("Deck contents lost or not rehydrated")
	}
}

// TestMarshalRejectsOpenChain: mid-chain state is not a persistable
// document.
func TestMarshalRejectsOpenChain(t *testing.T) {
	bolt := normalSpell("Breaker Bolt", `{
		"spellSpeed": 1,
		"effects": [{"type": "draw", "trigger": "on_activate", "value": 1}]
	}`)

	gs := NewGameState()
	gs.Turn = 2
	src := gs.CreateCardInstance(bolt, 0)
	src.Face = FaceUp
	gs.Players[0].PlaceSpellTrap(src, 0)

	if res := ActivateCard(gs, src, 0, 0, nil); !res.Success {
		t.Fatalf("Activation failed: %s", res.Message)
	}

	if _, err := MarshalState(gs); err == nil {
		t.Error("Expected an error marshaling with an open chain")
	}
}

// TestUnmarshalUnknownCard: an unknown catalog ID is a load error.
func TestUnmarshalUnknownCard(t *testing.T) {
	gs := NewGameState()
	ci := gs.CreateCardInstance(vanillaMonster("Ghost", 1, 100, 100), 0)
	gs.Players[0].Deck = append(gs.Players[0].Deck, ci)

	data, err := MarshalState(gs)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	_, err = UnmarshalState(data, func(id string) (*Card, error) {
		return nil, fmt.Errorf("unknown card %q", id)
	})
	if err == nil {
		t.Error("Expected an error for an unresolvable card ID")
	}
}
