package engine

import (
	"testing"
)

const igniteAbility = `{
	"spellSpeed": 1,
	"effects": [{
		"type": "damage",
		"trigger": "on_activate",
		"value": 400,
		"target": {"owner": "opponent"},
		"isOPT": true
	}]
}`

// TestOPTSecondUseDenied: the second activation in one turn is denied with
// no state change.
func TestOPTSecondUseDenied(t *testing.T) {
	pyre := effectMonster("Pyre Adept", 3, 1200, 900, igniteAbility)

	gs := NewGameState()
	gs.Turn = 2
	gs.Phase = PhaseMain1

	ci := gs.CreateCardInstance(pyre, 0)
	ci.Face = FaceUp
	gs.Players[0].PlaceMonster(ci, 0)

	if res := ExecuteEffect(gs, ci, 0, 0, nil); !res.Success {
		t.Fatalf("First use should succeed: %s", res.Message)
	}
	if gs.Players[1].LifePoints != StartingLifePoints-400 {
		t.Fatalf("P2 LP = %d after first use", gs.Players[1].LifePoints)
	}

	if res := ExecuteEffect(gs, ci, 0, 0, nil); res.Success {
		t.Fatal("Second use in the same turn should be denied")
	}
	if gs.Players[1].LifePoints != StartingLifePoints-400 {
		t.Errorf("Denied use changed LP to %d", gs.Players[1].LifePoints)
	}
}

// TestOPTResetsNextTurn: the ledger clears lazily when the turn advances.
func TestOPTResetsNextTurn(t *testing.T) {
	pyre := effectMonster("Pyre Adept", 3, 1200, 900, igniteAbility)

	gs := NewGameState()
	gs.Turn = 2
	gs.Phase = PhaseMain1

	ci := gs.CreateCardInstance(pyre, 0)
	ci.Face = FaceUp
	gs.Players[0].PlaceMonster(ci, 0)

	if res := ExecuteEffect(gs, ci, 0, 0, nil); !res.Success {
		t.Fatalf("First use should succeed: %s", res.Message)
	}

	gs.Turn = 3

	if res := ExecuteEffect(gs, ci, 0, 0, nil); !res.Success {
		t.Errorf("Use after turn advance should succeed: %s", res.Message)
	}
	if gs.Players[1].LifePoints != StartingLifePoints-800 {
		t.Errorf("P2 LP = %d, want %d", gs.Players[1].LifePoints, StartingLifePoints-800)
	}
}

// TestOPTPerEffectIndex: sibling effects on one card keep separate ledgers.
func TestOPTPerEffectIndex(t *testing.T) {
	twin := effectMonster("Twin Oracle", 4, 1400, 1100, `{
		"spellSpeed": 1,
		"effects": [
			{"type": "heal", "trigger": "on_activate", "value": 300, "isOPT": true},
			{"type": "damage", "trigger": "on_activate", "value": 300, "target": {"owner": "opponent"}, "isOPT": true}
		]
	}`)

	gs := NewGameState()
	gs.Turn = 2
	gs.Phase = PhaseMain1

	ci := gs.CreateCardInstance(twin, 0)
	ci.Face = FaceUp
	gs.Players[0].PlaceMonster(ci, 0)

	if res := ExecuteEffect(gs, ci, 0, 0, nil); !res.Success {
		t.Fatalf("Heal effect should succeed: %s", res.Message)
	}
	if res := ExecuteEffect(gs, ci, 1, 0, nil); !res.Success {
		t.Errorf("Sibling effect should have its own ledger: %s", res.Message)
	}
	if res := ExecuteEffect(gs, ci, 1, 0, nil); res.Success {
		t.Error("Repeat of the sibling effect should be denied")
	}
}

// TestOPTNotRecordedOnFailure: a denied execution leaves the ledger clean.
func TestOPTNotRecordedOnFailure(t *testing.T) {
	digger := effectMonster("Vault Digger", 3, 1000, 1000, `{
		"spellSpeed": 1,
		"effects": [{"type": "draw", "trigger": "on_activate", "value": 2, "isOPT": true}]
	}`)

	gs := NewGameState()
	gs.Turn = 2
	gs.Phase = PhaseMain1

	ci := gs.CreateCardInstance(digger, 0)
	ci.Face = FaceUp
	gs.Players[0].PlaceMonster(ci, 0)

	// Empty deck: the draw is denied.
	if res := ExecuteEffect(gs, ci, 0, 0, nil); res.Success {
		t.Fatal("Draw from an empty deck should be denied")
	}

	filler := vanillaMonster("Filler Token", 1, 0, 0)
	gs.Players[0].Deck = append(gs.Players[0].Deck,
		gs.CreateCardInstance(filler, 0), gs.CreateCardInstance(filler, 0))

	if res := ExecuteEffect(gs, ci, 0, 0, nil); !res.Success {
		t.Errorf("Retry after the failure should succeed: %s", res.Message)
	}
}
