package engine

import (
	"testing"
)

const citadelAbility = `{
	"spellSpeed": 1,
	"isContinuous": true,
	"effects": [{
		"type": "modify_atk",
		"isContinuous": true,
		"value": 500,
		"condition": {"archetype": "Infernal"}
	}]
}`

// TestContinuousBonusRecompute: a field spell's bonus appears while the
// source is face-up and vanishes the moment it leaves the board, with no
// explicit removal step.
func TestContinuousBonusRecompute(t *testing.T) {
	gs := NewGameState()
	gs.Turn = 1

	drake := archetypeMonster("Infernal Drake", "Infernal", 4, 1500, 1000)
	citadel := fieldSpell("Infernal Citadel", citadelAbility)

	drakeCI := gs.CreateCardInstance(drake, 0)
	drakeCI.Face = FaceUp
	gs.Players[0].PlaceMonster(drakeCI, 0)

	if got := EffectiveATK(gs, drakeCI); got != 1500 {
		t.Fatalf("Base ATK = %d, want 1500", got)
	}

	citadelCI := gs.CreateCardInstance(citadel, 0)
	citadelCI.Face = FaceUp
	citadelCI.Zone = ZoneFieldSpell
	gs.Players[0].FieldSpell = citadelCI

	if got := EffectiveATK(gs, drakeCI); got != 2000 {
		t.Errorf("ATK with citadel = %d, want 2000", got)
	}

	destroyCard(gs, citadelCI, "test")

	if got := EffectiveATK(gs, drakeCI); got != 1500 {
		t.Errorf("ATK after citadel destroyed = %d, want 1500", got)
	}
}

// TestContinuousConditionFilter: the bonus only reaches cards the condition
// matches.
func TestContinuousConditionFilter(t *testing.T) {
	gs := NewGameState()
	gs.Turn = 1

	drake := archetypeMonster("Infernal Drake", "Infernal", 4, 1500, 1000)
	stray := vanillaMonster("Stray Golem", 4, 1500, 1000)
	citadel := fieldSpell("Infernal Citadel", citadelAbility)

	drakeCI := gs.CreateCardInstance(drake, 0)
	drakeCI.Face = FaceUp
	gs.Players[0].PlaceMonster(drakeCI, 0)

	strayCI := gs.CreateCardInstance(stray, 0)
	strayCI.Face = FaceUp
	gs.Players[0].PlaceMonster(strayCI, 1)

	citadelCI := gs.CreateCardInstance(citadel, 0)
	citadelCI.Face = FaceUp
	citadelCI.Zone = ZoneFieldSpell
	gs.Players[0].FieldSpell = citadelCI

	if got := EffectiveATK(gs, drakeCI); got != 2000 {
		t.Errorf("Archetype match ATK = %d, want 2000", got)
	}
	if got := EffectiveATK(gs, strayCI); got != 1500 {
		t.Errorf("Off-archetype ATK = %d, want 1500", got)
	}
}

// TestContinuousBonusDoesNotCrossControllers: a continuous source boosts its
// controller's cards only.
func TestContinuousBonusDoesNotCrossControllers(t *testing.T) {
	gs := NewGameState()
	gs.Turn = 1

	mine := archetypeMonster("Infernal Drake", "Infernal", 4, 1500, 1000)
	theirs := archetypeMonster("Infernal Whelp", "Infernal", 2, 800, 500)
	citadel := fieldSpell("Infernal Citadel", citadelAbility)

	mineCI := gs.CreateCardInstance(mine, 0)
	mineCI.Face = FaceUp
	gs.Players[0].PlaceMonster(mineCI, 0)

	theirsCI := gs.CreateCardInstance(theirs, 1)
	theirsCI.Face = FaceUp
	gs.Players[1].PlaceMonster(theirsCI, 0)

	citadelCI := gs.CreateCardInstance(citadel, 0)
	citadelCI.Face = FaceUp
	citadelCI.Zone = ZoneFieldSpell
	gs.Players[0].FieldSpell = citadelCI

	if got := EffectiveATK(gs, mineCI); got != 2000 {
		t.Errorf("Own monster ATK = %d, want 2000", got)
	}
	if got := EffectiveATK(gs, theirsCI); got != 800 {
		t.Errorf("Opposing monster ATK = %d, want 800", got)
	}
}

// TestOneShotModifierExpires: an until-end-of-turn modifier lapses at the
// turn boundary, a permanent one does not.
func TestOneShotModifierExpires(t *testing.T) {
	gs := NewGameState()
	gs.Turn = 2

	drake := vanillaMonster("Infernal Drake", 4, 1500, 1000)
	ci := gs.CreateCardInstance(drake, 0)
	ci.Face = FaceUp
	gs.Players[0].PlaceMonster(ci, 0)

	ci.AddModifier(StatModifier{Source: "a", ATK: 700, ExpiresTurn: 2})
	ci.AddModifier(StatModifier{Source: "b", ATK: 300})

	if got := EffectiveATK(gs, ci); got != 2500 {
		t.Fatalf("Boosted ATK = %d, want 2500", got)
	}

	ci.ClearExpiredModifiers(2)

	if got := EffectiveATK(gs, ci); got != 1800 {
		t.Errorf("ATK after expiry = %d, want 1800", got)
	}
}

// TestEffectiveStatsFloorAtZero: penalties never push a stat negative.
func TestEffectiveStatsFloorAtZero(t *testing.T) {
	gs := NewGameState()
	gs.Turn = 1

	weakling := vanillaMonster("Cinder Imp", 1, 400, 200)
	ci := gs.CreateCardInstance(weakling, 0)
	ci.Face = FaceUp
	gs.Players[0].PlaceMonster(ci, 0)

	ci.AddModifier(StatModifier{Source: "a", ATK: -1000, DEF: -1000})

	if got := EffectiveATK(gs, ci); got != 0 {
		t.Errorf("ATK = %d, want 0", got)
	}
	if got := EffectiveDEF(gs, ci); got != 0 {
		t.Errorf("DEF = %d, want 0", got)
	}
}

// TestFaceDownSourceContributesNothing: a set continuous card is inert.
func TestFaceDownSourceContributesNothing(t *testing.T) {
	gs := NewGameState()
	gs.Turn = 1

	drake := archetypeMonster("Infernal Drake", "Infernal", 4, 1500, 1000)
	banner := continuousSpell("Infernal Banner", citadelAbility)

	drakeCI := gs.CreateCardInstance(drake, 0)
	drakeCI.Face = FaceUp
	gs.Players[0].PlaceMonster(drakeCI, 0)

	bannerCI := gs.CreateCardInstance(banner, 0)
	bannerCI.Face = FaceDown
	gs.Players[0].PlaceSpellTrap(bannerCI, 0)

	if got := EffectiveATK(gs, drakeCI); got != 1500 {
		t.Errorf("ATK with set banner = %d, want 1500", got)
	}

	bannerCI.Face = FaceUp

	if got := EffectiveATK(gs, drakeCI); got != 2000 {
		t.Errorf("ATK with face-up banner = %d, want 2000", got)
	}
}
