package bot

import (
	"context"
	"testing"

	"github.com/duelforge/duelforge/internal/catalog"
	"github.com/duelforge/duelforge/internal/engine"
)

func vanilla(name string, atk, def int) *engine.Card {
	return &engine.Card{ID: name, Name: name, CardType: engine.CardTypeMonster, Level: 4, ATK: atk, DEF: def}
}

func placeFaceUp(gs *engine.GameState, player int, card *engine.Card, zone int) *engine.CardInstance {
	ci := gs.CreateCardInstance(card, player)
	ci.Face = engine.FaceUp
	ci.Position = engine.PositionATK
	gs.Players[player].PlaceMonster(ci, zone)
	return ci
}

func TestPrefersBiggestSummon(t *testing.T) {
	c := New(0, 1)
	gs := engine.NewGameState()
	gs.Turn = 1

	small := gs.CreateCardInstance(vanilla("Small", 1200, 1000), 0)
	big := gs.CreateCardInstance(vanilla("Big", 2400, 1000), 0)

	actions := []engine.Action{
		{Type: engine.ActionNormalSummon, Card: small},
		{Type: engine.ActionNormalSummon, Card: big},
		{Type: engine.ActionEndTurn},
	}
	chosen, err := c.ChooseAction(context.Background(), gs, actions)
	if err != nil {
		t.Fatal(err)
	}
	if chosen.Type != engine.ActionNormalSummon || chosen.Card != big {
		t.Errorf("expected summon of Big, got %v", chosen)
	}
}

func TestSkipsLosingAttack(t *testing.T) {
	c := New(0, 1)
	gs := engine.NewGameState()
	gs.Turn = 2

	mine := placeFaceUp(gs, 0, vanilla("Mine", 1500, 1000), 0)
	theirs := placeFaceUp(gs, 1, vanilla("Theirs", 2500, 1000), 0)

	actions := []engine.Action{
		{Type: engine.ActionAttack, Card: mine, Targets: []*engine.CardInstance{theirs}},
		{Type: engine.ActionEnterMainPhase2},
	}
	chosen, err := c.ChooseAction(context.Background(), gs, actions)
	if err != nil {
		t.Fatal(err)
	}
	if chosen.Type != engine.ActionEnterMainPhase2 {
		t.Errorf("expected bot to skip a losing attack, got %v", chosen)
	}
}

func TestTakesWinningAttack(t *testing.T) {
	c := New(0, 1)
	gs := engine.NewGameState()
	gs.Turn = 2

	mine := placeFaceUp(gs, 0, vanilla("Mine", 2500, 1000), 0)
	theirs := placeFaceUp(gs, 1, vanilla("Theirs", 1500, 1000), 0)

	actions := []engine.Action{
		{Type: engine.ActionAttack, Card: mine, Targets: []*engine.CardInstance{theirs}},
		{Type: engine.ActionEnterMainPhase2},
	}
	chosen, err := c.ChooseAction(context.Background(), gs, actions)
	if err != nil {
		t.Fatal(err)
	}
	if chosen.Type != engine.ActionAttack {
		t.Errorf("expected bot to take the winning attack, got %v", chosen)
	}
}

func TestRespondsOncePerTurn(t *testing.T) {
	c := New(1, 1)
	gs := engine.NewGameState()
	gs.Turn = 3

	trap := &engine.Card{ID: "trap", Name: "Trap", CardType: engine.CardTypeTrap}
	set := gs.CreateCardInstance(trap, 1)
	gs.Players[1].PlaceSpellTrap(set, 0)

	actions := []engine.Action{
		{Type: engine.ActionActivate, Card: set, EffectIndex: 0},
		{Type: engine.ActionPass},
	}

	chosen, err := c.ChooseAction(context.Background(), gs, actions)
	if err != nil {
		t.Fatal(err)
	}
	if chosen.Type != engine.ActionActivate {
		t.Errorf("expected activation, got %v", chosen)
	}

	chosen, err = c.ChooseAction(context.Background(), gs, actions)
	if err != nil {
		t.Fatal(err)
	}
	if chosen.Type != engine.ActionPass {
		t.Errorf("expected pass on second offer of the same card, got %v", chosen)
	}
}

func TestDiscardsWeakestOwnCard(t *testing.T) {
	c := New(0, 1)
	gs := engine.NewGameState()

	strong := gs.CreateCardInstance(vanilla("Strong", 2800, 2000), 0)
	weak := gs.CreateCardInstance(vanilla("Weak", 400, 300), 0)

	picked, err := c.ChooseCards(context.Background(), gs, "Discard", []*engine.CardInstance{strong, weak}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(picked) != 1 || picked[0] != weak {
		t.Errorf("expected the weakest card, got %v", picked)
	}
}

func TestTargetsStrongestOpponentCard(t *testing.T) {
	c := New(0, 1)
	gs := engine.NewGameState()

	strong := gs.CreateCardInstance(vanilla("Strong", 2800, 2000), 1)
	weak := gs.CreateCardInstance(vanilla("Weak", 400, 300), 1)

	picked, err := c.ChooseCards(context.Background(), gs, "Destroy", []*engine.CardInstance{weak, strong}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(picked) != 1 || picked[0] != strong {
		t.Errorf("expected the strongest card, got %v", picked)
	}
}

func TestBotDuelTerminates(t *testing.T) {
	deck0, err := catalog.BuiltinDeck("Infernal Onslaught")
	if err != nil {
		t.Fatal(err)
	}
	deck1, err := catalog.BuiltinDeck("Tidal Depths")
	if err != nil {
		t.Fatal(err)
	}

	duel := engine.NewDuel(engine.DuelConfig{
		Deck0:    deck0,
		Deck1:    deck1,
		Seed:     42,
		MaxTurns: 150,
	}, New(0, 7), New(1, 11))

	winner, err := duel.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if winner < -1 || winner > 1 {
		t.Errorf("winner out of range: %d", winner)
	}
	if !duel.State.Over {
		t.Error("duel did not finish")
	}
}
