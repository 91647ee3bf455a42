package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/log"
)

// ScriptedController is a PlayerController that follows a predefined script
// of actions. Used in tests to deterministically drive the duel.
type ScriptedController struct {
	t       *testing.T
	name    string
	actions []ScriptedAction
	pos     int

	cardChoices []ScriptedCardChoice
	cardPos     int

	yesNoChoices []bool
	yesNoPos     int
}

type ScriptedAction struct {
	// Match by ActionType — picks the first available action of this type
	Type ActionType
	// Optional: match by card name as well
	CardName string
	// Optional: match by target card name
	TargetName string
}

type ScriptedCardChoice struct {
	Names []string
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

func (sc *ScriptedController) AddAction(actionType ActionType, cardName string) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: actionType, CardName: cardName})
	return sc
}

func (sc *ScriptedController) AddAttack(attackerName, targetName string) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: ActionAttack, CardName: attackerName, TargetName: targetName})
	return sc
}

func (sc *ScriptedController) AddDirectAttack(attackerName string) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: ActionDirectAttack, CardName: attackerName})
	return sc
}

func (sc *ScriptedController) AddCardChoice(names ...string) *ScriptedController {
	sc.cardChoices = append(sc.cardChoices, ScriptedCardChoice{Names: names})
	return sc
}

func (sc *ScriptedController) AddYesNo(answer bool) *ScriptedController {
	sc.yesNoChoices = append(sc.yesNoChoices, answer)
	return sc
}

func (sc *ScriptedController) AddPass() *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: ActionPass})
	return sc
}

func (sc *ScriptedController) ChooseAction(ctx context.Context, state *GameState, actions []Action) (Action, error) {
	if sc.pos >= len(sc.actions) {
		return defaultAction(actions), nil
	}

	// Peek at the next scripted action — only consume it if it matches an
	// available action. This lets scripts span multiple turns without
	// explicitly scripting "EndTurn".
	scripted := sc.actions[sc.pos]

	for _, a := range actions {
		if a.Type != scripted.Type {
			continue
		}
		if scripted.CardName != "" && (a.Card == nil || a.Card.Card.Name != scripted.CardName) {
			continue
		}
		if scripted.TargetName != "" {
			if len(a.Targets) == 0 || a.Targets[0].Card.Name != scripted.TargetName {
				continue
			}
		}
		sc.pos++
		return a, nil
	}

	return defaultAction(actions), nil
}

// defaultAction prefers Pass, then phase exits, so unscripted turns drain
// quickly.
func defaultAction(actions []Action) Action {
	for _, a := range actions {
		if a.Type == ActionPass {
			return a
		}
	}
	for _, a := range actions {
		if a.Type == ActionEndTurn {
			return a
		}
	}
	for _, a := range actions {
		if a.Type == ActionEnterMainPhase2 {
			return a
		}
	}
	return actions[len(actions)-1]
}

func (sc *ScriptedController) ChooseCards(ctx context.Context, state *GameState, prompt string, candidates []*CardInstance, min, max int) ([]*CardInstance, error) {
	if sc.cardPos >= len(sc.cardChoices) {
		if min > len(candidates) {
			min = len(candidates)
		}
		return candidates[:min], nil
	}

	choice := sc.cardChoices[sc.cardPos]
	sc.cardPos++

	var result []*CardInstance
	for _, name := range choice.Names {
		for _, c := range candidates {
			if c.Card.Name == name {
				result = append(result, c)
				break
			}
		}
	}

	if len(result) < min {
		return nil, fmt.Errorf("[%s] card choice: wanted %v but only found %d in candidates", sc.name, choice.Names, len(result))
	}
	return result, nil
}

func (sc *ScriptedController) ChooseYesNo(ctx context.Context, state *GameState, prompt string) (bool, error) {
	if sc.yesNoPos >= len(sc.yesNoChoices) {
		return false, nil
	}
	answer := sc.yesNoChoices[sc.yesNoPos]
	sc.yesNoPos++
	return answer, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

// --- Test card helpers ---

func vanillaMonster(name string, level, atk, def int) *Card {
	return &Card{
		ID:       name,
		Name:     name,
		CardType: CardTypeMonster,
		Level:    level,
		ATK:      atk,
		DEF:      def,
	}
}

func archetypeMonster(name, archetype string, level, atk, def int) *Card {
	c := vanillaMonster(name, level, atk, def)
	c.Archetype = archetype
	return c
}

// effectMonster parses the ability JSON once and attaches it.
func effectMonster(name string, level, atk, def int, abilityJSON string) *Card {
	c := vanillaMonster(name, level, atk, def)
	c.Ability = ability.MustParse(abilityJSON)
	return c
}

func normalSpell(name string, abilityJSON string) *Card {
	return &Card{
		ID:       name,
		Name:     name,
		CardType: CardTypeSpell,
		SpellSub: SpellNormal,
		Ability:  ability.MustParse(abilityJSON),
	}
}

func quickPlaySpell(name string, abilityJSON string) *Card {
	c := normalSpell(name, abilityJSON)
	c.SpellSub = SpellQuickPlay
	return c
}

func continuousSpell(name string, abilityJSON string) *Card {
	c := normalSpell(name, abilityJSON)
	c.SpellSub = SpellContinuous
	return c
}

func fieldSpell(name string, abilityJSON string) *Card {
	c := normalSpell(name, abilityJSON)
	c.SpellSub = SpellField
	return c
}

func normalTrap(name string, abilityJSON string) *Card {
	return &Card{
		ID:       name,
		Name:     name,
		CardType: CardTypeTrap,
		TrapSub:  TrapNormal,
		Ability:  ability.MustParse(abilityJSON),
	}
}

func counterTrap(name string, abilityJSON string) *Card {
	c := normalTrap(name, abilityJSON)
	c.TrapSub = TrapCounter
	return c
}

// makePaddedDeck builds a deck whose first draws are topCards, padded with
// vanilla filler to minSize. Index 0 of topCards is drawn first.
func makePaddedDeck(topCards []*Card, minSize int) []*Card {
	filler := vanillaMonster("Filler Token", 1, 0, 0)
	deck := make([]*Card, 0, minSize)

	for i := 0; i < minSize-len(topCards); i++ {
		deck = append(deck, filler)
	}
	for i := len(topCards) - 1; i >= 0; i-- {
		deck = append(deck, topCards[i])
	}
	return deck
}

// runDuelToCompletion runs a duel and returns the logger for inspection.
func runDuelToCompletion(t *testing.T, cfg DuelConfig, p0, p1 *ScriptedController) *log.MemoryLogger {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	cfg.NoShuffle = true
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 100
	}

	duel := NewDuel(cfg, p0, p1)

	winner, err := duel.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Duel error: %v", err)
	}

	t.Logf("Duel result: winner=%d (%s)", winner, duel.State.Result)
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))

	return logger
}

// hasEventForCard reports whether any event of the given type names the card.
func hasEventForCard(logger *log.MemoryLogger, et log.EventType, cardName string) bool {
	for _, e := range logger.EventsOfType(et) {
		if e.Card == cardName {
			return true
		}
	}
	return false
}
