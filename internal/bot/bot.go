// Package bot provides a heuristic PlayerController. It plays a legal,
// reasonably aggressive game with no lookahead: summon the biggest body,
// take winning attacks, answer with fast effects when it holds any.
package bot

import (
	"context"
	"math/rand"
	"sort"

	"github.com/duelforge/duelforge/internal/engine"
	"github.com/duelforge/duelforge/internal/log"
)

// Controller implements engine.PlayerController with fixed heuristics.
// Seat is the player index this controller occupies in the duel; it lets
// the card chooser tell its own cards from the opponent's.
type Controller struct {
	seat int
	rng  *rand.Rand

	// activated tracks instance IDs this controller already activated in the
	// current turn, so repeatable effects do not loop the main phase forever.
	activated     map[string]bool
	activatedTurn int
}

func New(seat int, seed int64) *Controller {
	return &Controller{
		seat:      seat,
		rng:       rand.New(rand.NewSource(seed)),
		activated: make(map[string]bool),
	}
}

func (c *Controller) ChooseAction(ctx context.Context, state *engine.GameState, actions []engine.Action) (engine.Action, error) {
	if state.Turn != c.activatedTurn {
		c.activated = make(map[string]bool)
		c.activatedTurn = state.Turn
	}

	if action, ok := c.pickResponse(actions); ok {
		return action, nil
	}
	if action, ok := c.pickBattleAction(state, actions); ok {
		return action, nil
	}
	return c.pickMainAction(state, actions), nil
}

// pickResponse handles response windows: activate the first fast effect not
// yet used this turn, otherwise pass.
func (c *Controller) pickResponse(actions []engine.Action) (engine.Action, bool) {
	var pass *engine.Action
	for i := range actions {
		if actions[i].Type == engine.ActionPass {
			pass = &actions[i]
		}
	}
	if pass == nil {
		return engine.Action{}, false
	}
	for _, a := range actions {
		if a.Type == engine.ActionActivate && !c.activated[a.Card.InstanceID] {
			c.activated[a.Card.InstanceID] = true
			return a, true
		}
	}
	return *pass, true
}

// pickBattleAction takes the most profitable attack available, entering main
// phase 2 when none remains.
func (c *Controller) pickBattleAction(state *engine.GameState, actions []engine.Action) (engine.Action, bool) {
	var exit *engine.Action
	var best *engine.Action
	bestScore := 0
	for i := range actions {
		a := &actions[i]
		switch a.Type {
		case engine.ActionEnterMainPhase2:
			exit = a
		case engine.ActionDirectAttack:
			score := engine.EffectiveATK(state, a.Card)
			if score > bestScore {
				best, bestScore = a, score
			}
		case engine.ActionAttack:
			if score, ok := attackScore(state, a); ok && score > bestScore {
				best, bestScore = a, score
			}
		}
	}
	if exit == nil {
		return engine.Action{}, false
	}
	if best != nil {
		return *best, true
	}
	return *exit, true
}

// attackScore estimates how good an attack is. Losing attacks are skipped;
// face-down targets are probed with the strongest attacker.
func attackScore(state *engine.GameState, a *engine.Action) (int, bool) {
	atk := engine.EffectiveATK(state, a.Card)
	target := a.Targets[0]
	if target.Face == engine.FaceDown {
		return atk, true
	}
	defense := engine.EffectiveATK(state, target)
	if target.Position == engine.PositionDEF {
		defense = engine.EffectiveDEF(state, target)
	}
	if atk <= defense {
		return 0, false
	}
	return atk - defense + 1, true
}

// pickMainAction works through a fixed priority: summon the biggest monster,
// fire unused activations, set traps, then push to battle or end the turn.
func (c *Controller) pickMainAction(state *engine.GameState, actions []engine.Action) engine.Action {
	var summons, activations, sets []engine.Action
	var enterBattle, endTurn *engine.Action

	for i := range actions {
		a := &actions[i]
		switch a.Type {
		case engine.ActionNormalSummon:
			summons = append(summons, *a)
		case engine.ActionActivate:
			if !c.activated[a.Card.InstanceID] {
				activations = append(activations, *a)
			}
		case engine.ActionSetSpellTrap:
			if a.Card.Card.CardType == engine.CardTypeTrap {
				sets = append(sets, *a)
			}
		case engine.ActionFlipSummon:
			summons = append(summons, *a)
		case engine.ActionEnterBattlePhase:
			enterBattle = a
		case engine.ActionEndTurn:
			endTurn = a
		}
	}

	if len(summons) > 0 {
		sort.SliceStable(summons, func(i, j int) bool {
			return summons[i].Card.Card.ATK > summons[j].Card.Card.ATK
		})
		return summons[0]
	}
	if len(activations) > 0 {
		chosen := activations[c.rng.Intn(len(activations))]
		c.activated[chosen.Card.InstanceID] = true
		return chosen
	}
	if len(sets) > 0 {
		return sets[0]
	}
	if enterBattle != nil {
		return *enterBattle
	}
	return *endTurn
}

// ChooseCards keeps opponent picks strong and own picks weak: when wiping the
// opponent's board, take their biggest threats; when discarding or paying
// from its own side, give up the smallest bodies first.
func (c *Controller) ChooseCards(ctx context.Context, state *engine.GameState, prompt string, candidates []*engine.CardInstance, min, max int) ([]*engine.CardInstance, error) {
	if len(candidates) == 0 || max == 0 {
		return nil, nil
	}
	ranked := append([]*engine.CardInstance(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := cardValue(ranked[i]), cardValue(ranked[j])
		if ranked[i].Controller != c.seat {
			return vi > vj
		}
		return vi < vj
	})
	count := min
	if count <= 0 {
		count = 1
	}
	if count > len(ranked) {
		count = len(ranked)
	}
	return ranked[:count], nil
}

func cardValue(ci *engine.CardInstance) int {
	if ci.Card.CardType == engine.CardTypeMonster {
		return ci.Card.ATK
	}
	return 0
}

func (c *Controller) ChooseYesNo(ctx context.Context, state *engine.GameState, prompt string) (bool, error) {
	return true, nil
}

func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
