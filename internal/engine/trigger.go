package engine

import (
	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/log"
)

// PendingTrigger is a matched triggered effect waiting for the current chain
// to finish resolving.
type PendingTrigger struct {
	Source      *CardInstance
	EffectIndex int
	Player      int
}

// selfTriggers are the conditions that fire on the card the event happened
// to, rather than on observers.
var selfTriggers = map[ability.Trigger]bool{
	ability.TriggerOnSummon:        true,
	ability.TriggerOnFlip:          true,
	ability.TriggerOnDestroy:       true,
	ability.TriggerOnBattleDestroy: true,
	ability.TriggerOnBattleDamage:  true,
}

// FireTrigger scans for abilities whose trigger matches the condition and
// runs them. Callers invoke it immediately after any state-changing action
// (summon, destroy, battle damage, phase entry, draw).
//
// Ordering across simultaneous matches is the documented board-scan
// tie-break: host board before guest board, zone index ascending — there is
// no turn-player-chooses negotiation. While a chain is resolving, matches
// are queued and run as their own sequence after the chain empties; they
// never interleave into the open chain.
func FireTrigger(gs *GameState, cond ability.Trigger, source *CardInstance) {
	if gs.Over {
		return
	}

	matches := collectTriggered(gs, cond, source)
	if len(matches) == 0 {
		return
	}

	if gs.resolvingChain || gs.Chain != nil {
		gs.PendingTriggers = append(gs.PendingTriggers, matches...)
		return
	}

	for _, m := range matches {
		if gs.Over {
			return
		}
		ExecuteEffect(gs, m.Source, m.EffectIndex, m.Player, nil)
	}
}

// collectTriggered gathers every effect matching the condition.
//
// Self-scoped conditions (on_summon, on_flip, on_destroy, on_battle_*) match
// only the event's own card — which for on_destroy has already left the
// board, so the source is checked directly rather than through the board
// scan. Observer conditions scan public zones: face-up monsters, face-up
// backrow, and the field spell slot.
func collectTriggered(gs *GameState, cond ability.Trigger, source *CardInstance) []PendingTrigger {
	var matches []PendingTrigger

	if selfTriggers[cond] {
		if source == nil {
			return nil
		}
		matches = appendCardTriggers(matches, source, cond)
		return matches
	}

	for p := 0; p < 2; p++ {
		if cond == ability.TriggerOnOpponentSummon && source != nil && p == source.Controller {
			continue
		}
		player := gs.Players[p]
		for _, m := range player.MonsterZones {
			if m != nil && m.Face == FaceUp {
				matches = appendCardTriggers(matches, m, cond)
			}
		}
		for _, st := range player.SpellTrapZones {
			if st != nil && st.Face == FaceUp {
				matches = appendCardTriggers(matches, st, cond)
			}
		}
		if fs := player.FieldSpell; fs != nil && fs.Face == FaceUp {
			matches = appendCardTriggers(matches, fs, cond)
		}
	}
	return matches
}

func appendCardTriggers(matches []PendingTrigger, ci *CardInstance, cond ability.Trigger) []PendingTrigger {
	if ci.Card.Ability == nil {
		return matches
	}
	for i, eff := range ci.Card.Ability.Effects {
		if eff.Trigger != cond {
			continue
		}
		if eff.Continuous {
			continue // continuous effects recompute; they never trigger
		}
		matches = append(matches, PendingTrigger{
			Source:      ci,
			EffectIndex: i,
			Player:      ci.Controller,
		})
	}
	return matches
}

// flushPendingTriggers runs effects queued during chain resolution, in the
// order they matched. Each runs as its own resolution; anything they
// trigger in turn executes inline because no chain is open anymore.
//
// A queued trigger whose source left the board while the chain resolved
// fizzles, same as a chain link would. The destroy triggers are exempt:
// those fire precisely because the card left the board.
func flushPendingTriggers(gs *GameState) {
	for len(gs.PendingTriggers) > 0 && !gs.Over {
		next := gs.PendingTriggers[0]
		gs.PendingTriggers = gs.PendingTriggers[1:]
		trig := next.Source.Card.Ability.Effects[next.EffectIndex].Trigger
		if trig != ability.TriggerOnDestroy && trig != ability.TriggerOnBattleDestroy &&
			!next.Source.OnBoard() {
			gs.logEvent(log.NewEffectFizzleEvent(gs.Turn, gs.Phase.String(), next.Source.Card.Name, "source left the field"))
			continue
		}
		ExecuteEffect(gs, next.Source, next.EffectIndex, next.Player, nil)
	}
}
