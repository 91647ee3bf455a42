package engine

import (
	"fmt"

	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/log"
)

// Stat and life-point executors. Damage and LP gain are non-negative by
// contract; modifiers may be negative but effective stats floor at 0 when
// read back (see continuous.go).

func execDamage(gs *GameState, eff ability.Effect, acting int, source *CardInstance) EffectResult {
	if eff.Value <= 0 {
		return denied("damage value must be positive")
	}
	target := resolveOwner(acting, eff.Target.Owner)
	inflictDamage(gs, target, eff.Value)
	return ok(fmt.Sprintf("%s inflicts %d damage", source.Card.Name, eff.Value))
}

func execHeal(gs *GameState, eff ability.Effect, acting int, source *CardInstance) EffectResult {
	if eff.Value <= 0 {
		return denied("heal value must be positive")
	}
	target := resolveOwner(acting, eff.Target.Owner)
	p := gs.Players[target]
	p.LifePoints += eff.Value
	gs.logEvent(log.NewLifeChangeEvent(gs.Turn, gs.Phase.String(), target, eff.Value, p.LifePoints))
	return ok(fmt.Sprintf("%s restores %d LP", source.Card.Name, eff.Value))
}

// inflictDamage applies LP loss with the floor-at-zero clamp and checks the
// win condition. Battle damage routes through here too.
func inflictDamage(gs *GameState, player, amount int) {
	if amount <= 0 {
		return
	}
	p := gs.Players[player]
	p.LifePoints -= amount
	if p.LifePoints < 0 {
		p.LifePoints = 0
	}
	gs.logEvent(log.NewLifeChangeEvent(gs.Turn, gs.Phase.String(), player, -amount, p.LifePoints))
	if gs.CheckWinCondition() {
		gs.logEvent(log.NewWinEvent(gs.Turn, gs.Phase.String(), gs.Winner, gs.Result))
	}
}

// execModifyStat covers modify_atk and modify_def. A continuous-flagged
// modifier is not stored here: those are the evaluator's job, recomputed
// from the face-up source on every read.
func execModifyStat(gs *GameState, eff ability.Effect, acting int, source *CardInstance, supplied []*CardInstance, isDEF bool) EffectResult {
	if eff.Continuous {
		return ok(fmt.Sprintf("%s's continuous effect is active while it remains face-up", source.Card.Name))
	}

	targets := resolveTargets(gs, eff, acting, supplied)
	var applied []*CardInstance
	for _, t := range targets {
		if t.Zone != ZoneMonster {
			continue
		}
		applied = append(applied, t)
	}
	if len(applied) == 0 {
		return denied("no monster to apply the modifier to")
	}

	mod := StatModifier{Source: source.InstanceID}
	if isDEF {
		mod.DEF = eff.Value
	} else {
		mod.ATK = eff.Value
	}
	if eff.Duration == ability.DurationEndOfTurn {
		mod.ExpiresTurn = gs.Turn
	}
	for _, t := range applied {
		t.AddModifier(mod)
	}

	stat := "ATK"
	if isDEF {
		stat = "DEF"
	}
	return ok(fmt.Sprintf("%s changes %s by %+d on %d monster(s)", source.Card.Name, stat, eff.Value, len(applied)))
}
