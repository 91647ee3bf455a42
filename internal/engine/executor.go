package engine

import (
	"fmt"

	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/log"
)

// ExecuteEffect is the single entry point for running one effect: the action
// handler, the trigger scanner, and the chain resolver all come through
// here. actingPlayer is the effect's controller — target owner scopes
// resolve relative to it, not to whose turn it is, so a trap fired on the
// opponent's turn still reads "self" as its own controller. targets may be
// pre-resolved by the caller (player choice happens before execution);
// when nil, targets are resolved from the effect's selection policy against
// live board state.
//
// All mutations apply directly to gs. A denied result means nothing was
// mutated, so the caller may surface the message and retry a different
// action safely.
func ExecuteEffect(gs *GameState, source *CardInstance, effectIndex, actingPlayer int, targets []*CardInstance) EffectResult {
	if source.Card.Ability == nil || effectIndex < 0 || effectIndex >= len(source.Card.Ability.Effects) {
		return denied("card has no such effect")
	}
	eff := source.Card.Ability.Effects[effectIndex]

	if eff.OPT && !CanActivateOPT(source, effectIndex, gs.Turn) {
		gs.logEvent(log.NewEffectDeniedEvent(gs.Turn, gs.Phase.String(), actingPlayer, source.Card.Name, "already used this turn"))
		return denied("Already used this turn")
	}

	result := executeParsed(gs, eff, actingPlayer, source, targets)

	if result.Success && eff.OPT {
		RecordOPTUsage(source, effectIndex, gs.Turn)
	}
	return result
}

// executeParsed dispatches on the closed effect-type union. Adding a case to
// the union without an arm here is a compile-time visible gap, not a runtime
// surprise.
func executeParsed(gs *GameState, eff ability.Effect, acting int, source *CardInstance, targets []*CardInstance) EffectResult {
	switch eff.Type {
	case ability.EffectDamage:
		return execDamage(gs, eff, acting, source)
	case ability.EffectHeal:
		return execHeal(gs, eff, acting, source)
	case ability.EffectModifyATK:
		return execModifyStat(gs, eff, acting, source, targets, false)
	case ability.EffectModifyDEF:
		return execModifyStat(gs, eff, acting, source, targets, true)
	case ability.EffectDraw:
		return execDraw(gs, eff, acting)
	case ability.EffectSearch:
		return execSearch(gs, eff, acting)
	case ability.EffectToHand:
		return execToHand(gs, eff, acting, targets)
	case ability.EffectToGraveyard:
		return execToGraveyard(gs, eff, acting, targets)
	case ability.EffectBanish:
		return execBanish(gs, eff, acting, targets)
	case ability.EffectMill:
		return execMill(gs, eff, acting)
	case ability.EffectDiscard:
		return execDiscard(gs, eff, acting, targets)
	case ability.EffectReturnToDeck:
		return execReturnToDeck(gs, eff, acting, targets)
	case ability.EffectSpecialSummon:
		return execSpecialSummon(gs, eff, acting, targets)
	case ability.EffectDestroy:
		return execDestroy(gs, eff, acting, source, targets)
	case ability.EffectNegate:
		return execNegate(gs, eff, acting, source, targets)
	case ability.EffectChangePosition:
		return execChangePosition(gs, eff, acting, targets)
	default:
		return denied(fmt.Sprintf("unsupported effect type %q", eff.Type))
	}
}

// resolveOwner maps an owner scope to a player index relative to the acting
// player.
func resolveOwner(acting int, owner ability.TargetOwner) int {
	if owner == ability.OwnerOpponent {
		return 1 - acting
	}
	return acting
}

// candidatePool collects the instances an effect may target, given its zone
// and owner scope. For OwnerBoth the acting player's cards come first, which
// also fixes the order "all" selections apply in.
func candidatePool(gs *GameState, eff ability.Effect, acting int) []*CardInstance {
	players := []int{resolveOwner(acting, eff.Target.Owner)}
	if eff.Target.Owner == ability.OwnerBoth {
		players = []int{acting, 1 - acting}
	}

	var pool []*CardInstance
	for _, pi := range players {
		p := gs.Players[pi]
		switch eff.Target.Zone {
		case ability.ZoneField:
			pool = append(pool, p.Monsters()...)
		case ability.ZoneSpellTrap:
			pool = append(pool, p.SpellTraps()...)
			if p.FieldSpell != nil {
				pool = append(pool, p.FieldSpell)
			}
		case ability.ZoneHand:
			pool = append(pool, p.Hand...)
		case ability.ZoneDeck:
			pool = append(pool, p.Deck...)
		case ability.ZoneGraveyard:
			pool = append(pool, p.Graveyard...)
		case ability.ZoneBanished:
			pool = append(pool, p.Banished...)
		}
	}
	return pool
}

// resolveTargets returns the instances an effect acts on. Supplied targets
// win (the caller resolved a player choice before invoking the executor);
// otherwise the selection policy picks from the live candidate pool.
// player_choice with no supplied targets falls back to first — selection UI
// integration stays the caller's job.
func resolveTargets(gs *GameState, eff ability.Effect, acting int, supplied []*CardInstance) []*CardInstance {
	if len(supplied) > 0 {
		return supplied
	}

	pool := candidatePool(gs, eff, acting)
	count := eff.Target.Count
	if count <= 0 || count > len(pool) {
		count = len(pool)
	}

	switch eff.Target.Selection {
	case ability.SelectAll:
		if eff.Target.Count > 0 && eff.Target.Count < len(pool) {
			return pool[:eff.Target.Count]
		}
		return pool
	case ability.SelectRandom:
		picked := make([]*CardInstance, len(pool))
		copy(picked, pool)
		gs.random().Shuffle(len(picked), func(i, j int) {
			picked[i], picked[j] = picked[j], picked[i]
		})
		return picked[:count]
	default: // first, and the player_choice fallback
		return pool[:count]
	}
}

// destroyCard moves a board card to its owner's graveyard and fires its
// destruction triggers. Shared by the destroy executor and battle.
func destroyCard(gs *GameState, target *CardInstance, cause string) {
	if !target.OnBoard() {
		return
	}
	owner := gs.Players[target.Owner]
	controller := gs.Players[target.Controller]

	switch target.Zone {
	case ZoneMonster:
		controller.RemoveMonster(target)
	case ZoneSpellTrap:
		controller.RemoveSpellTrap(target)
	case ZoneFieldSpell:
		controller.FieldSpell = nil
	}
	owner.SendToGraveyard(target)
	gs.logEvent(log.NewDestroyEvent(gs.Turn, gs.Phase.String(), target.Controller, target.Card.Name, cause))

	FireTrigger(gs, ability.TriggerOnDestroy, target)
}
