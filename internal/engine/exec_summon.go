package engine

import (
	"fmt"

	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/log"
)

// Summon/removal/utility executors: special_summon, destroy,
// change_position.

func execSpecialSummon(gs *GameState, eff ability.Effect, acting int, supplied []*CardInstance) EffectResult {
	player := resolveOwner(acting, eff.Target.Owner)
	p := gs.Players[player]

	targets := resolveTargets(gs, eff, acting, supplied)
	var monsters []*CardInstance
	for _, t := range targets {
		if t.Card.CardType == CardTypeMonster {
			monsters = append(monsters, t)
		}
	}
	if len(monsters) == 0 {
		return denied("no monster to special summon")
	}

	summoned := 0
	for _, m := range monsters {
		zone := p.FreeMonsterZone()
		if zone == -1 {
			if summoned == 0 {
				return denied("no free monster zone")
			}
			break
		}
		if !removeFromCurrentZone(gs, m) {
			continue
		}
		m.Controller = player
		m.Face = FaceUp
		m.Position = PositionATK
		m.TurnEntered = gs.Turn
		p.PlaceMonster(m, zone)
		gs.logEvent(log.NewSpecialSummonEvent(gs.Turn, gs.Phase.String(), player, m.Card.Name, zone))
		summoned++

		FireTrigger(gs, ability.TriggerOnSummon, m)
		FireTrigger(gs, ability.TriggerOnOpponentSummon, m)
	}
	if summoned == 0 {
		return denied("no monster to special summon")
	}
	return ok(fmt.Sprintf("special summoned %d monster(s)", summoned))
}

func execDestroy(gs *GameState, eff ability.Effect, acting int, source *CardInstance, supplied []*CardInstance) EffectResult {
	targets := resolveTargets(gs, eff, acting, supplied)

	var destroyed int
	for _, t := range targets {
		if !t.OnBoard() {
			continue // already left the field — fizzles for this card only
		}
		destroyCard(gs, t, source.Card.Name)
		destroyed++
	}
	if destroyed == 0 {
		return denied("no card to destroy")
	}
	return ok(fmt.Sprintf("destroyed %d card(s)", destroyed))
}

func execChangePosition(gs *GameState, eff ability.Effect, acting int, supplied []*CardInstance) EffectResult {
	targets := resolveTargets(gs, eff, acting, supplied)

	changed := 0
	for _, t := range targets {
		if t.Zone != ZoneMonster {
			continue
		}
		if t.Face == FaceDown {
			// Forced flip: the monster turns face-up in its position and its
			// flip trigger fires.
			t.Face = FaceUp
			gs.logEvent(log.NewChangePositionEvent(gs.Turn, gs.Phase.String(), t.Controller, t.Card.Name, t.Position.String()))
			FireTrigger(gs, ability.TriggerOnFlip, t)
		} else {
			if t.Position == PositionATK {
				t.Position = PositionDEF
			} else {
				t.Position = PositionATK
			}
			gs.logEvent(log.NewChangePositionEvent(gs.Turn, gs.Phase.String(), t.Controller, t.Card.Name, t.Position.String()))
		}
		changed++
	}
	if changed == 0 {
		return denied("no monster to change position")
	}
	return ok(fmt.Sprintf("changed position of %d monster(s)", changed))
}
