package engine

import (
	"fmt"

	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/log"
)

// execNegate flags a chain link as negated (it will resolve to nothing) and
// optionally destroys that link's source card. With negateType "attack" it
// instead cancels the attack currently being declared.
func execNegate(gs *GameState, eff ability.Effect, acting int, source *CardInstance, targets []*CardInstance) EffectResult {
	if eff.NegateType == ability.NegateAttack {
		if gs.CurrentAttacker == nil {
			return denied("no attack to negate")
		}
		attacker := gs.CurrentAttacker
		gs.CurrentAttacker = nil
		gs.CurrentTarget = nil
		gs.logEvent(log.NewEffectFizzleEvent(gs.Turn, gs.Phase.String(), attacker.Card.Name, "attack negated"))
		return ok(fmt.Sprintf("negated %s's attack", attacker.Card.Name))
	}

	link := findNegateTarget(gs, source, targets)
	if link == nil {
		return denied("no chain link to negate")
	}

	link.Negated = true
	gs.logEvent(log.NewChainNegatedEvent(gs.Turn, gs.Phase.String(), link.Source.Card.Name, link.Number))

	if eff.NegateAndDestroy && link.Source.OnBoard() {
		destroyCard(gs, link.Source, source.Card.Name)
	}
	return ok(fmt.Sprintf("negated %s", link.Source.Card.Name))
}

// findNegateTarget picks the chain link a negate resolves against: an
// explicitly targeted link's entry if the caller supplied one, otherwise the
// closest non-negated link below the negating card's own link (the link it
// was chained onto).
func findNegateTarget(gs *GameState, source *CardInstance, targets []*CardInstance) *ChainLink {
	if gs.Chain == nil || len(gs.Chain.Links) == 0 {
		return nil
	}
	links := gs.Chain.Links

	if len(targets) > 0 {
		want := targets[0].InstanceID
		for i := range links {
			if links[i].Source.InstanceID == want && !links[i].Negated {
				return &links[i]
			}
		}
		return nil
	}

	own := len(links) // treat a direct (unlinked) negate as above the top
	for i := range links {
		if links[i].Source.InstanceID == source.InstanceID {
			own = i
			break
		}
	}
	for i := own - 1; i >= 0; i-- {
		if !links[i].Negated {
			return &links[i]
		}
	}
	return nil
}
