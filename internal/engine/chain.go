package engine

import (
	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/log"
)

// ChainLink records one activated effect awaiting resolution.
type ChainLink struct {
	Number      int
	Source      *CardInstance
	EffectIndex int
	Player      int
	Targets     []*CardInstance
	Negated     bool
}

// Chain is the ordered list of activated effects. Links resolve strictly
// last-activated-first once both players pass priority.
type Chain struct {
	Links []ChainLink
}

// TopLink returns the most recently added link, or nil.
func (c *Chain) TopLink() *ChainLink {
	if c == nil || len(c.Links) == 0 {
		return nil
	}
	return &c.Links[len(c.Links)-1]
}

// canChainWith checks if a new spell speed can chain onto the top of the
// current chain. Speed 3 can only be answered by speed 3.
func canChainWith(top, next ability.SpellSpeed) bool {
	if next < top {
		return false
	}
	if top == ability.Speed3 && next < ability.Speed3 {
		return false
	}
	return true
}

// CanActivate checks every activation-legality gate this engine owns for
// adding a chain link: the OPT ledger, the trap-set-this-turn rule, and the
// spell-speed requirement against the current chain top. Phase legality is
// the turn manager's job before it calls in.
func CanActivate(gs *GameState, source *CardInstance, effectIndex int) EffectResult {
	if source.Card.Ability == nil || effectIndex < 0 || effectIndex >= len(source.Card.Ability.Effects) {
		return denied("card has no such effect")
	}
	eff := source.Card.Ability.Effects[effectIndex]

	if eff.OPT && !CanActivateOPT(source, effectIndex, gs.Turn) {
		return denied("Already used this turn")
	}

	if source.Card.CardType == CardTypeTrap && source.Zone == ZoneSpellTrap &&
		source.Face == FaceDown && source.TurnEntered >= gs.Turn {
		return denied("a trap cannot be activated the turn it was set")
	}

	if gs.Chain != nil {
		for _, l := range gs.Chain.Links {
			if l.Source.InstanceID == source.InstanceID {
				return denied("already on the chain")
			}
		}
	}
	if top := gs.Chain.TopLink(); top != nil {
		if !canChainWith(top.Source.Card.SpellSpeed(), source.Card.SpellSpeed()) {
			return denied("spell speed too low to chain")
		}
	}
	return ok("")
}

// ActivateCard activates a card/effect as a new chain link: link 1 of a
// fresh chain when none is open, otherwise a response on top of the open
// one. Targets are locked at activation time. The link does not resolve
// until ResolveChain runs.
func ActivateCard(gs *GameState, source *CardInstance, effectIndex, player int, targets []*CardInstance) EffectResult {
	if res := CanActivate(gs, source, effectIndex); !res.Success {
		gs.logEvent(log.NewEffectDeniedEvent(gs.Turn, gs.Phase.String(), player, source.Card.Name, res.Message))
		return res
	}

	// A set trap or quick-play flips face-up on activation.
	if source.Zone == ZoneSpellTrap && source.Face == FaceDown {
		source.Face = FaceUp
	}

	if gs.Chain == nil {
		gs.Chain = &Chain{}
	}
	number := len(gs.Chain.Links) + 1
	gs.Chain.Links = append(gs.Chain.Links, ChainLink{
		Number:      number,
		Source:      source,
		EffectIndex: effectIndex,
		Player:      player,
		Targets:     targets,
	})

	gs.logEvent(log.NewActivateEvent(gs.Turn, gs.Phase.String(), player, source.Card.Name))
	gs.logEvent(log.NewChainLinkEvent(gs.Turn, gs.Phase.String(), player, source.Card.Name, number))
	return ok("")
}

// ResolveChain resolves the open chain in LIFO order and clears it. A link
// negated by a higher link produces no executor call and no state delta. A
// link whose source left the board before its turn to resolve fizzles — a
// documented no-op, not an error. Triggers fired by resolving links do not
// interleave into this chain; they queue and run as their own sequence once
// the chain has fully emptied.
func ResolveChain(gs *GameState) {
	if gs.Chain == nil || len(gs.Chain.Links) == 0 {
		gs.Chain = nil
		return
	}

	gs.resolvingChain = true
	links := gs.Chain.Links
	for i := len(links) - 1; i >= 0 && !gs.Over; i-- {
		link := &links[i]
		if link.Negated {
			// No executor call, but a spent spell or trap still leaves
			// the field. Skipping this would let a negated card sit in
			// its zone and activate again next turn.
			finishResolvedLink(gs, link, "negated")
			continue
		}
		if !link.Source.OnBoard() {
			gs.logEvent(log.NewEffectFizzleEvent(gs.Turn, gs.Phase.String(), link.Source.Card.Name, "source left the field"))
			continue
		}

		gs.logEvent(log.NewChainResolveEvent(gs.Turn, gs.Phase.String(), link.Player, link.Source.Card.Name, link.Number))
		res := ExecuteEffect(gs, link.Source, link.EffectIndex, link.Player, link.Targets)
		if !res.Success {
			gs.logEvent(log.NewEffectFizzleEvent(gs.Turn, gs.Phase.String(), link.Source.Card.Name, res.Message))
		}

		finishResolvedLink(gs, link, "resolved")
	}

	gs.Chain = nil
	gs.resolvingChain = false
	flushPendingTriggers(gs)
}

// finishResolvedLink sends a spent normal spell or trap to the graveyard,
// whether its link resolved or was negated. Continuous and field cards stay;
// so does anything that already moved during resolution.
func finishResolvedLink(gs *GameState, link *ChainLink, reason string) {
	card := link.Source
	if card.Zone != ZoneSpellTrap {
		return
	}
	switch card.Card.CardType {
	case CardTypeSpell:
		if card.Card.SpellSub == SpellContinuous || card.Card.SpellSub == SpellField {
			return
		}
	case CardTypeTrap:
		if card.Card.TrapSub == TrapContinuous {
			return
		}
	default:
		return
	}
	gs.Players[card.Controller].RemoveSpellTrap(card)
	gs.Players[card.Owner].SendToGraveyard(card)
	gs.logEvent(log.NewToGraveyardEvent(gs.Turn, gs.Phase.String(), card.Owner, card.Card.Name, reason))
}
