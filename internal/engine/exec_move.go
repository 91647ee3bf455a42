package engine

import (
	"fmt"

	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/log"
)

// Card-movement executors: draw, search, to_hand, to_graveyard, banish,
// mill, discard, return_to_deck. All of them move references between the
// ordered zone sequences on the Player structs; none enforce zone capacity
// (that is the monster-zone summon path's caller check).

func execDraw(gs *GameState, eff ability.Effect, acting int) EffectResult {
	count := eff.Value
	if count <= 0 {
		count = 1
	}
	player := resolveOwner(acting, eff.Target.Owner)
	p := gs.Players[player]
	if p.DeckCount() < count {
		return denied("not enough cards in deck")
	}
	for i := 0; i < count; i++ {
		drawn := p.DrawCard()
		gs.logEvent(log.NewDrawEvent(gs.Turn, gs.Phase.String(), player, drawn.Card.Name))
	}
	return ok(fmt.Sprintf("drew %d card(s)", count))
}

func execSearch(gs *GameState, eff ability.Effect, acting int) EffectResult {
	player := resolveOwner(acting, eff.Target.Owner)
	p := gs.Players[player]

	count := eff.Target.Count
	if count <= 0 {
		count = 1
	}

	var matches []*CardInstance
	for _, c := range p.Deck {
		if conditionMatches(eff.SearchCondition, c.Card) {
			matches = append(matches, c)
			if len(matches) == count {
				break
			}
		}
	}
	if len(matches) == 0 {
		return denied("no matching card in deck")
	}

	for _, c := range matches {
		p.RemoveFromDeck(c)
		if eff.SendTo == ability.ZoneGraveyard {
			p.SendToGraveyard(c)
			gs.logEvent(log.NewToGraveyardEvent(gs.Turn, gs.Phase.String(), player, c.Card.Name, "search"))
		} else {
			p.AddToHand(c)
			gs.logEvent(log.NewSearchEvent(gs.Turn, gs.Phase.String(), player, c.Card.Name))
		}
	}

	gs.ShuffleDeck(player)
	gs.logEvent(log.NewShuffleEvent(gs.Turn, gs.Phase.String(), player))
	return ok(fmt.Sprintf("added %d card(s)", len(matches)))
}

func execToHand(gs *GameState, eff ability.Effect, acting int, supplied []*CardInstance) EffectResult {
	targets := resolveTargets(gs, eff, acting, supplied)
	if len(targets) == 0 {
		return denied("no card to return to hand")
	}
	moved := 0
	for _, t := range targets {
		if !removeFromCurrentZone(gs, t) {
			continue
		}
		gs.Players[t.Owner].AddToHand(t)
		gs.logEvent(log.NewToHandEvent(gs.Turn, gs.Phase.String(), t.Owner, t.Card.Name))
		moved++
	}
	if moved == 0 {
		return denied("no card to return to hand")
	}
	return ok(fmt.Sprintf("returned %d card(s) to hand", moved))
}

func execToGraveyard(gs *GameState, eff ability.Effect, acting int, supplied []*CardInstance) EffectResult {
	targets := resolveTargets(gs, eff, acting, supplied)
	if len(targets) == 0 {
		return denied("no card to send to the graveyard")
	}
	moved := 0
	for _, t := range targets {
		if !removeFromCurrentZone(gs, t) {
			continue
		}
		gs.Players[t.Owner].SendToGraveyard(t)
		gs.logEvent(log.NewToGraveyardEvent(gs.Turn, gs.Phase.String(), t.Owner, t.Card.Name, "effect"))
		moved++
	}
	if moved == 0 {
		return denied("no card to send to the graveyard")
	}
	return ok(fmt.Sprintf("sent %d card(s) to the graveyard", moved))
}

func execBanish(gs *GameState, eff ability.Effect, acting int, supplied []*CardInstance) EffectResult {
	targets := resolveTargets(gs, eff, acting, supplied)
	if len(targets) == 0 {
		return denied("no card to banish")
	}
	moved := 0
	for _, t := range targets {
		if !removeFromCurrentZone(gs, t) {
			continue
		}
		gs.Players[t.Owner].SendToBanished(t)
		gs.logEvent(log.NewBanishEvent(gs.Turn, gs.Phase.String(), t.Owner, t.Card.Name))
		moved++
	}
	if moved == 0 {
		return denied("no card to banish")
	}
	return ok(fmt.Sprintf("banished %d card(s)", moved))
}

func execMill(gs *GameState, eff ability.Effect, acting int) EffectResult {
	count := eff.Value
	if count <= 0 {
		count = 1
	}
	player := resolveOwner(acting, eff.Target.Owner)
	p := gs.Players[player]
	if p.DeckCount() == 0 {
		return denied("deck is empty")
	}
	milled := 0
	for i := 0; i < count && len(p.Deck) > 0; i++ {
		top := p.Deck[len(p.Deck)-1]
		p.Deck = p.Deck[:len(p.Deck)-1]
		p.SendToGraveyard(top)
		gs.logEvent(log.NewMillEvent(gs.Turn, gs.Phase.String(), player, top.Card.Name))
		milled++
	}
	return ok(fmt.Sprintf("milled %d card(s)", milled))
}

func execDiscard(gs *GameState, eff ability.Effect, acting int, supplied []*CardInstance) EffectResult {
	player := resolveOwner(acting, eff.Target.Owner)
	p := gs.Players[player]

	count := eff.Value
	if count <= 0 {
		count = 1
	}

	targets := supplied
	if len(targets) == 0 {
		if count > len(p.Hand) {
			count = len(p.Hand)
		}
		targets = p.Hand[:count]
	}
	if len(targets) == 0 {
		return denied("no card in hand to discard")
	}

	// Copy before mutating: targets may alias p.Hand.
	toDiscard := make([]*CardInstance, len(targets))
	copy(toDiscard, targets)

	for _, c := range toDiscard {
		p.RemoveFromHand(c)
		p.SendToGraveyard(c)
		gs.logEvent(log.NewDiscardEvent(gs.Turn, gs.Phase.String(), player, c.Card.Name))
	}
	return ok(fmt.Sprintf("discarded %d card(s)", len(toDiscard)))
}

func execReturnToDeck(gs *GameState, eff ability.Effect, acting int, supplied []*CardInstance) EffectResult {
	targets := resolveTargets(gs, eff, acting, supplied)
	if len(targets) == 0 {
		return denied("no card to return to the deck")
	}
	moved := 0
	owners := map[int]bool{}
	for _, t := range targets {
		if !removeFromCurrentZone(gs, t) {
			continue
		}
		gs.Players[t.Owner].ReturnToDeck(t)
		gs.logEvent(log.NewReturnToDeckEvent(gs.Turn, gs.Phase.String(), t.Owner, t.Card.Name))
		owners[t.Owner] = true
		moved++
	}
	if moved == 0 {
		return denied("no card to return to the deck")
	}
	for owner := range owners {
		gs.ShuffleDeck(owner)
		gs.logEvent(log.NewShuffleEvent(gs.Turn, gs.Phase.String(), owner))
	}
	return ok(fmt.Sprintf("returned %d card(s) to the deck", moved))
}

// removeFromCurrentZone detaches an instance from whatever ordered zone it
// currently occupies. Returns false if the instance could not be found (it
// already moved — the per-card fizzle case for multi-target effects).
func removeFromCurrentZone(gs *GameState, ci *CardInstance) bool {
	controller := gs.Players[ci.Controller]
	owner := gs.Players[ci.Owner]
	switch ci.Zone {
	case ZoneMonster:
		controller.RemoveMonster(ci)
	case ZoneSpellTrap:
		controller.RemoveSpellTrap(ci)
	case ZoneFieldSpell:
		if controller.FieldSpell != nil && controller.FieldSpell.InstanceID == ci.InstanceID {
			controller.FieldSpell = nil
		}
	case ZoneHand:
		owner.RemoveFromHand(ci)
	case ZoneDeck:
		owner.RemoveFromDeck(ci)
	case ZoneGraveyard:
		owner.RemoveFromGraveyard(ci)
	default:
		return false
	}
	return true
}
