package engine

import (
	"fmt"

	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/log"
)

// computeMainPhaseActions lists every legal main phase action for the turn
// player. The list always terminates the phase loop eventually because
// EndTurn is always present and every other action consumes a resource.
func (d *Duel) computeMainPhaseActions(player int) []Action {
	gs := d.State
	p := gs.Players[player]
	var actions []Action

	for _, card := range p.Hand {
		switch card.Card.CardType {
		case CardTypeMonster:
			if !gs.NormalSummonUsed && p.FreeMonsterZone() >= 0 {
				actions = append(actions, Action{
					Type: ActionNormalSummon, Player: player, Card: card,
					Desc: fmt.Sprintf("Normal Summon %s", card.Card.Name),
				})
				actions = append(actions, Action{
					Type: ActionNormalSet, Player: player, Card: card,
					Desc: fmt.Sprintf("Set %s", card.Card.Name),
				})
			}
		case CardTypeSpell:
			if canPlaceSpell(p, card) {
				if idx, ok := activatableEffect(gs, card); ok {
					actions = append(actions, Action{
						Type: ActionActivate, Player: player, Card: card, EffectIndex: idx,
						Desc: fmt.Sprintf("Activate %s", card.Card.Name),
					})
				} else if card.Card.IsContinuousSource() {
					// Continuous and field spells with no activation
					// effect still come down for their passive bonus.
					actions = append(actions, Action{
						Type: ActionActivate, Player: player, Card: card, EffectIndex: -1,
						Desc: fmt.Sprintf("Activate %s", card.Card.Name),
					})
				}
			}
			if card.Card.SpellSub != SpellField && p.FreeSpellTrapZone() >= 0 {
				actions = append(actions, Action{
					Type: ActionSetSpellTrap, Player: player, Card: card,
					Desc: fmt.Sprintf("Set %s", card.Card.Name),
				})
			}
		case CardTypeTrap:
			if p.FreeSpellTrapZone() >= 0 {
				actions = append(actions, Action{
					Type: ActionSetSpellTrap, Player: player, Card: card,
					Desc: fmt.Sprintf("Set %s", card.Card.Name),
				})
			}
		}
	}

	for _, m := range p.Monsters() {
		if m.Face == FaceDown {
			if m.TurnEntered < gs.Turn && !m.PositionChangedThisTurn {
				actions = append(actions, Action{
					Type: ActionFlipSummon, Player: player, Card: m,
					Desc: fmt.Sprintf("Flip Summon %s", m.Card.Name),
				})
			}
			continue
		}
		if m.TurnEntered < gs.Turn && !m.PositionChangedThisTurn && !m.AttackedThisTurn {
			actions = append(actions, Action{
				Type: ActionChangePosition, Player: player, Card: m,
				Desc: fmt.Sprintf("Change %s to %s", m.Card.Name, m.Position.invert()),
			})
		}
		if idx, ok := activatableEffect(gs, m); ok {
			actions = append(actions, Action{
				Type: ActionActivate, Player: player, Card: m, EffectIndex: idx,
				Desc: fmt.Sprintf("Activate effect of %s", m.Card.Name),
			})
		}
	}

	for _, st := range p.SpellTraps() {
		if st.Face == FaceUp {
			if idx, ok := activatableEffect(gs, st); ok {
				actions = append(actions, Action{
					Type: ActionActivate, Player: player, Card: st, EffectIndex: idx,
					Desc: fmt.Sprintf("Activate effect of %s", st.Card.Name),
				})
			}
			continue
		}
		// Set traps wait for a response window. Set spells may be flipped
		// here, quick-plays only from the turn after they were set.
		if st.Card.CardType != CardTypeSpell {
			continue
		}
		if st.Card.SpellSub == SpellQuickPlay && st.TurnEntered >= gs.Turn {
			continue
		}
		if idx, ok := activatableEffect(gs, st); ok {
			actions = append(actions, Action{
				Type: ActionActivate, Player: player, Card: st, EffectIndex: idx,
				Desc: fmt.Sprintf("Activate %s", st.Card.Name),
			})
		}
	}

	if p.FieldSpell != nil {
		if idx, ok := activatableEffect(gs, p.FieldSpell); ok {
			actions = append(actions, Action{
				Type: ActionActivate, Player: player, Card: p.FieldSpell, EffectIndex: idx,
				Desc: fmt.Sprintf("Activate effect of %s", p.FieldSpell.Card.Name),
			})
		}
	}

	if gs.Phase == PhaseMain1 && gs.Turn > 1 && len(p.FaceUpMonsters()) > 0 {
		actions = append(actions, Action{Type: ActionEnterBattlePhase, Player: player, Desc: "Enter Battle Phase"})
	}
	actions = append(actions, Action{Type: ActionEndTurn, Player: player, Desc: "End Turn"})

	return actions
}

func (pos Position) invert() Position {
	if pos == PositionATK {
		return PositionDEF
	}
	return PositionATK
}

// canPlaceSpell reports whether a spell in hand has somewhere to land.
// Field spells replace the existing one, so the slot is never blocked.
func canPlaceSpell(p *Player, card *CardInstance) bool {
	if card.Card.SpellSub == SpellField {
		return true
	}
	return p.FreeSpellTrapZone() >= 0
}

// activatableEffect returns the first effect index the card could chain
// with right now, preferring explicit activation effects.
func activatableEffect(gs *GameState, card *CardInstance) (int, bool) {
	if card.Card.Ability == nil {
		return 0, false
	}
	for i, eff := range card.Card.Ability.Effects {
		if eff.Trigger != ability.TriggerOnActivate || eff.Continuous {
			continue
		}
		if res := CanActivate(gs, card, i); res.Success {
			return i, true
		}
	}
	return 0, false
}

func (d *Duel) executeNormalSummon(action Action) error {
	gs := d.State
	p := gs.Players[action.Player]
	card := action.Card

	zone := p.FreeMonsterZone()
	if zone < 0 {
		return nil
	}
	p.RemoveFromHand(card)
	card.Face = FaceUp
	card.Position = PositionATK
	card.TurnEntered = gs.Turn
	p.PlaceMonster(card, zone)
	gs.NormalSummonUsed = true

	d.log(log.NewNormalSummonEvent(gs.Turn, gs.Phase.String(), action.Player, card.Card.Name, EffectiveATK(gs, card), zone))

	FireTrigger(gs, ability.TriggerOnSummon, card)
	FireTrigger(gs, ability.TriggerOnOpponentSummon, card)
	return nil
}

func (d *Duel) executeNormalSet(action Action) error {
	gs := d.State
	p := gs.Players[action.Player]
	card := action.Card

	zone := p.FreeMonsterZone()
	if zone < 0 {
		return nil
	}
	p.RemoveFromHand(card)
	card.Face = FaceDown
	card.Position = PositionDEF
	card.TurnEntered = gs.Turn
	p.PlaceMonster(card, zone)
	gs.NormalSummonUsed = true

	d.log(log.NewSetMonsterEvent(gs.Turn, gs.Phase.String(), action.Player, zone))
	return nil
}

func (d *Duel) executeFlipSummon(action Action) {
	gs := d.State
	card := action.Card

	card.Face = FaceUp
	card.Position = PositionATK
	card.PositionChangedThisTurn = true

	d.log(log.NewFlipSummonEvent(gs.Turn, gs.Phase.String(), action.Player, card.Card.Name, card.ZoneIndex))
	FireTrigger(gs, ability.TriggerOnFlip, card)
}

func (d *Duel) executeChangePosition(action Action) {
	gs := d.State
	card := action.Card

	card.Position = card.Position.invert()
	card.PositionChangedThisTurn = true

	d.log(log.NewChangePositionEvent(gs.Turn, gs.Phase.String(), action.Player, card.Card.Name, card.Position.String()))
}

func (d *Duel) executeSetSpellTrap(action Action) error {
	gs := d.State
	p := gs.Players[action.Player]
	card := action.Card

	zone := p.FreeSpellTrapZone()
	if zone < 0 {
		return nil
	}
	p.RemoveFromHand(card)
	card.Face = FaceDown
	card.TurnEntered = gs.Turn
	p.PlaceSpellTrap(card, zone)

	d.log(log.NewSetSpellTrapEvent(gs.Turn, gs.Phase.String(), action.Player, zone))
	return nil
}

// executeActivation handles a main phase activation: the card comes to the
// field if needed, a chain opens, the opponent gets a response window, and
// the chain resolves.
func (d *Duel) executeActivation(action Action) error {
	gs := d.State
	card := action.Card
	player := action.Player

	if card.Zone == ZoneHand && card.Card.CardType == CardTypeSpell {
		if err := d.placeSpellFromHand(player, card); err != nil {
			return err
		}
	}

	if action.EffectIndex < 0 {
		// Passive continuous card: no chain, the evaluator picks it up.
		d.log(log.NewActivateEvent(gs.Turn, gs.Phase.String(), player, card.Card.Name))
		return nil
	}

	targets, err := d.resolveChoiceTargets(player, card, action.EffectIndex)
	if err != nil {
		return err
	}

	if res := ActivateCard(gs, card, action.EffectIndex, player, targets); !res.Success {
		return nil
	}

	if err := d.openResponseWindow(gs.Opponent(player)); err != nil {
		return err
	}
	ResolveChain(gs)
	return nil
}

// placeSpellFromHand moves a hand spell to its board slot face-up. A new
// field spell sends the previous one to the graveyard.
func (d *Duel) placeSpellFromHand(player int, card *CardInstance) error {
	gs := d.State
	p := gs.Players[player]

	if card.Card.SpellSub == SpellField {
		if old := p.FieldSpell; old != nil {
			p.FieldSpell = nil
			p.SendToGraveyard(old)
			d.log(log.NewToGraveyardEvent(gs.Turn, gs.Phase.String(), player, old.Card.Name, "replaced"))
		}
		p.RemoveFromHand(card)
		card.Face = FaceUp
		card.Zone = ZoneFieldSpell
		card.ZoneIndex = 0
		card.TurnEntered = gs.Turn
		p.FieldSpell = card
		return nil
	}

	zone := p.FreeSpellTrapZone()
	if zone < 0 {
		return fmt.Errorf("no free spell/trap zone for %s", card.Card.Name)
	}
	p.RemoveFromHand(card)
	card.Face = FaceUp
	card.TurnEntered = gs.Turn
	p.PlaceSpellTrap(card, zone)
	return nil
}
