package engine

import (
	"fmt"

	"github.com/duelforge/duelforge/internal/ability"
)

// openResponseWindow alternates priority between players until both pass in
// succession. It is opened after any activation or attack declaration; the
// caller resolves the chain once the window closes.
func (d *Duel) openResponseWindow(first int) error {
	gs := d.State
	responder := first
	passes := 0

	for passes < 2 && !gs.Over {
		actions := d.computeFastEffectActions(responder)
		if len(actions) == 0 {
			passes++
			responder = gs.Opponent(responder)
			continue
		}

		actions = append(actions, Action{Type: ActionPass, Player: responder, Desc: "Pass"})
		chosen, err := d.Controllers[responder].ChooseAction(d.ctx, gs, actions)
		if err != nil {
			return err
		}
		if chosen.Type == ActionPass {
			passes++
			responder = gs.Opponent(responder)
			continue
		}

		targets, err := d.resolveChoiceTargets(responder, chosen.Card, chosen.EffectIndex)
		if err != nil {
			return err
		}
		if res := ActivateCard(gs, chosen.Card, chosen.EffectIndex, responder, targets); res.Success {
			passes = 0
		} else {
			passes++
		}
		responder = gs.Opponent(responder)
	}

	return nil
}

// computeFastEffectActions lists the chainable activations a player has
// right now: set traps, set quick-plays, and face-up fast effects. Only
// spell speed 2 and up responds inside a window.
func (d *Duel) computeFastEffectActions(player int) []Action {
	gs := d.State
	p := gs.Players[player]
	var actions []Action

	appendFast := func(card *CardInstance, label string) {
		if card.Card.Ability == nil || card.Card.SpellSpeed() < ability.Speed2 {
			return
		}
		for i, eff := range card.Card.Ability.Effects {
			if eff.Trigger != ability.TriggerOnActivate || eff.Continuous {
				continue
			}
			if res := CanActivate(gs, card, i); res.Success {
				actions = append(actions, Action{
					Type: ActionActivate, Player: player, Card: card, EffectIndex: i,
					Desc: fmt.Sprintf("%s %s", label, card.Card.Name),
				})
				break
			}
		}
	}

	for _, st := range p.SpellTraps() {
		if st.Face == FaceDown {
			if st.Card.CardType == CardTypeSpell {
				// Only quick-plays fire from face-down, and not the
				// turn they were set. Traps have their own gate in
				// CanActivate.
				if st.Card.SpellSub != SpellQuickPlay || st.TurnEntered >= gs.Turn {
					continue
				}
			}
			appendFast(st, "Activate")
			continue
		}
		appendFast(st, "Activate effect of")
	}
	for _, m := range p.FaceUpMonsters() {
		appendFast(m, "Activate effect of")
	}
	if p.FieldSpell != nil {
		appendFast(p.FieldSpell, "Activate effect of")
	}

	return actions
}
