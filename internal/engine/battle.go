package engine

import (
	"fmt"

	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/log"
)

// battlePhase runs the attack loop for the turn player.
func (d *Duel) battlePhase() error {
	gs := d.State
	d.log(log.NewPhaseChangeEvent(gs.Turn, gs.Phase.String()))

	tp := gs.TurnPlayer

	for !gs.Over {
		actions := d.computeBattleActions(tp)
		if len(actions) == 0 {
			break
		}

		chosen, err := d.Controllers[tp].ChooseAction(d.ctx, gs, actions)
		if err != nil {
			return err
		}

		switch chosen.Type {
		case ActionAttack:
			if err := d.executeAttack(chosen); err != nil {
				return err
			}
		case ActionDirectAttack:
			if err := d.executeDirectAttack(chosen); err != nil {
				return err
			}
		case ActionEnterMainPhase2:
			return nil
		}
	}

	return nil
}

// computeBattleActions lists legal attacks for the turn player plus the
// phase exit.
func (d *Duel) computeBattleActions(player int) []Action {
	gs := d.State
	opp := gs.Players[gs.Opponent(player)]
	var actions []Action

	for _, m := range gs.Players[player].FaceUpMonsters() {
		if m.Position != PositionATK || m.AttackedThisTurn {
			continue
		}
		defenders := opp.Monsters()
		if len(defenders) == 0 {
			actions = append(actions, Action{
				Type: ActionDirectAttack, Player: player, Card: m,
				Desc: fmt.Sprintf("%s attacks directly", m.Card.Name),
			})
			continue
		}
		for _, t := range defenders {
			actions = append(actions, Action{
				Type: ActionAttack, Player: player, Card: m, Targets: []*CardInstance{t},
				Desc: fmt.Sprintf("%s attacks %s", m.Card.Name, t.describeAsTarget()),
			})
		}
	}

	actions = append(actions, Action{Type: ActionEnterMainPhase2, Player: player, Desc: "Enter Main Phase 2"})
	return actions
}

func (ci *CardInstance) describeAsTarget() string {
	if ci.Face == FaceDown {
		return fmt.Sprintf("face-down monster (zone %d)", ci.ZoneIndex)
	}
	return ci.Card.Name
}

// executeAttack runs a monster attack end to end: declaration, the
// defender's response window, then damage calculation.
func (d *Duel) executeAttack(action Action) error {
	gs := d.State
	attacker := action.Card
	target := action.Targets[0]

	gs.CurrentAttacker = attacker
	gs.CurrentTarget = target
	attacker.AttackedThisTurn = true
	d.log(log.NewAttackDeclareEvent(gs.Turn, action.Player, attacker.Card.Name, target.describeAsTarget()))

	FireTrigger(gs, ability.TriggerOnAttack, attacker)
	if gs.Over {
		return nil
	}

	if err := d.openResponseWindow(gs.Opponent(action.Player)); err != nil {
		return err
	}
	ResolveChain(gs)
	if gs.Over {
		return nil
	}

	// An effect may have negated the attack or removed a combatant.
	if gs.CurrentAttacker == nil || !attacker.OnBoard() {
		gs.CurrentAttacker = nil
		gs.CurrentTarget = nil
		return nil
	}
	if !target.OnBoard() {
		gs.CurrentAttacker = nil
		gs.CurrentTarget = nil
		return nil
	}

	d.resolveBattle(action.Player, attacker, target)
	gs.CurrentAttacker = nil
	gs.CurrentTarget = nil
	return nil
}

func (d *Duel) executeDirectAttack(action Action) error {
	gs := d.State
	attacker := action.Card
	defender := gs.Opponent(action.Player)

	gs.CurrentAttacker = attacker
	attacker.AttackedThisTurn = true
	d.log(log.NewAttackDeclareEvent(gs.Turn, action.Player, attacker.Card.Name, "directly"))

	FireTrigger(gs, ability.TriggerOnAttack, attacker)
	if gs.Over {
		return nil
	}

	if err := d.openResponseWindow(defender); err != nil {
		return err
	}
	ResolveChain(gs)
	if gs.Over {
		return nil
	}

	if gs.CurrentAttacker == nil || !attacker.OnBoard() {
		gs.CurrentAttacker = nil
		return nil
	}

	// A monster summoned in response forces the attack to fizzle.
	if len(gs.Players[defender].Monsters()) > 0 {
		gs.CurrentAttacker = nil
		return nil
	}

	damage := EffectiveATK(gs, attacker)
	d.log(log.NewDirectAttackEvent(gs.Turn, action.Player, attacker.Card.Name, damage))
	inflictDamage(gs, defender, damage)
	FireTrigger(gs, ability.TriggerOnBattleDamage, attacker)
	gs.CurrentAttacker = nil
	return nil
}

// resolveBattle performs damage calculation between two monsters.
func (d *Duel) resolveBattle(attackingPlayer int, attacker, target *CardInstance) {
	gs := d.State
	defender := gs.Opponent(attackingPlayer)

	wasSet := target.Face == FaceDown
	if wasSet {
		target.Face = FaceUp
	}

	atk := EffectiveATK(gs, attacker)

	if target.Position == PositionATK {
		tgtATK := EffectiveATK(gs, target)
		d.log(log.NewDamageCalcEvent(gs.Turn, attacker.Card.Name, atk, target.Card.Name, tgtATK))

		switch {
		case atk > tgtATK:
			d.battleDestroy(defender, target)
			inflictDamage(gs, defender, atk-tgtATK)
			if !gs.Over {
				FireTrigger(gs, ability.TriggerOnBattleDamage, attacker)
			}
		case atk < tgtATK:
			d.battleDestroy(attackingPlayer, attacker)
			inflictDamage(gs, attackingPlayer, tgtATK-atk)
			if !gs.Over {
				FireTrigger(gs, ability.TriggerOnBattleDamage, target)
			}
		default:
			d.battleDestroy(defender, target)
			d.battleDestroy(attackingPlayer, attacker)
		}
	} else {
		tgtDEF := EffectiveDEF(gs, target)
		d.log(log.NewDamageCalcEvent(gs.Turn, attacker.Card.Name, atk, target.Card.Name, tgtDEF))

		switch {
		case atk > tgtDEF:
			d.battleDestroy(defender, target)
		case atk < tgtDEF:
			inflictDamage(gs, attackingPlayer, tgtDEF-atk)
		}
	}

	// Flip effects resolve after damage calculation, even when the
	// flipped monster did not survive it.
	if wasSet && !gs.Over {
		FireTrigger(gs, ability.TriggerOnFlip, target)
	}
}

// battleDestroy sends a monster destroyed by battle to the graveyard and
// fires both destruction triggers.
func (d *Duel) battleDestroy(controller int, card *CardInstance) {
	gs := d.State
	if !card.OnBoard() {
		return
	}
	d.log(log.NewBattleDestroyEvent(gs.Turn, controller, card.Card.Name))
	FireTrigger(gs, ability.TriggerOnBattleDestroy, card)
	destroyCard(gs, card, "battle")
}
