package engine

import (
	"strings"

	"github.com/duelforge/duelforge/internal/ability"
)

// StatBonus is the recomputed continuous contribution to a card's stats.
type StatBonus struct {
	ATK int `json:"atk"`
	DEF int `json:"def"`
}

// ComputeBonus recomputes the transient ATK/DEF bonus for target from every
// face-up continuous source its controller has on the field: the field-spell
// slot, continuous spells and traps in the backrow, and face-up monsters
// with static abilities. The result is never cached anywhere — every combat
// calculation calls this fresh, so destroying a source changes the next
// computed value with no explicit removal step.
func ComputeBonus(gs *GameState, target *CardInstance) StatBonus {
	var bonus StatBonus
	if target == nil || !target.OnBoard() {
		return bonus
	}

	p := gs.Players[target.Controller]

	sources := make([]*CardInstance, 0, 11)
	if p.FieldSpell != nil && p.FieldSpell.Face == FaceUp {
		sources = append(sources, p.FieldSpell)
	}
	for _, st := range p.SpellTraps() {
		if st.Face == FaceUp {
			sources = append(sources, st)
		}
	}
	sources = append(sources, p.FaceUpMonsters()...)

	for _, src := range sources {
		if src.Card.Ability == nil {
			continue
		}
		for _, eff := range src.Card.Ability.Effects {
			if !eff.Continuous {
				continue
			}
			if !conditionMatches(eff.Condition, target.Card) {
				continue
			}
			switch eff.Type {
			case ability.EffectModifyATK:
				bonus.ATK += eff.Value
			case ability.EffectModifyDEF:
				bonus.DEF += eff.Value
			}
		}
	}
	return bonus
}

// EffectiveATK is the live combat ATK: printed value, stored one-shot
// modifiers, and the recomputed continuous bonus, floored at 0.
func EffectiveATK(gs *GameState, ci *CardInstance) int {
	atk := ci.Card.ATK
	for _, mod := range ci.Modifiers {
		atk += mod.ATK
	}
	atk += ComputeBonus(gs, ci).ATK
	if atk < 0 {
		atk = 0
	}
	return atk
}

// EffectiveDEF mirrors EffectiveATK for the DEF side.
func EffectiveDEF(gs *GameState, ci *CardInstance) int {
	def := ci.Card.DEF
	for _, mod := range ci.Modifiers {
		def += mod.DEF
	}
	def += ComputeBonus(gs, ci).DEF
	if def < 0 {
		def = 0
	}
	return def
}

// conditionMatches checks an ability condition against a card definition.
// Zero-valued fields match anything.
func conditionMatches(cond ability.Condition, card *Card) bool {
	if cond.Archetype != "" && !strings.EqualFold(cond.Archetype, card.Archetype) {
		return false
	}
	if cond.CardType != "" && !strings.EqualFold(cond.CardType, card.CardType.String()) {
		return false
	}
	if cond.MinLevel > 0 && card.Level < cond.MinLevel {
		return false
	}
	if cond.MaxLevel > 0 && card.Level > cond.MaxLevel {
		return false
	}
	return true
}
