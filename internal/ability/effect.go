package ability

import (
	"encoding/json"
	"fmt"
)

// EffectType is the closed set of effect behaviors the engine can execute.
type EffectType int

const (
	EffectUnknown EffectType = iota
	EffectDamage
	EffectHeal
	EffectModifyATK
	EffectModifyDEF
	EffectDraw
	EffectSearch
	EffectToHand
	EffectToGraveyard
	EffectBanish
	EffectMill
	EffectDiscard
	EffectReturnToDeck
	EffectSpecialSummon
	EffectDestroy
	EffectNegate
	EffectChangePosition
)

var effectTypeNames = map[EffectType]string{
	EffectDamage:         "damage",
	EffectHeal:           "heal",
	EffectModifyATK:      "modify_atk",
	EffectModifyDEF:      "modify_def",
	EffectDraw:           "draw",
	EffectSearch:         "search",
	EffectToHand:         "to_hand",
	EffectToGraveyard:    "to_graveyard",
	EffectBanish:         "banish",
	EffectMill:           "mill",
	EffectDiscard:        "discard",
	EffectReturnToDeck:   "return_to_deck",
	EffectSpecialSummon:  "special_summon",
	EffectDestroy:        "destroy",
	EffectNegate:         "negate",
	EffectChangePosition: "change_position",
}

var effectTypeValues = invert(effectTypeNames)

func (t EffectType) String() string {
	if s, ok := effectTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

func (t EffectType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *EffectType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := effectTypeValues[s]
	if !ok {
		return fmt.Errorf("unknown effect type %q", s)
	}
	*t = v
	return nil
}

// Trigger names the game event that qualifies an effect for activation.
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerOnSummon
	TriggerOnFlip
	TriggerOnDestroy
	TriggerOnBattleDestroy
	TriggerOnBattleDamage
	TriggerOnAttack
	TriggerOnActivate
	TriggerOnDraw
	TriggerOnStandby
	TriggerOnEndPhase
	TriggerOnOpponentSummon
)

var triggerNames = map[Trigger]string{
	TriggerNone:             "",
	TriggerOnSummon:         "on_summon",
	TriggerOnFlip:           "on_flip",
	TriggerOnDestroy:        "on_destroy",
	TriggerOnBattleDestroy:  "on_battle_destroy",
	TriggerOnBattleDamage:   "on_battle_damage",
	TriggerOnAttack:         "on_attack",
	TriggerOnActivate:       "on_activate",
	TriggerOnDraw:           "on_draw",
	TriggerOnStandby:        "on_standby",
	TriggerOnEndPhase:       "on_end_phase",
	TriggerOnOpponentSummon: "on_opponent_summon",
}

var triggerValues = invert(triggerNames)

func (t Trigger) String() string {
	return triggerNames[t]
}

func (t Trigger) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Trigger) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := triggerValues[s]
	if !ok {
		return fmt.Errorf("unknown trigger %q", s)
	}
	*t = v
	return nil
}

// TargetOwner scopes a target set relative to the acting player, not to
// whose turn it is.
type TargetOwner int

const (
	OwnerSelf TargetOwner = iota
	OwnerOpponent
	OwnerBoth
)

var ownerNames = map[TargetOwner]string{
	OwnerSelf:     "self",
	OwnerOpponent: "opponent",
	OwnerBoth:     "both",
}

var ownerValues = invert(ownerNames)

func (o TargetOwner) String() string { return ownerNames[o] }

func (o TargetOwner) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *TargetOwner) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*o = OwnerSelf
		return nil
	}
	v, ok := ownerValues[s]
	if !ok {
		return fmt.Errorf("unknown target owner %q", s)
	}
	*o = v
	return nil
}

// TargetZone names the zone a target set is drawn from.
type TargetZone int

const (
	ZoneField TargetZone = iota
	ZoneSpellTrap
	ZoneHand
	ZoneDeck
	ZoneGraveyard
	ZoneBanished
)

var zoneNames = map[TargetZone]string{
	ZoneField:     "field",
	ZoneSpellTrap: "spell_trap",
	ZoneHand:      "hand",
	ZoneDeck:      "deck",
	ZoneGraveyard: "graveyard",
	ZoneBanished:  "banished",
}

var zoneValues = invert(zoneNames)

func (z TargetZone) String() string { return zoneNames[z] }

func (z TargetZone) MarshalJSON() ([]byte, error) {
	return json.Marshal(z.String())
}

func (z *TargetZone) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*z = ZoneField
		return nil
	}
	v, ok := zoneValues[s]
	if !ok {
		return fmt.Errorf("unknown target zone %q", s)
	}
	*z = v
	return nil
}

// Selection is the policy for picking targets from the candidate pool.
type Selection int

const (
	SelectAll Selection = iota
	SelectFirst
	SelectRandom
	SelectPlayerChoice
)

var selectionNames = map[Selection]string{
	SelectAll:          "all",
	SelectFirst:        "first",
	SelectRandom:       "random",
	SelectPlayerChoice: "player_choice",
}

var selectionValues = invert(selectionNames)

func (s Selection) String() string { return selectionNames[s] }

func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*s = SelectAll
		return nil
	}
	v, ok := selectionValues[str]
	if !ok {
		return fmt.Errorf("unknown selection policy %q", str)
	}
	*s = v
	return nil
}

// Duration says how long a stat modification persists.
type Duration int

const (
	DurationNone Duration = iota
	DurationEndOfTurn
)

var durationNames = map[Duration]string{
	DurationNone:      "none",
	DurationEndOfTurn: "end_of_turn",
}

var durationValues = invert(durationNames)

func (d Duration) String() string { return durationNames[d] }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = DurationNone
		return nil
	}
	v, ok := durationValues[s]
	if !ok {
		return fmt.Errorf("unknown duration %q", s)
	}
	*d = v
	return nil
}

// NegateType says what a negate effect negates.
type NegateType int

const (
	NegateActivation NegateType = iota
	NegateAttack
)

var negateTypeNames = map[NegateType]string{
	NegateActivation: "activation",
	NegateAttack:     "attack",
}

var negateTypeValues = invert(negateTypeNames)

func (n NegateType) String() string { return negateTypeNames[n] }

func (n NegateType) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

func (n *NegateType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*n = NegateActivation
		return nil
	}
	v, ok := negateTypeValues[s]
	if !ok {
		return fmt.Errorf("unknown negate type %q", s)
	}
	*n = v
	return nil
}

func invert[K comparable, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
