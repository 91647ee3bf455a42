package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/duelforge/duelforge/internal/ability"
)

// --- Enums ---

type Phase int

const (
	PhaseNone Phase = iota
	PhaseDraw
	PhaseStandby
	PhaseMain1
	PhaseBattle
	PhaseMain2
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseDraw:
		return "Draw Phase"
	case PhaseStandby:
		return "Standby Phase"
	case PhaseMain1:
		return "Main Phase 1"
	case PhaseBattle:
		return "Battle Phase"
	case PhaseMain2:
		return "Main Phase 2"
	case PhaseEnd:
		return "End Phase"
	default:
		return "None"
	}
}

type Position int

const (
	PositionATK Position = iota
	PositionDEF
)

func (p Position) String() string {
	if p == PositionATK {
		return "ATK"
	}
	return "DEF"
}

type FaceStatus int

const (
	FaceUp FaceStatus = iota
	FaceDown
)

func (f FaceStatus) String() string {
	if f == FaceUp {
		return "face-up"
	}
	return "face-down"
}

type CardType int

const (
	CardTypeMonster CardType = iota
	CardTypeSpell
	CardTypeTrap
)

func (ct CardType) String() string {
	switch ct {
	case CardTypeMonster:
		return "Monster"
	case CardTypeSpell:
		return "Spell"
	case CardTypeTrap:
		return "Trap"
	default:
		return "Unknown"
	}
}

type SpellSubtype int

const (
	SpellNormal SpellSubtype = iota
	SpellQuickPlay
	SpellContinuous
	SpellField
)

func (s SpellSubtype) String() string {
	switch s {
	case SpellQuickPlay:
		return "Quick-Play"
	case SpellContinuous:
		return "Continuous"
	case SpellField:
		return "Field"
	default:
		return "Normal"
	}
}

type TrapSubtype int

const (
	TrapNormal TrapSubtype = iota
	TrapContinuous
	TrapCounter
)

func (s TrapSubtype) String() string {
	switch s {
	case TrapContinuous:
		return "Continuous"
	case TrapCounter:
		return "Counter"
	default:
		return "Normal"
	}
}

// ZoneType names where a card instance currently lives.
type ZoneType int

const (
	ZoneDeck ZoneType = iota
	ZoneHand
	ZoneMonster
	ZoneSpellTrap
	ZoneFieldSpell
	ZoneGraveyard
	ZoneBanished
)

func (z ZoneType) String() string {
	switch z {
	case ZoneDeck:
		return "Deck"
	case ZoneHand:
		return "Hand"
	case ZoneMonster:
		return "Monster Zone"
	case ZoneSpellTrap:
		return "Spell/Trap Zone"
	case ZoneFieldSpell:
		return "Field Spell Zone"
	case ZoneGraveyard:
		return "Graveyard"
	case ZoneBanished:
		return "Banished"
	default:
		return "Unknown"
	}
}

// --- Card definition (immutable catalog entry) ---

type Card struct {
	ID          string
	Name        string
	Description string
	CardType    CardType
	Level       int
	Archetype   string
	Rarity      string
	ATK         int
	DEF         int
	SpellSub    SpellSubtype
	TrapSub     TrapSubtype

	// Parsed once at content load, shared by every instance of this card.
	Ability *ability.Ability
}

func (c *Card) String() string {
	return c.Name
}

// SpellSpeed returns the speed this card's activations carry. Declared
// abilities win; otherwise the speed derives from the card type the way the
// chain rules expect (counter traps are speed 3, other traps and quick-play
// spells speed 2, everything else speed 1).
func (c *Card) SpellSpeed() ability.SpellSpeed {
	if c.Ability != nil && c.Ability.SpellSpeed != 0 {
		return c.Ability.SpellSpeed
	}
	switch c.CardType {
	case CardTypeTrap:
		if c.TrapSub == TrapCounter {
			return ability.Speed3
		}
		return ability.Speed2
	case CardTypeSpell:
		if c.SpellSub == SpellQuickPlay {
			return ability.Speed2
		}
		return ability.Speed1
	default:
		return ability.Speed1
	}
}

// IsContinuousSource reports whether this card, face-up on the field,
// contributes to continuous-effect recomputation.
func (c *Card) IsContinuousSource() bool {
	if c.Ability == nil {
		return false
	}
	if c.Ability.Continuous {
		return true
	}
	for _, eff := range c.Ability.Effects {
		if eff.Continuous {
			return true
		}
	}
	return false
}

// --- Stat modifiers ---

// StatModifier is a one-shot ATK/DEF change applied by an executor. These
// are stored on the instance, unlike continuous bonuses which are always
// recomputed. ExpiresTurn is the turn whose end phase removes the modifier
// (0 = permanent while the card stays on the field).
type StatModifier struct {
	Source      string `json:"source"` // instance ID of the effect source
	ATK         int    `json:"atk"`
	DEF         int    `json:"def"`
	ExpiresTurn int    `json:"expiresTurn,omitempty"`
}

// --- CardInstance (one physical copy in play) ---

type CardInstance struct {
	InstanceID string `json:"instanceId"`
	CardID     string `json:"cardId"` // catalog ID, used to rehydrate Card after load
	Card       *Card  `json:"-"`
	Owner      int    `json:"owner"`      // player index (0 or 1) who owns this card
	Controller int    `json:"controller"` // player index currently controlling it

	Face      FaceStatus `json:"face"`
	Position  Position   `json:"position"`
	Zone      ZoneType   `json:"zone"`
	ZoneIndex int        `json:"zoneIndex"`

	TurnEntered      int  `json:"turnEntered"` // turn this card entered its current public zone
	AttackedThisTurn bool `json:"attackedThisTurn"`

	// PositionChangedThisTurn gates flip summons and position toggles.
	PositionChangedThisTurn bool `json:"positionChangedThisTurn"`

	Modifiers []StatModifier `json:"modifiers,omitempty"`

	// Once-per-turn ledger: effect indexes used during OPTResetTurn.
	EffectsUsed  map[int]bool `json:"effectsUsed,omitempty"`
	OPTResetTurn int          `json:"optResetTurn"`
}

func newInstanceID() string {
	return uuid.NewString()
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	if ci.Face == FaceDown {
		return fmt.Sprintf("face-down %s", ci.Position)
	}
	return ci.Card.Name
}

// DisplayString returns a human-readable description for the event log.
// Note continuous bonuses are not included here: they require game state.
func (ci *CardInstance) DisplayString() string {
	if ci == nil {
		return "(empty)"
	}
	if ci.Card.CardType != CardTypeMonster {
		return ci.Card.Name
	}
	if ci.Face == FaceDown {
		return fmt.Sprintf("%s (%s %s)", ci.Card.Name, ci.Face, ci.Position)
	}
	return fmt.Sprintf("%s (ATK %d/DEF %d)", ci.Card.Name, ci.baseATK(), ci.baseDEF())
}

// baseATK is the card's printed ATK plus stored one-shot modifiers, floored
// at 0. Continuous bonuses are layered on by EffectiveATK.
func (ci *CardInstance) baseATK() int {
	atk := ci.Card.ATK
	for _, mod := range ci.Modifiers {
		atk += mod.ATK
	}
	if atk < 0 {
		atk = 0
	}
	return atk
}

func (ci *CardInstance) baseDEF() int {
	def := ci.Card.DEF
	for _, mod := range ci.Modifiers {
		def += mod.DEF
	}
	if def < 0 {
		def = 0
	}
	return def
}

// AddModifier attaches a one-shot stat modifier to this instance.
func (ci *CardInstance) AddModifier(mod StatModifier) {
	ci.Modifiers = append(ci.Modifiers, mod)
}

// ClearExpiredModifiers drops modifiers whose duration lapsed at the end of
// the given turn.
func (ci *CardInstance) ClearExpiredModifiers(turn int) {
	kept := ci.Modifiers[:0]
	for _, mod := range ci.Modifiers {
		if mod.ExpiresTurn == 0 || mod.ExpiresTurn > turn {
			kept = append(kept, mod)
		}
	}
	ci.Modifiers = kept
	if len(ci.Modifiers) == 0 {
		ci.Modifiers = nil
	}
}

// OnBoard reports whether the instance is in a public field zone where its
// effects are live.
func (ci *CardInstance) OnBoard() bool {
	switch ci.Zone {
	case ZoneMonster, ZoneSpellTrap, ZoneFieldSpell:
		return true
	default:
		return false
	}
}

// --- Action types (used by the turn driver and transports) ---

type ActionType int

const (
	ActionNormalSummon ActionType = iota
	ActionNormalSet
	ActionFlipSummon
	ActionChangePosition
	ActionAttack
	ActionDirectAttack
	ActionSetSpellTrap
	ActionActivate
	ActionEnterBattlePhase
	ActionEnterMainPhase2
	ActionEndTurn
	ActionPass // explicitly pass priority
)

func (a ActionType) String() string {
	switch a {
	case ActionNormalSummon:
		return "Normal Summon"
	case ActionNormalSet:
		return "Normal Set"
	case ActionFlipSummon:
		return "Flip Summon"
	case ActionChangePosition:
		return "Change Position"
	case ActionAttack:
		return "Attack"
	case ActionDirectAttack:
		return "Direct Attack"
	case ActionSetSpellTrap:
		return "Set Spell/Trap"
	case ActionActivate:
		return "Activate"
	case ActionEnterBattlePhase:
		return "Enter Battle Phase"
	case ActionEnterMainPhase2:
		return "Enter Main Phase 2"
	case ActionEndTurn:
		return "End Turn"
	case ActionPass:
		return "Pass"
	default:
		return "Unknown"
	}
}

// Action represents a player action with all necessary details.
type Action struct {
	Type        ActionType
	Player      int
	Card        *CardInstance   // card being played/used
	Zone        int             // target zone index
	Targets     []*CardInstance // attack target, effect targets
	EffectIndex int             // which effect on the card is being activated
	Desc        string          // human-readable description
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return a.Type.String()
}
