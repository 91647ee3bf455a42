package log

// EventType enumerates all observable duel events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventDraw
	EventNormalSummon
	EventSetMonster
	EventFlipSummon
	EventSpecialSummon
	EventSetSpellTrap
	EventChangePosition
	EventAttackDeclare
	EventDirectAttack
	EventDamageCalc
	EventBattleDestroy
	EventActivate
	EventChainLink
	EventChainResolve
	EventChainNegated
	EventEffectFizzle
	EventEffectDenied
	EventDestroy
	EventToGraveyard
	EventBanish
	EventToHand
	EventSearch
	EventMill
	EventDiscard
	EventReturnToDeck
	EventLifeChange
	EventShuffle
	EventHandSizeDiscard
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventNormalSummon:
		return "NormalSummon"
	case EventSetMonster:
		return "SetMonster"
	case EventFlipSummon:
		return "FlipSummon"
	case EventSpecialSummon:
		return "SpecialSummon"
	case EventSetSpellTrap:
		return "SetSpellTrap"
	case EventChangePosition:
		return "ChangePosition"
	case EventAttackDeclare:
		return "AttackDeclare"
	case EventDirectAttack:
		return "DirectAttack"
	case EventDamageCalc:
		return "DamageCalc"
	case EventBattleDestroy:
		return "BattleDestroy"
	case EventActivate:
		return "Activate"
	case EventChainLink:
		return "ChainLink"
	case EventChainResolve:
		return "ChainResolve"
	case EventChainNegated:
		return "ChainNegated"
	case EventEffectFizzle:
		return "EffectFizzle"
	case EventEffectDenied:
		return "EffectDenied"
	case EventDestroy:
		return "Destroy"
	case EventToGraveyard:
		return "ToGraveyard"
	case EventBanish:
		return "Banish"
	case EventToHand:
		return "ToHand"
	case EventSearch:
		return "Search"
	case EventMill:
		return "Mill"
	case EventDiscard:
		return "Discard"
	case EventReturnToDeck:
		return "ReturnToDeck"
	case EventLifeChange:
		return "LifeChange"
	case EventShuffle:
		return "Shuffle"
	case EventHandSizeDiscard:
		return "HandSizeDiscard"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a duel.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "Main Phase 1")
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
