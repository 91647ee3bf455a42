package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for recording duel events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	for len(phase) < 16 {
		phase += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw Phase",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName(player)),
	}
}

func NewDrawEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", playerName(player), cardName),
	}
}

func NewNormalSummonEvent(turn int, phase string, player int, cardName string, atk, zone int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventNormalSummon,
		Card:    cardName,
		Details: fmt.Sprintf("%s summons %s (ATK %d) to Monster Zone %d", playerName(player), cardName, atk, zone+1),
	}
}

func NewSetMonsterEvent(turn int, phase string, player int, zone int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSetMonster,
		Details: fmt.Sprintf("%s sets a monster in Monster Zone %d", playerName(player), zone+1),
	}
}

func NewFlipSummonEvent(turn int, phase string, player int, cardName string, zone int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventFlipSummon,
		Card:    cardName,
		Details: fmt.Sprintf("%s flip summons %s in Monster Zone %d", playerName(player), cardName, zone+1),
	}
}

func NewSpecialSummonEvent(turn int, phase string, player int, cardName string, zone int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSpecialSummon,
		Card:    cardName,
		Details: fmt.Sprintf("%s special summons %s to Monster Zone %d", playerName(player), cardName, zone+1),
	}
}

func NewSetSpellTrapEvent(turn int, phase string, player int, zone int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSetSpellTrap,
		Details: fmt.Sprintf("%s sets a card in Spell/Trap Zone %d", playerName(player), zone+1),
	}
}

func NewChangePositionEvent(turn int, phase string, player int, cardName, position string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChangePosition,
		Card:    cardName,
		Details: fmt.Sprintf("%s switches %s to %s position", playerName(player), cardName, position),
	}
}

func NewAttackDeclareEvent(turn int, player int, attacker, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Battle Phase",
		Player:  player,
		Type:    EventAttackDeclare,
		Card:    attacker,
		Details: fmt.Sprintf("%s attacks with %s → %s", playerName(player), attacker, target),
	}
}

func NewDirectAttackEvent(turn int, player int, attacker string, damage int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Battle Phase",
		Player:  player,
		Type:    EventDirectAttack,
		Card:    attacker,
		Details: fmt.Sprintf("%s attacks directly with %s for %d damage", playerName(player), attacker, damage),
	}
}

func NewDamageCalcEvent(turn int, attacker string, attackerATK int, target string, targetStat int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Battle Phase",
		Type:    EventDamageCalc,
		Card:    attacker,
		Details: fmt.Sprintf("Damage calc: %s (%d) vs %s (%d)", attacker, attackerATK, target, targetStat),
	}
}

func NewBattleDestroyEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Battle Phase",
		Player:  player,
		Type:    EventBattleDestroy,
		Card:    cardName,
		Details: fmt.Sprintf("%s is destroyed by battle", cardName),
	}
}

func NewActivateEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventActivate,
		Card:    cardName,
		Details: fmt.Sprintf("%s activates %s", playerName(player), cardName),
	}
}

func NewChainLinkEvent(turn int, phase string, player int, cardName string, link int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChainLink,
		Card:    cardName,
		Details: fmt.Sprintf("Chain Link %d: %s (%s)", link, cardName, playerName(player)),
	}
}

func NewChainResolveEvent(turn int, phase string, player int, cardName string, link int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChainResolve,
		Card:    cardName,
		Details: fmt.Sprintf("Chain Link %d resolves: %s", link, cardName),
	}
}

func NewChainNegatedEvent(turn int, phase string, cardName string, link int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventChainNegated,
		Card:    cardName,
		Details: fmt.Sprintf("Chain Link %d (%s) was negated — no effect", link, cardName),
	}
}

func NewEffectFizzleEvent(turn int, phase string, cardName, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventEffectFizzle,
		Card:    cardName,
		Details: fmt.Sprintf("%s's effect fizzles (%s)", cardName, reason),
	}
}

func NewEffectDeniedEvent(turn int, phase string, player int, cardName, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEffectDenied,
		Card:    cardName,
		Details: fmt.Sprintf("%s cannot use %s: %s", playerName(player), cardName, reason),
	}
}

func NewDestroyEvent(turn int, phase string, player int, cardName, source string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDestroy,
		Card:    cardName,
		Details: fmt.Sprintf("%s is destroyed by %s", cardName, source),
	}
}

func NewToGraveyardEvent(turn int, phase string, player int, cardName, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventToGraveyard,
		Card:    cardName,
		Details: fmt.Sprintf("%s is sent to the graveyard (%s)", cardName, reason),
	}
}

func NewBanishEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventBanish,
		Card:    cardName,
		Details: fmt.Sprintf("%s is banished", cardName),
	}
}

func NewToHandEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventToHand,
		Card:    cardName,
		Details: fmt.Sprintf("%s returns %s to hand", playerName(player), cardName),
	}
}

func NewSearchEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSearch,
		Card:    cardName,
		Details: fmt.Sprintf("%s adds %s from deck to hand", playerName(player), cardName),
	}
}

func NewMillEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventMill,
		Card:    cardName,
		Details: fmt.Sprintf("%s mills %s from the top of the deck", playerName(player), cardName),
	}
}

func NewDiscardEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s", playerName(player), cardName),
	}
}

func NewReturnToDeckEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventReturnToDeck,
		Card:    cardName,
		Details: fmt.Sprintf("%s returns to the deck", cardName),
	}
}

func NewLifeChangeEvent(turn int, phase string, player int, delta, newTotal int) GameEvent {
	verb := "loses"
	if delta > 0 {
		verb = "gains"
	} else {
		delta = -delta
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventLifeChange,
		Details: fmt.Sprintf("%s %s %d LP (now %d)", playerName(player), verb, delta, newTotal),
	}
}

func NewShuffleEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffles their deck", playerName(player)),
	}
}

func NewHandSizeDiscardEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "End Phase",
		Player:  player,
		Type:    EventHandSizeDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s (hand size limit)", playerName(player), cardName),
	}
}

func NewWinEvent(turn int, phase string, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins: %s", playerName(winner), reason),
	}
}
