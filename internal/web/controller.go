package web

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/coder/websocket"

	"github.com/duelforge/duelforge/internal/engine"
	"github.com/duelforge/duelforge/internal/log"
)

// SocketController implements engine.PlayerController over a websocket
// connection.
type SocketController struct {
	conn   *websocket.Conn
	player int // which player this controller is (0 or 1)
	mu     sync.Mutex
}

// NewSocketController creates a controller for the given connection and seat.
func NewSocketController(conn *websocket.Conn, player int) *SocketController {
	return &SocketController{conn: conn, player: player}
}

// BuildStateView creates a StateView from the perspective of the given
// player. Face-down opponent cards show no identity.
func BuildStateView(state *engine.GameState, player int) *StateView {
	me := player
	opp := state.Opponent(me)

	myPlayer := state.Players[me]
	oppPlayer := state.Players[opp]

	sv := &StateView{
		Turn:       state.Turn,
		Phase:      state.Phase.String(),
		IsYourTurn: state.TurnPlayer == me,
	}

	sv.You = buildPlayerView(state, myPlayer, true)
	for _, c := range myPlayer.Hand {
		sv.You.Hand = append(sv.You.Hand, c.Card.Name)
	}
	sv.Opponent = buildPlayerView(state, oppPlayer, false)

	return sv
}

func buildPlayerView(state *engine.GameState, p *engine.Player, isOwner bool) PlayerView {
	pv := PlayerView{
		LifePoints:     p.LifePoints,
		HandCount:      len(p.Hand),
		GraveyardCount: len(p.Graveyard),
		BanishedCount:  len(p.Banished),
		DeckCount:      p.DeckCount(),
	}
	for i := 0; i < engine.MonsterZoneCount; i++ {
		pv.Monsters[i] = monsterZoneView(state, p.MonsterZones[i], isOwner)
	}
	for i := 0; i < engine.SpellTrapZoneCount; i++ {
		pv.SpellTraps[i] = spellTrapZoneView(p.SpellTrapZones[i], isOwner)
	}
	if p.FieldSpell != nil {
		fv := spellTrapZoneView(p.FieldSpell, isOwner)
		pv.FieldSpell = &fv
	}
	return pv
}

func monsterZoneView(state *engine.GameState, ci *engine.CardInstance, isOwner bool) ZoneView {
	if ci == nil {
		return ZoneView{Empty: true}
	}
	if ci.Face == engine.FaceDown {
		if isOwner {
			return ZoneView{
				FaceDown: true,
				Name:     ci.Card.Name,
				ATK:      ci.Card.ATK,
				DEF:      ci.Card.DEF,
				Position: ci.Position.String(),
			}
		}
		return ZoneView{FaceDown: true, Position: ci.Position.String()}
	}
	return ZoneView{
		Name:     ci.Card.Name,
		ATK:      engine.EffectiveATK(state, ci),
		DEF:      engine.EffectiveDEF(state, ci),
		Position: ci.Position.String(),
	}
}

func spellTrapZoneView(ci *engine.CardInstance, isOwner bool) ZoneView {
	if ci == nil {
		return ZoneView{Empty: true}
	}
	if ci.Face == engine.FaceDown {
		if isOwner {
			return ZoneView{FaceDown: true, Name: ci.Card.Name}
		}
		return ZoneView{FaceDown: true}
	}
	return ZoneView{Name: ci.Card.Name}
}

// send writes a server message to the client. Must be called with mu held.
func (sc *SocketController) send(ctx context.Context, msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return sc.conn.Write(ctx, websocket.MessageText, data)
}

// recv reads a client message. Must be called with mu held.
func (sc *SocketController) recv(ctx context.Context) (ClientMessage, error) {
	var msg ClientMessage
	_, data, err := sc.conn.Read(ctx)
	if err != nil {
		return msg, err
	}
	err = json.Unmarshal(data, &msg)
	return msg, err
}

// ChooseAction implements engine.PlayerController.
func (sc *SocketController) ChooseAction(ctx context.Context, state *engine.GameState, actions []engine.Action) (engine.Action, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var views []ActionView
	for i, a := range actions {
		views = append(views, ActionView{Index: i, Desc: a.String()})
	}

	msg := ServerMessage{
		Type:    "choose_action",
		Actions: views,
		State:   BuildStateView(state, sc.player),
	}
	if err := sc.send(ctx, msg); err != nil {
		return engine.Action{}, fmt.Errorf("send choose_action: %w", err)
	}

	resp, err := sc.recv(ctx)
	if err != nil {
		return engine.Action{}, fmt.Errorf("recv action: %w", err)
	}

	if resp.Index < 0 || resp.Index >= len(actions) {
		return actions[0], nil // fallback to first action
	}
	return actions[resp.Index], nil
}

// ChooseCards implements engine.PlayerController.
func (sc *SocketController) ChooseCards(ctx context.Context, state *engine.GameState, prompt string, candidates []*engine.CardInstance, min, max int) ([]*engine.CardInstance, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var views []CardView
	for i, c := range candidates {
		cv := CardView{Index: i, Name: c.Card.Name}
		if c.Card.CardType == engine.CardTypeMonster {
			cv.ATK = c.Card.ATK
			cv.DEF = c.Card.DEF
		}
		views = append(views, cv)
	}

	msg := ServerMessage{
		Type:       "choose_cards",
		Prompt:     prompt,
		Candidates: views,
		Min:        min,
		Max:        max,
		State:      BuildStateView(state, sc.player),
	}
	if err := sc.send(ctx, msg); err != nil {
		return nil, fmt.Errorf("send choose_cards: %w", err)
	}

	resp, err := sc.recv(ctx)
	if err != nil {
		return nil, fmt.Errorf("recv cards: %w", err)
	}

	var result []*engine.CardInstance
	for _, idx := range resp.Indices {
		if idx >= 0 && idx < len(candidates) {
			result = append(result, candidates[idx])
		}
	}
	return result, nil
}

// ChooseYesNo implements engine.PlayerController.
func (sc *SocketController) ChooseYesNo(ctx context.Context, state *engine.GameState, prompt string) (bool, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	msg := ServerMessage{
		Type:   "choose_yes_no",
		Prompt: prompt,
		State:  BuildStateView(state, sc.player),
	}
	if err := sc.send(ctx, msg); err != nil {
		return false, fmt.Errorf("send choose_yes_no: %w", err)
	}

	resp, err := sc.recv(ctx)
	if err != nil {
		return false, fmt.Errorf("recv yes_no: %w", err)
	}

	return resp.Answer, nil
}

// SendJoined tells the client which match and seat it got.
func (sc *SocketController) SendJoined(ctx context.Context, matchID string) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.send(ctx, ServerMessage{Type: "joined", MatchID: matchID, Seat: sc.player})
}

// SendGameOver sends a game_over message to the client.
func (sc *SocketController) SendGameOver(ctx context.Context, winner int, result string) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.send(ctx, ServerMessage{Type: "game_over", Winner: winner, Result: result})
}

// Notify implements engine.PlayerController.
func (sc *SocketController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	msg := ServerMessage{
		Type: "notify",
		Event: &EventView{
			Seq:     event.Seq,
			Turn:    event.Turn,
			Phase:   event.Phase,
			Player:  event.Player,
			Type:    event.Type.String(),
			Card:    event.Card,
			Details: event.Details,
		},
	}
	return sc.send(ctx, msg)
}
