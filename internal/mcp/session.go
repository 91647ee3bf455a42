// Package mcp exposes a duel to an AI agent over the Model Context
// Protocol. The agent takes one seat, the built-in bot takes the other, and
// every engine decision surfaces as a pending decision the agent answers
// through tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/duelforge/duelforge/internal/bot"
	"github.com/duelforge/duelforge/internal/catalog"
	"github.com/duelforge/duelforge/internal/engine"
	"github.com/duelforge/duelforge/internal/web"
)

// DecisionType identifies what kind of decision the engine is waiting for.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionChooseCards  DecisionType = "choose_cards"
	DecisionChooseYesNo  DecisionType = "choose_yes_no"
	DecisionGameOver     DecisionType = "game_over"
)

// PendingDecision represents a decision the engine is waiting for.
type PendingDecision struct {
	Type       DecisionType     `json:"type"`
	Player     int              `json:"player"`
	State      *web.StateView   `json:"state"`
	Actions    []web.ActionView `json:"actions,omitempty"`
	Prompt     string           `json:"prompt,omitempty"`
	Candidates []web.CardView   `json:"candidates,omitempty"`
	Min        int              `json:"min,omitempty"`
	Max        int              `json:"max,omitempty"`
}

// Response types sent back from MCP tools to the agent controller.

type ActionResponse struct {
	Index int
}

type CardsResponse struct {
	Indices []int
}

type YesNoResponse struct {
	Answer bool
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []web.EventView `json:"events"`
	State    *web.StateView  `json:"state,omitempty"`
	Pending  *PendingView    `json:"pending,omitempty"`
	GameOver bool            `json:"game_over"`
	Winner   int             `json:"winner,omitempty"`
	Result   string          `json:"result,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type       DecisionType     `json:"type"`
	Actions    []web.ActionView `json:"actions,omitempty"`
	Prompt     string           `json:"prompt,omitempty"`
	Candidates []web.CardView   `json:"candidates,omitempty"`
	Min        int              `json:"min,omitempty"`
	Max        int              `json:"max,omitempty"`
}

// DuelSession holds the state of a single MCP duel against the bot.
type DuelSession struct {
	duel        *engine.Duel
	agentCtrl   *AgentController
	agentPlayer int

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []web.EventView
	gameOver bool
	winner   int
	result   string
}

// NewDuelSession starts a duel between the agent and the built-in bot and
// returns once the engine is waiting for its first decision.
func NewDuelSession(agentDeck, botDeck string, agentPlayer int) (*DuelSession, error) {
	agentCards, err := catalog.BuiltinDeck(agentDeck)
	if err != nil {
		return nil, fmt.Errorf("load agent deck: %w", err)
	}
	botCards, err := catalog.BuiltinDeck(botDeck)
	if err != nil {
		return nil, fmt.Errorf("load bot deck: %w", err)
	}

	sess := &DuelSession{
		agentPlayer: agentPlayer,
		pendingCh:   make(chan *PendingDecision, 1),
		winner:      -1,
	}
	sess.agentCtrl = NewAgentController(agentPlayer, sess)

	botPlayer := 1 - agentPlayer
	botCtrl := bot.New(botPlayer, time.Now().UnixNano())

	var deck0, deck1 []*engine.Card
	var ctrl0, ctrl1 engine.PlayerController
	if agentPlayer == 0 {
		deck0, deck1 = agentCards, botCards
		ctrl0, ctrl1 = sess.agentCtrl, botCtrl
	} else {
		deck0, deck1 = botCards, agentCards
		ctrl0, ctrl1 = botCtrl, sess.agentCtrl
	}

	sess.duel = engine.NewDuel(engine.DuelConfig{Deck0: deck0, Deck1: deck1}, ctrl0, ctrl1)

	go func() {
		winner, err := sess.duel.Run(context.Background())

		result := sess.duel.State.Result
		if err != nil {
			result = fmt.Sprintf("error: %v", err)
		} else if result == "" {
			result = fmt.Sprintf("Duel over. Winner: player %d", winner)
		}

		sess.mu.Lock()
		sess.gameOver = true
		sess.winner = winner
		sess.result = result
		sess.mu.Unlock()

		sess.pendingCh <- &PendingDecision{
			Type:   DecisionGameOver,
			Player: winner,
			State:  web.BuildStateView(sess.duel.State, sess.agentPlayer),
		}
	}()

	return sess, nil
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *DuelSession) appendEvent(ev web.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *DuelSession) drainEvents() []web.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// waitForPending blocks until the next decision arrives from the engine,
// then builds a ToolResponse with accumulated events plus the decision.
func (s *DuelSession) waitForPending() (*ToolResponse, error) {
	pending := <-s.pendingCh
	s.currentPending = pending

	resp := &ToolResponse{
		Events: s.drainEvents(),
		State:  pending.State,
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
		return resp, nil
	}

	resp.Pending = &PendingView{
		Type:       pending.Type,
		Actions:    pending.Actions,
		Prompt:     pending.Prompt,
		Candidates: pending.Candidates,
		Min:        pending.Min,
		Max:        pending.Max,
	}
	return resp, nil
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	if resp.Events == nil {
		resp.Events = []web.EventView{}
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
