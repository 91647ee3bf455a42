package mcp

import (
	"context"

	"github.com/duelforge/duelforge/internal/engine"
	"github.com/duelforge/duelforge/internal/log"
	"github.com/duelforge/duelforge/internal/web"
)

// AgentController implements engine.PlayerController by publishing decisions
// to the session's pending channel and blocking on a response channel. The
// MCP tool handlers feed the responses.
type AgentController struct {
	player     int
	session    *DuelSession
	responseCh chan any
}

func NewAgentController(player int, session *DuelSession) *AgentController {
	return &AgentController{
		player:     player,
		session:    session,
		responseCh: make(chan any),
	}
}

// ChooseAction implements engine.PlayerController.
func (c *AgentController) ChooseAction(ctx context.Context, state *engine.GameState, actions []engine.Action) (engine.Action, error) {
	var views []web.ActionView
	for i, a := range actions {
		views = append(views, web.ActionView{Index: i, Desc: a.String()})
	}

	c.session.pendingCh <- &PendingDecision{
		Type:    DecisionChooseAction,
		Player:  c.player,
		State:   web.BuildStateView(state, c.player),
		Actions: views,
	}

	resp := <-c.responseCh
	ar := resp.(ActionResponse)

	if ar.Index < 0 || ar.Index >= len(actions) {
		return actions[0], nil
	}
	return actions[ar.Index], nil
}

// ChooseCards implements engine.PlayerController.
func (c *AgentController) ChooseCards(ctx context.Context, state *engine.GameState, prompt string, candidates []*engine.CardInstance, min, max int) ([]*engine.CardInstance, error) {
	var views []web.CardView
	for i, card := range candidates {
		cv := web.CardView{Index: i, Name: card.Card.Name}
		if card.Card.CardType == engine.CardTypeMonster {
			cv.ATK = card.Card.ATK
			cv.DEF = card.Card.DEF
		}
		views = append(views, cv)
	}

	c.session.pendingCh <- &PendingDecision{
		Type:       DecisionChooseCards,
		Player:     c.player,
		State:      web.BuildStateView(state, c.player),
		Prompt:     prompt,
		Candidates: views,
		Min:        min,
		Max:        max,
	}

	resp := <-c.responseCh
	cr := resp.(CardsResponse)

	var result []*engine.CardInstance
	for _, idx := range cr.Indices {
		if idx >= 0 && idx < len(candidates) {
			result = append(result, candidates[idx])
		}
	}
	return result, nil
}

// ChooseYesNo implements engine.PlayerController.
func (c *AgentController) ChooseYesNo(ctx context.Context, state *engine.GameState, prompt string) (bool, error) {
	c.session.pendingCh <- &PendingDecision{
		Type:   DecisionChooseYesNo,
		Player: c.player,
		State:  web.BuildStateView(state, c.player),
		Prompt: prompt,
	}

	resp := <-c.responseCh
	yr := resp.(YesNoResponse)
	return yr.Answer, nil
}

// Notify implements engine.PlayerController. Events accumulate on the
// session and are drained into the next tool response.
func (c *AgentController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(web.EventView{
		Seq:     event.Seq,
		Turn:    event.Turn,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	})
	return nil
}
