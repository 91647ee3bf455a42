package engine

import (
	"context"
	"fmt"

	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/log"
)

// PlayerController is the interface human (websocket) and AI (bot, MCP)
// players implement. Every choice the engine needs is resolved through it
// before the relevant executor runs — there is no mid-resolution wait.
type PlayerController interface {
	// ChooseAction presents available actions and waits for the player to pick one.
	ChooseAction(ctx context.Context, state *GameState, actions []Action) (Action, error)

	// ChooseCards asks the player to select cards from a list (e.g. effect targets).
	ChooseCards(ctx context.Context, state *GameState, prompt string, candidates []*CardInstance, min, max int) ([]*CardInstance, error)

	// ChooseYesNo asks the player a yes/no question.
	ChooseYesNo(ctx context.Context, state *GameState, prompt string) (bool, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// DuelConfig holds configuration for creating a new duel.
type DuelConfig struct {
	Deck0     []*Card // Player 0's deck (card definitions)
	Deck1     []*Card // Player 1's deck (card definitions)
	Logger    log.EventLogger
	Seed      int64 // RNG seed (0 for random)
	NoShuffle bool  // skip deck shuffle (for deterministic tests)
	MaxTurns  int   // stop after this many turns (0 = no limit)
}

// Duel orchestrates an entire match between two players. It is the caller
// role the engine contract describes: it reads choices from controllers,
// invokes activations and triggers, and runs the phase loop to completion
// synchronously.
type Duel struct {
	State       *GameState
	Controllers [2]PlayerController
	ctx         context.Context
	noShuffle   bool
	maxTurns    int
}

// NewDuel creates a new duel from the given config and player controllers.
func NewDuel(cfg DuelConfig, p0, p1 PlayerController) *Duel {
	gs := NewGameState()
	if cfg.Logger != nil {
		gs.Events = cfg.Logger
	}
	if cfg.Seed != 0 {
		gs.SetSeed(cfg.Seed)
	}

	for _, card := range cfg.Deck0 {
		ci := gs.CreateCardInstance(card, 0)
		gs.Players[0].Deck = append(gs.Players[0].Deck, ci)
	}
	for _, card := range cfg.Deck1 {
		ci := gs.CreateCardInstance(card, 1)
		gs.Players[1].Deck = append(gs.Players[1].Deck, ci)
	}

	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = 200 // safety limit
	}

	return &Duel{
		State:       gs,
		Controllers: [2]PlayerController{p0, p1},
		ctx:         context.Background(),
		noShuffle:   cfg.NoShuffle,
		maxTurns:    maxTurns,
	}
}

// Run executes the entire duel loop. Returns the winner (0, 1, or -1 for draw).
func (d *Duel) Run(ctx context.Context) (int, error) {
	d.ctx = ctx
	gs := d.State

	if !d.noShuffle {
		gs.ShuffleDeck(0)
		gs.ShuffleDeck(1)
	}

	for i := 0; i < InitialHandSize; i++ {
		for p := 0; p < 2; p++ {
			if gs.Players[p].DrawCard() == nil {
				return -1, fmt.Errorf("player %d has insufficient cards for initial hand", p)
			}
		}
	}

	for !gs.Over {
		if gs.Turn >= d.maxTurns {
			gs.Over = true
			gs.Winner = -1
			gs.Result = fmt.Sprintf("Turn limit reached (%d turns)", d.maxTurns)
			break
		}
		if err := d.runTurn(); err != nil {
			return gs.Winner, err
		}
		if err := d.ctx.Err(); err != nil {
			return -1, err
		}
	}

	return gs.Winner, nil
}

// runTurn executes a single turn for the current turn player.
func (d *Duel) runTurn() error {
	gs := d.State
	gs.Turn++
	gs.ResetTurnFlags()

	d.log(log.NewTurnEvent(gs.Turn, gs.TurnPlayer))

	if err := d.drawPhase(); err != nil || gs.Over {
		return err
	}
	if err := d.standbyPhase(); err != nil || gs.Over {
		return err
	}
	if err := d.mainPhase(PhaseMain1); err != nil || gs.Over {
		return err
	}

	enteredBattle := gs.Phase == PhaseBattle
	if enteredBattle {
		if err := d.battlePhase(); err != nil || gs.Over {
			return err
		}
		if err := d.mainPhase(PhaseMain2); err != nil || gs.Over {
			return err
		}
	}

	if err := d.endPhase(); err != nil {
		return err
	}

	gs.TurnPlayer = gs.Opponent(gs.TurnPlayer)
	return nil
}

func (d *Duel) drawPhase() error {
	gs := d.State
	gs.Phase = PhaseDraw
	d.log(log.NewPhaseChangeEvent(gs.Turn, gs.Phase.String()))

	p := gs.CurrentPlayer()
	card := p.DrawCard()
	if card == nil {
		// Deck out — current player loses.
		gs.Over = true
		gs.Winner = gs.Opponent(gs.TurnPlayer)
		gs.Result = fmt.Sprintf("P%d wins — P%d decked out", gs.Winner+1, gs.TurnPlayer+1)
		d.log(log.NewWinEvent(gs.Turn, gs.Phase.String(), gs.Winner, "deck out"))
		return nil
	}
	d.log(log.NewDrawEvent(gs.Turn, gs.Phase.String(), gs.TurnPlayer, card.Card.Name))

	FireTrigger(gs, ability.TriggerOnDraw, nil)
	return nil
}

func (d *Duel) standbyPhase() error {
	gs := d.State
	gs.Phase = PhaseStandby
	d.log(log.NewPhaseChangeEvent(gs.Turn, gs.Phase.String()))

	FireTrigger(gs, ability.TriggerOnStandby, nil)
	return nil
}

func (d *Duel) mainPhase(phase Phase) error {
	gs := d.State
	gs.Phase = phase
	d.log(log.NewPhaseChangeEvent(gs.Turn, gs.Phase.String()))

	tp := gs.TurnPlayer

	for !gs.Over {
		actions := d.computeMainPhaseActions(tp)
		if len(actions) == 0 {
			break
		}

		chosen, err := d.Controllers[tp].ChooseAction(d.ctx, gs, actions)
		if err != nil {
			return err
		}

		switch chosen.Type {
		case ActionNormalSummon:
			if err := d.executeNormalSummon(chosen); err != nil {
				return err
			}
		case ActionNormalSet:
			if err := d.executeNormalSet(chosen); err != nil {
				return err
			}
		case ActionFlipSummon:
			d.executeFlipSummon(chosen)
		case ActionChangePosition:
			d.executeChangePosition(chosen)
		case ActionSetSpellTrap:
			if err := d.executeSetSpellTrap(chosen); err != nil {
				return err
			}
		case ActionActivate:
			if err := d.executeActivation(chosen); err != nil {
				return err
			}
		case ActionEnterBattlePhase:
			gs.Phase = PhaseBattle
			return nil
		case ActionEndTurn:
			return nil
		}
	}

	return nil
}

func (d *Duel) endPhase() error {
	gs := d.State
	gs.Phase = PhaseEnd
	d.log(log.NewPhaseChangeEvent(gs.Turn, gs.Phase.String()))

	FireTrigger(gs, ability.TriggerOnEndPhase, nil)
	if gs.Over {
		return nil
	}

	// Until-end-of-turn modifiers lapse now.
	for p := 0; p < 2; p++ {
		for _, m := range gs.Players[p].Monsters() {
			m.ClearExpiredModifiers(gs.Turn)
		}
	}

	// Hand size check: discard down to the limit.
	p := gs.CurrentPlayer()
	for len(p.Hand) > MaxHandSize {
		toDiscard, err := d.Controllers[gs.TurnPlayer].ChooseCards(
			d.ctx, gs,
			fmt.Sprintf("Discard to %d cards (you have %d)", MaxHandSize, len(p.Hand)),
			p.Hand, 1, 1,
		)
		if err != nil {
			return err
		}
		if len(toDiscard) == 0 {
			toDiscard = p.Hand[:1]
		}
		card := toDiscard[0]
		p.RemoveFromHand(card)
		p.SendToGraveyard(card)
		d.log(log.NewHandSizeDiscardEvent(gs.Turn, gs.TurnPlayer, card.Card.Name))
	}

	return nil
}

// resolveChoiceTargets asks the acting player to pick targets when an
// effect's selection policy requires it; every other policy resolves inside
// the executor.
func (d *Duel) resolveChoiceTargets(player int, source *CardInstance, effectIndex int) ([]*CardInstance, error) {
	eff := source.Card.Ability.Effects[effectIndex]
	if eff.Target.Selection != ability.SelectPlayerChoice {
		return nil, nil
	}
	pool := candidatePool(d.State, eff, player)
	if len(pool) == 0 {
		return nil, nil
	}
	count := eff.Target.Count
	if count <= 0 || count > len(pool) {
		count = len(pool)
	}
	return d.Controllers[player].ChooseCards(
		d.ctx, d.State,
		fmt.Sprintf("Choose target(s) for %s", source.Card.Name),
		pool, count, count,
	)
}

// log emits a game event through the state logger and notifies both players.
func (d *Duel) log(event log.GameEvent) {
	d.State.logEvent(event)
	for i := 0; i < 2; i++ {
		_ = d.Controllers[i].Notify(d.ctx, event)
	}
}
