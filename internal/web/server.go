// Package web serves duels over websockets: a client joins with a deck,
// plays against the built-in bot or another connected player, and receives
// state views and choice prompts as JSON messages.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duelforge/duelforge/internal/bot"
	"github.com/duelforge/duelforge/internal/catalog"
	"github.com/duelforge/duelforge/internal/engine"
	"github.com/duelforge/duelforge/internal/store"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CardType    string `json:"cardType"`
	Level       int    `json:"level,omitempty"`
	Archetype   string `json:"archetype,omitempty"`
	ATK         int    `json:"atk,omitempty"`
	DEF         int    `json:"def,omitempty"`
	Subtype     string `json:"subtype,omitempty"`
}

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Name  string   `json:"name"`
	Cards []string `json:"cards"`
}

// Server hosts duels over websockets and records finished matches in the
// store.
type Server struct {
	logger *zap.Logger
	cat    *catalog.Catalog
	st     store.Store
	mux    *http.ServeMux

	mu   sync.Mutex
	open map[uuid.UUID]*openMatch
}

// openMatch is a two-player match waiting for its second player.
type openMatch struct {
	hostDeck []*engine.Card
	hostCtrl *SocketController
	done     chan struct{} // closed when the duel finishes
}

// NewServer creates a server backed by the built-in catalog.
func NewServer(logger *zap.Logger, st store.Store) *Server {
	s := &Server{
		logger: logger,
		cat:    catalog.Builtin(),
		st:     st,
		mux:    http.NewServeMux(),
		open:   make(map[uuid.UUID]*openMatch),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardInfo
	for _, c := range s.cat.Cards() {
		ci := CardInfo{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			CardType:    c.CardType.String(),
			Level:       c.Level,
			Archetype:   c.Archetype,
			ATK:         c.ATK,
			DEF:         c.DEF,
		}
		switch c.CardType {
		case engine.CardTypeSpell:
			ci.Subtype = c.SpellSub.String()
		case engine.CardTypeTrap:
			ci.Subtype = c.TrapSub.String()
		}
		cards = append(cards, ci)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	var decks []DeckInfo
	for _, name := range catalog.BuiltinDeckNames() {
		cards, err := catalog.BuiltinDeck(name)
		if err != nil {
			http.Error(w, "could not resolve deck", http.StatusInternalServerError)
			return
		}
		di := DeckInfo{Name: name}
		seen := make(map[string]bool)
		for _, c := range cards {
			if !seen[c.Name] {
				di.Cards = append(di.Cards, c.Name)
				seen[c.Name] = true
			}
		}
		decks = append(decks, di)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(decks)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	join, err := readJoin(ctx, conn)
	if err != nil {
		s.logger.Warn("websocket handshake failed", zap.Error(err))
		conn.Close(websocket.StatusPolicyViolation, "expected join message")
		return
	}

	deck, err := s.resolveDeck(join.Deck)
	if err != nil {
		sendError(ctx, conn, err.Error())
		return
	}

	switch {
	case join.Create:
		s.hostMatch(ctx, conn, deck)
	case join.MatchID != "":
		s.joinMatch(ctx, conn, join.MatchID, deck)
	default:
		s.botMatch(ctx, conn, deck)
	}
}

func readJoin(ctx context.Context, conn *websocket.Conn) (ClientMessage, error) {
	var msg ClientMessage
	_, data, err := conn.Read(ctx)
	if err != nil {
		return msg, err
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, err
	}
	if msg.Type != "join" {
		return msg, fmt.Errorf("unexpected message type %q", msg.Type)
	}
	return msg, nil
}

func (s *Server) resolveDeck(name string) ([]*engine.Card, error) {
	if name == "" {
		names := catalog.BuiltinDeckNames()
		if len(names) == 0 {
			return nil, fmt.Errorf("no built-in decks available")
		}
		name = names[0]
	}
	return catalog.BuiltinDeck(name)
}

// botMatch runs a duel against the built-in bot on this connection.
func (s *Server) botMatch(ctx context.Context, conn *websocket.Conn, deck []*engine.Card) {
	botDeck, err := s.resolveDeck("")
	if err != nil {
		sendError(ctx, conn, err.Error())
		return
	}

	matchID := uuid.New()
	ctrl := NewSocketController(conn, 0)
	if err := ctrl.SendJoined(ctx, matchID.String()); err != nil {
		return
	}
	s.runMatch(ctx, matchID, deck, botDeck, ctrl, bot.New(1, time.Now().UnixNano()), []*SocketController{ctrl})
}

// hostMatch registers a two-player match and blocks until an opponent joins
// and the duel finishes.
func (s *Server) hostMatch(ctx context.Context, conn *websocket.Conn, deck []*engine.Card) {
	matchID := uuid.New()
	ctrl := NewSocketController(conn, 0)
	om := &openMatch{hostDeck: deck, hostCtrl: ctrl, done: make(chan struct{})}

	s.mu.Lock()
	s.open[matchID] = om
	s.mu.Unlock()

	if err := ctrl.SendJoined(ctx, matchID.String()); err != nil {
		s.abandonMatch(matchID)
		return
	}
	s.logger.Info("match opened, waiting for opponent", zap.String("matchId", matchID.String()))

	select {
	case <-om.done:
	case <-ctx.Done():
		s.abandonMatch(matchID)
	}
}

// joinMatch takes the guest seat of an open match and drives the duel.
func (s *Server) joinMatch(ctx context.Context, conn *websocket.Conn, matchIDStr string, deck []*engine.Card) {
	matchID, err := uuid.Parse(matchIDStr)
	if err != nil {
		sendError(ctx, conn, fmt.Sprintf("invalid match id %q", matchIDStr))
		return
	}

	s.mu.Lock()
	om, found := s.open[matchID]
	if found {
		delete(s.open, matchID)
	}
	s.mu.Unlock()
	if !found {
		sendError(ctx, conn, fmt.Sprintf("no open match %s", matchID))
		return
	}
	defer close(om.done)

	ctrl := NewSocketController(conn, 1)
	if err := ctrl.SendJoined(ctx, matchID.String()); err != nil {
		return
	}
	s.runMatch(ctx, matchID, om.hostDeck, deck, om.hostCtrl, ctrl, []*SocketController{om.hostCtrl, ctrl})
}

func (s *Server) abandonMatch(matchID uuid.UUID) {
	s.mu.Lock()
	delete(s.open, matchID)
	s.mu.Unlock()
}

// runMatch drives a duel to completion and records its state in the store.
func (s *Server) runMatch(ctx context.Context, matchID uuid.UUID, deck0, deck1 []*engine.Card, p0, p1 engine.PlayerController, sockets []*SocketController) {
	duel := engine.NewDuel(engine.DuelConfig{Deck0: deck0, Deck1: deck1}, p0, p1)

	initial, err := engine.MarshalState(duel.State)
	if err != nil {
		s.logger.Error("marshal initial state", zap.Error(err))
		return
	}
	doc, err := s.st.Create(ctx, matchID, initial)
	if err != nil {
		s.logger.Error("create match document", zap.String("matchId", matchID.String()), zap.Error(err))
		return
	}

	s.logger.Info("duel starting", zap.String("matchId", matchID.String()))
	winner, err := duel.Run(ctx)
	if err != nil {
		s.logger.Warn("duel aborted", zap.String("matchId", matchID.String()), zap.Error(err))
		return
	}

	final, err := engine.MarshalState(duel.State)
	if err != nil {
		s.logger.Error("marshal final state", zap.Error(err))
	} else if _, err := s.st.Commit(ctx, matchID, doc.Version, final); err != nil {
		s.logger.Error("commit match document", zap.String("matchId", matchID.String()), zap.Error(err))
	}

	s.logger.Info("duel finished",
		zap.String("matchId", matchID.String()),
		zap.Int("winner", winner),
		zap.String("result", duel.State.Result))

	for _, sc := range sockets {
		_ = sc.SendGameOver(ctx, winner, duel.State.Result)
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.mux)
}

// Handler exposes the mux for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func sendError(ctx context.Context, conn *websocket.Conn, msg string) {
	data, _ := json.Marshal(ServerMessage{Type: "error", Result: msg})
	_ = conn.Write(ctx, websocket.MessageText, data)
	_ = conn.Close(websocket.StatusNormalClosure, "refused")
}
