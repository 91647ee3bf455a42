package web

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/duelforge/duelforge/internal/engine"
	"github.com/duelforge/duelforge/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(zap.NewNop(), store.NewMemoryStore())
}

func TestCardsEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/cards", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)

	var cards []CardInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	assert.NotEmpty(t, cards)

	names := make(map[string]bool)
	for _, c := range cards {
		names[c.Name] = true
	}
	assert.True(t, names["Infernal Citadel"])
}

func TestDecksEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/decks", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)

	var decks []DeckInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decks))
	require.Len(t, decks, 2)
	for _, d := range decks {
		assert.NotEmpty(t, d.Cards)
	}
}

func TestStateViewPerspective(t *testing.T) {
	gs := engine.NewGameState()
	gs.Turn = 2
	gs.TurnPlayer = 0

	dragon := &engine.Card{ID: "dragon", Name: "Dragon", CardType: engine.CardTypeMonster, ATK: 2000, DEF: 1500}
	lurker := &engine.Card{ID: "lurker", Name: "Lurker", CardType: engine.CardTypeMonster, ATK: 800, DEF: 2100}

	inHand := gs.CreateCardInstance(dragon, 0)
	gs.Players[0].AddToHand(inHand)

	faceUp := gs.CreateCardInstance(dragon, 0)
	faceUp.Face = engine.FaceUp
	faceUp.Position = engine.PositionATK
	gs.Players[0].PlaceMonster(faceUp, 0)

	set := gs.CreateCardInstance(lurker, 1)
	set.Face = engine.FaceDown
	set.Position = engine.PositionDEF
	gs.Players[1].PlaceMonster(set, 2)

	// From player 0's seat: own hand visible, opponent's set card anonymous.
	view := BuildStateView(gs, 0)
	assert.True(t, view.IsYourTurn)
	assert.Equal(t, []string{"Dragon"}, view.You.Hand)
	assert.Equal(t, "Dragon", view.You.Monsters[0].Name)
	assert.Equal(t, 2000, view.You.Monsters[0].ATK)

	oppZone := view.Opponent.Monsters[2]
	assert.True(t, oppZone.FaceDown)
	assert.Empty(t, oppZone.Name)
	assert.Zero(t, oppZone.ATK)

	// From player 1's seat: the set card shows its identity to its owner.
	view = BuildStateView(gs, 1)
	assert.False(t, view.IsYourTurn)
	assert.Equal(t, "Lurker", view.You.Monsters[2].Name)
	assert.Equal(t, 2100, view.You.Monsters[2].DEF)
	assert.Empty(t, view.Opponent.Hand)
	assert.Equal(t, 1, view.Opponent.HandCount)
}
