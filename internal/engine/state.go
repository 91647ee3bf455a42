package engine

import (
	"fmt"
	"math/rand"

	"github.com/duelforge/duelforge/internal/log"
)

const (
	StartingLifePoints = 8000
	InitialHandSize    = 5
	MaxHandSize        = 6
	MonsterZoneCount   = 5
	SpellTrapZoneCount = 5
)

// Player represents one player's entire state.
type Player struct {
	LifePoints int             `json:"lifePoints"`
	Deck       []*CardInstance `json:"deck"` // top of deck is last element (pop from end)
	Hand       []*CardInstance `json:"hand"`
	Graveyard  []*CardInstance `json:"graveyard"`
	Banished   []*CardInstance `json:"banished"`

	MonsterZones   [MonsterZoneCount]*CardInstance   `json:"monsterZones"`
	SpellTrapZones [SpellTrapZoneCount]*CardInstance `json:"spellTrapZones"`
	FieldSpell     *CardInstance                     `json:"fieldSpell,omitempty"`
}

// DeckCount returns the number of cards remaining in the deck.
func (p *Player) DeckCount() int {
	return len(p.Deck)
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// DrawCard removes the top card from the deck and adds it to the hand.
// Returns the drawn card, or nil if the deck is empty.
func (p *Player) DrawCard() *CardInstance {
	if len(p.Deck) == 0 {
		return nil
	}
	card := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	card.Zone = ZoneHand
	card.ZoneIndex = len(p.Hand)
	p.Hand = append(p.Hand, card)
	return card
}

// RemoveFromHand removes a card from the hand by instance ID.
func (p *Player) RemoveFromHand(card *CardInstance) {
	for i, c := range p.Hand {
		if c.InstanceID == card.InstanceID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return
		}
	}
}

// RemoveFromDeck removes a card from anywhere in the deck.
func (p *Player) RemoveFromDeck(card *CardInstance) {
	for i, c := range p.Deck {
		if c.InstanceID == card.InstanceID {
			p.Deck = append(p.Deck[:i], p.Deck[i+1:]...)
			return
		}
	}
}

// RemoveFromGraveyard removes a card from the graveyard.
func (p *Player) RemoveFromGraveyard(card *CardInstance) {
	for i, c := range p.Graveyard {
		if c.InstanceID == card.InstanceID {
			p.Graveyard = append(p.Graveyard[:i], p.Graveyard[i+1:]...)
			return
		}
	}
}

// SendToGraveyard moves a card to its owner's graveyard pile and resets its
// field state. Stored modifiers do not follow a card off the board.
func (p *Player) SendToGraveyard(card *CardInstance) {
	card.Zone = ZoneGraveyard
	card.ZoneIndex = len(p.Graveyard)
	card.Face = FaceUp
	card.Position = PositionATK
	card.Modifiers = nil
	p.Graveyard = append(p.Graveyard, card)
}

// SendToBanished moves a card to its owner's banished pile.
func (p *Player) SendToBanished(card *CardInstance) {
	card.Zone = ZoneBanished
	card.ZoneIndex = len(p.Banished)
	card.Face = FaceUp
	card.Modifiers = nil
	p.Banished = append(p.Banished, card)
}

// AddToHand appends a card to the hand.
func (p *Player) AddToHand(card *CardInstance) {
	card.Zone = ZoneHand
	card.ZoneIndex = len(p.Hand)
	card.Face = FaceDown
	card.Modifiers = nil
	p.Hand = append(p.Hand, card)
}

// ReturnToDeck places a card on the bottom of the deck.
func (p *Player) ReturnToDeck(card *CardInstance) {
	card.Zone = ZoneDeck
	card.ZoneIndex = 0
	card.Face = FaceDown
	card.Modifiers = nil
	p.Deck = append([]*CardInstance{card}, p.Deck...)
}

// FreeMonsterZone returns the index of the first empty monster zone, or -1.
func (p *Player) FreeMonsterZone() int {
	for i, z := range p.MonsterZones {
		if z == nil {
			return i
		}
	}
	return -1
}

// MonsterCount returns the number of monsters on the field.
func (p *Player) MonsterCount() int {
	count := 0
	for _, z := range p.MonsterZones {
		if z != nil {
			count++
		}
	}
	return count
}

// Monsters returns all non-nil monsters on the field, zone order.
func (p *Player) Monsters() []*CardInstance {
	var result []*CardInstance
	for _, z := range p.MonsterZones {
		if z != nil {
			result = append(result, z)
		}
	}
	return result
}

// FaceUpMonsters returns all face-up monsters on the field, zone order.
func (p *Player) FaceUpMonsters() []*CardInstance {
	var result []*CardInstance
	for _, z := range p.MonsterZones {
		if z != nil && z.Face == FaceUp {
			result = append(result, z)
		}
	}
	return result
}

// RemoveMonster clears a monster's zone.
func (p *Player) RemoveMonster(card *CardInstance) {
	for i, z := range p.MonsterZones {
		if z != nil && z.InstanceID == card.InstanceID {
			p.MonsterZones[i] = nil
			return
		}
	}
}

// PlaceMonster places a card in the specified monster zone.
func (p *Player) PlaceMonster(card *CardInstance, zone int) {
	p.MonsterZones[zone] = card
	card.Zone = ZoneMonster
	card.ZoneIndex = zone
}

// FreeSpellTrapZone returns the index of the first empty spell/trap zone, or -1.
func (p *Player) FreeSpellTrapZone() int {
	for i, z := range p.SpellTrapZones {
		if z == nil {
			return i
		}
	}
	return -1
}

// PlaceSpellTrap places a card in the specified spell/trap zone.
func (p *Player) PlaceSpellTrap(card *CardInstance, zone int) {
	p.SpellTrapZones[zone] = card
	card.Zone = ZoneSpellTrap
	card.ZoneIndex = zone
}

// RemoveSpellTrap clears a card's spell/trap zone.
func (p *Player) RemoveSpellTrap(card *CardInstance) {
	for i, z := range p.SpellTrapZones {
		if z != nil && z.InstanceID == card.InstanceID {
			p.SpellTrapZones[i] = nil
			return
		}
	}
}

// SpellTraps returns all non-nil backrow cards, zone order.
func (p *Player) SpellTraps() []*CardInstance {
	var result []*CardInstance
	for _, z := range p.SpellTrapZones {
		if z != nil {
			result = append(result, z)
		}
	}
	return result
}

// FaceDownSpellTraps returns the set cards in the backrow, zone order.
func (p *Player) FaceDownSpellTraps() []*CardInstance {
	var result []*CardInstance
	for _, z := range p.SpellTrapZones {
		if z != nil && z.Face == FaceDown {
			result = append(result, z)
		}
	}
	return result
}

// BoardCards returns every card instance in a public field zone: monsters,
// backrow, and the field spell slot, in zone order.
func (p *Player) BoardCards() []*CardInstance {
	var result []*CardInstance
	result = append(result, p.Monsters()...)
	result = append(result, p.SpellTraps()...)
	if p.FieldSpell != nil {
		result = append(result, p.FieldSpell)
	}
	return result
}

// --- GameState ---

// GameState holds the complete mutable state of one match. It is the
// document the caller reads before invoking the engine and commits after.
// Exactly one invocation mutates it at a time; the commit layer's version
// check handles racing callers.
type GameState struct {
	Players    [2]*Player `json:"players"`
	Turn       int        `json:"turn"` // 1-based turn counter
	TurnPlayer int        `json:"turnPlayer"`
	Phase      Phase      `json:"phase"`

	// Per-turn flags
	NormalSummonUsed bool `json:"normalSummonUsed"`

	// Battle tracking
	CurrentAttacker *CardInstance `json:"-"`
	CurrentTarget   *CardInstance `json:"-"`

	// Chain system
	Chain           *Chain           `json:"chain,omitempty"`
	PendingTriggers []PendingTrigger `json:"-"`
	resolvingChain  bool

	// Game result
	Winner int    `json:"winner"` // 0, 1, or -1 (no winner yet)
	Over   bool   `json:"over"`
	Result string `json:"result,omitempty"`

	// Events records the observable event stream. Not part of the persisted
	// document; transports and tests attach their own logger.
	Events log.EventLogger `json:"-"`

	rng *rand.Rand
}

// NewGameState creates a fresh match state.
func NewGameState() *GameState {
	return &GameState{
		Players: [2]*Player{
			{LifePoints: StartingLifePoints},
			{LifePoints: StartingLifePoints},
		},
		Winner: -1,
		Events: log.NewMemoryLogger(),
	}
}

// SetSeed fixes the RNG used for shuffling and random selection.
func (gs *GameState) SetSeed(seed int64) {
	gs.rng = rand.New(rand.NewSource(seed))
}

func (gs *GameState) random() *rand.Rand {
	if gs.rng == nil {
		gs.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return gs.rng
}

// ShuffleDeck randomizes a player's deck order.
func (gs *GameState) ShuffleDeck(player int) {
	deck := gs.Players[player].Deck
	gs.random().Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// Opponent returns the index of the other player.
func (gs *GameState) Opponent(player int) int {
	return 1 - player
}

// CurrentPlayer returns the Player struct for the turn player.
func (gs *GameState) CurrentPlayer() *Player {
	return gs.Players[gs.TurnPlayer]
}

// FindInstance locates an instance anywhere in the match by ID.
func (gs *GameState) FindInstance(instanceID string) *CardInstance {
	for p := 0; p < 2; p++ {
		pl := gs.Players[p]
		for _, ci := range pl.BoardCards() {
			if ci.InstanceID == instanceID {
				return ci
			}
		}
		for _, pile := range [][]*CardInstance{pl.Hand, pl.Deck, pl.Graveyard, pl.Banished} {
			for _, ci := range pile {
				if ci.InstanceID == instanceID {
					return ci
				}
			}
		}
	}
	return nil
}

// CheckWinCondition checks if either player's LP has hit 0.
// Returns true if the game is over.
func (gs *GameState) CheckWinCondition() bool {
	p0Dead := gs.Players[0].LifePoints <= 0
	p1Dead := gs.Players[1].LifePoints <= 0

	if p0Dead && p1Dead {
		gs.Over = true
		gs.Winner = -1
		gs.Result = "Draw — both players' LP reached 0"
		return true
	}
	if p0Dead {
		gs.Over = true
		gs.Winner = 1
		gs.Result = "P2 wins — P1's LP reached 0"
		return true
	}
	if p1Dead {
		gs.Over = true
		gs.Winner = 0
		gs.Result = "P1 wins — P2's LP reached 0"
		return true
	}
	return false
}

// ResetTurnFlags resets per-turn tracking for a new turn.
func (gs *GameState) ResetTurnFlags() {
	gs.NormalSummonUsed = false
	gs.CurrentAttacker = nil
	gs.CurrentTarget = nil

	for p := 0; p < 2; p++ {
		for _, m := range gs.Players[p].MonsterZones {
			if m != nil {
				m.AttackedThisTurn = false
				m.PositionChangedThisTurn = false
			}
		}
	}
}

// CreateCardInstance creates a CardInstance from a Card definition, assigned
// to a player's deck.
func (gs *GameState) CreateCardInstance(card *Card, owner int) *CardInstance {
	return &CardInstance{
		InstanceID: newInstanceID(),
		CardID:     card.ID,
		Card:       card,
		Owner:      owner,
		Controller: owner,
		Face:       FaceDown,
		Zone:       ZoneDeck,
	}
}

func (gs *GameState) logEvent(event log.GameEvent) {
	if gs.Events != nil {
		gs.Events.Log(event)
	}
}

// DescribeLP is a small helper for transports.
func (gs *GameState) DescribeLP() string {
	return fmt.Sprintf("P1 %d LP / P2 %d LP", gs.Players[0].LifePoints, gs.Players[1].LifePoints)
}
