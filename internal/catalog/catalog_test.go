package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duelforge/duelforge/internal/ability"
	"github.com/duelforge/duelforge/internal/engine"
)

func TestParseCardWithAbility(t *testing.T) {
	c, err := Parse([]byte(`
cards:
  - id: test-drake
    name: Test Drake
    cardType: monster
    level: 4
    archetype: Infernal
    atk: 1700
    def: 1000
    ability: |
      {
        "spellSpeed": 1,
        "effects": [{"type": "damage", "trigger": "on_summon", "value": 300, "target": {"owner": "opponent"}}]
      }
`))
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	card, err := c.Lookup("test-drake")
	require.NoError(t, err)
	assert.Equal(t, "Test Drake", card.Name)
	assert.Equal(t, engine.CardTypeMonster, card.CardType)
	assert.Equal(t, 1700, card.ATK)

	require.NotNil(t, card.Ability)
	require.Len(t, card.Ability.Effects, 1)
	assert.Equal(t, ability.EffectDamage, card.Ability.Effects[0].Type)
	assert.Equal(t, ability.TriggerOnSummon, card.Ability.Effects[0].Trigger)
}

func TestParseRejectsBrokenAbility(t *testing.T) {
	_, err := Parse([]byte(`
cards:
  - id: broken
    name: Broken
    cardType: spell
    ability: |
      {"spellSpeed": 9, "effects": []}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestParseRejectsSpellWithoutAbility(t *testing.T) {
	_, err := Parse([]byte(`
cards:
  - id: empty-spell
    name: Empty Spell
    cardType: spell
`))
	require.Error(t, err)
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	_, err := Parse([]byte(`
cards:
  - id: dup
    name: One
    cardType: monster
  - id: dup
    name: Two
    cardType: monster
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestBuiltinCatalogLoads(t *testing.T) {
	c := Builtin()
	require.Greater(t, c.Len(), 20)

	// Every non-monster needs a parsed ability; monsters may be vanilla.
	for _, card := range c.Cards() {
		if card.CardType != engine.CardTypeMonster {
			require.NotNil(t, card.Ability, "card %s has no ability", card.ID)
		}
	}

	// One of each subtype must be present.
	citadel, err := c.Lookup("infernal-citadel")
	require.NoError(t, err)
	assert.Equal(t, engine.SpellField, citadel.SpellSub)
	assert.True(t, citadel.IsContinuousSource())

	veto, err := c.Lookup("sovereign-veto")
	require.NoError(t, err)
	assert.Equal(t, engine.TrapCounter, veto.TrapSub)
	assert.Equal(t, ability.Speed3, veto.SpellSpeed())
}

func TestBuiltinEffectTypeCoverage(t *testing.T) {
	seen := map[ability.EffectType]bool{}
	for _, card := range Builtin().Cards() {
		if card.Ability == nil {
			continue
		}
		for _, eff := range card.Ability.Effects {
			seen[eff.Type] = true
		}
	}

	all := []ability.EffectType{
		ability.EffectDamage, ability.EffectHeal,
		ability.EffectModifyATK, ability.EffectModifyDEF,
		ability.EffectDraw, ability.EffectSearch,
		ability.EffectToHand, ability.EffectToGraveyard,
		ability.EffectBanish, ability.EffectMill,
		ability.EffectDiscard, ability.EffectReturnToDeck,
		ability.EffectSpecialSummon, ability.EffectDestroy,
		ability.EffectNegate, ability.EffectChangePosition,
	}
	for _, et := range all {
		assert.True(t, seen[et], "no builtin card uses effect type %s", et)
	}
}

func TestBuiltinDecks(t *testing.T) {
	names := BuiltinDeckNames()
	require.Len(t, names, 2)

	for _, name := range names {
		deck, err := BuiltinDeck(name)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(deck), 35, "deck %s too small", name)
		for _, card := range deck {
			assert.NotEmpty(t, card.ID)
		}
	}

	_, err := BuiltinDeck("No Such Deck")
	require.Error(t, err)
}

func TestResolverRoundTrip(t *testing.T) {
	c := Builtin()

	gs := engine.NewGameState()
	drake, err := c.Lookup("infernal-drake")
	require.NoError(t, err)
	ci := gs.CreateCardInstance(drake, 0)
	gs.Players[0].Deck = append(gs.Players[0].Deck, ci)

	data, err := engine.MarshalState(gs)
	require.NoError(t, err)

	loaded, err := engine.UnmarshalState(data, c.Resolver())
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Players[0].DeckCount())
	assert.Equal(t, "Infernal Drake", loaded.Players[0].Deck[0].Card.Name)
}
