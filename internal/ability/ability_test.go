package ability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchAbilityJSON = `{
	"spellSpeed": 1,
	"effects": [
		{
			"type": "search",
			"trigger": "on_summon",
			"value": 1,
			"target": {"owner": "self", "zone": "deck", "count": 1, "selection": "first"},
			"isOPT": true,
			"searchCondition": {"archetype": "infernal_dragons"},
			"sendTo": "hand",
			"description": "When this card is summoned: add 1 Infernal Dragon from your deck to your hand."
		}
	]
}`

func TestParseSearchAbility(t *testing.T) {
	ab, err := Parse([]byte(searchAbilityJSON))
	require.NoError(t, err)

	assert.Equal(t, Speed1, ab.SpellSpeed)
	assert.False(t, ab.Continuous)
	require.Len(t, ab.Effects, 1)

	eff := ab.Effects[0]
	assert.Equal(t, EffectSearch, eff.Type)
	assert.Equal(t, TriggerOnSummon, eff.Trigger)
	assert.True(t, eff.OPT)
	assert.Equal(t, OwnerSelf, eff.Target.Owner)
	assert.Equal(t, ZoneDeck, eff.Target.Zone)
	assert.Equal(t, 1, eff.Target.Count)
	assert.Equal(t, SelectFirst, eff.Target.Selection)
	assert.Equal(t, "infernal_dragons", eff.SearchCondition.Archetype)
	assert.Equal(t, ZoneHand, eff.SendTo)
}

func TestParsePreservesEffectOrder(t *testing.T) {
	raw := `{
		"spellSpeed": 1,
		"isContinuous": true,
		"effects": [
			{"type": "modify_atk", "value": 300, "isContinuous": true, "condition": {"archetype": "infernal_dragons"}},
			{"type": "damage", "trigger": "on_destroy", "value": 500, "target": {"owner": "opponent"}}
		]
	}`
	ab, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.Len(t, ab.Effects, 2)

	assert.True(t, ab.Continuous)
	assert.Equal(t, EffectModifyATK, ab.Effects[0].Type)
	assert.True(t, ab.Effects[0].Continuous)
	assert.Equal(t, EffectDamage, ab.Effects[1].Type)
	assert.Equal(t, TriggerOnDestroy, ab.Effects[1].Trigger)
	assert.Equal(t, OwnerOpponent, ab.Effects[1].Target.Owner)
}

func TestParseNegateAbility(t *testing.T) {
	raw := `{
		"spellSpeed": 3,
		"effects": [
			{"type": "negate", "trigger": "on_activate", "negateType": "activation", "negateAndDestroy": true}
		]
	}`
	ab, err := Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, Speed3, ab.SpellSpeed)
	eff := ab.Effects[0]
	assert.Equal(t, EffectNegate, eff.Type)
	assert.Equal(t, NegateActivation, eff.NegateType)
	assert.True(t, eff.NegateAndDestroy)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"not json":          `{`,
		"unknown type":      `{"spellSpeed": 1, "effects": [{"type": "explode"}]}`,
		"unknown trigger":   `{"spellSpeed": 1, "effects": [{"type": "draw", "trigger": "on_rain"}]}`,
		"missing type":      `{"spellSpeed": 1, "effects": [{"value": 2}]}`,
		"no effects":        `{"spellSpeed": 1, "effects": []}`,
		"speed out of band": `{"spellSpeed": 4, "effects": [{"type": "draw"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestEnumRoundTrips(t *testing.T) {
	for v, name := range effectTypeNames {
		data, err := json.Marshal(v)
		require.NoError(t, err)
		assert.JSONEq(t, `"`+name+`"`, string(data))

		var back EffectType
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, v, back)
	}
}

func TestSchemaCoversEffectShape(t *testing.T) {
	s := Schema()
	require.NotNil(t, s)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	// The generated schema must pin the effect type to the closed enum.
	assert.Contains(t, string(data), `"special_summon"`)
	assert.Contains(t, string(data), `"on_summon"`)
	assert.Contains(t, string(data), `"spellSpeed"`)
}

func TestMustParsePanicsOnBadContent(t *testing.T) {
	assert.Panics(t, func() { MustParse(`{"spellSpeed": 9}`) })
}
