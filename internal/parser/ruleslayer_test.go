package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineLayer(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"this creature becomes a copy of target creature", "1"},
		{"you control enchanted creature", "2"},
		{"this land becomes a 3/3 creature", "4"},
		{"enchanted creature is the color of your choice", "5"},
		{"enchanted creature gains flying", "6"},
		{"creatures you control get +1/+1", "2"},
		{"other creatures get +1/+1", "7c"},
		{"draw a card", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetermineLayer(tc.text), "text %q", tc.text)
	}
}

func TestClassifyAbilities(t *testing.T) {
	lines := ClassifyAbilities("Whenever a creature dies, draw a card. {T}: Add one mana. If a source would deal damage, prevent it. Other creatures get +1/+1.")
	require.Len(t, lines, 4)

	assert.Equal(t, AbilityTriggered, lines[0].Type)
	assert.Equal(t, "trigger_detected", lines[0].Condition)

	assert.Equal(t, AbilityActivated, lines[1].Type)
	assert.Equal(t, "cost_paid", lines[1].Condition)

	assert.Equal(t, AbilityReplacement, lines[2].Type)

	assert.Equal(t, AbilityStatic, lines[3].Type)
	assert.Equal(t, "7c", lines[3].Layer)
}

func TestMatchRuleModifier(t *testing.T) {
	modifier := MatchRuleModifier("players can't cast more than one spell each turn")
	require.NotNil(t, modifier)
	assert.Equal(t, "cast_limit_per_turn", modifier.Rule)
	assert.Equal(t, 1, modifier.Value)

	assert.Nil(t, MatchRuleModifier("draw a card"))
}

func TestExtractFlags(t *testing.T) {
	flags := ExtractFlags("Flying\nWhenever this creature attacks, proliferate.")
	assert.True(t, flags["flying"])
	assert.True(t, flags["proliferate"])
	assert.False(t, flags["trample"])
}
