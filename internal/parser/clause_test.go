package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge/oracle-engine/internal/lexicon"
)

func parseTrigger(t *testing.T, text string) TriggerNode {
	t.Helper()
	tokens := lexicon.Tokenize(text)
	require.NotEmpty(t, tokens)
	require.Equal(t, lexicon.TokenTrigger, tokens[0].Type, "text must start with a trigger word: %q", text)
	node, _ := ParseTriggerTokens(tokens, 0)
	return node
}

func TestZoneChangeDerivation(t *testing.T) {
	cases := []struct {
		text string
		from string
		to   string
	}{
		{"when this creature dies", "battlefield", "graveyard"},
		{"whenever a creature you control is exiled", "battlefield", "exile"},
		{"when this creature enters the battlefield", "", "battlefield"},
		{"whenever a permanent leaves the battlefield", "battlefield", ""},
	}
	for _, tc := range cases {
		node := parseTrigger(t, tc.text)
		require.NotNil(t, node.Event.ZoneChange, "text %q", tc.text)
		assert.Equal(t, tc.from, node.Event.ZoneChange.From, "text %q", tc.text)
		assert.Equal(t, tc.to, node.Event.ZoneChange.To, "text %q", tc.text)
	}
}

func TestNoZoneChangeForPlainTrigger(t *testing.T) {
	node := parseTrigger(t, "whenever you cast a spell")
	assert.Nil(t, node.Event.ZoneChange)
}

func TestDelayedTriggerDetection(t *testing.T) {
	node := parseTrigger(t, "at the beginning of the next end step return it to the battlefield")
	assert.True(t, node.Delayed)

	node = parseTrigger(t, "when this creature dies")
	assert.False(t, node.Delayed)
}

func TestTriggerBoundaryOnThen(t *testing.T) {
	tokens := lexicon.Tokenize("when this creature dies then draw a card")
	node, next := ParseTriggerTokens(tokens, 0)
	require.Less(t, next, len(tokens))
	assert.Equal(t, "then", tokens[next].Text)
	assert.NotNil(t, node.Event.ZoneChange)
}

// Condition mode is a one-way flip: after a condition word every token
// belongs to the condition, even action words.
func TestConditionModeOneWayFlip(t *testing.T) {
	tokens := lexicon.Tokenize("whenever a creature attacks if you control an artifact draw")
	node, _ := ParseTriggerTokens(tokens, 0)
	assert.Contains(t, node.Event.Condition, "if")
	assert.Contains(t, node.Event.Condition, "draw")
	assert.NotContains(t, node.Event.Action, "draw")
}

func TestTriggerSubjectParsing(t *testing.T) {
	node := parseTrigger(t, "whenever a creature you control attacks")
	assert.Equal(t, "1", node.Event.Subject.Amount)
	assert.Equal(t, "you", node.Event.Subject.Controller)
	assert.Contains(t, node.Event.Subject.Types, "creature")
}

func TestParseTokenGroupClassification(t *testing.T) {
	trigger := ParseTokenGroup(lexicon.TokenizeClause("When this creature dies, draw a card."))
	assert.Equal(t, ClauseTrigger, trigger.Type)
	require.NotNil(t, trigger.Trigger)

	condition := ParseTokenGroup(lexicon.TokenizeClause("If you control an artifact, draw a card."))
	assert.Equal(t, ClauseCondition, condition.Type)
	require.NotNil(t, condition.Condition)

	action := ParseTokenGroup(lexicon.TokenizeClause("Draw a card."))
	assert.Equal(t, ClauseAction, action.Type)
	assert.Nil(t, action.Trigger)
	assert.Nil(t, action.Condition)
}

func TestParseTokenGroupCost(t *testing.T) {
	block := ParseTokenGroup(lexicon.TokenizeClause("Sacrifice a creature, then draw a card."))
	assert.Equal(t, ClauseAction, block.Type)
	require.NotNil(t, block.Cost)
	assert.Equal(t, "sacrifice a creature", block.Cost.Raw)
	assert.Equal(t, "draw a card", block.ActionText)
}

func TestSegmentPatterns(t *testing.T) {
	segments := SegmentPatterns("whenever a creature dies draw a card")
	require.NotEmpty(t, segments)
	assert.Equal(t, "TRIGGER", segments[0].Tag)
}

func TestSegmentPatternsCost(t *testing.T) {
	segments := SegmentPatterns("pay 2 life if you control an artifact")
	require.Len(t, segments, 2)
	assert.Equal(t, "COST", segments[0].Tag)
	assert.Equal(t, "pay 2 life", segments[0].Text)
	assert.Equal(t, "CONDITION", segments[1].Tag)
}
