package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge/oracle-engine/internal/ir"
	"github.com/cardforge/oracle-engine/internal/parser"
)

func TestParseTypeLine(t *testing.T) {
	super, types, subs := ParseTypeLine("Legendary Creature — Human Wizard")
	assert.Equal(t, []string{"Legendary"}, super)
	assert.Equal(t, []string{"Creature"}, types)
	assert.Equal(t, []string{"Human", "Wizard"}, subs)

	super, types, subs = ParseTypeLine("Instant")
	assert.Empty(t, super)
	assert.Equal(t, []string{"Instant"}, types)
	assert.Empty(t, subs)

	_, types, subs = ParseTypeLine("Basic Land - Forest")
	assert.Equal(t, []string{"Land"}, types)
	assert.Equal(t, []string{"Forest"}, subs)
}

func TestBuildMetadataPipeline(t *testing.T) {
	raw := &RawCard{
		Name:       "Grizzly Scholar",
		TypeLine:   "Creature — Bear Advisor",
		OracleText: "Flying\nWhen Grizzly Scholar enters the battlefield, draw a card.",
		ManaCost:   "{1}{G}{U}",
		Power:      "2",
		Toughness:  "2",
	}
	meta := BuildMetadata(raw)

	assert.Equal(t, []string{"Creature"}, meta.Types)
	assert.Equal(t, 3, meta.ManaValue)
	assert.Equal(t, []string{"U", "G"}, meta.Colors)
	assert.Equal(t, []string{"Bear", "Advisor"}, meta.Subtypes)
	assert.Contains(t, meta.StaticKeywords, "flying")
	assert.True(t, meta.IsType("creature"))

	require.Len(t, meta.Clauses, 2)
	assert.Equal(t, 0, meta.Clauses[0].SourceIndex)
	assert.Equal(t, parser.ClauseTrigger, meta.Clauses[1].Type)

	require.NotNil(t, meta.Behavior)
	found := false
	meta.Behavior.Walk(func(node *ir.Node) bool {
		if node.Action != nil && node.Action.Name == ir.ActionDrawCard {
			found = true
			return false
		}
		return true
	})
	assert.True(t, found, "behavior tree should contain the draw effect")
}

func TestMetadataHashesAreDeterministic(t *testing.T) {
	raw := &RawCard{Name: "Shock", TypeLine: "Instant", OracleText: "Shock deals 2 damage to any target."}
	first := BuildMetadata(raw)
	second := BuildMetadata(raw)

	assert.Equal(t, first.OracleHash, second.OracleHash)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)

	other := BuildMetadata(&RawCard{Name: "Shock", TypeLine: "Instant", OracleText: "Shock deals 3 damage to any target."})
	assert.NotEqual(t, first.OracleHash, other.OracleHash)
	assert.NotEqual(t, first.Fingerprint, other.Fingerprint)
}

func TestBuildMetadataEmptyText(t *testing.T) {
	meta := BuildMetadata(&RawCard{Name: "Vanilla", TypeLine: "Creature — Ox"})
	assert.Empty(t, meta.Clauses)
	assert.Empty(t, meta.StaticKeywords)
}
