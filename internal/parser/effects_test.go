package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge/oracle-engine/internal/ir"
)

func TestCompileModal(t *testing.T) {
	ast := Compile("choose one — destroy target artifact; destroy target enchantment")
	require.Len(t, ast, 1)
	assert.Equal(t, AstModal, ast[0].Type)
	require.Len(t, ast[0].Options, 2)
	assert.Contains(t, ast[0].Options[0].Content, "artifact")
	assert.Contains(t, ast[0].Options[1].Content, "enchantment")
}

func TestCompileConditionalWithElse(t *testing.T) {
	ast := Compile("if you control a creature then draw a card otherwise you lose 2 life")
	require.Len(t, ast, 1)
	node := ast[0]
	assert.Equal(t, AstConditional, node.Type)
	assert.Contains(t, node.Condition, "you control a creature")
	require.NotEmpty(t, node.Then)
	require.NotEmpty(t, node.Else)
}

func TestCompileRepeat(t *testing.T) {
	ast := Compile("reveal the top card of your library and put it into your hand. repeat this process two more times")
	var found bool
	for _, node := range ast {
		if node.Type == AstRepeat {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCompileForEachLeadingClause(t *testing.T) {
	ast := Compile("for each opponent, that player discards a card")
	require.Len(t, ast, 1)
	assert.Equal(t, AstRepeat, ast[0].Type)
	require.Len(t, ast[0].Children, 1)
	assert.Equal(t, AstEffect, ast[0].Children[0].Type)
	assert.Equal(t, "that player discards a card", ast[0].Children[0].Content)
}

func TestCompileForEachTrailingQualifier(t *testing.T) {
	ast := Compile("draw a card for each creature you control")
	require.Len(t, ast, 1)
	assert.Equal(t, AstRepeat, ast[0].Type)
	require.Len(t, ast[0].Children, 1)
	assert.Equal(t, "draw a card", ast[0].Children[0].Content)
}

func TestCompileBareForEachTerminates(t *testing.T) {
	ast := Compile("for each")
	require.Len(t, ast, 1)
	assert.Equal(t, AstRepeat, ast[0].Type)
	assert.Empty(t, ast[0].Children)
}

func TestCompileAndSplit(t *testing.T) {
	ast := Compile("draw a card and you gain 2 life")
	require.Len(t, ast, 2)
	assert.Equal(t, AstEffect, ast[0].Type)
	assert.Equal(t, AstEffect, ast[1].Type)
}

// The library-search idiom reads as one effect even though it contains
// " and ".
func TestCompileSearchLibraryNotSplit(t *testing.T) {
	ast := Compile("search your library for a basic land card and put it onto the battlefield")
	require.Len(t, ast, 1)
	assert.Equal(t, AstEffect, ast[0].Type)
}

func TestParseEffectRegistryFallback(t *testing.T) {
	assert.NotPanics(t, func() {
		node := ParseEffect("transmogrify the phase harmonics of each player's mana alignment")
		require.Equal(t, ir.KindAction, node.Kind)
		require.NotNil(t, node.Action)
		assert.Equal(t, ir.ActionUnparsed, node.Action.Name)
		assert.Contains(t, node.Action.RawText, "transmogrify")
	})
}

func TestParseEffectFirstMatchWins(t *testing.T) {
	// "destroy target creature with flying" contains both a destroy
	// phrase and a keyword; the destroy entry is registered first.
	node := ParseEffect("destroy target creature with flying")
	require.NotNil(t, node.Action)
	assert.Equal(t, ir.ActionDestroyTarget, node.Action.Name)
}

func TestParseEffectAmountExtraction(t *testing.T) {
	node := ParseEffect("draw two cards")
	require.NotNil(t, node.Action)
	assert.Equal(t, ir.ActionDrawCard, node.Action.Name)
	assert.True(t, node.Action.AmountSet)
	assert.Equal(t, 2, node.Action.Amount)

	node = ParseEffect("draw a card")
	require.NotNil(t, node.Action)
	assert.False(t, node.Action.AmountSet)
	assert.Equal(t, 1, node.Action.EffectiveAmount())

	node = ParseEffect("deals 3 damage to any target")
	require.NotNil(t, node.Action)
	assert.Equal(t, ir.ActionDealDamage, node.Action.Name)
	assert.Equal(t, 3, node.Action.Amount)
}

// "X" amounts are flagged variable, never guessed.
func TestParseEffectVariableAmount(t *testing.T) {
	node := ParseEffect("deals x damage to any target")
	require.NotNil(t, node.Action)
	assert.True(t, node.Action.AmountVariable)
	assert.False(t, node.Action.AmountSet)
}

func TestParseEffectReferenceTags(t *testing.T) {
	node := ParseEffect("return that creature to its owner's hand")
	require.NotNil(t, node.Action)
	assert.Equal(t, ir.ActionReturnToHand, node.Action.Name)
	assert.Equal(t, "that_creature", node.Action.ReferenceTag)
}

func TestParseEffectReturnToBattlefield(t *testing.T) {
	node := ParseEffect("return target creature card from your graveyard to the battlefield")
	require.NotNil(t, node.Action)
	assert.Equal(t, ir.ActionReturnToBattlefield, node.Action.Name)
	assert.Equal(t, "beginning_of_next_end_step", node.Action.Extra["timing"])

	// Reanimation wording must not fall through to the hand-return
	// entry even though it contains "return that creature".
	node = ParseEffect("return that creature card from your graveyard to the battlefield")
	require.NotNil(t, node.Action)
	assert.Equal(t, ir.ActionReturnToBattlefield, node.Action.Name)

	node = ParseEffect("return it to the battlefield at the beginning of the next end step")
	require.NotNil(t, node.Action)
	assert.Equal(t, ir.ActionReturnToBattlefield, node.Action.Name)
}

func TestParseEffectCreateToken(t *testing.T) {
	node := ParseEffect("create a 3/3 green beast creature token")
	require.NotNil(t, node.Action)
	require.NotNil(t, node.Action.Token)
	assert.Equal(t, 3, node.Action.Token.Power)
	assert.Equal(t, 3, node.Action.Token.Toughness)
	assert.Contains(t, node.Action.Token.Colors, "green")
}

func TestParseEffectOffspringToken(t *testing.T) {
	node := ParseEffect("create an offspring token")
	require.NotNil(t, node.Action)
	require.NotNil(t, node.Action.Token)
	assert.Equal(t, "source", node.Action.Token.CopyOf)
	assert.Equal(t, 1, node.Action.Token.Power)
	assert.Equal(t, 1, node.Action.Token.Toughness)
}

func TestParseEffectStaticBuff(t *testing.T) {
	node := ParseEffect("creatures you control get +1/+1")
	require.NotNil(t, node.Action)
	assert.Equal(t, ir.ActionStaticEffect, node.Action.Name)
	assert.Equal(t, "7c", node.Action.Layer)
	assert.Equal(t, 1, node.Action.PowerBoost)
	assert.Equal(t, 1, node.Action.ToughnessBoost)
}

func TestParseEffectCombatRestriction(t *testing.T) {
	node := ParseEffect("this creature can't attack")
	require.NotNil(t, node.Action)
	assert.Equal(t, "6", node.Action.Layer)
	assert.Equal(t, "cant_attack", node.Action.Restriction)
}

func TestParseEffectKeywordLine(t *testing.T) {
	node := ParseEffect("flying, vigilance")
	require.Equal(t, ir.KindChain, node.Kind)
	require.Len(t, node.Children, 2)
	assert.Equal(t, "flying", node.Children[0].Action.Keyword)
	assert.Equal(t, "vigilance", node.Children[1].Action.Keyword)
}

// Dynamic keyword grants are out of the keyword entry's scope and fall
// back to the diagnostic leaf.
func TestParseEffectKeywordGrantRejected(t *testing.T) {
	node := ParseEffect("equipped creature has flying")
	require.NotNil(t, node.Action)
	assert.Equal(t, ir.ActionUnparsed, node.Action.Name)
}

func TestCompileTextEndToEnd(t *testing.T) {
	tree := CompileText("Draw a card and you gain 2 life.")
	require.Equal(t, ir.KindChain, tree.Kind)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, ir.ActionDrawCard, tree.Children[0].Action.Name)
	assert.Equal(t, ir.ActionGainLife, tree.Children[1].Action.Name)
	assert.Equal(t, 2, tree.Children[1].Action.Amount)
}
