package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cardforge/oracle-engine/internal/ir"
)

type fakePlayer struct {
	name  string
	life  int
	drawn int
}

func (p *fakePlayer) DisplayName() string { return p.name }
func (p *fakePlayer) DrawCards(n int) int { p.drawn += n; return n }
func (p *fakePlayer) GainLife(n int)      { p.life += n }
func (p *fakePlayer) LoseLife(n int)      { p.life -= n }

type fakeCreature struct {
	name   string
	damage int
}

func (c *fakeCreature) DisplayName() string { return c.name }
func (c *fakeCreature) MarkDamage(n int)    { c.damage += n }

type fakeWalker struct {
	name    string
	loyalty int
}

func (w *fakeWalker) DisplayName() string { return w.name }
func (w *fakeWalker) LoseLoyalty(n int)   { w.loyalty -= n }

type fakeGame struct {
	players []Player
	moves   []string
}

func (g *fakeGame) PlayerList() []Player { return g.players }
func (g *fakeGame) MoveCard(card Permanent, _ Player, zone string) (string, error) {
	g.moves = append(g.moves, card.DisplayName()+"->"+zone)
	return card.DisplayName() + " moved to " + zone, nil
}

func newTestEngine(t *testing.T) *Engine {
	return New(zaptest.NewLogger(t), nil)
}

func TestExecuteChainInOrder(t *testing.T) {
	player := &fakePlayer{name: "Alice", life: 20}
	ctx := NewContext(nil, player, nil)

	tree := ir.Chain(
		ir.Leaf(&ir.Action{Name: ir.ActionDrawCard, Amount: 2, AmountSet: true}),
		ir.Leaf(&ir.Action{Name: ir.ActionGainLife, Amount: 3, AmountSet: true}),
	)
	result := newTestEngine(t).Execute(tree, ctx)

	assert.Equal(t, 2, player.drawn)
	assert.Equal(t, 23, player.life)
	assert.Contains(t, result, "Alice draws 2 card(s).")
	assert.Contains(t, result, "Alice gains 3 life.")
}

func TestExecuteNilTreeIsNoop(t *testing.T) {
	assert.Equal(t, "", newTestEngine(t).Execute(nil, NewContext(nil, nil, nil)))
}

func TestExecuteDefaultAmountIsOne(t *testing.T) {
	player := &fakePlayer{name: "Alice"}
	ctx := NewContext(nil, player, nil)
	newTestEngine(t).Execute(ir.Leaf(&ir.Action{Name: ir.ActionDrawCard}), ctx)
	assert.Equal(t, 1, player.drawn)
}

func TestDealDamageCapabilityDispatch(t *testing.T) {
	player := &fakePlayer{name: "Bob", life: 20}
	creature := &fakeCreature{name: "Bear"}
	walker := &fakeWalker{name: "Jace", loyalty: 4}

	ctx := NewContext(nil, player, nil)
	ctx.Targets = []any{player, creature, walker}

	newTestEngine(t).Execute(ir.Leaf(&ir.Action{
		Name: ir.ActionDealDamage, Amount: 3, AmountSet: true,
	}), ctx)

	assert.Equal(t, 17, player.life, "life-total targets lose life")
	assert.Equal(t, 3, creature.damage, "damageable targets mark damage")
	assert.Equal(t, 1, walker.loyalty, "loyalty targets lose loyalty")
}

func TestDestroyTargetMovesToGraveyard(t *testing.T) {
	player := &fakePlayer{name: "Alice"}
	creature := &fakeCreature{name: "Bear"}
	game := &fakeGame{players: []Player{player}}

	ctx := NewContext(nil, player, game)
	ctx.Targets = []any{creature}

	result := newTestEngine(t).Execute(ir.Leaf(&ir.Action{Name: ir.ActionDestroyTarget}), ctx)

	require.Len(t, game.moves, 1)
	assert.Equal(t, "Bear->graveyard", game.moves[0])
	assert.Contains(t, result, "Destroying target: Bear")
}

func TestConditionalSubstringEvaluator(t *testing.T) {
	player := &fakePlayer{name: "Alice"}
	ctx := NewContext(nil, player, nil)

	tree := ir.Conditional("if you do",
		ir.Leaf(&ir.Action{Name: ir.ActionGainLife, Amount: 2, AmountSet: true}),
		ir.Leaf(&ir.Action{Name: ir.ActionLoseLife, Amount: 2, AmountSet: true}),
	)
	newTestEngine(t).Execute(tree, ctx)
	assert.Equal(t, 2, player.life)

	tree = ir.Conditional("if the moon is full",
		ir.Leaf(&ir.Action{Name: ir.ActionGainLife, Amount: 2, AmountSet: true}),
		ir.Leaf(&ir.Action{Name: ir.ActionLoseLife, Amount: 2, AmountSet: true}),
	)
	newTestEngine(t).Execute(tree, ctx)
	assert.Equal(t, 0, player.life, "unknown conditions take the else branch")
}

func TestModalChoiceSelection(t *testing.T) {
	player := &fakePlayer{name: "Alice"}
	tree := ir.Modal(1,
		ir.Leaf(&ir.Action{Name: ir.ActionDrawCard}),
		ir.Leaf(&ir.Action{Name: ir.ActionGainLife, Amount: 4, AmountSet: true}),
	)

	ctx := NewContext(nil, player, nil)
	ctx.Flags["modal_choice"] = 1
	newTestEngine(t).Execute(tree, ctx)
	assert.Equal(t, 4, player.life)
	assert.Equal(t, 0, player.drawn)

	ctx = NewContext(nil, player, nil)
	ctx.Flags["modal_choice"] = 7
	result := newTestEngine(t).Execute(tree, ctx)
	assert.Equal(t, "", result, "out-of-range choice is a no-op")
}

func TestRepeatOncePerPlayer(t *testing.T) {
	alice := &fakePlayer{name: "Alice"}
	bob := &fakePlayer{name: "Bob"}
	game := &fakeGame{players: []Player{alice, bob}}

	ctx := NewContext(nil, alice, game)
	tree := ir.Repeat(ir.Leaf(&ir.Action{Name: ir.ActionDrawCard}))
	newTestEngine(t).Execute(tree, ctx)

	assert.Equal(t, 2, alice.drawn, "inner chain runs once per player, against the controller")
}

func TestRepeatWithoutGameStateUsesController(t *testing.T) {
	alice := &fakePlayer{name: "Alice"}
	ctx := NewContext(nil, alice, nil)
	newTestEngine(t).Execute(ir.Repeat(ir.Leaf(&ir.Action{Name: ir.ActionDrawCard})), ctx)
	assert.Equal(t, 1, alice.drawn)
}

func TestUnknownActionLogsAndContinues(t *testing.T) {
	player := &fakePlayer{name: "Alice"}
	ctx := NewContext(nil, player, nil)

	tree := ir.Chain(
		ir.Leaf(&ir.Action{Name: ir.ActionUnparsed, RawText: "do the impossible"}),
		ir.Leaf(&ir.Action{Name: ir.ActionDrawCard}),
	)

	var result string
	require.NotPanics(t, func() {
		result = newTestEngine(t).Execute(tree, ctx)
	})
	assert.Contains(t, result, "[UNKNOWN EFFECT]")
	assert.Contains(t, result, "do the impossible")
	assert.Equal(t, 1, player.drawn, "execution continues past the diagnostic")
}

// Reference tags bind within a single Execute call and never leak into
// the next resolution.
func TestReferenceScopeIsOneResolution(t *testing.T) {
	player := &fakePlayer{name: "Alice"}
	eng := newTestEngine(t)

	tree := ir.Chain(
		ir.Leaf(&ir.Action{
			Name:    ir.ActionCreateToken,
			Token:   &ir.TokenSpec{Power: 1, Toughness: 1},
			StoreAs: "those_tokens",
		}),
		ir.Leaf(&ir.Action{
			Name:         ir.ActionGrantKeyword,
			Keyword:      "haste",
			ReferenceTag: "those_tokens",
		}),
	)

	ctx := NewContext(nil, player, nil)
	eng.Execute(tree, ctx)
	assert.NotNil(t, ctx.Refs.Resolve("those_tokens"))

	fresh := NewContext(nil, player, nil)
	assert.Nil(t, fresh.Refs.Resolve("those_tokens"))
}

func TestTapAndUntapTargets(t *testing.T) {
	perm := &fakePermanent{name: "Mox"}
	ctx := NewContext(nil, &fakePlayer{name: "Alice"}, nil)
	ctx.Targets = []any{perm}

	eng := newTestEngine(t)
	eng.Execute(ir.Leaf(&ir.Action{Name: ir.ActionTapTarget}), ctx)
	assert.True(t, perm.tapped)

	eng.Execute(ir.Leaf(&ir.Action{Name: ir.ActionUntapTarget}), ctx)
	assert.False(t, perm.tapped)
}

type fakePermanent struct {
	name   string
	tapped bool
}

func (p *fakePermanent) DisplayName() string { return p.name }
func (p *fakePermanent) Tap()                { p.tapped = true }
func (p *fakePermanent) Untap()              { p.tapped = false }

func TestSetStateFlag(t *testing.T) {
	ctx := NewContext(nil, &fakePlayer{name: "Alice"}, nil)
	newTestEngine(t).Execute(ir.Leaf(&ir.Action{
		Name:  ir.ActionSetStateFlag,
		Extra: map[string]string{"flag": "solved"},
	}), ctx)
	assert.Equal(t, true, ctx.Flags["solved"])
}
