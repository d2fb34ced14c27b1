package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cardforge/oracle-engine/internal/state"
)

func battlefieldCreature(game *state.GameState, controller *state.Player, name string, power, toughness int) *state.Card {
	card := state.NewCard(name, "Creature — Bear", "")
	card.Power = power
	card.Toughness = toughness
	card.Zone = state.ZoneBattlefield
	card.Controller = controller
	controller.Battlefield = append(controller.Battlefield, card)
	return card
}

func TestRegisterEffectRejectsInvalidLayer(t *testing.T) {
	manager := NewManager(zaptest.NewLogger(t))
	err := manager.RegisterEffect(&Descriptor{Layer: "9"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid layer")

	assert.NoError(t, manager.RegisterEffect(&Descriptor{Layer: "7c"}))
	assert.NoError(t, manager.RegisterEffect(&Descriptor{Layer: "3"}))
}

func TestBareLayerSevenFilesUnderSevenD(t *testing.T) {
	manager := NewManager(zaptest.NewLogger(t))
	descriptor := &Descriptor{Layer: "7"}
	require.NoError(t, manager.RegisterEffect(descriptor))
	assert.Equal(t, Layer("7d"), descriptor.Layer)
}

// Two 7c descriptors registered at t1 (+1/+1) and t2 (-1/-1): t1 must
// apply before t2, and the net power/toughness delta is zero.
func TestSameLayerTimestampOrdering(t *testing.T) {
	log := zaptest.NewLogger(t)
	alice := state.NewPlayer("Alice")
	game := state.NewGameState(log, alice)
	bear := battlefieldCreature(game, alice, "Bear", 2, 2)

	manager := NewManager(log)

	require.NoError(t, manager.RegisterEffect(&Descriptor{
		TargetClass: TargetCreaturesControlled, Controller: alice,
		Layer: "7c", PowerBoost: 1, ToughnessBoost: 1, Timestamp: 1,
		GrantedAbilities: []string{"first-applied"},
	}))
	require.NoError(t, manager.RegisterEffect(&Descriptor{
		TargetClass: TargetCreaturesControlled, Controller: alice,
		Layer: "7c", PowerBoost: -1, ToughnessBoost: -1, Timestamp: 2,
		GrantedAbilities: []string{"second-applied"},
	}))

	manager.ApplyLayers(game)

	assert.Equal(t, 2, bear.Power)
	assert.Equal(t, 2, bear.Toughness)
	require.Len(t, bear.Abilities, 2)
	assert.Equal(t, []string{"first-applied", "second-applied"}, bear.Abilities)
}

func TestLayerOrderSixBeforeSevenC(t *testing.T) {
	log := zaptest.NewLogger(t)
	alice := state.NewPlayer("Alice")
	game := state.NewGameState(log, alice)
	bear := battlefieldCreature(game, alice, "Bear", 2, 2)

	manager := NewManager(log)
	require.NoError(t, manager.RegisterEffect(&Descriptor{
		TargetClass: TargetCreature, Layer: "7c",
		GrantedAbilities: []string{"boost-marker"}, PowerBoost: 1,
	}))
	require.NoError(t, manager.RegisterEffect(&Descriptor{
		TargetClass: TargetCreature, Layer: "6",
		GrantedAbilities: []string{"flying"},
	}))

	manager.ApplyLayers(game)
	require.Len(t, bear.Abilities, 2)
	assert.Equal(t, "flying", bear.Abilities[0], "layer 6 applies before 7c regardless of registration order")
	assert.Equal(t, 3, bear.Power)
}

func TestDescriptorMatching(t *testing.T) {
	alice := state.NewPlayer("Alice")
	bob := state.NewPlayer("Bob")

	aliceBear := state.NewCard("Bear", "Creature — Bear", "")
	aliceBear.Controller = alice
	bobBear := state.NewCard("Bear", "Creature — Bear", "")
	bobBear.Controller = bob
	land := state.NewCard("Forest", "Basic Land — Forest", "")

	mine := &Descriptor{TargetClass: TargetCreaturesControlled, Controller: alice}
	assert.True(t, mine.Matches(aliceBear))
	assert.False(t, mine.Matches(bobBear))
	assert.False(t, mine.Matches(land))

	anything := &Descriptor{TargetClass: TargetPermanent}
	assert.True(t, anything.Matches(land))
}

func TestApplyToSetsRestrictionFlags(t *testing.T) {
	bear := state.NewCard("Bear", "Creature — Bear", "")
	descriptor := &Descriptor{
		Restrictions:    []string{"cant_attack"},
		KeywordsRemoved: []string{"flying"},
	}
	bear.GrantAbility("flying")
	descriptor.ApplyTo(bear)

	assert.True(t, bear.RuleFlags["cant_attack"])
	assert.False(t, bear.HasAbility("flying"))
}

func TestRemoveBySource(t *testing.T) {
	manager := NewManager(zaptest.NewLogger(t))
	source := "anthem"
	require.NoError(t, manager.RegisterEffect(&Descriptor{Layer: "7c", Source: source}))
	require.NoError(t, manager.RegisterEffect(&Descriptor{Layer: "6", Source: source}))
	require.NoError(t, manager.RegisterEffect(&Descriptor{Layer: "6", Source: "other"}))

	assert.Equal(t, 2, manager.RemoveBySource(source))
	assert.Equal(t, 0, manager.RemoveBySource(source))
}
