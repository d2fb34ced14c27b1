package mana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCostSimple(t *testing.T) {
	cost, err := ParseCost("{2}{R}{R}")
	require.NoError(t, err)

	assert.Equal(t, 2, cost.Generic)
	assert.Equal(t, 2, cost.Pips["R"])
	assert.Equal(t, 4, cost.Value())
	assert.Equal(t, []string{"R"}, cost.Colors())
}

func TestParseCostEmpty(t *testing.T) {
	cost, err := ParseCost("")
	require.NoError(t, err)
	assert.Equal(t, 0, cost.Value())
	assert.Empty(t, cost.Colors())
}

func TestParseCostX(t *testing.T) {
	cost, err := ParseCost("{X}{G}")
	require.NoError(t, err)

	assert.True(t, cost.X)
	assert.Equal(t, 1, cost.Value(), "X contributes zero to mana value")
}

func TestParseCostHybrid(t *testing.T) {
	cost, err := ParseCost("{W/U}{W/U}")
	require.NoError(t, err)

	assert.Equal(t, 2, cost.Hybrid)
	assert.Equal(t, 2, cost.Value())
	assert.Equal(t, []string{"W", "U"}, cost.Colors())
}

func TestParseCostColorless(t *testing.T) {
	cost, err := ParseCost("{C}{C}")
	require.NoError(t, err)
	assert.Equal(t, 2, cost.Value())
	assert.Empty(t, cost.Colors())
}

func TestParseCostUnknownSymbol(t *testing.T) {
	_, err := ParseCost("{Q}")
	assert.ErrorContains(t, err, "unknown mana symbol")
}

func TestCostString(t *testing.T) {
	cost, err := ParseCost("{X}{3}{U}{U}")
	require.NoError(t, err)
	assert.Equal(t, "{X}{3}{U}{U}", cost.String())
}
