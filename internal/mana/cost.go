// Package mana parses mana cost strings like "{2}{R}{R}" and "{X}{G}".
package mana

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Color symbols in canonical WUBRG order.
var colorOrder = []string{"W", "U", "B", "R", "G"}

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Cost is a parsed mana cost. Hybrid symbols count once toward the
// mana value and contribute every color they name to the identity.
type Cost struct {
	Generic   int
	Colorless int
	Pips      map[string]int
	Hybrid    int
	X         bool

	hybridColors map[string]bool
}

// ParseCost parses a cost string of brace-wrapped symbols. An empty
// string is a valid zero cost.
func ParseCost(costStr string) (*Cost, error) {
	cost := &Cost{Pips: make(map[string]int), hybridColors: make(map[string]bool)}
	if costStr == "" {
		return cost, nil
	}

	for _, match := range symbolPattern.FindAllStringSubmatch(costStr, -1) {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))
		switch {
		case symbol == "X":
			cost.X = true
		case symbol == "C":
			cost.Colorless++
		case isColor(symbol):
			cost.Pips[symbol]++
		case strings.Contains(symbol, "/"):
			cost.Hybrid++
			for _, half := range strings.Split(symbol, "/") {
				if isColor(half) {
					cost.hybridColors[half] = true
				}
			}
		default:
			num, err := strconv.Atoi(symbol)
			if err != nil {
				return nil, fmt.Errorf("unknown mana symbol {%s}", symbol)
			}
			cost.Generic += num
		}
	}
	return cost, nil
}

func isColor(symbol string) bool {
	for _, c := range colorOrder {
		if symbol == c {
			return true
		}
	}
	return false
}

// Value is the mana value of the cost. X counts as zero; each hybrid
// symbol counts once regardless of its halves.
func (c *Cost) Value() int {
	value := c.Generic + c.Colorless + c.Hybrid
	for _, count := range c.Pips {
		value += count
	}
	return value
}

// Colors returns the cost's color identity in WUBRG order.
func (c *Cost) Colors() []string {
	var colors []string
	for _, color := range colorOrder {
		if c.Pips[color] > 0 || c.hybridColors[color] {
			colors = append(colors, color)
		}
	}
	return colors
}

// String renders the cost back into symbol notation. Hybrid symbols
// are not round-tripped; callers keep the original string for display.
func (c *Cost) String() string {
	var b strings.Builder
	if c.X {
		b.WriteString("{X}")
	}
	if c.Generic > 0 {
		fmt.Fprintf(&b, "{%d}", c.Generic)
	}
	for i := 0; i < c.Colorless; i++ {
		b.WriteString("{C}")
	}
	for _, color := range colorOrder {
		for i := 0; i < c.Pips[color]; i++ {
			b.WriteString("{" + color + "}")
		}
	}
	return b.String()
}
