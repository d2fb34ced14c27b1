package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cardforge/oracle-engine/internal/ir"
	"github.com/cardforge/oracle-engine/internal/lexicon"
)

var cardColors = []string{"white", "blue", "black", "red", "green"}

// registryEntry pairs trigger phrases with a builder. The builder may
// return nil to signal that, on closer inspection, the text did not fit
// the entry after all; the caller then falls back to the diagnostic
// unparsed leaf.
type registryEntry struct {
	name    string
	phrases []string
	build   func(text string) *ir.Node
}

// effectRegistry is the ordered phrase registry. Matching is
// first-match-wins over the entry order, not longest-match, so entry
// order is significant: specific idioms come before the generic
// keyword entry at the end.
var effectRegistry = []registryEntry{
	{
		name:    "draw_card",
		phrases: []string{"draw a card", "draw two cards", "draw three cards", "draws a card"},
		build:   amountBuilder(ir.ActionDrawCard),
	},
	{
		name:    "gain_life",
		phrases: []string{"gain life", "you gain", "gains life"},
		build:   amountBuilder(ir.ActionGainLife),
	},
	{
		name:    "lose_life",
		phrases: []string{"lose life", "you lose", "loses life"},
		build:   amountBuilder(ir.ActionLoseLife),
	},
	{
		name:    "deal_damage",
		phrases: []string{"deal damage", "deals 2 damage", "deals damage", "damage to"},
		build:   amountBuilder(ir.ActionDealDamage),
	},
	{
		name:    "destroy_target",
		phrases: []string{"destroy target", "destroy all"},
		build:   plainBuilder(ir.ActionDestroyTarget),
	},
	{
		name:    "exile_target",
		phrases: []string{"exile target", "exile up to one target"},
		build:   plainBuilder(ir.ActionExileTarget),
	},
	{
		name:    "tap_target",
		phrases: []string{"tap target creature", "tap target permanent"},
		build:   plainBuilder(ir.ActionTapTarget),
	},
	{
		name:    "untap_target",
		phrases: []string{"untap target creature", "untap target permanent"},
		build:   plainBuilder(ir.ActionUntapTarget),
	},
	// Ordered before return_to_hand: reanimation and blink wordings
	// also contain "return that creature" / "return target creature".
	{
		name: "return_to_battlefield",
		phrases: []string{
			"from your graveyard to the battlefield",
			"from their graveyard to the battlefield",
			"return it to the battlefield",
		},
		build: buildReturnToBattlefield,
	},
	{
		name: "return_to_hand",
		phrases: []string{
			"return target creature to its owner's hand",
			"return target permanent to its owner's hand",
			"return that creature", "return that spell",
		},
		build: buildReturnToHand,
	},
	{
		name: "counter_spell",
		phrases: []string{
			"counter target spell", "counter target activated ability",
			"counter target triggered ability",
		},
		build: plainBuilder(ir.ActionCounterSpell),
	},
	{
		name: "create_token",
		phrases: []string{
			"create a token", "create a 1/1 white vampire",
			"create a 1/1 white soldier creature token",
			"create a 3/3 green beast creature token",
			"create a clue token",
		},
		build: buildCreateToken,
	},
	{
		name:    "offspring",
		phrases: []string{"offspring", "create an offspring token"},
		build:   buildCreateToken,
	},
	{
		name:    "solve_case",
		phrases: []string{"solve the case", "solved"},
		build:   buildSolveCase,
	},
	{
		name: "buff_all_creatures",
		phrases: []string{
			"creatures you control get +1/+1",
			"other creatures you control get +1/+1",
		},
		build: buildPTModifier,
	},
	{
		name:    "combat_restrictions",
		phrases: []string{"can't attack", "must attack each combat if able"},
		build:   buildCombatRestriction,
	},
	{
		name:    "grant_haste_tokens",
		phrases: []string{"those tokens gain haste", "they gain haste"},
		build:   buildGrantHasteTokens,
	},
	{
		name:    "grant_keyword",
		phrases: lexicon.StaticKeywords,
		build:   buildKeywordAbility,
	},
}

// ParseEffect matches clause text against the registry and returns the
// canonical leaf (or small subtree) for the first entry whose phrase
// appears in the text. No match never raises: it yields an
// unparsed_effect diagnostic leaf carrying the text verbatim, so one
// unrecognized clause never blocks the rest of a card.
func ParseEffect(text string) *ir.Node {
	lowered := strings.ToLower(text)
	for _, entry := range effectRegistry {
		for _, phrase := range entry.phrases {
			if strings.Contains(lowered, phrase) {
				if node := entry.build(lowered); node != nil {
					return node
				}
				return unparsedLeaf(lowered)
			}
		}
	}
	return unparsedLeaf(lowered)
}

// ParseAST mirrors the compiled AST into the canonical effect tree.
func ParseAST(nodes []AstNode) *ir.Node {
	children := make([]*ir.Node, 0, len(nodes))
	for _, node := range nodes {
		if child := parseAstNode(node); child != nil {
			children = append(children, child)
		}
	}
	if len(children) == 1 {
		return children[0]
	}
	return ir.Chain(children...)
}

// CompileText is the front door for card ingestion: raw oracle text in,
// canonical effect tree out.
func CompileText(text string) *ir.Node {
	return ParseAST(Compile(text))
}

func parseAstNode(node AstNode) *ir.Node {
	switch node.Type {
	case AstModal:
		choices := make([]*ir.Node, 0, len(node.Options))
		for _, opt := range node.Options {
			choices = append(choices, parseAstNode(opt))
		}
		return ir.Modal(1, choices...)
	case AstConditional:
		var elseNode *ir.Node
		if node.Else != nil {
			elseNode = ParseAST(node.Else)
		}
		return ir.Conditional(node.Condition, ParseAST(node.Then), elseNode)
	case AstRepeat:
		inner := ParseAST(node.Children)
		return ir.Repeat(inner)
	case AstEffect:
		return ParseEffect(node.Content)
	}
	return unparsedLeaf(node.Content)
}

func unparsedLeaf(text string) *ir.Node {
	return ir.Leaf(&ir.Action{Name: ir.ActionUnparsed, RawText: text})
}

// extractAmount scans clause text for an explicit quantity: a bare
// digit sequence, a spelled-out numeral, or "x". "X" amounts are
// flagged variable rather than guessed at.
func extractAmount(text string) (amount int, set bool, variable bool) {
	for _, word := range strings.Fields(text) {
		if word == "x" {
			return 0, false, true
		}
		if n, err := strconv.Atoi(word); err == nil {
			return n, true, false
		}
		if n, ok := lexicon.Numerals[word]; ok && word != "a" && word != "an" {
			return n, true, false
		}
	}
	return 0, false, false
}

func amountBuilder(name ir.ActionName) func(string) *ir.Node {
	return func(text string) *ir.Node {
		amount, set, variable := extractAmount(text)
		return ir.Leaf(&ir.Action{
			Name:           name,
			Amount:         amount,
			AmountSet:      set,
			AmountVariable: variable,
			RawText:        text,
		})
	}
}

func plainBuilder(name ir.ActionName) func(string) *ir.Node {
	return func(text string) *ir.Node {
		return ir.Leaf(&ir.Action{Name: name, RawText: text})
	}
}

func buildReturnToBattlefield(text string) *ir.Node {
	return ir.Leaf(&ir.Action{
		Name:    ir.ActionReturnToBattlefield,
		RawText: text,
		Extra:   map[string]string{"timing": "beginning_of_next_end_step"},
	})
}

func buildReturnToHand(text string) *ir.Node {
	action := &ir.Action{Name: ir.ActionReturnToHand, RawText: text}
	switch {
	case strings.Contains(text, "that creature"):
		action.ReferenceTag = "that_creature"
	case strings.Contains(text, "that spell"):
		action.ReferenceTag = "that_spell"
	}
	return ir.Leaf(action)
}

var ptPattern = regexp.MustCompile(`(\d+)/(\d+)`)

func buildCreateToken(text string) *ir.Node {
	token := &ir.TokenSpec{}
	if m := ptPattern.FindStringSubmatch(text); m != nil {
		token.Power, _ = strconv.Atoi(m[1])
		token.Toughness, _ = strconv.Atoi(m[2])
	}
	for _, color := range cardColors {
		if strings.Contains(text, color) {
			token.Colors = append(token.Colors, color)
		}
	}
	for _, ability := range lexicon.StaticKeywords {
		if strings.Contains(text, ability) {
			token.Abilities = append(token.Abilities, ability)
		}
	}
	if strings.Contains(text, "offspring") {
		token.CopyOf = "source"
		token.Power = 1
		token.Toughness = 1
	}
	action := &ir.Action{Name: ir.ActionCreateToken, Token: token, RawText: text}
	if strings.Contains(text, "those tokens") {
		action.StoreAs = "those_tokens"
	}
	return ir.Leaf(action)
}

func buildSolveCase(text string) *ir.Node {
	return ir.Leaf(&ir.Action{
		Name:    ir.ActionSetStateFlag,
		Extra:   map[string]string{"flag": "solved"},
		RawText: text,
	})
}

func buildPTModifier(text string) *ir.Node {
	switch {
	case strings.Contains(text, "+1/+1"):
		return ir.Leaf(&ir.Action{
			Name: ir.ActionStaticEffect, Layer: "7c",
			PowerBoost: 1, ToughnessBoost: 1, RawText: text,
		})
	case strings.Contains(text, "-1/-1"):
		return ir.Leaf(&ir.Action{
			Name: ir.ActionStaticEffect, Layer: "7c",
			PowerBoost: -1, ToughnessBoost: -1, RawText: text,
		})
	}
	return nil
}

func buildCombatRestriction(text string) *ir.Node {
	switch {
	case strings.Contains(text, "can't attack"):
		return ir.Leaf(&ir.Action{
			Name: ir.ActionStaticEffect, Layer: "6",
			Restriction: "cant_attack", RawText: text,
		})
	case strings.Contains(text, "must attack each combat if able"):
		return ir.Leaf(&ir.Action{
			Name: ir.ActionStaticEffect, Layer: "6",
			Restriction: "must_attack", RawText: text,
		})
	}
	return nil
}

func buildGrantHasteTokens(text string) *ir.Node {
	action := &ir.Action{Name: ir.ActionGrantKeyword, Keyword: "haste", RawText: text}
	if strings.Contains(text, "those tokens") {
		action.ReferenceTag = "those_tokens"
	}
	return ir.Leaf(action)
}

// buildKeywordAbility handles bare keyword lines like "flying" or
// "flying, vigilance". Lines that grant keywords dynamically ("gains
// flying until end of turn") are someone else's problem and fall back
// to the diagnostic leaf.
func buildKeywordAbility(text string) *ir.Node {
	for _, reject := range []string{"gains", "target", "equipped", "until end of turn"} {
		if strings.Contains(text, reject) {
			return nil
		}
	}
	var leaves []*ir.Node
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		for _, keyword := range lexicon.StaticKeywords {
			if strings.Contains(part, keyword) {
				leaves = append(leaves, ir.Leaf(&ir.Action{
					Name:    ir.ActionStaticEffect,
					Keyword: keyword,
					RawText: part,
				}))
				break
			}
		}
	}
	if len(leaves) == 0 {
		return nil
	}
	if len(leaves) == 1 {
		return leaves[0]
	}
	return ir.Chain(leaves...)
}
