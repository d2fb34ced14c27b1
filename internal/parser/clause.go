// Package parser turns tokenized oracle text into structured clause
// blocks and canonical effect trees. It contains the clause parser for
// trigger/condition segmentation, the AST compiler for modal,
// conditional, repeat and compound structure, and the phrase-registry
// effect parser that emits the canonical IR.
package parser

import (
	"strings"

	"github.com/cardforge/oracle-engine/internal/lexicon"
)

// ClauseType labels what kind of clause a block represents.
type ClauseType string

const (
	ClauseTrigger   ClauseType = "trigger"
	ClauseCondition ClauseType = "condition"
	ClauseAction    ClauseType = "action"
)

// ZoneChange records the zone transition a trigger clause describes.
// Empty From or To means the transition is open on that side
// ("enters the battlefield" matches arrivals from any zone).
type ZoneChange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// TriggerSubject is the parsed subject of a trigger event.
type TriggerSubject struct {
	Amount     string   `json:"amount,omitempty"`
	Controller string   `json:"controller,omitempty"`
	Types      []string `json:"types,omitempty"`
	Modifiers  []string `json:"modifiers,omitempty"`
}

// TriggerEvent describes the event portion of a trigger clause.
type TriggerEvent struct {
	Subject    TriggerSubject `json:"subject"`
	Action     string         `json:"action,omitempty"`
	Condition  string         `json:"condition,omitempty"`
	ZoneChange *ZoneChange    `json:"zone_change,omitempty"`
}

// TriggerNode is the structured form of a trigger clause.
type TriggerNode struct {
	Type    string       `json:"type"`
	Event   TriggerEvent `json:"event"`
	Delayed bool         `json:"delayed,omitempty"`
}

// ConditionClause is the structured form of a conditional clause.
type ConditionClause struct {
	Controller string `json:"controller,omitempty"`
	Type       string `json:"type,omitempty"`
	Subtype    string `json:"subtype,omitempty"`
	Count      string `json:"count,omitempty"`
	Raw        string `json:"raw"`
}

// CostClause is the structured form of a cost segment.
type CostClause struct {
	Raw string `json:"raw"`
}

// ClauseBlock is one parsed oracle-text line. Blocks are owned by a
// card's static metadata and immutable after creation.
type ClauseBlock struct {
	Raw         string
	Type        ClauseType
	Trigger     *TriggerNode
	Condition   *ConditionClause
	Cost        *CostClause
	ActionText  string
	SourceIndex int
}

// clause boundary markers. Commas are stripped during tokenization so
// in practice "then" is the marker that survives.
func isClauseBoundary(text string) bool {
	return text == "," || text == "then"
}

// ParseTriggerTokens parses tokens beginning at a trigger word into a
// TriggerNode, returning the index of the first unconsumed token.
// Tokens before the boundary are partitioned into subject, action and
// condition groups; once a condition word is seen, every later token
// belongs to the condition (a one-way flip).
func ParseTriggerTokens(tokens []lexicon.Token, start int) (TriggerNode, int) {
	node := TriggerNode{Type: tokens[start].Text}
	i := start + 1

	var subjectTokens, actionTokens, conditionTokens []lexicon.Token
	inCondition := false

	for i < len(tokens) {
		tok := tokens[i]
		if isClauseBoundary(tok.Text) {
			break
		}
		if tok.Type == lexicon.TokenCondition {
			inCondition = true
		}
		switch {
		case inCondition:
			conditionTokens = append(conditionTokens, tok)
		case tok.Type == lexicon.TokenAction || tok.Type == lexicon.TokenAbilityKeyword:
			actionTokens = append(actionTokens, tok)
		default:
			subjectTokens = append(subjectTokens, tok)
		}
		i++
	}

	subjectText := joinTokens(subjectTokens)
	actionText := joinTokens(actionTokens)

	node.Event = TriggerEvent{
		Subject:    parseSubject(subjectTokens),
		Action:     actionText,
		Condition:  joinTokens(conditionTokens),
		ZoneChange: deriveZoneChange(subjectText),
	}
	if strings.Contains(subjectText, "next end step") || strings.Contains(actionText, "next end step") {
		node.Delayed = true
	}
	return node, i
}

// deriveZoneChange maps well-known subject idioms to their zone
// transitions.
func deriveZoneChange(subject string) *ZoneChange {
	switch {
	case strings.Contains(subject, "dies"):
		return &ZoneChange{From: "battlefield", To: "graveyard"}
	case strings.Contains(subject, "is exiled"):
		return &ZoneChange{From: "battlefield", To: "exile"}
	case strings.Contains(subject, "enters the battlefield"):
		return &ZoneChange{To: "battlefield"}
	case strings.Contains(subject, "leaves the battlefield"):
		return &ZoneChange{From: "battlefield"}
	}
	return nil
}

var subjectTypeWords = map[string]bool{
	"creature": true, "land": true, "planeswalker": true,
	"artifact": true, "enchantment": true, "spell": true, "permanent": true,
}

func parseSubject(tokens []lexicon.Token) TriggerSubject {
	var subject TriggerSubject
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok.Text == "each" || tok.Text == "any" || tok.Text == "one" || tok.Text == "up to":
			subject.Amount = tok.Text
		case tok.Text == "a":
			subject.Amount = "1"
		case tok.Text == "you" || tok.Text == "your":
			subject.Controller = "you"
			if i+1 < len(tokens) && (tokens[i+1].Text == "control" || tokens[i+1].Text == "controls") {
				i++
			}
		case tok.Text == "opponent":
			subject.Controller = "opponent"
			if i+1 < len(tokens) && (tokens[i+1].Text == "control" || tokens[i+1].Text == "controls") {
				i++
			}
		case tok.Type == lexicon.TokenTargeting || subjectTypeWords[tok.Text]:
			subject.Types = append(subject.Types, tok.Text)
		}
	}
	return subject
}

// ParseConditionTokens parses tokens following a condition word into a
// ConditionClause, returning the index of the first unconsumed token.
func ParseConditionTokens(tokens []lexicon.Token, start int) (ConditionClause, int) {
	var collected []lexicon.Token
	i := start + 1
	for i < len(tokens) {
		tok := tokens[i]
		if isClauseBoundary(tok.Text) {
			i++
			break
		}
		collected = append(collected, tok)
		i++
	}
	return parseConditionSubject(collected), i
}

// ParseCostTokens parses tokens beginning at a cost word into a
// CostClause, returning the index of the first unconsumed token. The
// cost includes the cost verb and runs until a clause boundary, which
// is consumed, or a trigger or condition word, which is not.
func ParseCostTokens(tokens []lexicon.Token, start int) (CostClause, int) {
	collected := []lexicon.Token{tokens[start]}
	i := start + 1
	for i < len(tokens) {
		tok := tokens[i]
		if isClauseBoundary(tok.Text) {
			i++
			break
		}
		if tok.Type == lexicon.TokenTrigger || tok.Type == lexicon.TokenCondition {
			break
		}
		collected = append(collected, tok)
		i++
	}
	return CostClause{Raw: joinTokens(collected)}, i
}

func parseConditionSubject(tokens []lexicon.Token) ConditionClause {
	clause := ConditionClause{Raw: joinTokens(tokens)}
	for i, tok := range tokens {
		switch {
		case tok.Text == "you" || tok.Text == "your":
			clause.Controller = "you"
		case tok.Text == "opponent":
			clause.Controller = "opponent"
		case tok.Text == "creature" || tok.Text == "artifact" || tok.Text == "permanent" || tok.Text == "spell":
			clause.Type = tok.Text
		case tok.Text == "another" || tok.Text == "a" || tok.Text == "one" || tok.Text == "two":
			clause.Count = ">=1"
		case i > 0 && startsUpper(tok.Text):
			clause.Subtype = tok.Text
		}
	}
	return clause
}

// ParseTokenGroup converts one tokenized oracle line into a
// ClauseBlock, classifying it as trigger, condition or action.
func ParseTokenGroup(group lexicon.Group) ClauseBlock {
	block := ClauseBlock{Raw: group.Raw, Type: ClauseAction}
	tokens := group.Tokens
	i := 0

	if len(tokens) > 0 && tokens[0].Type == lexicon.TokenTrigger {
		trigger, next := ParseTriggerTokens(tokens, 0)
		block.Trigger = &trigger
		block.Type = ClauseTrigger
		i = next
	}
	if i < len(tokens) && tokens[i].Type == lexicon.TokenCondition {
		condition, next := ParseConditionTokens(tokens, i)
		block.Condition = &condition
		if block.Trigger == nil {
			block.Type = ClauseCondition
		}
		i = next
	}
	if i < len(tokens) && tokens[i].Type == lexicon.TokenCost {
		cost, next := ParseCostTokens(tokens, i)
		block.Cost = &cost
		i = next
	}
	block.ActionText = joinTokens(tokens[i:])
	return block
}

// Segment is a tagged slice of an oracle line produced by pattern
// segmentation.
type Segment struct {
	Text string
	Tag  string
}

// SegmentPatterns breaks text into TRIGGER / CONDITION / COST / ACTION
// segments using the token stream.
func SegmentPatterns(text string) []Segment {
	tokens := lexicon.Tokenize(text)
	var segments []Segment
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		switch {
		case tok.Type == lexicon.TokenTrigger:
			_, next := ParseTriggerTokens(tokens, i)
			segments = append(segments, Segment{Text: joinTokens(tokens[i:next]), Tag: "TRIGGER"})
			i = next
		case tok.Type == lexicon.TokenCondition:
			_, next := ParseConditionTokens(tokens, i)
			segments = append(segments, Segment{Text: joinTokens(tokens[i:next]), Tag: "CONDITION"})
			i = next
		case tok.Type == lexicon.TokenCost:
			j := i + 1
			for j < len(tokens) && tokens[j].Type != lexicon.TokenTrigger && tokens[j].Type != lexicon.TokenCondition {
				j++
			}
			segments = append(segments, Segment{Text: joinTokens(tokens[i:j]), Tag: "COST"})
			i = j
		default:
			j := i
			for j < len(tokens) && tokens[j].Type != lexicon.TokenTrigger && tokens[j].Type != lexicon.TokenCondition {
				j++
			}
			if segment := joinTokens(tokens[i:j]); segment != "" {
				segments = append(segments, Segment{Text: segment, Tag: "ACTION"})
			}
			i = j
		}
	}
	return segments
}

func joinTokens(tokens []lexicon.Token) string {
	if len(tokens) == 0 {
		return ""
	}
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Text
	}
	return strings.Join(parts, " ")
}

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}
