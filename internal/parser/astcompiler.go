package parser

import (
	"regexp"
	"strings"
)

// AstNodeType labels the structural kind of a compiled segment.
type AstNodeType string

const (
	AstEffect      AstNodeType = "effect"
	AstModal       AstNodeType = "modal"
	AstConditional AstNodeType = "conditional"
	AstRepeat      AstNodeType = "repeat"
)

// AstNode is a structural node produced by Compile. Effect leaves carry
// raw clause text; the phrase registry turns them into actions later.
type AstNode struct {
	Type      AstNodeType `json:"type"`
	Content   string      `json:"content,omitempty"`
	Options   []AstNode   `json:"options,omitempty"`
	Condition string      `json:"condition,omitempty"`
	Then      []AstNode   `json:"then,omitempty"`
	Else      []AstNode   `json:"else,omitempty"`
	Children  []AstNode   `json:"children,omitempty"`
}

var sentenceSplitter = regexp.MustCompile(`\. |; |\n`)

// Compile breaks oracle text into a nested AST. The grammar is a small
// recursive descent over semi-structured text: every recursive call
// operates on a strictly smaller substring, so compilation always
// terminates. Unrecognized segments become plain effect leaves rather
// than errors.
func Compile(text string) []AstNode {
	// A modal header owns the whole text: its options are separated by
	// semicolons, which would otherwise be eaten by clause splitting.
	whole := strings.TrimSpace(strings.ToLower(strings.ReplaceAll(text, "—", "-")))
	if strings.HasPrefix(whole, "choose one -") {
		return []AstNode{{Type: AstModal, Options: parseModalOptions(whole)}}
	}

	var ast []AstNode
	for _, segment := range splitClauses(text) {
		normalized := strings.TrimSpace(strings.ToLower(segment))
		if normalized == "" {
			continue
		}

		switch {
		case strings.HasPrefix(normalized, "choose one -"):
			ast = append(ast, AstNode{
				Type:    AstModal,
				Options: parseModalOptions(normalized),
			})

		case strings.Contains(normalized, "if") && strings.Contains(normalized, "then"):
			conditionPart, consequencePart, _ := strings.Cut(normalized, "then")
			condition := strings.TrimSpace(strings.ReplaceAll(conditionPart, "if", ""))
			node := AstNode{Type: AstConditional, Condition: condition}
			if thenPart, elsePart, found := strings.Cut(consequencePart, "otherwise"); found {
				node.Then = Compile(strings.TrimSpace(thenPart))
				node.Else = Compile(strings.TrimSpace(elsePart))
			} else {
				node.Then = Compile(strings.TrimSpace(consequencePart))
			}
			ast = append(ast, node)

		case strings.Contains(normalized, "repeat this process") || strings.Contains(normalized, "for each"):
			cleaned := cleanRepeatText(normalized)
			if cleaned == normalized {
				// The repeated effect could not be isolated; degrade to
				// a plain leaf instead of recursing on the same text.
				ast = append(ast, wrapEffect(normalized))
				break
			}
			ast = append(ast, AstNode{
				Type:     AstRepeat,
				Content:  normalized,
				Children: Compile(cleaned),
			})

		// Compound effects joined by "and", except the library-search
		// idiom ("search your library for a card and put it...") which
		// reads as one effect.
		case strings.Contains(normalized, " and ") && !strings.HasPrefix(normalized, "search your library"):
			for _, part := range strings.Split(normalized, " and ") {
				ast = append(ast, wrapEffect(strings.TrimSpace(part)))
			}

		default:
			ast = append(ast, wrapEffect(normalized))
		}
	}
	return ast
}

// splitClauses naively splits on periods, semicolons and line breaks.
// Em dashes are normalized first so modal headers compare uniformly.
func splitClauses(text string) []string {
	text = strings.ReplaceAll(text, "—", "-")
	return sentenceSplitter.Split(text, -1)
}

func parseModalOptions(text string) []AstNode {
	text = strings.TrimSpace(strings.Replace(text, "choose one -", "", 1))
	var options []AstNode
	for _, opt := range strings.Split(text, ";") {
		if opt = strings.TrimSpace(opt); opt != "" {
			options = append(options, wrapEffect(opt))
		}
	}
	return options
}

func wrapEffect(text string) AstNode {
	return AstNode{Type: AstEffect, Content: text}
}

// cleanRepeatText isolates the effect to repeat. "repeat this process"
// keeps everything before the marker; "for each <subject>, <effect>"
// keeps the effect after the subject; a trailing "for each" qualifier
// ("draw a card for each creature you control") keeps everything
// before it. The result is always strictly shorter than the input.
func cleanRepeatText(text string) string {
	if before, _, found := strings.Cut(text, "repeat this process"); found {
		return strings.TrimSpace(before)
	}
	if after, ok := strings.CutPrefix(text, "for each"); ok {
		if _, rest, found := strings.Cut(after, ", "); found {
			return strings.TrimSpace(rest)
		}
		return ""
	}
	if before, _, found := strings.Cut(text, "for each"); found {
		return strings.TrimSuffix(strings.TrimSpace(before), ",")
	}
	return text
}
