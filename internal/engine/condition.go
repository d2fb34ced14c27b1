package engine

import "strings"

// ConditionEvaluator decides whether a conditional branch's condition
// holds in the current resolution context. Implementations range from
// the shipped substring heuristic to a full game-state query layer.
type ConditionEvaluator interface {
	Evaluate(condition string, ctx *Context) bool
}

// SubstringEvaluator is the default evaluator: it matches the condition
// text against a small fixed set of known phrases. This is an
// approximation kept for behavioral compatibility, not a rules-correct
// condition engine; swap in a real evaluator for anything beyond the
// known phrases.
type SubstringEvaluator struct{}

var knownTruePhrases = []string{
	"if you do",
	"if you discarded",
	"if they can't",
	"you control a nissa",
}

func (SubstringEvaluator) Evaluate(condition string, _ *Context) bool {
	condition = strings.ToLower(condition)
	for _, phrase := range knownTruePhrases {
		if strings.Contains(condition, phrase) {
			return true
		}
	}
	return false
}
