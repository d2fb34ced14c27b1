package parser

import "strings"

// AbilityType classifies one oracle-text line by how it enters the
// game: printed statically, triggered by an event, activated for a
// cost, or replacing an event.
type AbilityType string

const (
	AbilityStatic      AbilityType = "static"
	AbilityTriggered   AbilityType = "triggered"
	AbilityActivated   AbilityType = "activated"
	AbilityReplacement AbilityType = "replacement"
)

// RuleModifier describes a static ability that rewrites a core game
// rule instead of producing a stack-based effect.
type RuleModifier struct {
	Rule      string `json:"rule"`
	Value     int    `json:"value,omitempty"`
	Cost      string `json:"cost,omitempty"`
	AppliesTo string `json:"applies_to,omitempty"`
	Target    string `json:"target,omitempty"`
}

// staticRuleModifiers maps known rule-rewriting phrases to their
// modifier descriptions.
var staticRuleModifiers = map[string]RuleModifier{
	"players can't cast more than one spell each turn": {
		Rule: "cast_limit_per_turn", Value: 1, AppliesTo: "player",
	},
	"creatures can't attack you unless their controller pays": {
		Rule: "attack_tax", Cost: "{2}", Target: "you",
	},
	"can't attack or block unless": {
		Rule: "combat_restriction",
	},
	"must attack each combat if able": {
		Rule: "must_attack",
	},
}

// AbilityLine is one classified line of oracle text.
type AbilityLine struct {
	Raw       string       `json:"raw"`
	Type      AbilityType  `json:"type"`
	Condition string       `json:"condition"`
	Layer     string       `json:"layer,omitempty"`
	Modifier  *RuleModifier `json:"modifier,omitempty"`
}

// ClassifyAbilities splits oracle text into lines and classifies each
// by ability type, continuous-effect layer and any rule modifier.
func ClassifyAbilities(oracleText string) []AbilityLine {
	flattened := strings.ReplaceAll(oracleText, "\n", " ")
	var lines []AbilityLine
	for _, raw := range strings.Split(flattened, ". ") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		lines = append(lines, classifyLine(raw))
	}
	return lines
}

func classifyLine(raw string) AbilityLine {
	lowered := strings.ToLower(raw)
	line := AbilityLine{Raw: raw, Type: AbilityStatic, Condition: "always"}

	switch {
	case strings.HasPrefix(lowered, "at the beginning") ||
		strings.HasPrefix(lowered, "whenever") ||
		strings.HasPrefix(lowered, "when "):
		line.Type = AbilityTriggered
		line.Condition = "trigger_detected"
	case strings.HasPrefix(lowered, "if"):
		line.Type = AbilityReplacement
		line.Condition = "replacement_condition"
	case strings.Contains(raw, ":"):
		line.Type = AbilityActivated
		line.Condition = "cost_paid"
	}

	line.Layer = DetermineLayer(lowered)
	line.Modifier = MatchRuleModifier(lowered)
	return line
}

// DetermineLayer assigns a continuous-effect layer to an ability line
// by substring heuristics. An empty result means the line describes no
// continuous effect. The checks run in layer order, so a line touching
// several layers is filed under the earliest one.
func DetermineLayer(text string) string {
	switch {
	case strings.Contains(text, "becomes a copy"):
		return "1"
	case strings.Contains(text, "you control") || strings.Contains(text, "gain control"):
		return "2"
	case strings.Contains(text, "becomes") &&
		(strings.Contains(text, "type") || strings.Contains(text, "creature") || strings.Contains(text, "artifact")):
		return "4"
	case strings.Contains(text, "color"):
		return "5"
	case strings.Contains(text, "gains") || strings.Contains(text, "has") || strings.Contains(text, "loses"):
		return "6"
	case strings.Contains(text, "gets +") || strings.Contains(text, "gets -") ||
		strings.Contains(text, "+1/+1") || strings.Contains(text, "-1/-1"):
		return "7c"
	}
	return ""
}

// MatchRuleModifier returns the rule modifier a line carries, or nil.
func MatchRuleModifier(text string) *RuleModifier {
	for phrase, modifier := range staticRuleModifiers {
		if strings.Contains(text, phrase) {
			m := modifier
			return &m
		}
	}
	return nil
}

// ExtractFlags pulls one-word mechanics markers out of oracle text.
// These are coarse flags for deck tooling, not parsed abilities.
func ExtractFlags(oracleText string) map[string]bool {
	lowered := strings.ToLower(oracleText)
	flags := make(map[string]bool)
	for _, word := range strings.Fields(lowered) {
		switch word {
		case "flying", "trample", "vigilance", "haste", "flash",
			"deathtouch", "lifelink", "menace", "reach":
			flags[word] = true
		}
	}
	for _, mechanic := range []string{"incubate", "proliferate", "crew", "corrupted", "mill"} {
		if strings.Contains(lowered, mechanic) {
			flags[mechanic] = true
		}
	}
	return flags
}
