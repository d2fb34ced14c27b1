// Package lexicon holds the closed vocabularies shared by the oracle
// text tokenizer and the clause parsers, and the tokenizer itself.
// It is the single source of truth for rules-text keywords so that all
// parsing components agree on the same word lists.
package lexicon

// set is a convenience for membership lookups over a word list.
type set map[string]struct{}

func newSet(words ...string) set {
	s := make(set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s set) has(w string) bool {
	_, ok := s[w]
	return ok
}

// Words that typically start triggered abilities.
var triggerWords = newSet(
	"when", "whenever", "at the beginning of", "at end of combat",
	"at the start of your upkeep", "at the end of your turn", "at your end step",
)

// Words that introduce conditional clauses.
var conditionWords = newSet(
	"if", "unless", "as long as", "until", "during", "instead",
	"after", "before", "whilst",
)

// Common action verbs found in oracle text.
var actionWords = newSet(
	"draw", "discard", "destroy", "exile", "tap", "untap", "create",
	"gain", "lose", "search", "reveal", "return", "counter", "sacrifice",
	"sacrifices", "pay", "cast", "attack", "block", "equip", "enchant",
	"flip", "mill", "venture", "explore", "investigate", "amass",
	"fight", "adapt", "proliferate", "scry", "connive",
)

// Targeting indicators and common object descriptors.
var targetingWords = newSet(
	"target", "choose", "each", "any", "up to", "each opponent",
	"each player", "each creature", "opponent", "player",
	"planeswalker", "artifact", "enchantment", "creature", "land",
	"spell", "permanent", "nonland", "nontoken", "noncreature",
	"nonartifact",
)

// Zones referenced within card text.
var zoneWords = newSet(
	"battlefield", "graveyard", "exile", "library", "hand",
	"stack", "command zone",
)

// Timing restrictions or clauses.
var timingWords = newSet(
	"only as a sorcery", "instant speed", "during your upkeep",
	"during combat", "end of turn", "before damage",
	"after blockers are declared", "at any time",
)

// StaticKeywords lists the evergreen ability keywords the engine
// recognizes. Exported because the card repository scans oracle text
// for them when extracting static abilities.
var StaticKeywords = []string{
	"flying", "first strike", "double strike", "deathtouch", "lifelink",
	"vigilance", "trample", "hexproof", "menace", "ward", "indestructible",
	"protection", "haste", "reach",
}

var abilityKeywords = newSet(StaticKeywords...)

// Cost-related verbs.
var costWords = newSet("sacrifice", "discard", "pay")

var (
	articlesIndefinite = newSet("a", "an")
	articlesDefinite   = newSet("the")
	pronounsSubject    = newSet("you", "they")
	pronounsPossessive = newSet("your", "their")
	quantifiers        = newSet(
		"each", "any", "one", "all", "up to", "two", "three", "four",
		"five", "six", "seven", "eight", "nine", "ten", "x",
		"any number", "at least", "no more than",
	)
	verbsControl      = newSet("control", "controls")
	verbsState        = newSet("has", "have")
	verbsBe           = newSet("is", "are", "was", "were")
	modalVerbs        = newSet("choose", "may", "must", "can", "shall", "could")
	prepositions      = newSet("of", "with", "without")
	temporalModifiers = newSet("during", "before", "after")
	nounPlayerRoles   = newSet("opponent", "player")
	resourceTerms     = newSet("life", "mana", "damage", "counter", "token")
	objectTerms       = newSet("card", "spell", "permanent", "player", "ability", "emblem")
	effectTerms       = newSet("gain", "lose", "prevent", "add", "remove", "create", "destroy")
)

// Numerals maps spelled-out quantities to their values. "a"/"an" count
// as one ("draw a card").
var Numerals = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}
