package lexicon

import "strings"

// TokenType classifies a single oracle-text token.
type TokenType string

const (
	TokenTrigger            TokenType = "trigger_word"
	TokenCondition          TokenType = "condition_word"
	TokenAction             TokenType = "action_word"
	TokenCost               TokenType = "cost_word"
	TokenTargeting          TokenType = "targeting_word"
	TokenZoneReference      TokenType = "zone_reference"
	TokenTimingModifier     TokenType = "timing_modifier"
	TokenNumeric            TokenType = "numeric"
	TokenAbilityKeyword     TokenType = "ability_keyword"
	TokenArticleIndefinite  TokenType = "article_indefinite"
	TokenArticleDefinite    TokenType = "article_definite"
	TokenPronounSubject     TokenType = "pronoun_subject"
	TokenPronounPossessive  TokenType = "pronoun_possessive"
	TokenQuantifier         TokenType = "quantifier"
	TokenVerbControl        TokenType = "verb_control"
	TokenVerbState          TokenType = "verb_state"
	TokenVerbBe             TokenType = "verb_be"
	TokenModalVerb          TokenType = "modal_verb"
	TokenPreposition        TokenType = "preposition"
	TokenTemporalModifier   TokenType = "temporal_modifier"
	TokenPlayerRole         TokenType = "noun_player_role"
	TokenResourceTerm       TokenType = "resource_term"
	TokenObjectTerm         TokenType = "object_term"
	TokenEffectTerm         TokenType = "effect_term"
	TokenUnknown            TokenType = "unknown"
)

// Token is a single classified word or phrase. Tokenization is pure:
// identical input text always yields an identical token sequence.
type Token struct {
	Text string
	Type TokenType
}

// Group bundles the tokens of one oracle-text line with its raw form.
type Group struct {
	Raw    string
	Tokens []Token
}

// maxPhraseWords is the widest maximal-munch window attempted before
// falling back to single-word classification.
const maxPhraseWords = 5

// singleWordClasses is the ordered single-word classification table.
// Order is significant: a word in several vocabularies takes the first
// matching class ("choose" is a targeting word before a modal verb,
// "during" a condition word before a temporal modifier, "sacrifice" a
// cost word before an action word).
var singleWordClasses = []struct {
	vocab set
	typ   TokenType
}{
	{triggerWords, TokenTrigger},
	{conditionWords, TokenCondition},
	{costWords, TokenCost},
	{actionWords, TokenAction},
	{targetingWords, TokenTargeting},
	{zoneWords, TokenZoneReference},
	{timingWords, TokenTimingModifier},
	{abilityKeywords, TokenAbilityKeyword},
	{articlesIndefinite, TokenArticleIndefinite},
	{articlesDefinite, TokenArticleDefinite},
	{pronounsSubject, TokenPronounSubject},
	{pronounsPossessive, TokenPronounPossessive},
	{quantifiers, TokenQuantifier},
	{verbsControl, TokenVerbControl},
	{verbsState, TokenVerbState},
	{verbsBe, TokenVerbBe},
	{modalVerbs, TokenModalVerb},
	{prepositions, TokenPreposition},
	{temporalModifiers, TokenTemporalModifier},
	{nounPlayerRoles, TokenPlayerRole},
	{resourceTerms, TokenResourceTerm},
	{objectTerms, TokenObjectTerm},
	{effectTerms, TokenEffectTerm},
}

// Tokenize splits oracle text into classified tokens. Every input
// produces a token sequence; words outside all vocabularies become
// unknown tokens. Multi-word trigger and timing phrases are matched
// greedily (windows of 5 down to 2 words) before single-word
// classification, so a recognized phrase is never re-tokenized as its
// component words.
func Tokenize(text string) []Token {
	words := strings.Fields(stripPunctuation(strings.ToLower(text)))

	tokens := make([]Token, 0, len(words))
	i := 0
scan:
	for i < len(words) {
		for k := maxPhraseWords; k >= 2; k-- {
			if i+k > len(words) {
				continue
			}
			phrase := strings.Join(words[i:i+k], " ")
			if triggerWords.has(phrase) {
				tokens = append(tokens, Token{Text: phrase, Type: TokenTrigger})
				i += k
				continue scan
			}
			if timingWords.has(phrase) {
				tokens = append(tokens, Token{Text: phrase, Type: TokenTimingModifier})
				i += k
				continue scan
			}
		}
		tokens = append(tokens, classifyWord(words[i]))
		i++
	}
	return tokens
}

// TokenizeClause tokenizes a single oracle-text line, keeping the raw
// form alongside the tokens for later clause-block construction.
func TokenizeClause(line string) Group {
	return Group{Raw: line, Tokens: Tokenize(line)}
}

func classifyWord(word string) Token {
	for _, class := range singleWordClasses {
		if class.vocab.has(word) {
			return Token{Text: word, Type: class.typ}
		}
	}
	if isDigits(word) {
		return Token{Text: word, Type: TokenNumeric}
	}
	return Token{Text: word, Type: TokenUnknown}
}

func isDigits(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var punctuationReplacer = strings.NewReplacer(
	",", "", ".", "", ";", "", ":", "", "!", "", "?", "",
)

func stripPunctuation(text string) string {
	return punctuationReplacer.Replace(text)
}
