// Package cards provides card metadata: raw card records, their parsed
// form (clause blocks, behavior tree, static keywords), the storage
// backends they persist in, and the repository that front-ends cache,
// store and remote catalog.
package cards

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/cardforge/oracle-engine/internal/ir"
	"github.com/cardforge/oracle-engine/internal/lexicon"
	"github.com/cardforge/oracle-engine/internal/mana"
	"github.com/cardforge/oracle-engine/internal/parser"
)

// RawCard is an unparsed card record as stored and fetched. Power,
// toughness and loyalty stay strings: printed values include "*" and
// "X".
type RawCard struct {
	Name       string `json:"name"`
	TypeLine   string `json:"type_line"`
	OracleText string `json:"oracle_text"`
	ManaCost   string `json:"mana_cost"`
	Power      string `json:"power,omitempty"`
	Toughness  string `json:"toughness,omitempty"`
	Loyalty    string `json:"loyalty,omitempty"`
}

// CardMetadata is the parsed form the engine consumes.
type CardMetadata struct {
	Name       string
	TypeLine   string
	OracleText string
	ManaCost   string

	Supertypes []string
	Types      []string
	Subtypes   []string

	ManaValue int
	Colors    []string

	// OracleHash is the SHA-1 of the oracle text; Fingerprint is a
	// deterministic UUID over name and oracle text, stable across
	// processes for the same printing.
	OracleHash  string
	Fingerprint uuid.UUID

	Clauses        []parser.ClauseBlock
	Behavior       *ir.Node
	AbilityLines   []parser.AbilityLine
	StaticKeywords []string
	Flags          map[string]bool
}

var supertypeWords = map[string]bool{
	"Basic": true, "Legendary": true, "Snow": true, "World": true, "Ongoing": true,
}

// ParseTypeLine splits a type line into supertypes, card types and
// subtypes. Subtypes follow the em dash; supertypes are the known
// prefix words before the card types.
func ParseTypeLine(typeLine string) (supertypes, types, subtypes []string) {
	left := typeLine
	if before, after, found := strings.Cut(typeLine, "—"); found {
		left = before
		subtypes = strings.Fields(strings.TrimSpace(after))
	} else if before, after, found := strings.Cut(typeLine, " - "); found {
		left = before
		subtypes = strings.Fields(strings.TrimSpace(after))
	}
	for _, word := range strings.Fields(strings.TrimSpace(left)) {
		if supertypeWords[word] {
			supertypes = append(supertypes, word)
		} else {
			types = append(types, word)
		}
	}
	return supertypes, types, subtypes
}

// BuildMetadata parses a raw card through the full pipeline: type
// line, per-line clause blocks, compiled behavior tree, ability-line
// classification, static keyword scan, and identity hashes.
func BuildMetadata(raw *RawCard) *CardMetadata {
	meta := &CardMetadata{
		Name:       raw.Name,
		TypeLine:   raw.TypeLine,
		OracleText: raw.OracleText,
		ManaCost:   raw.ManaCost,
	}
	meta.Supertypes, meta.Types, meta.Subtypes = ParseTypeLine(raw.TypeLine)

	if cost, err := mana.ParseCost(raw.ManaCost); err == nil {
		meta.ManaValue = cost.Value()
		meta.Colors = cost.Colors()
	}

	sum := sha1.Sum([]byte(raw.OracleText))
	meta.OracleHash = hex.EncodeToString(sum[:])
	meta.Fingerprint = uuid.NewSHA1(uuid.NameSpaceOID, []byte(raw.Name+"\n"+raw.OracleText))

	for i, line := range strings.Split(raw.OracleText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		block := parser.ParseTokenGroup(lexicon.TokenizeClause(line))
		block.SourceIndex = i
		meta.Clauses = append(meta.Clauses, block)
	}

	meta.Behavior = parser.CompileText(raw.OracleText)
	meta.AbilityLines = parser.ClassifyAbilities(raw.OracleText)
	meta.Flags = parser.ExtractFlags(raw.OracleText)

	lowered := strings.ToLower(raw.OracleText)
	for _, keyword := range lexicon.StaticKeywords {
		if strings.Contains(lowered, keyword) {
			meta.StaticKeywords = append(meta.StaticKeywords, keyword)
		}
	}
	return meta
}

// IsType reports whether the card's type line includes the card type.
func (m *CardMetadata) IsType(cardType string) bool {
	for _, t := range m.Types {
		if strings.EqualFold(t, cardType) {
			return true
		}
	}
	return false
}
