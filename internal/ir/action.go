package ir

// ActionName enumerates every action the effect engine can dispatch.
// The set is closed: parsers must only emit names listed here, and the
// interpreter matches exhaustively with a single diagnostic catch-all
// so that an unrecognized name degrades to a logged no-op instead of
// halting resolution.
type ActionName string

const (
	ActionDrawCard            ActionName = "draw_card"
	ActionGainLife            ActionName = "gain_life"
	ActionLoseLife            ActionName = "lose_life"
	ActionDealDamage          ActionName = "deal_damage"
	ActionGrantKeyword        ActionName = "grant_keyword"
	ActionCreateToken         ActionName = "create_token"
	ActionApplyPTModifier     ActionName = "apply_pt_modifier"
	ActionSearchLibrary       ActionName = "search_library"
	ActionDiscardCards        ActionName = "discard_cards"
	ActionExileFromHand       ActionName = "exile_from_hand"
	ActionMultiPlayerDiscard  ActionName = "multi_player_discard"
	ActionUntapPermanents     ActionName = "untap_permanents"
	ActionPutIntoLibraryDepth ActionName = "put_into_library_depth"
	ActionDestroyTarget       ActionName = "destroy_target"
	ActionExileTarget         ActionName = "exile_target"
	ActionTapTarget           ActionName = "tap_target"
	ActionUntapTarget         ActionName = "untap_target"
	ActionReturnToHand        ActionName = "return_to_hand"
	ActionReturnToBattlefield ActionName = "return_to_battlefield"
	ActionCounterSpell        ActionName = "counter_spell"
	ActionSetStateFlag        ActionName = "set_state_flag"
	ActionStaticEffect        ActionName = "static_effect"
	ActionConditionalFallback ActionName = "conditional_fallback"

	// ActionUnparsed marks a leaf the phrase registry could not match.
	// It carries the original clause text verbatim so nothing is lost.
	ActionUnparsed ActionName = "unparsed_effect"
)

// TokenSpec describes a game token to be created (the creature/artifact
// kind of token, not a lexer token).
type TokenSpec struct {
	Power     int      `json:"power,omitempty"`
	Toughness int      `json:"toughness,omitempty"`
	Colors    []string `json:"colors,omitempty"`
	Types     []string `json:"types,omitempty"`
	Abilities []string `json:"abilities,omitempty"`
	CopyOf    string   `json:"copy_of,omitempty"`
}

// Action is the payload of a KindAction leaf.
//
// Amount handling follows the numeral-extraction rules: AmountSet is
// true when the clause carried an explicit numeral ("two", "3"),
// AmountVariable is true for "X"-style amounts whose value is unknown
// at parse time. When neither is set the engine falls back to 1.
type Action struct {
	Name           ActionName        `json:"name"`
	Amount         int               `json:"amount,omitempty"`
	AmountSet      bool              `json:"amount_set,omitempty"`
	AmountVariable bool              `json:"amount_variable,omitempty"`

	// Keyword granted or removed by grant_keyword.
	Keyword string `json:"keyword,omitempty"`

	// ReferenceTag names a pronoun binding ("that_creature",
	// "those_tokens") resolved through the dynamic reference manager.
	// StoreAs writes the action's product under a tag for later leaves
	// in the same resolution.
	ReferenceTag string `json:"reference_tag,omitempty"`
	StoreAs      string `json:"store_as,omitempty"`

	// Token creation payload.
	Token *TokenSpec `json:"token,omitempty"`

	// Static-effect payload (layer-system leaves).
	Layer          string `json:"layer,omitempty"`
	PowerBoost     int    `json:"power_boost,omitempty"`
	ToughnessBoost int    `json:"toughness_boost,omitempty"`
	Restriction    string `json:"restriction,omitempty"`

	// Library position for put_into_library_depth.
	Position int `json:"position,omitempty"`

	// Modifier text for apply_pt_modifier ("+1/+1").
	Modifier string `json:"modifier,omitempty"`

	// Reveal flag for search_library.
	Reveal bool `json:"reveal,omitempty"`

	// RawText preserves the clause this action was parsed from.
	RawText string `json:"raw_text,omitempty"`

	// Extra holds any fields with no dedicated slot.
	Extra map[string]string `json:"extra,omitempty"`
}

// EffectiveAmount returns the amount the engine should act on, using
// the documented default of 1 when no numeral was extracted.
func (a *Action) EffectiveAmount() int {
	if a.AmountSet {
		return a.Amount
	}
	return 1
}
