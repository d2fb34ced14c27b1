package state

import (
	"strings"

	"github.com/google/uuid"

	"github.com/cardforge/oracle-engine/internal/engine"
)

// Zone names. Zones live as slices on each player; a card's Zone field
// mirrors which slice currently holds it.
const (
	ZoneHand        = "hand"
	ZoneLibrary     = "library"
	ZoneBattlefield = "battlefield"
	ZoneGraveyard   = "graveyard"
	ZoneExile       = "exile"
	ZoneStack       = "stack"
)

// Card is a game object: a card in any zone, or a token on the
// battlefield.
type Card struct {
	ID         uuid.UUID
	Name       string
	TypeLine   string
	OracleText string
	ManaCost   string

	Power     int
	Toughness int
	Loyalty   int
	Damage    int

	Zone       string
	Owner      *Player
	Controller *Player

	Tapped        bool
	SummoningSick bool
	FaceDown      bool
	Attacking     bool
	BlockedBy     []*Card
	IsToken       bool

	Abilities []string
	RuleFlags map[string]bool
}

// NewCard builds a card in no zone with a fresh identity.
func NewCard(name, typeLine, oracleText string) *Card {
	return &Card{
		ID:         uuid.New(),
		Name:       name,
		TypeLine:   typeLine,
		OracleText: oracleText,
		RuleFlags:  make(map[string]bool),
	}
}

func (c *Card) DisplayName() string { return c.Name }

// ControllingPlayer exposes the controller through the engine's
// collaborator interface.
func (c *Card) ControllingPlayer() engine.Player {
	if c.Controller == nil {
		return nil
	}
	return c.Controller
}

// MarkDamage adds marked combat/effect damage. Destruction is the
// state-based-action sweep's job, not the marker's.
func (c *Card) MarkDamage(n int) { c.Damage += n }

// LoseLoyalty removes loyalty counters.
func (c *Card) LoseLoyalty(n int) { c.Loyalty -= n }

func (c *Card) Tap()   { c.Tapped = true }
func (c *Card) Untap() { c.Tapped = false }

// HasAbility reports whether the card currently has the keyword.
func (c *Card) HasAbility(keyword string) bool {
	for _, ability := range c.Abilities {
		if strings.EqualFold(ability, keyword) {
			return true
		}
	}
	return false
}

// GrantAbility appends the keyword if absent.
func (c *Card) GrantAbility(keyword string) {
	if !c.HasAbility(keyword) {
		c.Abilities = append(c.Abilities, keyword)
	}
}

// RemoveAbility removes every occurrence of the keyword.
func (c *Card) RemoveAbility(keyword string) {
	kept := c.Abilities[:0]
	for _, ability := range c.Abilities {
		if !strings.EqualFold(ability, keyword) {
			kept = append(kept, ability)
		}
	}
	c.Abilities = kept
}

// AdjustPT applies an additive power/toughness change.
func (c *Card) AdjustPT(power, toughness int) {
	c.Power += power
	c.Toughness += toughness
}

func (c *Card) IsCreature() bool {
	return strings.Contains(strings.ToLower(c.TypeLine), "creature")
}

func (c *Card) IsPlaneswalker() bool {
	return strings.Contains(strings.ToLower(c.TypeLine), "planeswalker")
}

func (c *Card) IsLand() bool {
	return strings.Contains(strings.ToLower(c.TypeLine), "land")
}

// IsValid is the target-legality predicate consulted at resolution
// time. A card is a legal target while it is on the battlefield or
// still on the stack.
func (c *Card) IsValid() bool {
	return c.Zone == ZoneBattlefield || c.Zone == ZoneStack
}
