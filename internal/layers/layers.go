// Package layers applies continuous static effects in CR613 order:
// layers 1 through 6, then sublayers 7a-7d, timestamp-ascending within
// each bucket. Cross-layer dependency analysis (CR613.6) is out of
// scope.
package layers

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/state"
)

// ErrInvalidLayer reports a layer designation outside the legal set.
// Registration fails fast: a bad designation is a parse bug, not a
// game-rules situation.
var ErrInvalidLayer = errors.New("invalid layer designation")

// Layer is a CR613 layer designation.
type Layer string

// The legal layer designations, in application order.
var applyOrder = []Layer{"1", "2", "3", "4", "5", "6", "7a", "7b", "7c", "7d"}

var legalLayers = map[Layer]bool{
	"1": true, "2": true, "3": true, "4": true, "5": true, "6": true,
	"7a": true, "7b": true, "7c": true, "7d": true,
}

// NormalizeLayer maps the bare "7" designation (power/toughness
// without a sublayer) to 7d, matching how unsublayered effects are
// filed.
func NormalizeLayer(layer Layer) Layer {
	if layer == "7" {
		return "7d"
	}
	return layer
}

// Target classes a descriptor can apply to.
const (
	TargetPermanent           = "permanent"
	TargetCreature            = "creature"
	TargetCreaturesControlled = "creatures_you_control"
)

// Descriptor is one continuous effect. Apply mutates matching
// permanents: ability grants append if absent, power/toughness boosts
// are additive, restrictions and rules overwrites set boolean flags.
type Descriptor struct {
	TargetClass       string
	Controller        *state.Player
	GrantedAbilities  []string
	PowerBoost        int
	ToughnessBoost    int
	Restrictions      []string
	RulesOverwrites   []string
	KeywordsRemoved   []string
	Layer             Layer
	Duration          string
	Source            any
	Timestamp         int64
	DependencyTargets []string
}

// Matches reports whether the descriptor applies to the permanent.
func (d *Descriptor) Matches(card *state.Card) bool {
	switch d.TargetClass {
	case TargetPermanent, "":
		return true
	case TargetCreature:
		return card.IsCreature()
	case TargetCreaturesControlled:
		return card.IsCreature() && card.Controller == d.Controller
	}
	return false
}

// ApplyTo mutates the permanent with this descriptor's effects.
func (d *Descriptor) ApplyTo(card *state.Card) {
	for _, ability := range d.GrantedAbilities {
		card.GrantAbility(ability)
	}
	for _, keyword := range d.KeywordsRemoved {
		card.RemoveAbility(keyword)
	}
	card.AdjustPT(d.PowerBoost, d.ToughnessBoost)
	for _, restriction := range d.Restrictions {
		card.RuleFlags[restriction] = true
	}
	for _, overwrite := range d.RulesOverwrites {
		card.RuleFlags[overwrite] = true
	}
}

// Manager buckets descriptors per layer and applies them in order.
type Manager struct {
	buckets map[Layer][]*Descriptor
	clock   int64
	log     *zap.Logger
}

func NewManager(log *zap.Logger) *Manager {
	return &Manager{buckets: make(map[Layer][]*Descriptor), log: log}
}

// RegisterEffect files a descriptor under its layer. An illegal layer
// designation is a programmer or parse error and is rejected outright.
// Descriptors without a timestamp receive the next tick of the
// manager's registration clock.
func (m *Manager) RegisterEffect(descriptor *Descriptor) error {
	layer := NormalizeLayer(descriptor.Layer)
	if !legalLayers[layer] {
		return fmt.Errorf("%w: %q", ErrInvalidLayer, descriptor.Layer)
	}
	descriptor.Layer = layer
	if descriptor.Timestamp == 0 {
		m.clock++
		descriptor.Timestamp = m.clock
	}
	m.buckets[layer] = append(m.buckets[layer], descriptor)
	m.log.Debug("static effect registered",
		zap.String("layer", string(layer)),
		zap.Int64("timestamp", descriptor.Timestamp))
	return nil
}

// RemoveBySource drops every descriptor registered from the source.
func (m *Manager) RemoveBySource(source any) int {
	removed := 0
	for layer, bucket := range m.buckets {
		kept := bucket[:0]
		for _, descriptor := range bucket {
			if descriptor.Source == source {
				removed++
				continue
			}
			kept = append(kept, descriptor)
		}
		m.buckets[layer] = kept
	}
	return removed
}

// ApplyLayers walks every registered descriptor in CR613 order and
// applies it to each matching permanent on the battlefield. Within a
// layer, descriptors apply timestamp-ascending; that ordering only
// matters for non-commutative mutations, additive boosts commute.
func (m *Manager) ApplyLayers(game *state.GameState) {
	for _, layer := range applyOrder {
		bucket := append([]*Descriptor(nil), m.buckets[layer]...)
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Timestamp < bucket[j].Timestamp
		})
		for _, descriptor := range bucket {
			for _, player := range game.Players {
				for _, permanent := range player.Battlefield {
					if descriptor.Matches(permanent) {
						descriptor.ApplyTo(permanent)
					}
				}
			}
		}
	}
}
