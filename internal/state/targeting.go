package state

import "strings"

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// TargetingSystem answers targeting-legality questions that depend on
// protective keywords rather than zone validity.
type TargetingSystem struct{}

// CanTarget reports whether controller may target the candidate.
// Shroud blocks everyone; hexproof blocks opponents of the candidate's
// controller.
func (TargetingSystem) CanTarget(controller *Player, candidate *Card) bool {
	if candidate.HasAbility("shroud") {
		return false
	}
	if candidate.HasAbility("hexproof") && candidate.Controller != controller {
		return false
	}
	return true
}

// LegalTargets filters candidates down to those controller may target.
func (t TargetingSystem) LegalTargets(controller *Player, candidates []*Card) []*Card {
	legal := make([]*Card, 0, len(candidates))
	for _, candidate := range candidates {
		if t.CanTarget(controller, candidate) {
			legal = append(legal, candidate)
		}
	}
	return legal
}
