// Package combat handles the combat phase: attacker and blocker
// declaration with per-entry legality checks, and combat damage
// assignment. Declaration is a partial-failure batch operation: one
// illegal entry is skipped with a message and never aborts the rest.
// Damage is only marked here; destruction belongs to the
// state-based-action sweep.
package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/state"
)

// Phase is the combat state machine position. Transitions are linear;
// a new combat resets to Idle.
type Phase string

const (
	PhaseIdle              Phase = "IDLE"
	PhaseAttackersDeclared Phase = "ATTACKERS_DECLARED"
	PhaseBlockersDeclared  Phase = "BLOCKERS_DECLARED"
	PhaseDamageAssigned    Phase = "DAMAGE_ASSIGNED"
)

// AttackerAssignment pairs an attacking creature with its defender,
// which may be a player or a planeswalker permanent.
type AttackerAssignment struct {
	Creature *state.Card
	Defender any
}

// BlockerAssignment pairs a blocking creature with the attacker it
// blocks. Each creature blocks at most one attacker per combat;
// duplicate declarations for the same blocker are rejected.
type BlockerAssignment struct {
	Blocker  *state.Card
	Attacker *state.Card
}

// Engine runs one combat. Attacker and blocker insertion order is
// preserved: damage distribution across multiple blockers follows
// blocker declaration order.
type Engine struct {
	phase Phase

	attackerOrder []*state.Card
	defenders     map[*state.Card]any

	blockerOrder []*state.Card
	blocks       map[*state.Card][]*state.Card

	log *zap.Logger
}

func NewEngine(log *zap.Logger) *Engine {
	e := &Engine{log: log}
	e.Reset()
	return e
}

// Reset clears all combat assignments for a new combat phase.
func (e *Engine) Reset() {
	e.phase = PhaseIdle
	e.attackerOrder = nil
	e.defenders = make(map[*state.Card]any)
	e.blockerOrder = nil
	e.blocks = make(map[*state.Card][]*state.Card)
}

func (e *Engine) Phase() Phase { return e.phase }

// DeclareAttackers validates and records attacker assignments for the
// attacking player. Each entry is checked independently; invalid ones
// are skipped with a message. Valid attackers are tapped and marked
// attacking.
func (e *Engine) DeclareAttackers(game *state.GameState, attacker *state.Player, assignments []AttackerAssignment) []string {
	if game.CurrentPhase() != "Declare Attackers" {
		return []string{"Attackers may only be declared during the Declare Attackers step."}
	}

	var log []string
	for _, assignment := range assignments {
		creature, defender := assignment.Creature, assignment.Defender
		switch {
		case creature.Zone != state.ZoneBattlefield:
			log = append(log, fmt.Sprintf("%s is not on the battlefield.", creature.Name))
		case creature.Controller != attacker:
			log = append(log, fmt.Sprintf("%s is not controlled by %s.", creature.Name, attacker.Name))
		case !creature.IsCreature():
			log = append(log, fmt.Sprintf("%s is not a creature.", creature.Name))
		case creature.Tapped:
			log = append(log, fmt.Sprintf("%s is tapped and can't attack.", creature.Name))
		case creature.SummoningSick && !creature.HasAbility("haste"):
			log = append(log, fmt.Sprintf("%s has summoning sickness.", creature.Name))
		case creature.RuleFlags["cant_attack"]:
			log = append(log, fmt.Sprintf("%s can't attack.", creature.Name))
		case !e.legalDefender(game, attacker, defender):
			log = append(log, fmt.Sprintf("%s is not a legal defender.", defenderName(defender)))
		default:
			if _, already := e.defenders[creature]; !already {
				e.attackerOrder = append(e.attackerOrder, creature)
			}
			e.defenders[creature] = defender
			creature.Tapped = true
			creature.Attacking = true
			log = append(log, fmt.Sprintf("%s attacks %s.", creature.Name, defenderName(defender)))
		}
	}

	e.phase = PhaseAttackersDeclared
	e.log.Debug("attackers declared",
		zap.String("player", attacker.Name),
		zap.Int("attackers", len(e.attackerOrder)))
	return log
}

// DeclareBlockers validates and records blocker assignments for the
// defending player, symmetric to attacker declaration. Evasion
// keywords reject illegal pairings.
func (e *Engine) DeclareBlockers(game *state.GameState, defender *state.Player, assignments []BlockerAssignment) []string {
	if game.CurrentPhase() != "Declare Blockers" {
		return []string{"Blockers may only be declared during the Declare Blockers step."}
	}
	if len(e.attackerOrder) == 0 {
		return []string{"No attackers have been declared."}
	}

	var log []string
	for _, assignment := range assignments {
		blocker, attacker := assignment.Blocker, assignment.Attacker
		_, attacking := e.defenders[attacker]
		switch {
		case blocker.Zone != state.ZoneBattlefield:
			log = append(log, fmt.Sprintf("%s is not on the battlefield.", blocker.Name))
		case blocker.Controller != defender:
			log = append(log, fmt.Sprintf("%s is not controlled by %s.", blocker.Name, defender.Name))
		case !blocker.IsCreature():
			log = append(log, fmt.Sprintf("%s is not a creature.", blocker.Name))
		case blocker.Tapped:
			log = append(log, fmt.Sprintf("%s is tapped and can't block.", blocker.Name))
		case len(e.blocks[blocker]) > 0:
			log = append(log, fmt.Sprintf("%s has already been declared as a blocker.", blocker.Name))
		case !attacking:
			log = append(log, fmt.Sprintf("%s is not attacking %s.", attacker.Name, defender.Name))
		case !canBlock(blocker, attacker):
			log = append(log, fmt.Sprintf("%s can't block %s.", blocker.Name, attacker.Name))
		default:
			e.blockerOrder = append(e.blockerOrder, blocker)
			e.blocks[blocker] = append(e.blocks[blocker], attacker)
			attacker.BlockedBy = append(attacker.BlockedBy, blocker)
			log = append(log, fmt.Sprintf("%s blocks %s.", blocker.Name, attacker.Name))
		}
	}

	e.phase = PhaseBlockersDeclared
	e.log.Debug("blockers declared",
		zap.String("player", defender.Name),
		zap.Int("blockers", len(e.blockerOrder)))
	return log
}

// canBlock applies evasion keywords: flying is blocked only by flying
// or reach, shadow blocks and is blocked only by shadow.
func canBlock(blocker, attacker *state.Card) bool {
	if attacker.HasAbility("flying") && !blocker.HasAbility("flying") && !blocker.HasAbility("reach") {
		return false
	}
	if attacker.HasAbility("shadow") != blocker.HasAbility("shadow") {
		return false
	}
	return true
}

// AssignCombatDamage resolves combat damage for every declared
// attacker. Unblocked attackers hit their defender for full power.
// Blocked attackers distribute power across their blockers in blocker
// declaration order: deathtouch assigns 1 per blocker, otherwise each
// blocker absorbs up to its remaining toughness; leftover power spills
// to the defender only with trample. Blockers simultaneously deal
// their own power (1 with deathtouch) back to the attacker.
func (e *Engine) AssignCombatDamage(game *state.GameState) []string {
	var log []string

	for _, attacker := range e.attackerOrder {
		defender := e.defenders[attacker]
		blockers := e.blockersOf(attacker)

		if len(blockers) == 0 {
			e.dealToDefender(defender, attacker.Power)
			log = append(log, fmt.Sprintf("%s deals %d damage to %s.", attacker.Name, attacker.Power, defenderName(defender)))
			continue
		}

		remaining := attacker.Power
		for _, blocker := range blockers {
			var dmg int
			if attacker.HasAbility("deathtouch") {
				dmg = 1
			} else {
				dmg = min(remaining, blocker.Toughness-blocker.Damage)
			}
			blocker.MarkDamage(dmg)
			remaining -= dmg
			log = append(log, fmt.Sprintf("%s deals %d damage to %s.", attacker.Name, dmg, blocker.Name))
			if remaining <= 0 {
				break
			}
		}

		if remaining > 0 && attacker.HasAbility("trample") {
			e.dealToDefender(defender, remaining)
			log = append(log, fmt.Sprintf("%s deals %d trample damage to %s.", attacker.Name, remaining, defenderName(defender)))
		}

		for _, blocker := range blockers {
			dmg := blocker.Power
			if blocker.HasAbility("deathtouch") {
				dmg = 1
			}
			attacker.MarkDamage(dmg)
			log = append(log, fmt.Sprintf("%s deals %d damage to %s.", blocker.Name, dmg, attacker.Name))
		}
	}

	e.phase = PhaseDamageAssigned
	return log
}

// blockersOf derives an attacker's blockers by scanning the block map
// in blocker declaration order.
func (e *Engine) blockersOf(attacker *state.Card) []*state.Card {
	var blockers []*state.Card
	for _, blocker := range e.blockerOrder {
		for _, blocked := range e.blocks[blocker] {
			if blocked == attacker {
				blockers = append(blockers, blocker)
				break
			}
		}
	}
	return blockers
}

func (e *Engine) legalDefender(game *state.GameState, attacker *state.Player, defender any) bool {
	switch d := defender.(type) {
	case *state.Player:
		if d == attacker {
			return false
		}
		for _, player := range game.Players {
			if player == d {
				return true
			}
		}
	case *state.Card:
		for _, player := range game.Players {
			if d.Controller == player {
				return true
			}
		}
	}
	return false
}

func (e *Engine) dealToDefender(defender any, n int) {
	switch d := defender.(type) {
	case *state.Player:
		d.LoseLife(n)
	case *state.Card:
		if d.IsPlaneswalker() {
			d.LoseLoyalty(n)
		} else {
			d.MarkDamage(n)
		}
	}
}

func defenderName(defender any) string {
	switch d := defender.(type) {
	case *state.Player:
		return d.Name
	case *state.Card:
		return d.Name
	}
	return fmt.Sprintf("%v", defender)
}
