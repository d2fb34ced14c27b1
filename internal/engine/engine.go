// Package engine interprets canonical effect trees against game state.
// It is deliberately single-threaded: every Execute call runs to
// completion before the next begins, and all state it touches is
// reached through the narrow collaborator interfaces below.
package engine

import (
	"strings"

	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/ir"
)

// Player is the surface the engine needs from a player object.
type Player interface {
	DisplayName() string
	DrawCards(n int) int
	GainLife(n int)
	LoseLife(n int)
}

// Permanent is the surface the engine needs from a battlefield object.
type Permanent interface {
	DisplayName() string
}

// GameState is the minimal game-state collaborator. MoveCard returns a
// human-readable log line describing the zone transition.
type GameState interface {
	PlayerList() []Player
	MoveCard(card Permanent, controller Player, zone string) (string, error)
}

// ZoneChange records a pending zone transition produced by an effect.
type ZoneChange struct {
	Card Permanent
	From string
	To   string
}

// Context is the per-resolution state container. One Context is built
// when a stack entry begins resolving and discarded when it finishes;
// its reference manager lives and dies with it.
type Context struct {
	Source      any
	Controller  Player
	Targets     []any
	Refs        *RefManager
	Flags       map[string]any
	ZoneChanges []ZoneChange
	Game        GameState
}

// NewContext builds a fresh resolution context. game may be nil for
// effects that only touch their controller.
func NewContext(source any, controller Player, game GameState) *Context {
	return &Context{
		Source:     source,
		Controller: controller,
		Refs:       NewRefManager(),
		Flags:      make(map[string]any),
		Game:       game,
	}
}

// Engine walks effect trees and applies their actions.
type Engine struct {
	log        *zap.Logger
	conditions ConditionEvaluator
}

// New builds an engine. A nil evaluator selects the substring
// heuristic.
func New(log *zap.Logger, evaluator ConditionEvaluator) *Engine {
	if evaluator == nil {
		evaluator = SubstringEvaluator{}
	}
	return &Engine{log: log, conditions: evaluator}
}

// Execute interprets the effect tree and returns a human-readable log
// of what happened. Unknown actions never abort the walk: they emit a
// diagnostic block and execution continues with the next node.
func (e *Engine) Execute(tree *ir.Node, ctx *Context) string {
	return e.walk(tree, ctx)
}

func (e *Engine) walk(node *ir.Node, ctx *Context) string {
	if node == nil {
		return ""
	}

	switch node.Kind {
	case ir.KindChain:
		return e.walkChildren(node.Children, ctx)

	case ir.KindConditional:
		if e.conditions.Evaluate(node.Condition, ctx) {
			return e.walk(node.Then, ctx)
		}
		return e.walk(node.Else, ctx)

	case ir.KindModal:
		index, _ := ctx.Flags["modal_choice"].(int)
		if index < 0 || index >= len(node.Choices) {
			e.log.Debug("modal choice out of range, skipping",
				zap.Int("choice", index),
				zap.Int("options", len(node.Choices)))
			return ""
		}
		return e.walk(node.Choices[index], ctx)

	case ir.KindRepeat:
		var players []Player
		if ctx.Game != nil {
			players = ctx.Game.PlayerList()
		}
		if len(players) == 0 {
			players = []Player{ctx.Controller}
		}
		var logs []string
		for range players {
			if result := e.walkChildren(node.Children, ctx); result != "" {
				logs = append(logs, result)
			}
		}
		return strings.Join(logs, "\n")

	case ir.KindAction:
		return e.applyAction(node, ctx)
	}
	return ""
}

func (e *Engine) walkChildren(children []*ir.Node, ctx *Context) string {
	var logs []string
	for _, child := range children {
		if result := e.walk(child, ctx); result != "" {
			logs = append(logs, result)
		}
	}
	return strings.Join(logs, "\n")
}
