package stack

import (
	"errors"

	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/engine"
)

// Outcome labels how a stack entry left the stack.
type Outcome string

const (
	OutcomeResolved Outcome = "RESOLVED"
	OutcomeFizzled  Outcome = "FIZZLED"
	OutcomeDeclined Outcome = "DECLINED"
)

// Result reports one resolution.
type Result struct {
	Outcome Outcome
	Entry   *Entry
	Log     string
}

// Observer receives one callback per resolution. Observers are sinks:
// nothing they return is consumed by the resolver.
type Observer interface {
	EntryResolved(entry *Entry, resultLog string)
	EntryFizzled(entry *Entry)
	EntryDeclined(entry *Entry)
}

// ErrEmptyStack is returned by ResolveTop when there is nothing to
// resolve.
var ErrEmptyStack = errors.New("stack is empty")

// targetValidator is the legality predicate a target may expose.
// Targets without one are treated as valid.
type targetValidator interface {
	IsValid() bool
}

// Resolver pops and resolves stack entries.
type Resolver struct {
	stack     *Stack
	effects   *engine.Engine
	log       *zap.Logger
	observers []Observer
}

func NewResolver(stack *Stack, effects *engine.Engine, log *zap.Logger) *Resolver {
	return &Resolver{stack: stack, effects: effects, log: log}
}

// AddObserver registers a resolution-event sink.
func (r *Resolver) AddObserver(observer Observer) {
	r.observers = append(r.observers, observer)
}

// ResolveTop pops the top entry and resolves it against game state.
//
// If the entry declared targets and none remain legal, it fizzles:
// the entry is marked resolved and game state is not touched. If only
// some targets remain legal, resolution proceeds with the legal subset.
// An optional entry whose controller declines is likewise marked
// resolved without executing. Otherwise the effect engine runs and its
// log is returned.
func (r *Resolver) ResolveTop(game engine.GameState) (*Result, error) {
	entry := r.stack.Pop()
	if entry == nil {
		return nil, ErrEmptyStack
	}

	if len(entry.Targets) > 0 {
		valid := validTargets(entry.Targets)
		if len(valid) == 0 {
			entry.Resolved = true
			r.log.Info("stack entry fizzled",
				zap.String("entry_id", entry.ID.String()),
				zap.String("name", entry.Name))
			for _, observer := range r.observers {
				observer.EntryFizzled(entry)
			}
			return &Result{Outcome: OutcomeFizzled, Entry: entry}, nil
		}
		entry.Targets = valid
	}

	if entry.Optional && entry.Decide != nil && !entry.Decide() {
		entry.Resolved = true
		r.log.Info("stack entry declined",
			zap.String("entry_id", entry.ID.String()),
			zap.String("name", entry.Name))
		for _, observer := range r.observers {
			observer.EntryDeclined(entry)
		}
		return &Result{Outcome: OutcomeDeclined, Entry: entry}, nil
	}

	ctx := engine.NewContext(entry.Source, entry.Controller, game)
	ctx.Targets = entry.Targets
	resultLog := r.effects.Execute(entry.Effect, ctx)
	entry.Resolved = true

	r.log.Debug("stack entry resolved",
		zap.String("entry_id", entry.ID.String()),
		zap.String("name", entry.Name))
	for _, observer := range r.observers {
		observer.EntryResolved(entry, resultLog)
	}
	return &Result{Outcome: OutcomeResolved, Entry: entry, Log: resultLog}, nil
}

func validTargets(targets []any) []any {
	valid := make([]any, 0, len(targets))
	for _, target := range targets {
		if v, ok := target.(targetValidator); ok && !v.IsValid() {
			continue
		}
		valid = append(valid, target)
	}
	return valid
}
