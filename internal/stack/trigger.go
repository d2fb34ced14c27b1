package stack

import (
	"sync"

	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/engine"
	"github.com/cardforge/oracle-engine/internal/ir"
)

// RegisteredTrigger is a standing triggered ability: a condition
// predicate and a thunk producing its effect tree when it fires.
type RegisteredTrigger struct {
	Name       string
	Condition  func(game engine.GameState) bool
	Effect     func() *ir.Node
	Source     any
	Controller engine.Player
}

// pendingTrigger is a trigger that has fired and awaits the stack.
type pendingTrigger struct {
	name       string
	effect     *ir.Node
	source     any
	controller engine.Player
}

// TriggerEngine queues fired triggers and pushes them to the stack.
// There is no automatic event detection: game events are queued
// explicitly by whoever observes them (zone-change handlers, combat,
// the turn loop). CheckAndPush drains the queue.
type TriggerEngine struct {
	mu         sync.Mutex
	registered []RegisteredTrigger
	pending    []pendingTrigger
	log        *zap.Logger
}

func NewTriggerEngine(log *zap.Logger) *TriggerEngine {
	return &TriggerEngine{log: log}
}

// Register adds a standing trigger.
func (t *TriggerEngine) Register(trigger RegisteredTrigger) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.registered = append(t.registered, trigger)
	t.log.Debug("trigger registered", zap.String("name", trigger.Name))
}

// Registered returns a snapshot of the standing triggers.
func (t *TriggerEngine) Registered() []RegisteredTrigger {
	t.mu.Lock()
	defer t.mu.Unlock()
	snapshot := make([]RegisteredTrigger, len(t.registered))
	copy(snapshot, t.registered)
	return snapshot
}

// FireNow queues an effect to be pushed as a triggered ability on the
// next CheckAndPush.
func (t *TriggerEngine) FireNow(name string, effect *ir.Node, source any, controller engine.Player) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, pendingTrigger{
		name:       name,
		effect:     effect,
		source:     source,
		controller: controller,
	})
	t.log.Debug("trigger fired", zap.String("name", name), zap.Int("pending", len(t.pending)))
}

// FireMatching evaluates every registered trigger's condition against
// game state and queues those that hold. Returns the number queued.
func (t *TriggerEngine) FireMatching(game engine.GameState) int {
	t.mu.Lock()
	triggers := make([]RegisteredTrigger, len(t.registered))
	copy(triggers, t.registered)
	t.mu.Unlock()

	fired := 0
	for _, trigger := range triggers {
		if trigger.Condition != nil && !trigger.Condition(game) {
			continue
		}
		var effect *ir.Node
		if trigger.Effect != nil {
			effect = trigger.Effect()
		}
		t.FireNow(trigger.Name, effect, trigger.Source, trigger.Controller)
		fired++
	}
	return fired
}

// CheckAndPush drains the pending queue, wrapping each fired trigger
// as a triggered-ability entry on the stack. Returns the number pushed.
func (t *TriggerEngine) CheckAndPush(_ engine.GameState, stack *Stack) int {
	t.mu.Lock()
	drained := t.pending
	t.pending = nil
	t.mu.Unlock()

	for _, p := range drained {
		stack.Push(NewEntry(KindTriggered, p.name, p.source, p.controller, p.effect, nil))
	}
	if len(drained) > 0 {
		t.log.Info("pending triggers pushed", zap.Int("count", len(drained)))
	}
	return len(drained)
}

// PendingCount reports how many fired triggers await the stack.
func (t *TriggerEngine) PendingCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}
