// Package stack implements the LIFO spell/ability stack, its
// resolution engine and the trigger queue that feeds it.
package stack

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/engine"
	"github.com/cardforge/oracle-engine/internal/ir"
)

// Kind distinguishes what put an entry on the stack.
type Kind string

const (
	KindSpell     Kind = "SPELL"
	KindActivated Kind = "ACTIVATED_ABILITY"
	KindTriggered Kind = "TRIGGERED_ABILITY"
)

// Entry is one object waiting on the stack.
type Entry struct {
	ID         uuid.UUID
	Kind       Kind
	Name       string
	Source     any
	Controller engine.Player
	Effect     *ir.Node
	Targets    []any

	// Optional marks "you may" effects. Decide is consulted when the
	// entry resolves; a nil Decide means the controller accepts.
	Optional bool
	Decide   func() bool

	Resolved bool
}

// NewEntry builds a stack entry with a fresh identity.
func NewEntry(kind Kind, name string, source any, controller engine.Player, effect *ir.Node, targets []any) *Entry {
	return &Entry{
		ID:         uuid.New(),
		Kind:       kind,
		Name:       name,
		Source:     source,
		Controller: controller,
		Effect:     effect,
		Targets:    targets,
	}
}

// DetectOptional reports whether the source text makes the effect
// optional for its controller.
func DetectOptional(sourceText string) bool {
	return strings.Contains(strings.ToLower(sourceText), "you may")
}

// Stack is the shared LIFO stack. All access is serialized through its
// mutex so concurrent observers (the event hub, the demo server) can
// inspect it safely.
type Stack struct {
	mu      sync.Mutex
	entries []*Entry
	log     *zap.Logger
}

func New(log *zap.Logger) *Stack {
	return &Stack{log: log}
}

// Push places an entry on top of the stack.
func (s *Stack) Push(entry *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	s.log.Debug("stack push",
		zap.String("entry_id", entry.ID.String()),
		zap.String("kind", string(entry.Kind)),
		zap.String("name", entry.Name),
		zap.Int("depth", len(s.entries)))
}

// Pop removes and returns the top entry, or nil when empty.
func (s *Stack) Pop() *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	s.log.Debug("stack pop",
		zap.String("entry_id", top.ID.String()),
		zap.Int("depth", len(s.entries)))
	return top
}

// Peek returns the top entry without removing it, or nil when empty.
func (s *Stack) Peek() *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

// IsEmpty reports whether the stack holds no entries.
func (s *Stack) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) == 0
}

// Size returns the number of entries on the stack.
func (s *Stack) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// List returns a bottom-to-top snapshot of the stack.
func (s *Stack) List() []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]*Entry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}
