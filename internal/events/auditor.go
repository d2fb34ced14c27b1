package events

import (
	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/stack"
)

// Auditor implements the stack resolver's Observer, translating
// resolution outcomes into bus events for audit logging and any
// connected front ends.
type Auditor struct {
	bus *Bus
	log *zap.Logger
}

func NewAuditor(bus *Bus, log *zap.Logger) *Auditor {
	return &Auditor{bus: bus, log: log}
}

func (a *Auditor) EntryResolved(entry *stack.Entry, resultLog string) {
	event := NewEvent(EventSpellResolved, entry.Name+" resolved")
	event.SourceID = entry.ID.String()
	event.Metadata = map[string]string{"result": resultLog}
	if entry.Controller != nil {
		event.Controller = entry.Controller.DisplayName()
	}
	a.bus.Publish(event)
	a.log.Info("entry resolved", zap.String("name", entry.Name))
}

func (a *Auditor) EntryFizzled(entry *stack.Entry) {
	event := NewEvent(EventSpellFizzled, entry.Name+" fizzled: no legal targets")
	event.SourceID = entry.ID.String()
	a.bus.Publish(event)
	a.log.Info("entry fizzled", zap.String("name", entry.Name))
}

func (a *Auditor) EntryDeclined(entry *stack.Entry) {
	event := NewEvent(EventSpellDeclined, entry.Name+" declined by controller")
	event.SourceID = entry.ID.String()
	a.bus.Publish(event)
	a.log.Info("entry declined", zap.String("name", entry.Name))
}
