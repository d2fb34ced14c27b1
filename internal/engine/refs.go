package engine

// RefManager tracks pronoun bindings ("that creature", "those tokens")
// created while an effect tree resolves. Its scope is exactly one
// Execute call: a fresh manager is built for every resolution context
// and discarded with it, so references never leak between unrelated
// resolutions.
type RefManager struct {
	refs map[string]any
}

func NewRefManager() *RefManager {
	return &RefManager{refs: make(map[string]any)}
}

// Set stores obj under tag for later leaves in the same resolution.
func (m *RefManager) Set(tag string, obj any) {
	m.refs[tag] = obj
}

// Resolve returns the object stored under tag, or nil.
func (m *RefManager) Resolve(tag string) any {
	return m.refs[tag]
}

// Clear removes all stored references.
func (m *RefManager) Clear() {
	m.refs = make(map[string]any)
}
