package ir

// NodeKind discriminates the five canonical effect-tree node shapes.
type NodeKind string

const (
	// KindChain executes its children in order.
	KindChain NodeKind = "CHAIN"
	// KindConditional branches on an evaluated condition.
	KindConditional NodeKind = "CONDITIONAL"
	// KindModal selects one of several pre-declared choices.
	KindModal NodeKind = "MODAL"
	// KindRepeat re-executes its children once per player.
	KindRepeat NodeKind = "REPEAT"
	// KindAction is a leaf carrying a single interpreter action.
	KindAction NodeKind = "ACTION"
)

// Node is the canonical intermediate representation produced by the
// parsing pipeline and consumed by the effect engine. It is a tagged
// variant: Kind selects which fields are meaningful. Nodes are built
// once per card and never mutated afterwards; targets are resolved
// fresh per casting through the resolution context.
type Node struct {
	Kind NodeKind `json:"kind"`

	// Chain / Repeat children, in execution order.
	Children []*Node `json:"children,omitempty"`

	// Conditional fields. Condition carries the raw condition text,
	// evaluated through a ConditionEvaluator at execution time.
	Condition string `json:"condition,omitempty"`
	Then      *Node  `json:"then,omitempty"`
	Else      *Node  `json:"else,omitempty"`

	// Modal fields.
	Choices     []*Node `json:"choices,omitempty"`
	ChooseCount int     `json:"choose_count,omitempty"`

	// Action leaf payload.
	Action *Action `json:"action,omitempty"`
}

// Chain wraps nodes into a sequential chain.
func Chain(children ...*Node) *Node {
	return &Node{Kind: KindChain, Children: children}
}

// Conditional builds a conditional node. elseNode may be nil.
func Conditional(condition string, then, elseNode *Node) *Node {
	return &Node{Kind: KindConditional, Condition: condition, Then: then, Else: elseNode}
}

// Modal builds a modal node offering choices; chooseCount is how many
// the controller selects before resolution (1 for "choose one").
func Modal(chooseCount int, choices ...*Node) *Node {
	return &Node{Kind: KindModal, ChooseCount: chooseCount, Choices: choices}
}

// Repeat wraps children into a node re-executed once per player.
func Repeat(children ...*Node) *Node {
	return &Node{Kind: KindRepeat, Children: children}
}

// Leaf wraps an action into a leaf node.
func Leaf(action *Action) *Node {
	return &Node{Kind: KindAction, Action: action}
}

// IsEmpty reports whether the node carries no executable content.
func (n *Node) IsEmpty() bool {
	if n == nil {
		return true
	}
	switch n.Kind {
	case KindChain, KindRepeat:
		return len(n.Children) == 0
	case KindModal:
		return len(n.Choices) == 0
	case KindAction:
		return n.Action == nil
	}
	return false
}

// Walk visits the node and all descendants depth-first. The visitor
// returns false to stop early.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(visit) {
			return false
		}
	}
	for _, c := range n.Choices {
		if !c.Walk(visit) {
			return false
		}
	}
	if !n.Then.Walk(visit) {
		return false
	}
	return n.Else.Walk(visit)
}
