package domain

// PropertyNode is one discovered property of an instance's graph.
//
// Handle is the engine's native reference for the property. The node only
// borrows it; it becomes invalid when the owning instance is torn down.
// Children is set once at discovery: nested properties for KindViewModel,
// one KindViewModel item node per element for KindList.
type PropertyNode struct {
	Name     string
	Kind     Kind
	Value    Value
	FullPath string
	Handle   any
	Children []*PropertyNode

	// Set on the item nodes of a list property
	IsItem   bool
	Index    int
	ItemName string

	detach []func()
}

// Child returns the direct child with the given name. List items also
// match on their item-level name.
func (n *PropertyNode) Child(name string) (*PropertyNode, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	for _, c := range n.Children {
		if c.ItemName != "" && c.ItemName == name {
			return c, true
		}
	}
	return nil, false
}

// Bind records a listener removal function to run on Detach.
func (n *PropertyNode) Bind(remove func()) {
	if remove != nil {
		n.detach = append(n.detach, remove)
	}
}

// Listening reports whether the node still has attached listeners.
func (n *PropertyNode) Listening() bool {
	return len(n.detach) > 0
}

// Detach removes this node's listeners and those of all descendants.
func (n *PropertyNode) Detach() {
	for _, remove := range n.detach {
		remove()
	}
	n.detach = nil
	for _, c := range n.Children {
		c.Detach()
	}
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func (n *PropertyNode) Walk(fn func(*PropertyNode) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindByName returns the top-level node named name.
func FindByName(graph []*PropertyNode, name string) (*PropertyNode, bool) {
	for _, n := range graph {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// WalkGraph visits every node of graph depth-first.
func WalkGraph(graph []*PropertyNode, fn func(*PropertyNode) bool) {
	for _, n := range graph {
		n.Walk(fn)
	}
}

// Flatten returns every node of graph depth-first, parents before children.
func Flatten(graph []*PropertyNode) []*PropertyNode {
	var result []*PropertyNode
	WalkGraph(graph, func(n *PropertyNode) bool {
		result = append(result, n)
		return true
	})
	return result
}
