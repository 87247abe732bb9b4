package domain

// ChangeEvent is the uniform notification emitted when a property changes
// on the engine side
type ChangeEvent struct {
	InstanceID string
	Path       string
	Kind       Kind
	Value      Value
}

// StateEvent is a named event fired by a state machine
type StateEvent struct {
	InstanceID   string
	Name         string
	CurrentState string
	Properties   map[string]any
}

// CacheStats summarizes the registry for diagnostics
type CacheStats struct {
	InstanceCount    int
	TotalCachedPaths int
	PerInstance      map[string]int
}
