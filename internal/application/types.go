package application

import "artbind/internal/domain"

// Re-export domain types for use by adapters
type (
	Kind         = domain.Kind
	Value        = domain.Value
	PropertyNode = domain.PropertyNode
	ChangeEvent  = domain.ChangeEvent
	StateEvent   = domain.StateEvent
	CacheStats   = domain.CacheStats
)

// ParseKind converts a kind name to a Kind
func ParseKind(name string) Kind {
	return domain.ParseKind(name)
}

// FormatValue renders a value for display
func FormatValue(v Value) string {
	return domain.FormatValue(v)
}
