package ports

import (
	"context"
	"time"
)

// SourceInfo describes one animation source found by a SourceCatalog
type SourceInfo struct {
	// Name is what a Loader accepts, without directory or extension
	Name     string
	Path     string
	Size     int64
	Modified time.Time
}

// SourceCatalog lists the animation sources a Loader can open
type SourceCatalog interface {
	List(ctx context.Context) ([]SourceInfo, error)
	// Find returns the source whose Name or base file name matches name
	Find(ctx context.Context, name string) (SourceInfo, error)
}
