package application

import (
	"strings"
	"sync/atomic"

	"artbind/internal/domain"
)

// PathResolver turns property paths into nodes, memoizing multi-segment
// resolutions in the instance's path cache.
type PathResolver struct {
	walks atomic.Int64
}

// NewPathResolver creates a PathResolver
func NewPathResolver() *PathResolver {
	return &PathResolver{}
}

// Walks returns how many recursive descents have been performed. Cache
// hits and single-segment lookups do not count.
func (r *PathResolver) Walks() int64 {
	return r.walks.Load()
}

// Resolve finds the node at path in inst. Single-segment paths scan the
// top-level graph and bypass the cache. The caller must hold inst's lock.
func (r *PathResolver) Resolve(inst *Instance, path string) (*domain.PropertyNode, bool) {
	segments := domain.SplitPath(path)
	switch len(segments) {
	case 0:
		return nil, false
	case 1:
		return domain.FindByName(inst.graph, segments[0])
	}

	key := strings.Join(segments, domain.PathSeparator)
	if node, ok := inst.cache[key]; ok {
		return node, true
	}

	r.walks.Add(1)
	node, ok := domain.FindByName(inst.graph, segments[0])
	if !ok {
		return nil, false
	}
	for _, segment := range segments[1:] {
		if len(node.Children) == 0 {
			return nil, false
		}
		if node, ok = node.Child(segment); !ok {
			return nil, false
		}
	}

	if inst.cache == nil {
		inst.cache = make(map[string]*domain.PropertyNode)
	}
	inst.cache[key] = node
	return node, true
}
