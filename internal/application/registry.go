package application

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"artbind/internal/domain"
	"artbind/internal/ports"
)

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the registry's logger
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithChangeHandler sets the host callback for property change notifications
func WithChangeHandler(fn func(domain.ChangeEvent)) Option {
	return func(r *Registry) {
		r.onChange = fn
	}
}

// WithStateEventHandler sets the host callback for state machine events
func WithStateEventHandler(fn func(domain.StateEvent)) Option {
	return func(r *Registry) {
		r.onState = fn
	}
}

// Registry maps instance ids to live instances and routes host updates
// and queries to their property graphs.
//
// Host-facing methods never panic or return errors for expected failures:
// the bool/nil results are backed by a log entry. SetProperty exposes the
// underlying error for callers that want it.
type Registry struct {
	log        *slog.Logger
	resolver   *PathResolver
	discoverer *Discoverer
	onChange   func(domain.ChangeEvent)
	onState    func(domain.StateEvent)

	mu        sync.RWMutex
	instances map[string]*Instance
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		log:       slog.Default(),
		resolver:  NewPathResolver(),
		instances: make(map[string]*Instance),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.discoverer = NewDiscoverer(r.log)
	return r
}

// Resolver returns the registry's path resolver
func (r *Registry) Resolver() *PathResolver {
	return r.resolver
}

// Load discovers anim and registers it under id.
func (r *Registry) Load(id string, anim ports.Animation) (*Instance, error) {
	inst, err := NewInstance(id, anim, r.discoverer, r.log)
	if err != nil {
		return nil, err
	}
	r.Register(inst)
	return inst, nil
}

// Register stores inst under its id. An existing instance with the same id
// is closed and replaced; replaced reports whether that happened.
func (r *Registry) Register(inst *Instance) (replaced bool) {
	r.mu.Lock()
	prev, exists := r.instances[inst.ID]
	r.instances[inst.ID] = inst
	r.mu.Unlock()

	if exists && prev != inst {
		r.log.Warn("replacing registered instance", "instance", inst.ID)
		prev.Close()
		return true
	}
	r.log.Debug("registered instance", "instance", inst.ID, "properties", len(inst.Graph()))
	return false
}

// Deregister tears down and removes the instance. Unknown ids are a no-op.
func (r *Registry) Deregister(id string) bool {
	r.mu.Lock()
	inst, ok := r.instances[id]
	delete(r.instances, id)
	r.mu.Unlock()

	if !ok {
		r.log.Debug("deregister of unknown instance", "instance", id)
		return false
	}
	inst.Close()
	r.log.Debug("deregistered instance", "instance", id)
	return true
}

// Get returns the instance registered under id
func (r *Registry) Get(id string) (*Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[id]
	return inst, ok
}

// IDs returns the registered ids in sorted order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.instances))
	for id := range r.instances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// UpdateProperty sets a top-level property by name.
func (r *Registry) UpdateProperty(id, name string, value any) bool {
	return r.report(id, name, r.update(id, name, value, false))
}

// UpdateNestedProperty sets the property at a '/' or '.' delimited path.
func (r *Registry) UpdateNestedProperty(id, path string, value any) bool {
	return r.report(id, path, r.update(id, path, value, true))
}

// SetProperty is UpdateNestedProperty with the failure cause returned.
// Errors match ErrNotFound, ErrKindMismatch, ErrReadOnly or
// ErrNativeRejection. A color fallback is not an error.
func (r *Registry) SetProperty(id, path string, value any) error {
	return r.update(id, path, value, true)
}

func (r *Registry) report(id, path string, err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, ErrNotFound) {
		r.log.Debug("update failed", "instance", id, "path", path, "error", err)
	} else {
		r.log.Warn("update failed", "instance", id, "path", path, "error", err)
	}
	return false
}

func (r *Registry) update(id, path string, value any, nested bool) error {
	inst, ok := r.Get(id)
	if !ok {
		return &NotFoundError{InstanceID: id}
	}
	err := r.apply(inst, path, value, nested)
	r.drain(inst)
	return err
}

func (r *Registry) apply(inst *Instance, path string, value any, nested bool) (err error) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	defer recoverNative(path, &err)
	if inst.closed {
		return fmt.Errorf("%s: %w", inst.ID, ErrClosed)
	}

	node, ok := r.lookup(inst, path, nested)
	if !ok {
		return &NotFoundError{InstanceID: inst.ID, Path: path}
	}

	v, err := domain.Normalize(node.Kind, value)
	if err != nil {
		if !errors.Is(err, domain.ErrNormalizationFallback) {
			return fmt.Errorf("%s: %w", node.FullPath, err)
		}
		inst.log.Warn("applying default value", "path", node.FullPath, "error", err)
	}

	if err := applyValue(node, v); err != nil {
		if errors.Is(err, domain.ErrReadOnly) {
			return err
		}
		return &NativeError{Path: node.FullPath, Err: err}
	}
	if storesValue(v) {
		node.Value = v
	}
	return nil
}

// recoverNative converts a panic raised by an engine setter into a
// NativeError stored in *err.
func recoverNative(path string, err *error) {
	if r := recover(); r != nil {
		*err = &NativeError{Path: path, Err: fmt.Errorf("engine panic: %v", r)}
	}
}

// lookup resolves path in inst. Caller holds inst.mu.
func (r *Registry) lookup(inst *Instance, path string, nested bool) (*domain.PropertyNode, bool) {
	if !nested {
		return domain.FindByName(inst.graph, path)
	}
	return r.resolver.Resolve(inst, path)
}

// GetPropertyValue returns the last known value at path (a top-level name
// or a nested path). ok is false for unknown instances or paths; a nil
// value with ok true is a write-only or not yet materialized property.
func (r *Registry) GetPropertyValue(id, path string) (domain.Value, bool) {
	inst, ok := r.Get(id)
	if !ok {
		r.log.Debug("query of unknown instance", "instance", id)
		return nil, false
	}
	r.drain(inst)

	inst.mu.Lock()
	defer inst.mu.Unlock()
	node, ok := r.resolver.Resolve(inst, path)
	if !ok {
		r.log.Debug("query of unknown property", "instance", id, "path", path)
		return nil, false
	}
	return node.Value, true
}

// GetAllPropertyValues returns a snapshot of every materialized value in
// the instance keyed by full path. It is nil for unknown instances.
func (r *Registry) GetAllPropertyValues(id string) map[string]domain.Value {
	inst, ok := r.Get(id)
	if !ok {
		return nil
	}
	r.drain(inst)

	inst.mu.Lock()
	defer inst.mu.Unlock()
	values := make(map[string]domain.Value)
	domain.WalkGraph(inst.graph, func(n *domain.PropertyNode) bool {
		if n.Value != nil {
			values[n.FullPath] = n.Value
		}
		return true
	})
	return values
}

// Node returns the node at path for read-only inspection.
func (r *Registry) Node(id, path string) (*domain.PropertyNode, bool) {
	inst, ok := r.Get(id)
	if !ok {
		return nil, false
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return r.resolver.Resolve(inst, path)
}

// CacheStats reports the instance count and aggregate path cache size.
func (r *Registry) CacheStats() domain.CacheStats {
	r.mu.RLock()
	instances := make([]*Instance, 0, len(r.instances))
	for _, inst := range r.instances {
		instances = append(instances, inst)
	}
	r.mu.RUnlock()

	stats := domain.CacheStats{
		InstanceCount: len(instances),
		PerInstance:   make(map[string]int, len(instances)),
	}
	for _, inst := range instances {
		n := inst.CachedPaths()
		stats.PerInstance[inst.ID] = n
		stats.TotalCachedPaths += n
	}
	return stats
}

// ClearCache drops the memoized paths of one instance.
func (r *Registry) ClearCache(id string) bool {
	inst, ok := r.Get(id)
	if !ok {
		return false
	}
	inst.ClearCache()
	return true
}

// Drain applies queued engine notifications of every instance to the
// graph and forwards them to the host callbacks. It returns the number of
// notifications delivered.
func (r *Registry) Drain() int {
	r.mu.RLock()
	instances := make([]*Instance, 0, len(r.instances))
	for _, inst := range r.instances {
		instances = append(instances, inst)
	}
	r.mu.RUnlock()

	total := 0
	for _, inst := range instances {
		total += r.drain(inst)
	}
	return total
}

func (r *Registry) drain(inst *Instance) int {
	items := inst.queue.take()
	if len(items) == 0 {
		return 0
	}

	inst.mu.Lock()
	if inst.closed {
		inst.mu.Unlock()
		return 0
	}
	for _, p := range items {
		if p.node != nil && storesValue(p.change.Value) {
			p.node.Value = p.change.Value
		}
	}
	inst.mu.Unlock()

	for _, p := range items {
		switch {
		case p.state != nil:
			if r.onState != nil {
				r.onState(*p.state)
			}
		case r.onChange != nil:
			r.onChange(p.change)
		}
	}
	return len(items)
}

// BeginAssetLoad opens a new load generation for an asset target: a
// property path, or "" for the instance's intercepted slot of kind.
func (r *Registry) BeginAssetLoad(id, target string, kind domain.Kind) (uint64, error) {
	inst, ok := r.Get(id)
	if !ok {
		return 0, &NotFoundError{InstanceID: id}
	}
	return inst.beginAssetLoad(assetKey(target, kind)), nil
}

// ApplyAsset hands a decoded asset to the engine if gen is still the newest
// load for the target; otherwise it returns ErrSuperseded. The most
// recently started load wins even if an older one completes later.
func (r *Registry) ApplyAsset(id, target string, gen uint64, asset domain.Asset) (err error) {
	inst, ok := r.Get(id)
	if !ok {
		return &NotFoundError{InstanceID: id}
	}
	defer r.drain(inst)

	inst.mu.Lock()
	defer inst.mu.Unlock()
	defer recoverNative(assetKey(target, asset.AssetKind), &err)
	if inst.closed {
		return fmt.Errorf("%s: %w", id, ErrClosed)
	}
	if inst.assetGen[assetKey(target, asset.AssetKind)] != gen {
		return fmt.Errorf("%s %s: %w", id, assetKey(target, asset.AssetKind), ErrSuperseded)
	}

	if target == "" {
		slot := inst.assetSlot(asset.AssetKind)
		if slot == nil {
			return &NotFoundError{InstanceID: id, Path: "@" + asset.AssetKind.String()}
		}
		if err := slot.SetAsset(asset); err != nil {
			return &NativeError{Path: slot.Name(), Err: err}
		}
		return nil
	}

	node, ok := r.resolver.Resolve(inst, target)
	if !ok {
		return &NotFoundError{InstanceID: id, Path: target}
	}
	v, err := domain.Normalize(node.Kind, asset)
	if err != nil {
		return fmt.Errorf("%s: %w", node.FullPath, err)
	}
	if err := applyValue(node, v); err != nil {
		return &NativeError{Path: node.FullPath, Err: err}
	}
	node.Value = v
	return nil
}

func assetKey(target string, kind domain.Kind) string {
	if target == "" {
		return "@" + kind.String()
	}
	return domain.NormalizePath(target)
}
