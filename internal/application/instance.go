package application

import (
	"fmt"
	"log/slog"
	"sync"

	"artbind/internal/domain"
	"artbind/internal/ports"
)

// Instance is the live state of one loaded animation
type Instance struct {
	ID string

	animation ports.Animation
	log       *slog.Logger
	queue     *eventQueue

	mu         sync.Mutex
	graph      []*domain.PropertyNode
	cache      map[string]*domain.PropertyNode
	machine    ports.StateMachine
	image      ports.AssetSlot
	font       ports.AssetSlot
	assetGen   map[string]uint64
	stopEvents func()
	closed     bool
}

// NewInstance discovers anim's property graph and binds its listeners.
// An animation without a ViewModel gets an empty graph.
func NewInstance(id string, anim ports.Animation, d *Discoverer, log *slog.Logger) (*Instance, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := ValidateRequired("instanceID", id); err != nil {
		return nil, err
	}

	inst := &Instance{
		ID:        id,
		animation: anim,
		log:       log.With("instance", id),
		queue:     &eventQueue{},
		cache:     make(map[string]*domain.PropertyNode),
		assetGen:  make(map[string]uint64),
	}

	if vm, ok := anim.ViewModel(); ok {
		graph, err := d.Discover(vm, inst.enqueueChange)
		if err != nil {
			return nil, fmt.Errorf("discovering %s: %w", id, err)
		}
		inst.graph = graph
	}

	if sm, ok := anim.StateMachine(); ok {
		inst.machine = sm
		inst.stopEvents = sm.OnEvent(inst.enqueueStateEvent)
	}

	for _, slot := range anim.Assets() {
		switch slot.Kind() {
		case domain.KindImage:
			inst.image = slot
		case domain.KindFont:
			inst.font = slot
		}
	}

	return inst, nil
}

func (inst *Instance) enqueueChange(node *domain.PropertyNode, v domain.Value) {
	inst.queue.push(pending{
		node: node,
		change: domain.ChangeEvent{
			InstanceID: inst.ID,
			Path:       node.FullPath,
			Kind:       node.Kind,
			Value:      v,
		},
	})
}

func (inst *Instance) enqueueStateEvent(ev domain.StateEvent) {
	ev.InstanceID = inst.ID
	inst.queue.push(pending{state: &ev})
}

// Animation returns the engine animation backing the instance
func (inst *Instance) Animation() ports.Animation {
	return inst.animation
}

// StateMachine returns the bound state machine, if any
func (inst *Instance) StateMachine() (ports.StateMachine, bool) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.machine, inst.machine != nil
}

// Graph returns the top-level nodes. The slice is shared; node values
// must only be read through the registry.
func (inst *Instance) Graph() []*domain.PropertyNode {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.graph
}

// CachedPaths returns the number of memoized path resolutions
func (inst *Instance) CachedPaths() int {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return len(inst.cache)
}

// ClearCache drops every memoized path resolution.
func (inst *Instance) ClearCache() {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	clear(inst.cache)
}

// Closed reports whether Close has run
func (inst *Instance) Closed() bool {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.closed
}

// Close tears the instance down: every listener is detached, the path
// cache is cleared, asset slots are released and queued notifications are
// dropped. Calling Close twice is a no-op.
func (inst *Instance) Close() {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.closed {
		return
	}
	inst.closed = true

	for _, n := range inst.graph {
		n.Detach()
	}
	if inst.stopEvents != nil {
		inst.stopEvents()
		inst.stopEvents = nil
	}
	clear(inst.cache)
	inst.cache = nil
	inst.image = nil
	inst.font = nil
	inst.machine = nil
	inst.graph = nil
	inst.queue.close()
}

// assetSlot returns the intercepted slot for kind. Caller holds the lock.
func (inst *Instance) assetSlot(kind domain.Kind) ports.AssetSlot {
	switch kind {
	case domain.KindImage:
		return inst.image
	case domain.KindFont:
		return inst.font
	}
	return nil
}

// beginAssetLoad starts a new load generation for target.
func (inst *Instance) beginAssetLoad(target string) uint64 {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.assetGen[target]++
	return inst.assetGen[target]
}
