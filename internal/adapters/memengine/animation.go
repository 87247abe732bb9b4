package memengine

import (
	"fmt"
	"sync"

	"artbind/internal/domain"
	"artbind/internal/ports"
)

// Animation is a loaded in-memory animation
type Animation struct {
	name     string
	artboard *Artboard
	vm       *ViewModel
	machine  *StateMachine
	slots    []*AssetSlot
}

var _ ports.Animation = (*Animation)(nil)

// AnimationOption configures an Animation
type AnimationOption func(*Animation)

func WithViewModel(vm *ViewModel) AnimationOption {
	return func(a *Animation) { a.vm = vm }
}

func WithStateMachine(sm *StateMachine) AnimationOption {
	return func(a *Animation) { a.machine = sm }
}

// WithArtboard names the artboard and adds timelines to it
func WithArtboard(name string, timelines ...Timeline) AnimationOption {
	return func(a *Animation) {
		a.artboard = NewArtboard(name, nil, timelines...)
	}
}

// WithAssetSlots declares referenced assets the host must provide
func WithAssetSlots(slots ...*AssetSlot) AnimationOption {
	return func(a *Animation) { a.slots = append(a.slots, slots...) }
}

// NewAnimation assembles an animation. Without WithArtboard the artboard
// takes the animation's name.
func NewAnimation(name string, opts ...AnimationOption) *Animation {
	a := &Animation{name: name}
	for _, opt := range opts {
		opt(a)
	}
	if a.artboard == nil {
		a.artboard = NewArtboard(name, nil)
	}
	a.artboard.vm = a.vm
	return a
}

func (a *Animation) Name() string { return a.name }

func (a *Animation) Artboard() ports.Artboard { return a.artboard }

func (a *Animation) ViewModel() (ports.ViewModel, bool) {
	if a.vm == nil {
		return nil, false
	}
	return a.vm, true
}

func (a *Animation) StateMachine() (ports.StateMachine, bool) {
	if a.machine == nil {
		return nil, false
	}
	return a.machine, true
}

func (a *Animation) Assets() []ports.AssetSlot {
	out := make([]ports.AssetSlot, len(a.slots))
	for i, s := range a.slots {
		out[i] = s
	}
	return out
}

// Model returns the concrete ViewModel, nil without data binding
func (a *Animation) Model() *ViewModel { return a.vm }

// Machine returns the concrete state machine, nil without one
func (a *Animation) Machine() *StateMachine { return a.machine }

// Board returns the concrete artboard
func (a *Animation) Board() *Artboard { return a.artboard }

// AssetSlot is a referenced image or font intercepted at load time
type AssetSlot struct {
	name string
	kind domain.Kind

	mu    sync.Mutex
	asset *domain.Asset
	loads int
}

var _ ports.AssetSlot = (*AssetSlot)(nil)

func NewAssetSlot(name string, kind domain.Kind) *AssetSlot {
	return &AssetSlot{name: name, kind: kind}
}

func (s *AssetSlot) Name() string      { return s.name }
func (s *AssetSlot) Kind() domain.Kind { return s.kind }

func (s *AssetSlot) SetAsset(a domain.Asset) error {
	if a.AssetKind != s.kind {
		return fmt.Errorf("%s expects a %s asset, got %s", s.name, s.kind, a.AssetKind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asset = &a
	s.loads++
	return nil
}

// Current returns the last asset handed to the slot
func (s *AssetSlot) Current() (domain.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.asset == nil {
		return domain.Asset{}, false
	}
	return *s.asset, true
}

// Loads returns how many assets the slot has accepted
func (s *AssetSlot) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}
