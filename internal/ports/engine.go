package ports

import (
	"context"

	"artbind/internal/domain"
)

// Loader loads an animation file from a source (path, URL or fixture name)
type Loader interface {
	Load(ctx context.Context, source string) (Animation, error)
}

// Animation is one loaded animation as exposed by the engine
type Animation interface {
	Name() string
	Artboard() Artboard
	// ViewModel returns the bound ViewModel instance. ok is false when the
	// animation has no data binding.
	ViewModel() (vm ViewModel, ok bool)
	StateMachine() (sm StateMachine, ok bool)
	// Assets returns the referenced image/font assets the engine asked the
	// host to provide while loading.
	Assets() []AssetSlot
}

// PropertyDescriptor names one property of a ViewModel
type PropertyDescriptor struct {
	Name string
	Kind domain.Kind
}

// ViewModel is an enumerable property tree with typed accessors.
// Accessors return an error when the property is missing or of another kind.
type ViewModel interface {
	Name() string
	Properties() []PropertyDescriptor

	Number(name string) (NumberProperty, error)
	Boolean(name string) (BooleanProperty, error)
	String(name string) (StringProperty, error)
	Color(name string) (ColorProperty, error)
	Enum(name string) (EnumProperty, error)
	Trigger(name string) (TriggerProperty, error)
	Image(name string) (AssetProperty, error)
	Font(name string) (AssetProperty, error)
	ViewModel(name string) (ViewModel, error)
	List(name string) (ListProperty, error)
	Artboard(name string) (ArtboardProperty, error)
}

// Handle is the common surface of every property handle
type Handle interface {
	Name() string
}

// ValueProperty is a gettable, settable, observable property. AddListener
// returns a function that removes the listener; listeners may be invoked
// from any goroutine.
type ValueProperty[T any] interface {
	Handle
	Value() T
	SetValue(v T) error
	AddListener(fn func(T)) (remove func())
}

// Integer and symbol-index properties share the numeric representation
type (
	NumberProperty  = ValueProperty[float64]
	BooleanProperty = ValueProperty[bool]
	StringProperty  = ValueProperty[string]
	ColorProperty   = ValueProperty[domain.Color]
)

// EnumProperty is a string property restricted to declared options
type EnumProperty interface {
	ValueProperty[string]
	Options() []string
}

// TriggerProperty is write-only; listeners fire on every trigger edge
type TriggerProperty interface {
	Handle
	Fire() error
	AddListener(fn func()) (remove func())
}

// AssetProperty accepts a decoded image or font
type AssetProperty interface {
	Handle
	SetAsset(a domain.Asset) error
}

// ListProperty exposes list items as nested ViewModels
type ListProperty interface {
	Handle
	Len() int
	Item(index int) (ViewModel, error)
}

// ArtboardProperty rebinds an embedded artboard by name
type ArtboardProperty interface {
	Handle
	SetArtboard(name string) error
}

// InputDescriptor names one state machine input
type InputDescriptor struct {
	Name string
	Kind domain.Kind // KindTrigger, KindBoolean or KindNumber
}

// StateMachine is the running state machine of an animation
type StateMachine interface {
	Name() string
	Inputs() []InputDescriptor
	FireTrigger(name string) error
	SetBoolean(name string, v bool) error
	SetNumber(name string, v float64) error
	InputValue(name string) (any, error)
	CurrentState() string
	// OnEvent registers a listener for fired events and returns its remover.
	OnEvent(fn func(domain.StateEvent)) (remove func())
}

// Artboard is the draw/advance primitive. Drawing is left to the host.
type Artboard interface {
	Name() string
	// Advance moves time forward by dt seconds and reports whether anything
	// is still animating.
	Advance(dt float64) bool
}

// AssetSlot is a referenced asset intercepted at load time, waiting for
// decoded bytes
type AssetSlot interface {
	Name() string
	Kind() domain.Kind
	SetAsset(a domain.Asset) error
}
