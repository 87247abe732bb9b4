package memengine

import (
	"fmt"
	"slices"
	"sync"

	"artbind/internal/domain"
	"artbind/internal/ports"
)

type listener[F any] struct {
	id int
	fn F
}

// listeners is an ordered listener list; removal keeps the order of the rest
type listeners[F any] struct {
	mu     sync.Mutex
	nextID int
	items  []listener[F]
}

func (l *listeners[F]) add(fn F) (remove func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.items = append(l.items, listener[F]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			l.items = slices.DeleteFunc(l.items, func(x listener[F]) bool { return x.id == id })
		})
	}
}

func (l *listeners[F]) snapshot() []F {
	l.mu.Lock()
	defer l.mu.Unlock()
	fns := make([]F, len(l.items))
	for i, x := range l.items {
		fns[i] = x.fn
	}
	return fns
}

func (l *listeners[F]) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// valueProp implements ports.ValueProperty. Listeners run synchronously
// after a set that changed the value.
type valueProp[T comparable] struct {
	name     string
	validate func(T) error

	mu    sync.Mutex
	value T
	subs  listeners[func(T)]
}

func (p *valueProp[T]) Name() string { return p.name }

func (p *valueProp[T]) Value() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *valueProp[T]) SetValue(v T) error {
	if p.validate != nil {
		if err := p.validate(v); err != nil {
			return err
		}
	}
	p.mu.Lock()
	if p.value == v {
		p.mu.Unlock()
		return nil
	}
	p.value = v
	p.mu.Unlock()

	for _, fn := range p.subs.snapshot() {
		fn(v)
	}
	return nil
}

func (p *valueProp[T]) AddListener(fn func(T)) (remove func()) {
	return p.subs.add(fn)
}

type enumProp struct {
	*valueProp[string]
	options []string
}

func newEnumProp(name, value string, options []string) *enumProp {
	e := &enumProp{options: options}
	e.valueProp = &valueProp[string]{
		name:  name,
		value: value,
		validate: func(v string) error {
			if !slices.Contains(options, v) {
				return fmt.Errorf("%q is not an option of %s (%v)", v, name, options)
			}
			return nil
		},
	}
	return e
}

func (e *enumProp) Options() []string {
	return slices.Clone(e.options)
}

type triggerProp struct {
	name  string
	subs  listeners[func()]
	mu    sync.Mutex
	fired int
}

func (t *triggerProp) Name() string { return t.name }

func (t *triggerProp) Fire() error {
	t.mu.Lock()
	t.fired++
	t.mu.Unlock()
	for _, fn := range t.subs.snapshot() {
		fn()
	}
	return nil
}

func (t *triggerProp) AddListener(fn func()) (remove func()) {
	return t.subs.add(fn)
}

// Fired returns how many times the trigger has fired
func (t *triggerProp) Fired() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

type assetProp struct {
	name string
	kind domain.Kind

	mu    sync.Mutex
	asset *domain.Asset
}

func (a *assetProp) Name() string { return a.name }

func (a *assetProp) SetAsset(asset domain.Asset) error {
	if asset.AssetKind != a.kind {
		return fmt.Errorf("%s expects a %s asset, got %s", a.name, a.kind, asset.AssetKind)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.asset = &asset
	return nil
}

func (a *assetProp) current() (domain.Asset, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.asset == nil {
		return domain.Asset{}, false
	}
	return *a.asset, true
}

type artboardProp struct {
	name    string
	allowed []string

	mu      sync.Mutex
	current string
}

func (a *artboardProp) Name() string { return a.name }

func (a *artboardProp) SetArtboard(name string) error {
	if len(a.allowed) > 0 && !slices.Contains(a.allowed, name) {
		return fmt.Errorf("no artboard named %q", name)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = name
	return nil
}

func (a *artboardProp) bound() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

type listProp struct {
	name  string
	items []*ViewModel
}

func (l *listProp) Name() string { return l.name }

func (l *listProp) Len() int { return len(l.items) }

func (l *listProp) Item(index int) (ports.ViewModel, error) {
	if index < 0 || index >= len(l.items) {
		return nil, fmt.Errorf("%s: index %d out of range [0,%d)", l.name, index, len(l.items))
	}
	return l.items[index], nil
}
