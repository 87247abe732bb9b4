// Package memengine is an in-process animation engine. It implements the
// engine ports with plain Go values so the binding layer, the tools and the
// tests can run without a native runtime.
package memengine

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"artbind/internal/domain"
	"artbind/internal/ports"
)

// ViewModel is a named, ordered set of properties
type ViewModel struct {
	name  string
	props []*property
}

type property struct {
	name   string
	kind   domain.Kind
	handle any
	broken error
}

var _ ports.ViewModel = (*ViewModel)(nil)

// Prop adds one property to a ViewModel under construction
type Prop func(vm *ViewModel)

// NewViewModel builds a ViewModel from its properties, in order
func NewViewModel(name string, props ...Prop) *ViewModel {
	vm := &ViewModel{name: name}
	for _, p := range props {
		p(vm)
	}
	return vm
}

func (vm *ViewModel) add(name string, kind domain.Kind, handle any) {
	vm.props = append(vm.props, &property{name: name, kind: kind, handle: handle})
}

func Number(name string, v float64) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindNumber, &valueProp[float64]{name: name, value: v})
	}
}

func Integer(name string, v int) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindInteger, &valueProp[float64]{name: name, value: float64(v)})
	}
}

// SymbolIndex adds an index into a symbol list
func SymbolIndex(name string, v int) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindSymbolListIndex, &valueProp[float64]{name: name, value: float64(v)})
	}
}

func Bool(name string, v bool) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindBoolean, &valueProp[bool]{name: name, value: v})
	}
}

func Text(name, v string) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindString, &valueProp[string]{name: name, value: v})
	}
}

func ColorProp(name string, c domain.Color) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindColor, &valueProp[domain.Color]{name: name, value: c})
	}
}

// Enum adds an enum property. Setting a value outside options fails.
func Enum(name, value string, options ...string) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindEnum, newEnumProp(name, value, options))
	}
}

func Trigger(name string) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindTrigger, &triggerProp{name: name})
	}
}

func Image(name string) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindImage, &assetProp{name: name, kind: domain.KindImage})
	}
}

func Font(name string) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindFont, &assetProp{name: name, kind: domain.KindFont})
	}
}

// ArtboardRef adds an embedded artboard binding. When allowed is non-empty
// only those names can be bound.
func ArtboardRef(name, current string, allowed ...string) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindArtboard, &artboardProp{name: name, current: current, allowed: allowed})
	}
}

func Nested(name string, nested *ViewModel) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindViewModel, nested)
	}
}

func List(name string, items ...*ViewModel) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindList, &listProp{name: name, items: items})
	}
}

// Unclassified adds a property whose kind the engine does not report
func Unclassified(name string) Prop {
	return func(vm *ViewModel) {
		vm.add(name, domain.KindNone, nil)
	}
}

// Broken adds a property that is enumerated but whose accessor fails with
// err. A nil err makes the accessor panic instead.
func Broken(name string, kind domain.Kind, err error) Prop {
	return func(vm *ViewModel) {
		vm.props = append(vm.props, &property{name: name, kind: kind, broken: err})
		if err == nil {
			vm.props[len(vm.props)-1].broken = errPanic
		}
	}
}

var errPanic = errors.New("panic")

func (vm *ViewModel) Name() string { return vm.name }

func (vm *ViewModel) Properties() []ports.PropertyDescriptor {
	out := make([]ports.PropertyDescriptor, len(vm.props))
	for i, p := range vm.props {
		out[i] = ports.PropertyDescriptor{Name: p.name, Kind: p.kind}
	}
	return out
}

func (vm *ViewModel) lookup(name string, kinds ...domain.Kind) (*property, error) {
	i := slices.IndexFunc(vm.props, func(p *property) bool { return p.name == name })
	if i < 0 {
		return nil, fmt.Errorf("%s has no property %q", vm.name, name)
	}
	p := vm.props[i]
	if p.broken != nil {
		if p.broken == errPanic {
			panic(fmt.Sprintf("accessor for %s.%s crashed", vm.name, name))
		}
		return nil, p.broken
	}
	if !slices.Contains(kinds, p.kind) {
		return nil, fmt.Errorf("%s.%s is a %s property", vm.name, name, p.kind)
	}
	return p, nil
}

func handleOf[H any](vm *ViewModel, name string, kinds ...domain.Kind) (H, error) {
	var zero H
	p, err := vm.lookup(name, kinds...)
	if err != nil {
		return zero, err
	}
	h, ok := p.handle.(H)
	if !ok {
		return zero, fmt.Errorf("%s.%s: unexpected handle %T", vm.name, name, p.handle)
	}
	return h, nil
}

func (vm *ViewModel) Number(name string) (ports.NumberProperty, error) {
	return handleOf[ports.NumberProperty](vm, name, domain.KindNumber, domain.KindInteger, domain.KindSymbolListIndex)
}

func (vm *ViewModel) Boolean(name string) (ports.BooleanProperty, error) {
	return handleOf[ports.BooleanProperty](vm, name, domain.KindBoolean)
}

func (vm *ViewModel) String(name string) (ports.StringProperty, error) {
	return handleOf[ports.StringProperty](vm, name, domain.KindString)
}

func (vm *ViewModel) Color(name string) (ports.ColorProperty, error) {
	return handleOf[ports.ColorProperty](vm, name, domain.KindColor)
}

func (vm *ViewModel) Enum(name string) (ports.EnumProperty, error) {
	return handleOf[ports.EnumProperty](vm, name, domain.KindEnum)
}

func (vm *ViewModel) Trigger(name string) (ports.TriggerProperty, error) {
	return handleOf[ports.TriggerProperty](vm, name, domain.KindTrigger)
}

func (vm *ViewModel) Image(name string) (ports.AssetProperty, error) {
	return handleOf[ports.AssetProperty](vm, name, domain.KindImage)
}

func (vm *ViewModel) Font(name string) (ports.AssetProperty, error) {
	return handleOf[ports.AssetProperty](vm, name, domain.KindFont)
}

func (vm *ViewModel) ViewModel(name string) (ports.ViewModel, error) {
	return handleOf[ports.ViewModel](vm, name, domain.KindViewModel)
}

func (vm *ViewModel) List(name string) (ports.ListProperty, error) {
	return handleOf[ports.ListProperty](vm, name, domain.KindList)
}

func (vm *ViewModel) Artboard(name string) (ports.ArtboardProperty, error) {
	return handleOf[ports.ArtboardProperty](vm, name, domain.KindArtboard)
}

// Trip fires the named trigger as the engine would
func (vm *ViewModel) Trip(name string) error {
	t, err := handleOf[*triggerProp](vm, name, domain.KindTrigger)
	if err != nil {
		return err
	}
	return t.Fire()
}

// Fired returns how many times the named trigger has fired
func (vm *ViewModel) Fired(name string) int {
	t, err := handleOf[*triggerProp](vm, name, domain.KindTrigger)
	if err != nil {
		return 0
	}
	return t.Fired()
}

// AssetOf returns the asset bound to an image or font property
func (vm *ViewModel) AssetOf(name string) (domain.Asset, bool) {
	a, err := handleOf[*assetProp](vm, name, domain.KindImage, domain.KindFont)
	if err != nil {
		return domain.Asset{}, false
	}
	return a.current()
}

// BoundArtboard returns the artboard name bound to an artboard property
func (vm *ViewModel) BoundArtboard(name string) string {
	a, err := handleOf[*artboardProp](vm, name, domain.KindArtboard)
	if err != nil {
		return ""
	}
	return a.bound()
}

// ListenerCount returns the number of attached listeners in the whole tree,
// nested ViewModels and list items included.
func (vm *ViewModel) ListenerCount() int {
	n := 0
	for _, p := range vm.props {
		switch h := p.handle.(type) {
		case *valueProp[float64]:
			n += h.subs.count()
		case *valueProp[bool]:
			n += h.subs.count()
		case *valueProp[string]:
			n += h.subs.count()
		case *valueProp[domain.Color]:
			n += h.subs.count()
		case *enumProp:
			n += h.subs.count()
		case *triggerProp:
			n += h.subs.count()
		case *ViewModel:
			n += h.ListenerCount()
		case *listProp:
			for _, item := range h.items {
				n += item.ListenerCount()
			}
		}
	}
	return n
}

// resolve finds a property by '/' or '.' delimited path, descending
// through nested ViewModels and list items.
func (vm *ViewModel) resolve(path string) (*property, error) {
	segments := domain.SplitPath(path)
	if len(segments) == 0 {
		return nil, fmt.Errorf("empty path")
	}
	cur := vm
	for i := 0; i < len(segments); i++ {
		seg := segments[i]
		idx := slices.IndexFunc(cur.props, func(p *property) bool { return p.name == seg })
		if idx < 0 {
			return nil, fmt.Errorf("%s has no property %q", cur.name, seg)
		}
		p := cur.props[idx]
		if i == len(segments)-1 {
			return p, nil
		}
		switch h := p.handle.(type) {
		case *ViewModel:
			cur = h
		case *listProp:
			i++
			if i == len(segments)-1 {
				return nil, fmt.Errorf("%s: path ends at a list item", path)
			}
			item, err := h.pick(segments[i])
			if err != nil {
				return nil, err
			}
			cur = item
		default:
			return nil, fmt.Errorf("%s: %s is not a container", path, seg)
		}
	}
	return nil, fmt.Errorf("%s: unresolved", path)
}

func (l *listProp) pick(seg string) (*ViewModel, error) {
	for i, item := range l.items {
		if strconv.Itoa(i) == seg || item.name == seg {
			return item, nil
		}
	}
	return nil, fmt.Errorf("%s has no item %q", l.name, seg)
}
