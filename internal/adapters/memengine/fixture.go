package memengine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"artbind/internal/domain"
	"artbind/internal/ports"
)

// Fixture is the YAML description of an animation
type Fixture struct {
	Name         string            `yaml:"name"`
	Artboard     string            `yaml:"artboard"`
	ViewModel    *ViewModelFixture `yaml:"viewModel"`
	StateMachine *MachineFixture   `yaml:"stateMachine"`
	Assets       []AssetFixture    `yaml:"assets"`
	Timelines    []TimelineFixture `yaml:"timelines"`
}

type ViewModelFixture struct {
	Name       string            `yaml:"name"`
	Properties []PropertyFixture `yaml:"properties"`
}

type PropertyFixture struct {
	Name       string             `yaml:"name"`
	Kind       string             `yaml:"kind"`
	Value      any                `yaml:"value"`
	Options    []string           `yaml:"options"`
	Artboards  []string           `yaml:"artboards"`
	Properties []PropertyFixture  `yaml:"properties"`
	Items      []ViewModelFixture `yaml:"items"`
}

type MachineFixture struct {
	Name        string              `yaml:"name"`
	State       string              `yaml:"state"`
	Inputs      []InputFixture      `yaml:"inputs"`
	Transitions []TransitionFixture `yaml:"transitions"`
}

type InputFixture struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Value any    `yaml:"value"`
}

type TransitionFixture struct {
	Input      string         `yaml:"input"`
	When       any            `yaml:"when"`
	To         string         `yaml:"to"`
	Event      string         `yaml:"event"`
	Properties map[string]any `yaml:"properties"`
}

type AssetFixture struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type TimelineFixture struct {
	Path     string  `yaml:"path"`
	To       any     `yaml:"to"`
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease"`
	Loop     bool    `yaml:"loop"`
}

// Parse builds an animation from fixture YAML
func Parse(data []byte) (*Animation, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return f.Build()
}

// Build assembles the animation the fixture describes
func (f *Fixture) Build() (*Animation, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("fixture has no name")
	}

	var opts []AnimationOption
	if f.ViewModel != nil {
		vm, err := buildViewModel(*f.ViewModel, f.ViewModel.Name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithViewModel(vm))
	}

	if f.StateMachine != nil {
		sm, err := f.StateMachine.build()
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithStateMachine(sm))
	}

	for _, a := range f.Assets {
		kind := domain.ParseKind(a.Kind)
		if kind != domain.KindImage && kind != domain.KindFont {
			return nil, fmt.Errorf("asset %q: kind must be image or font, got %q", a.Name, a.Kind)
		}
		opts = append(opts, WithAssetSlots(NewAssetSlot(a.Name, kind)))
	}

	timelines := make([]Timeline, 0, len(f.Timelines))
	for _, t := range f.Timelines {
		if _, err := ParseEase(t.Ease); err != nil {
			return nil, fmt.Errorf("timeline %s: %w", t.Path, err)
		}
		timelines = append(timelines, Timeline{
			Path:     t.Path,
			To:       t.To,
			Duration: t.Duration,
			Ease:     t.Ease,
			Loop:     t.Loop,
		})
	}
	board := f.Artboard
	if board == "" {
		board = f.Name
	}
	opts = append(opts, WithArtboard(board, timelines...))

	return NewAnimation(f.Name, opts...), nil
}

func buildViewModel(f ViewModelFixture, fallbackName string) (*ViewModel, error) {
	name := f.Name
	if name == "" {
		name = fallbackName
	}
	props := make([]Prop, 0, len(f.Properties))
	for _, p := range f.Properties {
		prop, err := p.build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		props = append(props, prop)
	}
	return NewViewModel(name, props...), nil
}

func (p PropertyFixture) build() (Prop, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("property without a name")
	}
	kind := domain.ParseKind(p.Kind)

	switch kind {
	case domain.KindNone:
		return Unclassified(p.Name), nil

	case domain.KindViewModel:
		vm, err := buildViewModel(ViewModelFixture{Properties: p.Properties}, p.Name)
		if err != nil {
			return nil, err
		}
		return Nested(p.Name, vm), nil

	case domain.KindList:
		items := make([]*ViewModel, 0, len(p.Items))
		for i, item := range p.Items {
			vm, err := buildViewModel(item, fmt.Sprintf("%s[%d]", p.Name, i))
			if err != nil {
				return nil, err
			}
			items = append(items, vm)
		}
		return List(p.Name, items...), nil

	case domain.KindTrigger:
		return Trigger(p.Name), nil
	case domain.KindImage:
		return Image(p.Name), nil
	case domain.KindFont:
		return Font(p.Name), nil
	}

	v, err := initialValue(kind, p.Value)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", p.Name, err)
	}

	switch v := v.(type) {
	case domain.NumberValue:
		return Number(p.Name, float64(v)), nil
	case domain.IntegerValue:
		return Integer(p.Name, int(v)), nil
	case domain.SymbolIndexValue:
		return SymbolIndex(p.Name, int(v)), nil
	case domain.BooleanValue:
		return Bool(p.Name, bool(v)), nil
	case domain.StringValue:
		return Text(p.Name, string(v)), nil
	case domain.Color:
		return ColorProp(p.Name, v), nil
	case domain.EnumValue:
		value := string(v)
		if value == "" && len(p.Options) > 0 {
			value = p.Options[0]
		}
		return Enum(p.Name, value, p.Options...), nil
	case domain.ArtboardValue:
		return ArtboardRef(p.Name, string(v), p.Artboards...), nil
	}
	return nil, fmt.Errorf("property %s: unsupported kind %q", p.Name, p.Kind)
}

// initialValue normalizes a declared value; an omitted value takes the
// kind's zero.
func initialValue(kind domain.Kind, raw any) (domain.Value, error) {
	if raw == nil {
		switch kind {
		case domain.KindBoolean:
			raw = false
		case domain.KindString, domain.KindEnum, domain.KindArtboard:
			raw = ""
		case domain.KindColor:
			raw = uint32(0)
		default:
			raw = 0
		}
	}
	v, err := domain.Normalize(kind, raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (m *MachineFixture) build() (*StateMachine, error) {
	inputs := make([]Input, 0, len(m.Inputs))
	for _, in := range m.Inputs {
		kind := domain.ParseKind(in.Kind)
		switch kind {
		case domain.KindTrigger, domain.KindBoolean, domain.KindNumber:
		default:
			return nil, fmt.Errorf("input %q: kind must be trigger, boolean or number", in.Name)
		}
		inputs = append(inputs, Input{Name: in.Name, Kind: kind, Value: in.Value})
	}
	transitions := make([]Transition, 0, len(m.Transitions))
	for _, t := range m.Transitions {
		transitions = append(transitions, Transition{
			Input:      t.Input,
			When:       t.When,
			To:         t.To,
			Event:      t.Event,
			Properties: t.Properties,
		})
	}
	return NewStateMachine(m.Name, m.State, inputs, transitions...), nil
}

// Loader loads fixture files. Sources without an extension are looked up
// as <name>.yaml in Dir.
type Loader struct {
	Dir string
}

var _ ports.Loader = (*Loader)(nil)

func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

func (l *Loader) Load(ctx context.Context, source string) (ports.Animation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := source
	if filepath.Ext(path) == "" {
		path = filepath.Join(l.Dir, path+".yaml")
	} else if !filepath.IsAbs(path) && l.Dir != "" && !strings.HasPrefix(path, ".") {
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(l.Dir, path)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", source, err)
	}
	anim, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return anim, nil
}
