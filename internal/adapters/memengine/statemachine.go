package memengine

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"artbind/internal/domain"
	"artbind/internal/ports"
)

// Input declares a state machine input and its initial value
type Input struct {
	Name  string
	Kind  domain.Kind
	Value any
}

// Transition moves the machine to To when Input changes (or fires). When is
// compared with the new value for boolean and number inputs; nil matches
// any value. A non-empty Event is reported to listeners.
type Transition struct {
	Input string
	When  any
	To    string
	Event string
	// Properties are attached to the reported event
	Properties map[string]any
}

// StateMachine is a minimal input-driven state machine
type StateMachine struct {
	name        string
	transitions []Transition
	events      listeners[func(domain.StateEvent)]

	mu     sync.Mutex
	state  string
	inputs []*Input
}

var _ ports.StateMachine = (*StateMachine)(nil)

// NewStateMachine creates a machine starting in initial
func NewStateMachine(name, initial string, inputs []Input, transitions ...Transition) *StateMachine {
	sm := &StateMachine{name: name, state: initial, transitions: transitions}
	for _, in := range inputs {
		switch in.Kind {
		case domain.KindBoolean:
			if _, ok := in.Value.(bool); !ok {
				in.Value = false
			}
		case domain.KindNumber:
			f, _ := domain.ToFloat(in.Value)
			in.Value = f
		default:
			in.Value = nil
		}
		sm.inputs = append(sm.inputs, &in)
	}
	return sm
}

func (sm *StateMachine) Name() string { return sm.name }

func (sm *StateMachine) Inputs() []ports.InputDescriptor {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	out := make([]ports.InputDescriptor, len(sm.inputs))
	for i, in := range sm.inputs {
		out[i] = ports.InputDescriptor{Name: in.Name, Kind: in.Kind}
	}
	return out
}

func (sm *StateMachine) input(name string, kind domain.Kind) (*Input, error) {
	i := slices.IndexFunc(sm.inputs, func(in *Input) bool { return in.Name == name })
	if i < 0 {
		return nil, fmt.Errorf("state machine %s has no input %q", sm.name, name)
	}
	if sm.inputs[i].Kind != kind {
		return nil, fmt.Errorf("input %q is a %s, not a %s", name, sm.inputs[i].Kind, kind)
	}
	return sm.inputs[i], nil
}

func (sm *StateMachine) FireTrigger(name string) error {
	return sm.set(name, domain.KindTrigger, nil)
}

func (sm *StateMachine) SetBoolean(name string, v bool) error {
	return sm.set(name, domain.KindBoolean, v)
}

func (sm *StateMachine) SetNumber(name string, v float64) error {
	return sm.set(name, domain.KindNumber, v)
}

func (sm *StateMachine) set(name string, kind domain.Kind, v any) error {
	sm.mu.Lock()
	in, err := sm.input(name, kind)
	if err != nil {
		sm.mu.Unlock()
		return err
	}
	if kind != domain.KindTrigger {
		in.Value = v
	}

	var fired []domain.StateEvent
	for _, t := range sm.transitions {
		if t.Input != name || (t.When != nil && !matches(t.When, v)) {
			continue
		}
		if t.To != "" {
			sm.state = t.To
		}
		if t.Event != "" {
			fired = append(fired, domain.StateEvent{
				Name:         t.Event,
				CurrentState: sm.state,
				Properties:   maps.Clone(t.Properties),
			})
		}
	}
	sm.mu.Unlock()

	for _, ev := range fired {
		for _, fn := range sm.events.snapshot() {
			fn(ev)
		}
	}
	return nil
}

func matches(want, got any) bool {
	if b, ok := want.(bool); ok {
		g, ok := got.(bool)
		return ok && g == b
	}
	wf, ok1 := domain.ToFloat(want)
	gf, ok2 := domain.ToFloat(got)
	return ok1 && ok2 && wf == gf
}

func (sm *StateMachine) InputValue(name string) (any, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	i := slices.IndexFunc(sm.inputs, func(in *Input) bool { return in.Name == name })
	if i < 0 {
		return nil, fmt.Errorf("state machine %s has no input %q", sm.name, name)
	}
	return sm.inputs[i].Value, nil
}

func (sm *StateMachine) CurrentState() string {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.state
}

func (sm *StateMachine) OnEvent(fn func(domain.StateEvent)) (remove func()) {
	return sm.events.add(fn)
}

// EventListeners returns the number of attached event listeners
func (sm *StateMachine) EventListeners() int {
	return sm.events.count()
}
