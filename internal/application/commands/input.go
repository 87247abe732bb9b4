package commands

import (
	"context"
	"fmt"

	"artbind/internal/application"
	"artbind/internal/domain"
	"artbind/internal/ports"
)

// SetInputResult contains the result of driving a state machine input
type SetInputResult struct {
	Input   string
	State   string
	Events  int
	Message string
}

// SetInputCommand fires a trigger or sets a boolean/number input on the
// instance's state machine
type SetInputCommand struct {
	registry   *application.Registry
	InstanceID string
	Input      string
	Value      any
}

// NewSetInputCommand creates a new SetInputCommand
func NewSetInputCommand(registry *application.Registry, instanceID, input string, value any) *SetInputCommand {
	return &SetInputCommand{
		registry:   registry,
		InstanceID: instanceID,
		Input:      input,
		Value:      value,
	}
}

// Validate checks if the input operation is valid
func (c *SetInputCommand) Validate() error {
	if err := application.ValidateRequired("instanceID", c.InstanceID); err != nil {
		return err
	}
	return application.ValidateRequired("input", c.Input)
}

// Execute runs the set input command
func (c *SetInputCommand) Execute(ctx context.Context) (*SetInputResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	inst, ok := c.registry.Get(c.InstanceID)
	if !ok {
		return nil, &application.NotFoundError{InstanceID: c.InstanceID}
	}
	sm, ok := inst.StateMachine()
	if !ok {
		return nil, fmt.Errorf("%s has no state machine: %w", c.InstanceID, application.ErrInvalidOperation)
	}

	kind, err := inputKind(sm, c.Input)
	if err != nil {
		return nil, err
	}
	if err := setInput(sm, kind, c.Input, c.Value); err != nil {
		return nil, err
	}

	events := c.registry.Drain()
	return &SetInputResult{
		Input:   c.Input,
		State:   sm.CurrentState(),
		Events:  events,
		Message: fmt.Sprintf("Set %s on %s, state is now %q", c.Input, sm.Name(), sm.CurrentState()),
	}, nil
}

func inputKind(sm ports.StateMachine, name string) (domain.Kind, error) {
	for _, in := range sm.Inputs() {
		if in.Name == name {
			return in.Kind, nil
		}
	}
	return domain.KindNone, &application.NotFoundError{Path: name, InstanceID: sm.Name()}
}

func setInput(sm ports.StateMachine, kind domain.Kind, name string, raw any) error {
	switch kind {
	case domain.KindTrigger:
		if raw != nil && !domain.IsTruthy(raw) {
			return nil
		}
		return wrapNative(name, sm.FireTrigger(name))

	case domain.KindBoolean:
		v, err := domain.Normalize(domain.KindBoolean, raw)
		if err != nil {
			return fmt.Errorf("input %s: %w", name, err)
		}
		return wrapNative(name, sm.SetBoolean(name, bool(v.(domain.BooleanValue))))

	case domain.KindNumber:
		v, err := domain.Normalize(domain.KindNumber, raw)
		if err != nil {
			return fmt.Errorf("input %s: %w", name, err)
		}
		return wrapNative(name, sm.SetNumber(name, float64(v.(domain.NumberValue))))
	}
	return fmt.Errorf("input %s has unsupported kind %s: %w", name, kind, application.ErrInvalidOperation)
}

func wrapNative(path string, err error) error {
	if err == nil {
		return nil
	}
	return &application.NativeError{Path: path, Err: err}
}
