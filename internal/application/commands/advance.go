package commands

import (
	"context"
	"fmt"

	"artbind/internal/application"
)

// AdvanceResult contains the result of advancing an artboard
type AdvanceResult struct {
	Elapsed float64
	Active  bool
	Changes int
	Message string
}

// AdvanceCommand moves an instance's artboard forward in fixed steps and
// delivers the resulting property changes
type AdvanceCommand struct {
	registry   *application.Registry
	InstanceID string
	Seconds    float64
	Steps      int
}

// NewAdvanceCommand creates a new AdvanceCommand. steps below 1 means one
// step of the whole duration.
func NewAdvanceCommand(registry *application.Registry, instanceID string, seconds float64, steps int) *AdvanceCommand {
	return &AdvanceCommand{
		registry:   registry,
		InstanceID: instanceID,
		Seconds:    seconds,
		Steps:      steps,
	}
}

// Validate checks if the advance operation is valid
func (c *AdvanceCommand) Validate() error {
	if err := application.ValidateRequired("instanceID", c.InstanceID); err != nil {
		return err
	}
	if c.Seconds < 0 {
		return &application.ValidationError{
			Field:   "seconds",
			Message: fmt.Sprintf("seconds must not be negative, got: %g", c.Seconds),
		}
	}
	return nil
}

// Execute runs the advance command
func (c *AdvanceCommand) Execute(ctx context.Context) (*AdvanceResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	inst, ok := c.registry.Get(c.InstanceID)
	if !ok {
		return nil, &application.NotFoundError{InstanceID: c.InstanceID}
	}

	steps := max(c.Steps, 1)
	dt := c.Seconds / float64(steps)
	board := inst.Animation().Artboard()

	active := false
	changes := 0
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		active = board.Advance(dt)
		changes += c.registry.Drain()
	}

	state := "idle"
	if active {
		state = "animating"
	}
	return &AdvanceResult{
		Elapsed: c.Seconds,
		Active:  active,
		Changes: changes,
		Message: fmt.Sprintf("Advanced %s by %gs in %d steps: %d changes, %s", c.InstanceID, c.Seconds, steps, changes, state),
	}, nil
}
