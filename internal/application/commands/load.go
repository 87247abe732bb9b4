package commands

import (
	"context"
	"fmt"

	"artbind/internal/application"
	"artbind/internal/domain"
	"artbind/internal/ports"
)

// LoadInstanceResult contains the result of loading an animation
type LoadInstanceResult struct {
	Instance   *application.Instance
	Properties int
	Replaced   bool
	Message    string
}

// LoadInstanceCommand loads an animation and registers it under an id
type LoadInstanceCommand struct {
	loader     ports.Loader
	registry   *application.Registry
	InstanceID string
	Source     string
}

// NewLoadInstanceCommand creates a new LoadInstanceCommand
func NewLoadInstanceCommand(loader ports.Loader, registry *application.Registry, instanceID, source string) *LoadInstanceCommand {
	return &LoadInstanceCommand{
		loader:     loader,
		registry:   registry,
		InstanceID: instanceID,
		Source:     source,
	}
}

// Validate checks if the load operation is valid
func (c *LoadInstanceCommand) Validate() error {
	if err := application.ValidateRequired("instanceID", c.InstanceID); err != nil {
		return err
	}
	return application.ValidateRequired("source", c.Source)
}

// Execute runs the load command
func (c *LoadInstanceCommand) Execute(ctx context.Context) (*LoadInstanceResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	anim, err := c.loader.Load(ctx, c.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.Source, err)
	}

	_, replaced := c.registry.Get(c.InstanceID)
	inst, err := c.registry.Load(c.InstanceID, anim)
	if err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", c.InstanceID, err)
	}

	count := len(domain.Flatten(inst.Graph()))
	msg := fmt.Sprintf("Loaded %s as %s (%d properties)", anim.Name(), c.InstanceID, count)
	if replaced {
		msg += ", replacing the previous instance"
	}
	return &LoadInstanceResult{
		Instance:   inst,
		Properties: count,
		Replaced:   replaced,
		Message:    msg,
	}, nil
}

// UnloadInstanceResult contains the result of unloading an instance
type UnloadInstanceResult struct {
	InstanceID string
	Message    string
}

// UnloadInstanceCommand tears an instance down
type UnloadInstanceCommand struct {
	registry   *application.Registry
	InstanceID string
}

// NewUnloadInstanceCommand creates a new UnloadInstanceCommand
func NewUnloadInstanceCommand(registry *application.Registry, instanceID string) *UnloadInstanceCommand {
	return &UnloadInstanceCommand{
		registry:   registry,
		InstanceID: instanceID,
	}
}

// Validate checks if the unload operation is valid
func (c *UnloadInstanceCommand) Validate() error {
	return application.ValidateRequired("instanceID", c.InstanceID)
}

// Execute runs the unload command
func (c *UnloadInstanceCommand) Execute(ctx context.Context) (*UnloadInstanceResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if !c.registry.Deregister(c.InstanceID) {
		return nil, &application.NotFoundError{InstanceID: c.InstanceID}
	}

	return &UnloadInstanceResult{
		InstanceID: c.InstanceID,
		Message:    fmt.Sprintf("Unloaded %s", c.InstanceID),
	}, nil
}
