package commands

import (
	"context"
	"fmt"

	"artbind/internal/application"
	"artbind/internal/domain"
	"artbind/internal/ports"
)

// UpdatePropertyResult contains the result of a property update
type UpdatePropertyResult struct {
	Path    string
	Value   domain.Value
	Message string
}

// UpdatePropertyCommand sets a property at a nested path
type UpdatePropertyCommand struct {
	registry   *application.Registry
	InstanceID string
	Path       string
	Value      any
}

// NewUpdatePropertyCommand creates a new UpdatePropertyCommand
func NewUpdatePropertyCommand(registry *application.Registry, instanceID, path string, value any) *UpdatePropertyCommand {
	return &UpdatePropertyCommand{
		registry:   registry,
		InstanceID: instanceID,
		Path:       path,
		Value:      value,
	}
}

// Validate checks if the update operation is valid
func (c *UpdatePropertyCommand) Validate() error {
	if err := application.ValidateRequired("instanceID", c.InstanceID); err != nil {
		return err
	}
	return application.ValidatePath("path", c.Path)
}

// Execute runs the update command
func (c *UpdatePropertyCommand) Execute(ctx context.Context) (*UpdatePropertyResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.registry.SetProperty(c.InstanceID, c.Path, c.Value); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", c.Path, err)
	}

	path := domain.NormalizePath(c.Path)
	v, _ := c.registry.GetPropertyValue(c.InstanceID, path)
	msg := fmt.Sprintf("Set %s = %s", path, domain.FormatValue(v))
	if v == nil {
		// triggers keep no value
		msg = fmt.Sprintf("Fired %s", path)
		if !domain.IsTruthy(c.Value) {
			msg = fmt.Sprintf("Skipped %s, trigger value is falsy", path)
		}
	}
	return &UpdatePropertyResult{
		Path:    path,
		Value:   v,
		Message: msg,
	}, nil
}

// GetPropertyCommand reads the last known value at a path
type GetPropertyCommand struct {
	registry   *application.Registry
	InstanceID string
	Path       string
}

// NewGetPropertyCommand creates a new GetPropertyCommand
func NewGetPropertyCommand(registry *application.Registry, instanceID, path string) *GetPropertyCommand {
	return &GetPropertyCommand{
		registry:   registry,
		InstanceID: instanceID,
		Path:       path,
	}
}

// Execute runs the get command. A write-only property yields a nil value.
func (c *GetPropertyCommand) Execute(ctx context.Context) (*PropertyRow, error) {
	if err := application.ValidateRequired("instanceID", c.InstanceID); err != nil {
		return nil, err
	}
	if err := application.ValidatePath("path", c.Path); err != nil {
		return nil, err
	}
	v, ok := c.registry.GetPropertyValue(c.InstanceID, c.Path)
	if !ok {
		return nil, &application.NotFoundError{InstanceID: c.InstanceID, Path: c.Path}
	}
	node, ok := c.registry.Node(c.InstanceID, c.Path)
	if !ok {
		return nil, &application.NotFoundError{InstanceID: c.InstanceID, Path: c.Path}
	}
	row := &PropertyRow{
		Path:  node.FullPath,
		Name:  node.Name,
		Kind:  node.Kind,
		Value: v,
		Depth: len(domain.SplitPath(node.FullPath)) - 1,
	}
	if ep, ok := node.Handle.(ports.EnumProperty); ok {
		row.Options = ep.Options()
	}
	return row, nil
}
