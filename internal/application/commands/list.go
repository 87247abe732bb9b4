package commands

import (
	"context"

	"artbind/internal/application"
	"artbind/internal/domain"
	"artbind/internal/ports"
)

// PropertyRow is one flattened property of an instance
type PropertyRow struct {
	Path  string
	Name  string
	Kind  domain.Kind
	Value domain.Value
	Depth int

	// Options lists the allowed values of an enum; only set by GetPropertyCommand
	Options []string
}

// ListPropertiesCommand lists every property of an instance depth-first
type ListPropertiesCommand struct {
	registry   *application.Registry
	InstanceID string
}

// NewListPropertiesCommand creates a new ListPropertiesCommand
func NewListPropertiesCommand(registry *application.Registry, instanceID string) *ListPropertiesCommand {
	return &ListPropertiesCommand{
		registry:   registry,
		InstanceID: instanceID,
	}
}

// Execute runs the list properties command
func (c *ListPropertiesCommand) Execute(ctx context.Context) ([]PropertyRow, error) {
	if err := application.ValidateRequired("instanceID", c.InstanceID); err != nil {
		return nil, err
	}
	inst, ok := c.registry.Get(c.InstanceID)
	if !ok {
		return nil, &application.NotFoundError{InstanceID: c.InstanceID}
	}

	values := c.registry.GetAllPropertyValues(c.InstanceID)
	var rows []PropertyRow
	for _, n := range domain.Flatten(inst.Graph()) {
		rows = append(rows, PropertyRow{
			Path:  n.FullPath,
			Name:  n.Name,
			Kind:  n.Kind,
			Value: values[n.FullPath],
			Depth: len(domain.SplitPath(n.FullPath)) - 1,
		})
	}
	return rows, nil
}

// ListInstancesCommand lists the registered instance ids
type ListInstancesCommand struct {
	registry *application.Registry
}

// NewListInstancesCommand creates a new ListInstancesCommand
func NewListInstancesCommand(registry *application.Registry) *ListInstancesCommand {
	return &ListInstancesCommand{registry: registry}
}

// Execute runs the list instances command
func (c *ListInstancesCommand) Execute(ctx context.Context) ([]string, error) {
	return c.registry.IDs(), nil
}

// SourceRow is one animation source and whether it is loaded
type SourceRow struct {
	ports.SourceInfo
	Loaded bool
}

// ListSourcesCommand lists the animation sources available to load
type ListSourcesCommand struct {
	catalog  ports.SourceCatalog
	registry *application.Registry
}

// NewListSourcesCommand creates a new ListSourcesCommand
func NewListSourcesCommand(catalog ports.SourceCatalog, registry *application.Registry) *ListSourcesCommand {
	return &ListSourcesCommand{catalog: catalog, registry: registry}
}

// Execute runs the list sources command. A source counts as loaded when an
// instance is registered under its name.
func (c *ListSourcesCommand) Execute(ctx context.Context) ([]SourceRow, error) {
	sources, err := c.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]SourceRow, 0, len(sources))
	for _, s := range sources {
		_, loaded := c.registry.Get(s.Name)
		rows = append(rows, SourceRow{SourceInfo: s, Loaded: loaded})
	}
	return rows, nil
}
