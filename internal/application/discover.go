package application

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"artbind/internal/domain"
	"artbind/internal/ports"
)

// Sink receives a normalized value whenever the engine reports a change
// on node. It must not block.
type Sink func(node *domain.PropertyNode, v domain.Value)

// Discoverer walks a ViewModel tree and builds the property graph,
// attaching a change listener to every observable property.
type Discoverer struct {
	log *slog.Logger

	mu       sync.Mutex
	inflight map[ports.ViewModel]struct{}
}

// NewDiscoverer creates a Discoverer. A nil logger uses slog.Default().
func NewDiscoverer(log *slog.Logger) *Discoverer {
	if log == nil {
		log = slog.Default()
	}
	return &Discoverer{
		log:      log,
		inflight: make(map[ports.ViewModel]struct{}),
	}
}

// Discover returns the top-level nodes of root, with nested and list
// properties expanded recursively. A nil root yields an empty graph.
//
// Properties that fail to materialize are logged and left out; the rest of
// the graph is still returned. Running a second pass over the same root
// while one is in progress returns ErrDiscoveryInProgress.
func (d *Discoverer) Discover(root ports.ViewModel, sink Sink) ([]*domain.PropertyNode, error) {
	if root == nil {
		return nil, nil
	}
	if sink == nil {
		sink = func(*domain.PropertyNode, domain.Value) {}
	}

	d.mu.Lock()
	if _, busy := d.inflight[root]; busy {
		d.mu.Unlock()
		return nil, fmt.Errorf("view model %q: %w", root.Name(), ErrDiscoveryInProgress)
	}
	d.inflight[root] = struct{}{}
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		delete(d.inflight, root)
		d.mu.Unlock()
	}()

	return d.discoverLevel(root, "", sink), nil
}

func (d *Discoverer) discoverLevel(vm ports.ViewModel, parentPath string, sink Sink) []*domain.PropertyNode {
	descriptors, err := d.properties(vm)
	if err != nil {
		d.log.Warn("skipping view model", "path", parentPath, "error", err)
		return nil
	}
	nodes := make([]*domain.PropertyNode, 0, len(descriptors))
	for _, desc := range descriptors {
		node, err := d.discoverProperty(vm, desc, parentPath, sink)
		if err != nil {
			d.log.Warn("skipping property",
				"path", domain.JoinPath(parentPath, desc.Name),
				"kind", desc.Kind,
				"error", err)
			continue
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// properties enumerates vm, turning an engine panic into an error.
func (d *Discoverer) properties(vm ports.ViewModel) (descs []ports.PropertyDescriptor, err error) {
	defer func() {
		if r := recover(); r != nil {
			descs, err = nil, fmt.Errorf("engine panic: %v", r)
		}
	}()
	return vm.Properties(), nil
}

func (d *Discoverer) discoverProperty(vm ports.ViewModel, desc ports.PropertyDescriptor, parentPath string, sink Sink) (node *domain.PropertyNode, err error) {
	node = &domain.PropertyNode{
		Name:     desc.Name,
		Kind:     desc.Kind,
		FullPath: domain.JoinPath(parentPath, desc.Name),
	}

	defer func() {
		if r := recover(); r != nil {
			node.Detach()
			node, err = nil, fmt.Errorf("engine panic: %v", r)
		}
		if err != nil && node != nil {
			node.Detach()
			node = nil
		}
	}()

	switch desc.Kind {
	case domain.KindNumber, domain.KindInteger, domain.KindSymbolListIndex:
		p, err := vm.Number(desc.Name)
		if err != nil {
			return nil, err
		}
		return node, bindValue(node, p, sink)

	case domain.KindBoolean:
		p, err := vm.Boolean(desc.Name)
		if err != nil {
			return nil, err
		}
		return node, bindValue(node, p, sink)

	case domain.KindString:
		p, err := vm.String(desc.Name)
		if err != nil {
			return nil, err
		}
		return node, bindValue(node, p, sink)

	case domain.KindColor:
		p, err := vm.Color(desc.Name)
		if err != nil {
			return nil, err
		}
		return node, bindValue(node, p, sink)

	case domain.KindEnum:
		p, err := vm.Enum(desc.Name)
		if err != nil {
			return nil, err
		}
		return node, bindValue[string](node, p, sink)

	case domain.KindTrigger:
		p, err := vm.Trigger(desc.Name)
		if err != nil {
			return nil, err
		}
		node.Handle = p
		node.Bind(p.AddListener(func() {
			sink(node, domain.TriggerValue{})
		}))
		return node, nil

	case domain.KindImage:
		p, err := vm.Image(desc.Name)
		if err != nil {
			return nil, err
		}
		node.Handle = p
		return node, nil

	case domain.KindFont:
		p, err := vm.Font(desc.Name)
		if err != nil {
			return nil, err
		}
		node.Handle = p
		return node, nil

	case domain.KindArtboard:
		p, err := vm.Artboard(desc.Name)
		if err != nil {
			return nil, err
		}
		node.Handle = p
		return node, nil

	case domain.KindViewModel:
		nested, err := vm.ViewModel(desc.Name)
		if err != nil {
			return nil, err
		}
		node.Handle = nested
		node.Children = d.discoverLevel(nested, node.FullPath, sink)
		return node, nil

	case domain.KindList:
		p, err := vm.List(desc.Name)
		if err != nil {
			return nil, err
		}
		node.Handle = p
		node.Children = d.discoverItems(p, node.FullPath, sink)
		node.Value = domain.ListValue(p.Len())
		return node, nil

	default:
		d.log.Info("skipping unclassified property", "path", node.FullPath, "kind", desc.Kind)
		return nil, nil
	}
}

func (d *Discoverer) discoverItems(list ports.ListProperty, listPath string, sink Sink) []*domain.PropertyNode {
	n := list.Len()
	items := make([]*domain.PropertyNode, 0, n)
	for i := 0; i < n; i++ {
		item, err := list.Item(i)
		if err != nil {
			d.log.Warn("skipping list item", "path", listPath, "index", i, "error", err)
			continue
		}
		name := strconv.Itoa(i)
		itemNode := &domain.PropertyNode{
			Name:     name,
			Kind:     domain.KindViewModel,
			FullPath: domain.JoinPath(listPath, name),
			Handle:   item,
			IsItem:   true,
			Index:    i,
			ItemName: item.Name(),
		}
		itemNode.Children = d.discoverLevel(item, itemNode.FullPath, sink)
		items = append(items, itemNode)
	}
	return items
}

// bindValue materializes the current value of p into node and forwards
// every later native change, re-normalized to node.Kind, to sink.
func bindValue[T any](node *domain.PropertyNode, p ports.ValueProperty[T], sink Sink) error {
	v, err := domain.Normalize(node.Kind, p.Value())
	if err != nil && !errors.Is(err, domain.ErrNormalizationFallback) {
		return err
	}
	node.Handle = p
	node.Value = v
	node.Bind(p.AddListener(func(raw T) {
		if v, _ := domain.Normalize(node.Kind, raw); v != nil {
			sink(node, v)
		}
	}))
	return nil
}
