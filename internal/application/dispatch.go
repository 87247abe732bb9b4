package application

import (
	"fmt"

	"artbind/internal/domain"
	"artbind/internal/ports"
)

// applyValue invokes the native setter of node for a normalized value.
func applyValue(node *domain.PropertyNode, v domain.Value) error {
	switch v := v.(type) {
	case domain.NumberValue:
		return setOn[ports.NumberProperty](node, func(p ports.NumberProperty) error {
			return p.SetValue(float64(v))
		})
	case domain.IntegerValue:
		return setOn[ports.NumberProperty](node, func(p ports.NumberProperty) error {
			return p.SetValue(float64(v))
		})
	case domain.SymbolIndexValue:
		return setOn[ports.NumberProperty](node, func(p ports.NumberProperty) error {
			return p.SetValue(float64(v))
		})
	case domain.BooleanValue:
		return setOn[ports.BooleanProperty](node, func(p ports.BooleanProperty) error {
			return p.SetValue(bool(v))
		})
	case domain.StringValue:
		return setOn[ports.StringProperty](node, func(p ports.StringProperty) error {
			return p.SetValue(string(v))
		})
	case domain.Color:
		return setOn[ports.ColorProperty](node, func(p ports.ColorProperty) error {
			return p.SetValue(v)
		})
	case domain.EnumValue:
		return setOn[ports.EnumProperty](node, func(p ports.EnumProperty) error {
			return p.SetValue(string(v))
		})
	case domain.TriggerValue:
		return setOn[ports.TriggerProperty](node, func(p ports.TriggerProperty) error {
			return p.Fire()
		})
	case domain.ArtboardValue:
		return setOn[ports.ArtboardProperty](node, func(p ports.ArtboardProperty) error {
			return p.SetArtboard(string(v))
		})
	case domain.Asset:
		return setOn[ports.AssetProperty](node, func(p ports.AssetProperty) error {
			return p.SetAsset(v)
		})
	case domain.ListValue:
		return fmt.Errorf("%s: %w", node.FullPath, domain.ErrReadOnly)
	case nil:
		return nil
	}
	return fmt.Errorf("%s: unsupported value %T", node.FullPath, v)
}

func setOn[H any](node *domain.PropertyNode, set func(H) error) error {
	h, ok := node.Handle.(H)
	if !ok {
		return fmt.Errorf("%s: handle %T does not accept %s values", node.FullPath, node.Handle, node.Kind)
	}
	return set(h)
}

// storesValue reports whether a successful set should be mirrored into the
// node. Triggers are write-only.
func storesValue(v domain.Value) bool {
	_, isTrigger := v.(domain.TriggerValue)
	return v != nil && !isTrigger
}
