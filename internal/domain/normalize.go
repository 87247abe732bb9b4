package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalize converts a loosely-typed external value into the canonical
// Value for kind.
//
// Errors wrap ErrKindMismatch (the update must be rejected), ErrReadOnly, or
// ErrNormalizationFallback. A fallback error comes with a usable Value: the
// caller applies it and only logs the error.
//
// A falsy trigger update returns (nil, nil): nothing to fire.
func Normalize(kind Kind, raw any) (Value, error) {
	switch kind {
	case KindNumber:
		f, ok := ToFloat(raw)
		if !ok {
			return nil, &KindMismatchError{Kind: kind, Got: raw}
		}
		return NumberValue(f), nil

	case KindInteger, KindSymbolListIndex:
		n, err := toInteger(kind, raw)
		if err != nil {
			return nil, err
		}
		if kind == KindSymbolListIndex {
			return SymbolIndexValue(n), nil
		}
		return IntegerValue(n), nil

	case KindBoolean:
		switch b := raw.(type) {
		case bool:
			return BooleanValue(b), nil
		case BooleanValue:
			return b, nil
		}
		return nil, &KindMismatchError{Kind: kind, Got: raw}

	case KindString:
		switch s := raw.(type) {
		case string:
			return StringValue(s), nil
		case StringValue:
			return s, nil
		}
		return nil, &KindMismatchError{Kind: kind, Got: raw}

	case KindColor:
		c, err := ParseColor(raw)
		return c, err

	case KindTrigger:
		if !IsTruthy(raw) {
			return nil, nil
		}
		return TriggerValue{}, nil

	case KindEnum:
		s, ok := enumString(raw)
		if !ok {
			return nil, &KindMismatchError{Kind: kind, Got: raw}
		}
		return EnumValue(s), nil

	case KindArtboard:
		switch s := raw.(type) {
		case string:
			return ArtboardValue(s), nil
		case ArtboardValue:
			return s, nil
		}
		return nil, &KindMismatchError{Kind: kind, Got: raw}

	case KindImage, KindFont:
		a, ok := raw.(Asset)
		if !ok {
			if p, isPtr := raw.(*Asset); isPtr && p != nil {
				a, ok = *p, true
			}
		}
		if !ok || a.AssetKind != kind {
			return nil, &KindMismatchError{Kind: kind, Got: raw}
		}
		return a, nil

	case KindList, KindViewModel:
		return nil, fmt.Errorf("%s: %w", kind, ErrReadOnly)
	}

	return nil, &KindMismatchError{Kind: kind, Got: raw}
}

func toInteger(kind Kind, raw any) (int64, error) {
	f, ok := ToFloat(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &KindMismatchError{Kind: kind, Got: raw}
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, &KindMismatchError{Kind: kind, Got: raw}
	}
	return int64(math.Trunc(f)), nil
}

func enumString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case EnumValue:
		return string(v), true
	case StringValue:
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	case bool:
		return "", false
	}
	if f, ok := ToFloat(raw); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

// IsTruthy reports whether raw should fire a trigger.
func IsTruthy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case BooleanValue:
		return bool(v)
	case TriggerValue:
		return true
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s != "" && s != "false" && s != "0"
	}
	if f, ok := ToFloat(raw); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}
