package domain

import (
	"fmt"
	"strings"
)

// Kind is the value type of a parameter.
type Kind string

const (
	KindFloat Kind = "float"
	KindBool  Kind = "bool"
	KindInt   Kind = "int"
)

// ParseKind converts a kind name (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float", "":
		return KindFloat, nil
	case "bool", "boolean":
		return KindBool, nil
	case "int", "integer":
		return KindInt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
}

// Parameter is a named, typed input of the generated graph.
// Identity is the name; parameters are never renamed after creation.
type Parameter struct {
	Name    string  `json:"name" yaml:"name"`
	Kind    Kind    `json:"kind" yaml:"kind"`
	Default float64 `json:"default,omitempty" yaml:"default,omitempty"`
}

// Param is implemented by the typed parameter handles.
type Param interface {
	Name() string
	Kind() Kind
}

// FloatParam is a handle to a float parameter.
type FloatParam struct{ name string }

// BoolParam is a handle to a bool parameter.
type BoolParam struct{ name string }

// IntParam is a handle to an int parameter.
type IntParam struct{ name string }

// Float returns a float handle for name.
// Handles are plain values; registering the parameter is the session's job.
func Float(name string) FloatParam { return FloatParam{name: name} }

// Bool returns a bool handle for name.
func Bool(name string) BoolParam { return BoolParam{name: name} }

// Int returns an int handle for name.
func Int(name string) IntParam { return IntParam{name: name} }

func (p FloatParam) Name() string { return p.name }
func (p FloatParam) Kind() Kind   { return KindFloat }

func (p BoolParam) Name() string { return p.name }
func (p BoolParam) Kind() Kind   { return KindBool }

func (p IntParam) Name() string { return p.name }
func (p IntParam) Kind() Kind   { return KindInt }

// IsGreaterThan holds while the parameter is strictly above v.
func (p FloatParam) IsGreaterThan(v float64) Comparison {
	return Comparison{Param: p.name, Kind: KindFloat, Op: OpGreater, Value: v}
}

// IsLessThan holds while the parameter is strictly below v.
func (p FloatParam) IsLessThan(v float64) Comparison {
	return Comparison{Param: p.name, Kind: KindFloat, Op: OpLess, Value: v}
}

// IsTrue holds while the parameter is true.
func (p BoolParam) IsTrue() Comparison {
	return Comparison{Param: p.name, Kind: KindBool, Op: OpTrue}
}

// IsFalse holds while the parameter is false.
func (p BoolParam) IsFalse() Comparison {
	return Comparison{Param: p.name, Kind: KindBool, Op: OpFalse}
}

// IsEqualTo compares against a boolean constant.
func (p BoolParam) IsEqualTo(b bool) Comparison {
	if b {
		return p.IsTrue()
	}
	return p.IsFalse()
}

// IsEqualTo holds while the parameter equals n.
func (p IntParam) IsEqualTo(n int) Comparison {
	return Comparison{Param: p.name, Kind: KindInt, Op: OpEqual, Value: float64(n)}
}

// IsNotEqualTo holds while the parameter differs from n.
func (p IntParam) IsNotEqualTo(n int) Comparison {
	return Comparison{Param: p.name, Kind: KindInt, Op: OpNotEqual, Value: float64(n)}
}

// IsGreaterThan holds while the parameter is strictly above n.
func (p IntParam) IsGreaterThan(n int) Comparison {
	return Comparison{Param: p.name, Kind: KindInt, Op: OpGreater, Value: float64(n)}
}

// IsLessThan holds while the parameter is strictly below n.
func (p IntParam) IsLessThan(n int) Comparison {
	return Comparison{Param: p.name, Kind: KindInt, Op: OpLess, Value: float64(n)}
}

// Label derives a display label from a hierarchical parameter name by
// dropping the first two segments and joining the rest with spaces.
// Labels are for display only and never used as identity.
func Label(name string) string {
	parts := strings.Split(name, "/")
	if len(parts) > 2 {
		parts = parts[2:]
	}
	return strings.Join(parts, " ")
}

// ShadowName is the name of the float mirror of a bool parameter.
func ShadowName(name string) string {
	return name + "_Float"
}
