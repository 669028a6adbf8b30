package models

import "fmt"

// Kind is one of the six JSON value kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON name of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsScalar reports whether values of this kind carry a literal rather than children.
func (k Kind) IsScalar() bool {
	return k != KindArray && k != KindObject
}

// Value is a decoded JSON value tagged with its kind.
// Only the field matching Kind is meaningful.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	String string
	Array  []any
	Object map[string]any
}

// Scalar returns the literal carried by a scalar value: nil, bool, float64 or string.
// It returns nil for arrays and objects.
func (v Value) Scalar() any {
	switch v.Kind {
	case KindBoolean:
		return v.Bool
	case KindNumber:
		return v.Number
	case KindString:
		return v.String
	default:
		return nil
	}
}

// Raw returns the decoded value the tagged value was built from.
func (v Value) Raw() any {
	switch v.Kind {
	case KindArray:
		return v.Array
	case KindObject:
		return v.Object
	default:
		return v.Scalar()
	}
}
