package models

// Side classifies a compared node relative to its position.
type Side uint8

const (
	// SideBoth means the value is present in both documents at this position
	SideBoth Side = iota
	// SideLeft means the value is only present in the left document
	SideLeft
	// SideRight means the value is only present in the right document
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "both"
	}
}

// Node is one entry of a comparison tree.
type Node struct {
	Side Side
	// Key is set only when the node is an object member
	Key   *string
	Value ComparedValue
}

// KeyString returns the member key, or "" for array elements and top-level values.
func (n Node) KeyString() string {
	if n.Key == nil {
		return ""
	}
	return *n.Key
}

// WithKey returns a copy of n tagged with the given object key.
func (n Node) WithKey(key string) Node {
	n.Key = &key
	return n
}

// ComparedValue mirrors the six JSON kinds. Scalars carry their literal in Scalar.
// Arrays and objects carry their children in Values, or only the decoded value in Raw
// while they have not been expanded yet.
type ComparedValue struct {
	Kind   Kind
	Scalar any
	Values *ComparedValues
	Raw    any
}

// IsComplex reports whether the value is an array or an object.
func (v ComparedValue) IsComplex() bool {
	return !v.Kind.IsScalar()
}

// IsLazy reports whether the children of a complex value still need expanding.
func (v ComparedValue) IsLazy() bool {
	return v.IsComplex() && v.Values == nil
}

// ComparedValues is the aggregate carried by arrays, objects and top-level results.
// IsSame is true iff every child is SideBoth and every complex child is itself same.
type ComparedValues struct {
	IsSame   bool
	Children []Node
}

// Status of a top-level comparison
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// CompareResult is the outcome of comparing two JSON texts.
//
// On StatusOK, Left and Right hold the decoded documents and Result holds either one
// SideBoth child or a SideLeft/SideRight pair. On StatusError, LeftMessage and
// RightMessage hold the parse failure of the side that failed and are empty otherwise.
type CompareResult struct {
	Status       Status
	Left         any
	Right        any
	Result       ComparedValues
	LeftMessage  string
	RightMessage string
}

// HasLeftError reports whether the left input failed to parse.
func (r CompareResult) HasLeftError() bool {
	return r.Status == StatusError && r.LeftMessage != ""
}

// HasRightError reports whether the right input failed to parse.
func (r CompareResult) HasRightError() bool {
	return r.Status == StatusError && r.RightMessage != ""
}
