package compare

import "github.com/mcncl/semjson/internal/models"

// lazyValue converts a tagged value into a compared value without looking at its
// children. Arrays and objects keep their decoded form in Raw.
func lazyValue(v models.Value) models.ComparedValue {
	if v.Kind.IsScalar() {
		return models.ComparedValue{Kind: v.Kind, Scalar: v.Scalar()}
	}
	return models.ComparedValue{Kind: v.Kind, Raw: v.Raw()}
}

// Expand returns the children of an array or object value. Values that were
// compared already return their children as is. Lazy values derive them from the
// decoded value: every element, or every member in key order, becomes a SideBoth
// node and the aggregate is same. Nested containers stay lazy.
//
// Expand does not modify v; expanding the same value again yields an equal result.
func Expand(v models.ComparedValue) models.ComparedValues {
	if v.Values != nil {
		return *v.Values
	}

	switch raw := v.Raw.(type) {
	case []any:
		children := make([]models.Node, 0, len(raw))
		for _, elem := range raw {
			children = append(children, models.Node{
				Side:  models.SideBoth,
				Value: lazyValue(Classify(elem)),
			})
		}
		return models.ComparedValues{IsSame: true, Children: children}
	case map[string]any:
		keys := sortedKeys(raw)
		children := make([]models.Node, 0, len(keys))
		for _, key := range keys {
			node := models.Node{
				Side:  models.SideBoth,
				Value: lazyValue(Classify(raw[key])),
			}
			children = append(children, node.WithKey(key))
		}
		return models.ComparedValues{IsSame: true, Children: children}
	default:
		return models.ComparedValues{IsSame: true}
	}
}

// ExpandAll returns v with every lazy container below it expanded.
func ExpandAll(v models.ComparedValue) models.ComparedValue {
	if !v.IsComplex() {
		return v
	}
	inner := Expand(v)
	children := make([]models.Node, len(inner.Children))
	for i, child := range inner.Children {
		child.Value = ExpandAll(child.Value)
		children[i] = child
	}
	v.Values = &models.ComparedValues{IsSame: inner.IsSame, Children: children}
	return v
}

// ExpandTree applies ExpandAll to every node of a comparison.
func ExpandTree(values models.ComparedValues) models.ComparedValues {
	children := make([]models.Node, len(values.Children))
	for i, child := range values.Children {
		child.Value = ExpandAll(child.Value)
		children[i] = child
	}
	return models.ComparedValues{IsSame: values.IsSame, Children: children}
}
