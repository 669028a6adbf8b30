// Package compare aligns two decoded JSON documents into a comparison tree.
//
// Every scalar and every array element or object member ends up in exactly one
// node whose side says whether it is present in both documents, only the left one
// or only the right one. Objects are aligned by sorted key, arrays by position with
// a greedy walk that never backtracks: when the heads of both arrays do not match,
// the left head is reported as removed and the right head is tried again against
// the next left element.
package compare

import (
	"fmt"
	"log/slog"

	"github.com/mcncl/semjson/internal/errors"
	"github.com/mcncl/semjson/internal/logging"
	"github.com/mcncl/semjson/internal/models"
	"github.com/mcncl/semjson/internal/parser"
)

// DefaultMaxDepth bounds container nesting of compared documents
const DefaultMaxDepth = 1000

// Comparator compares JSON documents. It holds no state between comparisons and
// is safe for concurrent use.
type Comparator struct {
	maxDepth int
	eager    bool
	logger   *slog.Logger
}

// Option adjusts a Comparator, zero or more Options can be passed to NewComparator
type Option func(c *Comparator)

// WithMaxDepth rejects documents nested deeper than n containers. n <= 0 disables
// the check.
func WithMaxDepth(n int) Option {
	return func(c *Comparator) {
		c.maxDepth = n
	}
}

// WithEagerExpansion makes the comparator expand values present on one side only,
// instead of leaving them for Expand.
func WithEagerExpansion() Option {
	return func(c *Comparator) {
		c.eager = true
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *slog.Logger) Option {
	return func(c *Comparator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewComparator creates a Comparator with the default configuration
func NewComparator(opts ...Option) *Comparator {
	c := &Comparator{
		maxDepth: DefaultMaxDepth,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultComparator = NewComparator()

// CompareJSONs compares two JSON texts with the default comparator.
func CompareJSONs(left, right string) models.CompareResult {
	return defaultComparator.CompareJSONs(left, right)
}

// CompareJSONs parses both texts and compares the decoded documents. When either
// side fails to parse no comparison is attempted and the result carries the
// failure message of each failing side.
func (c *Comparator) CompareJSONs(left, right string) models.CompareResult {
	leftDoc, leftErr := c.parse(left)
	rightDoc, rightErr := c.parse(right)

	if leftErr != nil || rightErr != nil {
		res := models.CompareResult{Status: models.StatusError}
		if leftErr != nil {
			res.LeftMessage = parser.MessageOf(leftErr)
		}
		if rightErr != nil {
			res.RightMessage = parser.MessageOf(rightErr)
		}
		c.logger.Debug("comparison skipped",
			"left_failed", leftErr != nil,
			"right_failed", rightErr != nil,
		)
		return res
	}

	return models.CompareResult{
		Status: models.StatusOK,
		Left:   leftDoc,
		Right:  rightDoc,
		Result: c.CompareValues(leftDoc, rightDoc),
	}
}

// CompareValues compares two decoded documents. The result has one SideBoth child
// when both documents have the same kind and are compared as a unit, or a
// SideLeft/SideRight pair otherwise.
func (c *Comparator) CompareValues(left, right any) models.ComparedValues {
	l, r := Classify(left), Classify(right)
	res := c.compareValues(l, r)
	c.logger.Debug("compared documents",
		"left_kind", l.Kind.String(),
		"right_kind", r.Kind.String(),
		"same", res.IsSame,
	)
	return res
}

func (c *Comparator) parse(text string) (any, error) {
	doc, err := parser.ParseString(text)
	if err != nil {
		return nil, err
	}
	if c.maxDepth > 0 && nestingExceeds(doc, c.maxDepth) {
		c.logger.Debug("nesting guard tripped", "max_depth", c.maxDepth)
		return nil, errors.NewParsingError(
			fmt.Sprintf("maximum nesting depth of %d exceeded", c.maxDepth),
			errors.ErrMaxDepth,
		)
	}
	return doc, nil
}

// compareValues is the single recursive entry point; the only place kinds are
// checked against each other.
func (c *Comparator) compareValues(a, b models.Value) models.ComparedValues {
	if a.Kind != b.Kind {
		return models.ComparedValues{
			IsSame:   false,
			Children: []models.Node{c.leaf(models.SideLeft, a), c.leaf(models.SideRight, b)},
		}
	}

	switch a.Kind {
	case models.KindArray:
		return both(models.KindArray, c.compareArrays(a.Array, b.Array))
	case models.KindObject:
		return both(models.KindObject, c.compareObjects(a.Object, b.Object))
	default:
		return c.compareScalars(a, b)
	}
}

// compareScalars compares two values of the same scalar kind
func (c *Comparator) compareScalars(a, b models.Value) models.ComparedValues {
	if a.Scalar() == b.Scalar() {
		return models.ComparedValues{
			IsSame:   true,
			Children: []models.Node{c.leaf(models.SideBoth, a)},
		}
	}
	return models.ComparedValues{
		IsSame:   false,
		Children: []models.Node{c.leaf(models.SideLeft, a), c.leaf(models.SideRight, b)},
	}
}

// both wraps the children of two same-kind containers in a single SideBoth node.
// The node is SideBoth even when the containers differ inside.
func both(kind models.Kind, inner models.ComparedValues) models.ComparedValues {
	return models.ComparedValues{
		IsSame: inner.IsSame,
		Children: []models.Node{{
			Side:  models.SideBoth,
			Value: models.ComparedValue{Kind: kind, Values: &inner},
		}},
	}
}

// leaf builds a node for a value that is not compared against anything further.
func (c *Comparator) leaf(side models.Side, v models.Value) models.Node {
	value := lazyValue(v)
	if c.eager {
		value = ExpandAll(value)
	}
	return models.Node{Side: side, Value: value}
}
