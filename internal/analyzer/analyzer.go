package analyzer

import (
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/mcncl/semjson/internal/models"
)

// Change is a value present in one document only
type Change struct {
	Side models.Side
	// Path is a JSON pointer into the left document for removals and into the
	// right document for additions
	Path string
	Kind models.Kind
}

// Summary counts the nodes of a comparison
type Summary struct {
	Unchanged int
	Removed   int
	Added     int
	Changes   []Change
}

// IsSame reports whether nothing was added or removed
func (s Summary) IsSame() bool {
	return len(s.Changes) == 0
}

// Analyzer walks comparison trees
type Analyzer struct {
	summary Summary
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze walks a comparison with a fresh Analyzer.
func Analyze(result models.ComparedValues) Summary {
	return NewAnalyzer().Analyze(result)
}

// Analyze walks result and returns its summary. One-sided nodes count once and
// are not descended into.
func (a *Analyzer) Analyze(result models.ComparedValues) Summary {
	a.summary = Summary{Changes: make([]Change, 0)}
	for _, child := range result.Children {
		a.visit(child, "")
	}
	return a.summary
}

func (a *Analyzer) visit(node models.Node, path jsontext.Pointer) {
	switch node.Side {
	case models.SideLeft:
		a.summary.Removed++
		a.record(node, path)
		return
	case models.SideRight:
		a.summary.Added++
		a.record(node, path)
		return
	}

	value := node.Value
	if !value.IsComplex() || value.Values == nil || len(value.Values.Children) == 0 {
		a.summary.Unchanged++
		return
	}

	if value.Kind == models.KindObject {
		for _, child := range value.Values.Children {
			a.visit(child, path.AppendToken(child.KeyString()))
		}
		return
	}
	a.visitElements(value.Values.Children, path)
}

// visitElements walks array elements keeping one position per document. Both
// advances the two positions, Left and Right only their own.
func (a *Analyzer) visitElements(children []models.Node, path jsontext.Pointer) {
	var left, right int
	for _, child := range children {
		switch child.Side {
		case models.SideLeft:
			a.visit(child, path.AppendToken(index(left)))
			left++
		case models.SideRight:
			a.visit(child, path.AppendToken(index(right)))
			right++
		default:
			a.visit(child, path.AppendToken(index(right)))
			left++
			right++
		}
	}
}

func (a *Analyzer) record(node models.Node, path jsontext.Pointer) {
	a.summary.Changes = append(a.summary.Changes, Change{
		Side: node.Side,
		Path: string(path),
		Kind: node.Value.Kind,
	})
}

func index(i int) string {
	return strconv.Itoa(i)
}
