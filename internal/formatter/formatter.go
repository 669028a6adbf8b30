package formatter

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/mcncl/semjson/internal/compare"
	"github.com/mcncl/semjson/internal/errors"
	"github.com/mcncl/semjson/internal/models"
)

// DefaultIndent is the number of spaces per nesting level
const DefaultIndent = 2

// ANSI colours
const (
	colorNeutral = "\x1b[37m"
	colorAdded   = "\x1b[32m"
	colorRemoved = "\x1b[31m"
	colorMixed   = "\x1b[34m"
	colorReset   = "\x1b[0m"
)

// Line prefixes
const (
	prefixBoth  = ' '
	prefixLeft  = '-'
	prefixRight = '+'
	prefixMixed = '±'
)

// Options controls rendering
type Options struct {
	// Color wraps changed lines in ANSI colours
	Color bool
	// CollapseSame renders nested containers without differences as [..] or {..}
	CollapseSame bool
	// MaxDepth collapses containers nested deeper than this level, 0 means never
	MaxDepth int
	// Indent is the number of spaces per nesting level
	Indent int
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{Indent: DefaultIndent}
}

// Formatter renders comparison results
type Formatter struct {
	opts Options
}

// NewFormatter creates a new Formatter instance
func NewFormatter(opts Options) *Formatter {
	if opts.Indent < 0 {
		opts.Indent = DefaultIndent
	}
	return &Formatter{opts: opts}
}

// Text writes res as annotated JSON, one value or bracket per line. Every line
// starts with ' ' for values in both documents, '-' for values only in the left
// one and '+' for values only in the right one. A collapsed container that holds
// differences starts with '±'.
func (f *Formatter) Text(w io.Writer, res models.CompareResult) error {
	p := &printer{w: w, opts: f.opts}

	if res.Status == models.StatusError {
		if res.HasLeftError() {
			p.plain("Could not parse left input: " + res.LeftMessage)
		}
		if res.HasRightError() {
			p.plain("Could not parse right input: " + res.RightMessage)
		}
		return p.err
	}

	p.nodes(res.Result.Children, prefixBoth, 0)
	return p.err
}

// printer accumulates the first error so callers can write line after line
type printer struct {
	w    io.Writer
	opts Options
	err  error
}

func (p *printer) nodes(children []models.Node, prefix rune, depth int) {
	for i, child := range children {
		suffix := ""
		if i < len(children)-1 {
			suffix = ","
		}
		p.node(child, prefix, depth, suffix)
	}
}

func (p *printer) node(n models.Node, prefix rune, depth int, suffix string) {
	switch n.Side {
	case models.SideLeft:
		prefix = prefixLeft
	case models.SideRight:
		prefix = prefixRight
	}

	label := ""
	if n.Key != nil {
		label = p.encode(*n.Key) + ": "
	}

	value := n.Value
	if !value.IsComplex() {
		p.line(prefix, depth, label+p.encode(value.Scalar)+suffix)
		return
	}

	open, close := "[", "]"
	if value.Kind == models.KindObject {
		open, close = "{", "}"
	}

	values := compare.Expand(value)
	if len(values.Children) == 0 {
		p.line(prefix, depth, label+open+close+suffix)
		return
	}

	if p.collapsed(values, depth) {
		if !values.IsSame {
			prefix = prefixMixed
		}
		p.line(prefix, depth, label+open+".."+close+suffix)
		return
	}

	p.line(prefix, depth, label+open)
	p.nodes(values.Children, prefix, depth+1)
	p.line(prefix, depth, close+suffix)
}

// collapsed reports whether a non-empty container at depth is rendered on one
// line. Top-level values are always expanded.
func (p *printer) collapsed(values models.ComparedValues, depth int) bool {
	if depth == 0 {
		return false
	}
	if p.opts.CollapseSame && values.IsSame {
		return true
	}
	return p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth
}

// encode renders a key or scalar as JSON text. Numbers that overflowed float64
// are written as Infinity and -Infinity.
func (p *printer) encode(v any) string {
	if p.err != nil {
		return ""
	}
	if f, ok := v.(float64); ok && math.IsInf(f, 0) {
		return jsontext.Float(f).String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		p.err = errors.NewFormatError(fmt.Sprintf("failed to encode %v", v), err)
		return ""
	}
	return string(b)
}

func (p *printer) line(prefix rune, depth int, text string) {
	if p.err != nil {
		return
	}

	var b strings.Builder
	color := p.color(prefix)
	b.WriteString(color)
	b.WriteRune(prefix)
	b.WriteByte(' ')
	b.WriteString(strings.Repeat(" ", p.opts.Indent*depth))
	b.WriteString(text)
	if color != "" {
		b.WriteString(colorReset)
	}
	b.WriteByte('\n')

	_, p.err = io.WriteString(p.w, b.String())
}

func (p *printer) plain(text string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, text)
}

func (p *printer) color(prefix rune) string {
	if !p.opts.Color {
		return ""
	}
	switch prefix {
	case prefixLeft:
		return colorRemoved
	case prefixRight:
		return colorAdded
	case prefixMixed:
		return colorMixed
	default:
		return ""
	}
}
