package formatter

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/mcncl/semjson/internal/compare"
	"github.com/mcncl/semjson/internal/errors"
	"github.com/mcncl/semjson/internal/models"
)

// JSON writes res as a JSON document. Values present on one side only are
// written fully expanded.
//
//	{"status":"ok","isSame":false,"children":[
//	  {"side":"left","key":"b","type":"number","value":2},
//	  {"side":"both","type":"array","isSame":true,"children":[]}
//	]}
func (f *Formatter) JSON(w io.Writer, res models.CompareResult) error {
	tw := &tokenWriter{enc: jsontext.NewEncoder(w,
		jsontext.Multiline(true),
		jsontext.WithIndent("  "),
		jsontext.SpaceAfterColon(true),
	)}

	tw.token(jsontext.BeginObject)
	tw.member("status", jsontext.String(string(res.Status)))
	if res.Status == models.StatusError {
		if res.HasLeftError() {
			tw.member("leftMessage", jsontext.String(res.LeftMessage))
		}
		if res.HasRightError() {
			tw.member("rightMessage", jsontext.String(res.RightMessage))
		}
	} else {
		tw.values(res.Result)
	}
	tw.token(jsontext.EndObject)

	if tw.err != nil {
		return errors.NewFormatError("failed to write JSON result", tw.err)
	}
	return nil
}

type tokenWriter struct {
	enc *jsontext.Encoder
	err error
}

func (tw *tokenWriter) token(t jsontext.Token) {
	if tw.err != nil {
		return
	}
	tw.err = tw.enc.WriteToken(t)
}

func (tw *tokenWriter) member(name string, value jsontext.Token) {
	tw.token(jsontext.String(name))
	tw.token(value)
}

// values writes the isSame and children members of the enclosing object
func (tw *tokenWriter) values(values models.ComparedValues) {
	tw.member("isSame", jsontext.Bool(values.IsSame))
	tw.token(jsontext.String("children"))
	tw.token(jsontext.BeginArray)
	for _, child := range values.Children {
		tw.node(child)
	}
	tw.token(jsontext.EndArray)
}

func (tw *tokenWriter) node(n models.Node) {
	tw.token(jsontext.BeginObject)
	tw.member("side", jsontext.String(n.Side.String()))
	if n.Key != nil {
		tw.member("key", jsontext.String(*n.Key))
	}
	tw.member("type", jsontext.String(n.Value.Kind.String()))

	if n.Value.IsComplex() {
		tw.values(compare.Expand(n.Value))
	} else {
		tw.token(jsontext.String("value"))
		tw.token(scalarToken(n.Value.Scalar))
	}
	tw.token(jsontext.EndObject)
}

func scalarToken(v any) jsontext.Token {
	switch s := v.(type) {
	case nil:
		return jsontext.Null
	case bool:
		return jsontext.Bool(s)
	case float64:
		return jsontext.Float(s)
	case string:
		return jsontext.String(s)
	default:
		panic(fmt.Sprintf("unexpected scalar type: %T", v))
	}
}
