package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/go-json-experiment/json/jsontext"
	"github.com/mcncl/semjson/internal/errors"
)

// EmptyInputMessage is reported for inputs that contain nothing but whitespace.
const EmptyInputMessage = "unexpected end of JSON input"

// decodeOptions accept repeated member names and lone surrogate escapes, which
// decode to U+FFFD.
var decodeOptions = []jsontext.Options{
	jsontext.AllowDuplicateNames(true),
	jsontext.AllowInvalidUTF8(true),
}

// ParseBytes decodes exactly one JSON value from data. Trailing data after the
// top-level value is a syntax error.
//
// The result is built from nil, bool, float64, string, []any and map[string]any
// only. A repeated object member replaces the earlier one, and numbers beyond the
// float64 range decode to +Inf or -Inf.
func ParseBytes(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewParsingError(EmptyInputMessage, errors.ErrEmptyInput)
	}

	value, err := decodeDocument(jsontext.NewDecoder(bytes.NewReader(data), decodeOptions...))
	if err != nil {
		return nil, errors.NewParsingError(syntaxMessage(err), fmt.Errorf("%w: %w", errors.ErrInvalidJSON, err))
	}
	return value, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (any, error) {
	return ParseBytes([]byte(jsonString))
}

func decodeDocument(dec *jsontext.Decoder) (any, error) {
	value, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	offset := dec.InputOffset()
	if _, err := dec.ReadToken(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected data after top-level value at offset %d", offset)
	}
	return value, nil
}

// decodeValue reads the next complete value from dec
func decodeValue(dec *jsontext.Decoder) (any, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}

	switch tok.Kind() {
	case 'n':
		return nil, nil
	case 't', 'f':
		return tok.Bool(), nil
	case '"':
		return tok.String(), nil
	case '0':
		return parseNumber(tok.String())
	case '[':
		elems := make([]any, 0)
		for dec.PeekKind() != ']' {
			elem, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		if _, err := dec.ReadToken(); err != nil { // consume closing ']'
			return nil, err
		}
		return elems, nil
	case '{':
		members := make(map[string]any)
		for dec.PeekKind() != '}' {
			name, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			member, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			members[name.String()] = member
		}
		if _, err := dec.ReadToken(); err != nil { // consume closing '}'
			return nil, err
		}
		return members, nil
	default:
		return nil, fmt.Errorf("unexpected token %s", tok.Kind())
	}
}

// parseNumber keeps the rounded value on overflow
func parseNumber(text string) (float64, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return f, nil
}

// syntaxMessage strips the package prefix the decoder puts on its errors so the
// message reads well next to the side it belongs to.
func syntaxMessage(err error) string {
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return EmptyInputMessage
	}
	msg := err.Error()
	var syntaxErr *jsontext.SyntacticError
	if stderrors.As(err, &syntaxErr) && syntaxErr.Err != nil {
		if syntaxErr.Err == io.ErrUnexpectedEOF {
			return EmptyInputMessage
		}
		msg = fmt.Sprintf("%s at offset %d", syntaxErr.Err.Error(), syntaxErr.ByteOffset)
	}
	for _, prefix := range []string{"jsontext: ", "json: "} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	return msg
}

// ReadFile returns the text of a file without parsing it. Parse failures of the
// content are left to the comparison so they can be reported per side.
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	return string(data), nil
}

// MessageOf returns the text to report for a failed side: the parse message of an
// AppError, or the plain error text otherwise.
func MessageOf(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
