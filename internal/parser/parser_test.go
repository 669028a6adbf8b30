package parser

import (
	stderrors "errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mcncl/semjson/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	root, err := ParseString(jsonStr)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	expectedRoot := map[string]any{
		"name":      "John Doe",
		"age":       float64(30),
		"isStudent": false,
		"city":      nil,
	}

	if !reflect.DeepEqual(root, expectedRoot) {
		t.Errorf("ParseString() root = %v, want %v", root, expectedRoot)
	}
}

func TestParse_SimpleArray(t *testing.T) {
	root, err := ParseString(`[1, "test", true, null, 3.14]`)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	expectedRoot := []any{float64(1), "test", true, nil, 3.14}
	if !reflect.DeepEqual(root, expectedRoot) {
		t.Errorf("ParseString() root = %v, want %v", root, expectedRoot)
	}
}

func TestParse_NestedObject(t *testing.T) {
	root, err := ParseString(`{"user": {"name": "Jane Doe", "id": 123}, "active": true, "tags": ["go", "json"]}`)
	require.NoError(t, err)

	expectedRoot := map[string]any{
		"user": map[string]any{
			"name": "Jane Doe",
			"id":   float64(123),
		},
		"active": true,
		"tags":   []any{"go", "json"},
	}
	assert.Equal(t, expectedRoot, root)
}

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"null", "null", nil},
		{"true", "true", true},
		{"number", "-12.5e1", float64(-125)},
		{"string with surrounding whitespace", `  "foo"  `, "foo"},
		{"unicode escape", `"é"`, "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_DuplicateNamesLastWins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"scalar", `{"a": 1, "a": 2}`, map[string]any{"a": float64(2)}},
		{"object replaces object", `{"a": {"x": 1}, "a": {"y": 2}}`, map[string]any{
			"a": map[string]any{"y": float64(2)},
		}},
		{"array replaces array", `{"a": [1, 2], "a": [3]}`, map[string]any{"a": []any{float64(3)}}},
		{"scalar replaces object", `{"a": {"x": 1}, "a": null}`, map[string]any{"a": nil}},
		{"nested", `[{"k": {"a": 1}, "k": {"b": 2}, "z": 0}]`, []any{
			map[string]any{"k": map[string]any{"b": float64(2)}, "z": float64(0)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_LoneSurrogatesDecodeToReplacementChar(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"high surrogate", `"\ud800"`, "\ufffd"},
		{"low surrogate", `"a\udc00b"`, "a\ufffdb"},
		{"object key", `{"\ud800": 1}`, map[string]any{"\ufffd": float64(1)}},
		{"valid pair", `"\ud83d\ude00"`, "\U0001F600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_NumbersOutOfRange(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1e400", math.Inf(1)},
		{"-1e400", math.Inf(-1)},
		{"1e-400", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{"bare word", "foo", errors.ErrInvalidJSON},
		{"unterminated object", `{"a": 1`, errors.ErrInvalidJSON},
		{"trailing comma", `[1, 2,]`, errors.ErrInvalidJSON},
		{"trailing data", `{} {}`, errors.ErrInvalidJSON},
		{"empty", "", errors.ErrEmptyInput},
		{"whitespace only", " \n\t ", errors.ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)

			var appErr *errors.AppError
			require.True(t, stderrors.As(err, &appErr))
			assert.Equal(t, errors.ErrorTypeParsing, appErr.Type)
			assert.NotEmpty(t, appErr.Message)
			assert.True(t, stderrors.Is(err, tt.sentinel), "expected %v in chain of %v", tt.sentinel, err)
			assert.Equal(t, appErr.Message, MessageOf(err))
		})
	}
}

func TestParse_MessageHasNoPackagePrefix(t *testing.T) {
	_, err := ParseString(`{"a" 1}`)
	require.Error(t, err)

	msg := MessageOf(err)
	assert.False(t, strings.HasPrefix(msg, "jsontext:"), msg)
	assert.False(t, strings.HasPrefix(msg, "json:"), msg)
}

func TestParse_TruncatedInputReadsAsEndOfInput(t *testing.T) {
	_, err := ParseString(`[1,`)
	require.Error(t, err)
	assert.Equal(t, EmptyInputMessage, MessageOf(err))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": [1, 2]}`), 0o644))

	text, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a": [1, 2]}`, text)

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrFileNotFound))

	_, err = ReadFile("  ")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidFilePath))
}

func TestReadFile_EmptyFileIsNotAnInputError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	text, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, text)
}
