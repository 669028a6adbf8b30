package e2e_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binPath is the semjson binary built once for all tests. go run is not used
// because it does not forward the exit code of the program.
var binPath string

func TestMain(m *testing.M) {
	tempDir, err := os.MkdirTemp("", "semjson-e2e")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	binPath = filepath.Join(tempDir, "semjson")
	build := exec.Command("go", "build", "-o", binPath, "../..")
	if out, err := build.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "Error building semjson: %v\n%s", err, out)
		_ = os.RemoveAll(tempDir)
		os.Exit(1)
	}

	code := m.Run()
	_ = os.RemoveAll(tempDir)
	os.Exit(code)
}

type result struct {
	stdout, stderr string
	code           int
}

func runSemjson(t testing.TB, dir, stdin string, args ...string) result {
	t.Helper()
	cmd := exec.Command(binPath, args...)
	cmd.Dir = dir
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else {
		require.NoError(t, err)
	}
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func writeFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const leftDocument = `{
	"id": 12345,
	"updated_at": null,
	"config": {
		"enabled": true,
		"timeout_seconds": 30,
		"features": ["logging", "metrics", "alerting"],
		"rate_limits": {"per_second": 100, "burst": 150}
	},
	"users": [
		{"id": 1, "name": "Alice", "roles": ["admin", "user"]},
		{"id": 2, "name": "Bob", "roles": ["user"]}
	],
	"active": true
}`

const rightDocument = `{
	"active": true,
	"config": {
		"enabled": true,
		"timeout_seconds": 60,
		"features": ["logging", "metrics", "alerting"],
		"rate_limits": {"per_second": 100, "burst": 150}
	},
	"id": 12345,
	"updated_at": "2023-05-20T14:56:23Z",
	"users": [
		{"id": 1, "name": "Alice", "roles": ["admin", "user"]},
		{"id": 2, "name": "Bob", "roles": ["user", "ops"]}
	]
}`

// TestEndToEnd_ComplexNestedStructures compares two files with nested changes
func TestEndToEnd_ComplexNestedStructures(t *testing.T) {
	tempDir := t.TempDir()
	left := writeFile(t, tempDir, "left.json", leftDocument)
	right := writeFile(t, tempDir, "right.json", rightDocument)

	res := runSemjson(t, tempDir, "", "--collapse", left, right)
	require.Equal(t, 1, res.code, "stderr: %s", res.stderr)

	assert.Equal(t, `  {
    "active": true,
    "config": {
      "enabled": true,
      "features": [..],
      "rate_limits": {..},
-     "timeout_seconds": 30,
+     "timeout_seconds": 60
    },
    "id": 12345,
-   "updated_at": null,
+   "updated_at": "2023-05-20T14:56:23Z",
    "users": [
      {..},
      {
        "id": 2,
        "name": "Bob",
        "roles": [
          "user",
+         "ops"
        ]
      }
    ]
  }
`, res.stdout)
}

func TestEndToEnd_Summary(t *testing.T) {
	tempDir := t.TempDir()
	left := writeFile(t, tempDir, "left.json", leftDocument)
	right := writeFile(t, tempDir, "right.json", rightDocument)

	res := runSemjson(t, tempDir, "", "-f", "summary", left, right)
	require.Equal(t, 1, res.code, "stderr: %s", res.stderr)
	assert.Equal(t, `15 unchanged. 2 removed. 3 added.
- /config/timeout_seconds number
+ /config/timeout_seconds number
- /updated_at null
+ /updated_at string
+ /users/1/roles/1 string
`, res.stdout)
}

func TestEndToEnd_JSONOutput(t *testing.T) {
	tempDir := t.TempDir()
	left := writeFile(t, tempDir, "left.json", leftDocument)
	right := writeFile(t, tempDir, "right.json", rightDocument)

	res := runSemjson(t, tempDir, "", "--format", "json", left, right)
	require.Equal(t, 1, res.code, "stderr: %s", res.stderr)

	var out struct {
		Status   string `json:"status"`
		IsSame   bool   `json:"isSame"`
		Children []struct {
			Side string `json:"side"`
			Type string `json:"type"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, "ok", out.Status)
	assert.False(t, out.IsSame)
	require.Len(t, out.Children, 1)
	assert.Equal(t, "both", out.Children[0].Side)
	assert.Equal(t, "object", out.Children[0].Type)
}

func TestEndToEnd_Patch(t *testing.T) {
	tempDir := t.TempDir()
	left := writeFile(t, tempDir, "left.json", leftDocument)
	right := writeFile(t, tempDir, "right.json", rightDocument)

	res := runSemjson(t, tempDir, "", "-f", "patch", left, right)
	require.Equal(t, 1, res.code, "stderr: %s", res.stderr)

	var ops []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &ops))
	assert.NotEmpty(t, ops)
	for _, op := range ops {
		assert.Contains(t, []string{"add", "remove", "replace", "move", "copy", "test"}, op["op"])
	}
}

func TestEndToEnd_FromStdin(t *testing.T) {
	tempDir := t.TempDir()
	right := writeFile(t, tempDir, "right.json", `{"mixed_array": [1, "string", true, null]}`)

	res := runSemjson(t, tempDir, `{"mixed_array": [1, "string", false, null]}`, "-", right)
	require.Equal(t, 1, res.code, "stderr: %s", res.stderr)
	assert.Contains(t, res.stdout, "-     false,")
	assert.Contains(t, res.stdout, "+     true,")
}

func TestEndToEnd_OutputFile(t *testing.T) {
	tempDir := t.TempDir()
	outputFile := filepath.Join(tempDir, "result.txt")

	res := runSemjson(t, tempDir, "", "-s", "-o", outputFile, `{"a":1}`, `{"a":1}`)
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Comparison written to")

	written, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "  {\n    \"a\": 1\n  }\n", string(written))
}

func TestEndToEnd_ConfigDiscovery(t *testing.T) {
	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	writeFile(t, tempDir, ".semjson.yml", "output:\n  format: summary\n")

	res := runSemjson(t, nested, "", "-s", `[1]`, `[2]`)
	require.Equal(t, 1, res.code, "stderr: %s", res.stderr)
	assert.Equal(t, "0 unchanged. 1 removed. 1 added.\n- /0 number\n+ /0 number\n", res.stdout)

	// Flags win over the file
	res = runSemjson(t, nested, "", "-s", "-f", "text", `[1]`, `[2]`)
	require.Equal(t, 1, res.code, "stderr: %s", res.stderr)
	assert.Equal(t, "  [\n-   1,\n+   2\n  ]\n", res.stdout)
}

func TestEndToEnd_Version(t *testing.T) {
	res := runSemjson(t, t.TempDir(), "", "--version")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "semjson version")
}

// TestEndToEnd_ExitCodes tests exit codes for various edge cases
func TestEndToEnd_ExitCodes(t *testing.T) {
	tempDir := t.TempDir()
	empty := writeFile(t, tempDir, "empty.json", "")

	testCases := []struct {
		name     string
		args     []string
		stdin    string
		code     int
		expected string
	}{
		{name: "EmptyObjects", args: []string{"-s", `{}`, `{}`}, code: 0, expected: "  {}"},
		{name: "EmptyArrays", args: []string{"-s", `[]`, ` [ ] `}, code: 0, expected: "  []"},
		{name: "SingleValue", args: []string{"-s", `"just a string"`, `"just a string"`}, code: 0, expected: `"just a string"`},
		{name: "KeyOrder", args: []string{"-s", `{"a":1,"b":2}`, `{"b":2,"a":1}`}, code: 0, expected: `"b": 2`},
		{name: "ScalarTypeMismatch", args: []string{"-s", `1`, `"1"`}, code: 1, expected: "- 1,\n+ \"1\""},
		{name: "ArrayVersusObject", args: []string{"-s", `[]`, `{}`}, code: 1, expected: "- [],\n+ {}"},
		{name: "InvalidJSON", args: []string{"-s", `{"name": "Invalid JSON",}`, `{}`}, code: 2, expected: "Could not parse left input: "},
		{name: "BothInvalid", args: []string{"-s", `[`, `nope`}, code: 2, expected: "Could not parse right input: "},
		{name: "EmptyFile", args: []string{empty, empty}, code: 2, expected: "Could not parse left input: unexpected end of JSON input"},
		{name: "DeeplyNested", args: []string{"-s", "--max-depth", "3", `[[[[42]]]]`, `[]`}, code: 2, expected: "maximum nesting depth of 3 exceeded"},
		{name: "DeeplyNestedAllowed", args: []string{"-s", `[[[[[[42]]]]]]`, `[[[[[[42]]]]]]`}, code: 0, expected: "42"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := runSemjson(t, tempDir, tc.stdin, tc.args...)
			assert.Equal(t, tc.code, res.code, "stderr: %s", res.stderr)
			assert.Contains(t, res.stdout, tc.expected)
		})
	}
}

func TestEndToEnd_UsageErrors(t *testing.T) {
	tempDir := t.TempDir()

	testCases := []struct {
		name   string
		args   []string
		stderr string
	}{
		{name: "MissingArguments", args: []string{"-s", `{}`}, stderr: "For help, run: semjson --help"},
		{name: "StdinTwice", args: []string{"-", "-"}, stderr: "Input error: both inputs read from stdin"},
		{name: "MissingFile", args: []string{"missing.json", "missing.json"}, stderr: "Input error: file 'missing.json' not found"},
		{name: "UnknownFormat", args: []string{"-s", "-f", "xml", `{}`, `{}`}, stderr: `Configuration error: invalid output format "xml"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := runSemjson(t, tempDir, "{}", tc.args...)
			assert.Equal(t, 2, res.code)
			assert.Contains(t, res.stderr, tc.stderr)
			assert.Empty(t, res.stdout)
		})
	}
}

// TestEndToEnd_Samples compares the sample documents shipped in testdata
func TestEndToEnd_Samples(t *testing.T) {
	samples, err := filepath.Abs("../../testdata/samples")
	require.NoError(t, err)
	left := filepath.Join(samples, "user_v1.json")
	right := filepath.Join(samples, "user_v2.json")

	res := runSemjson(t, t.TempDir(), "", "-f", "summary", left, right)
	require.Equal(t, 1, res.code, "stderr: %s", res.stderr)
	assert.Equal(t, `8 unchanged. 4 removed. 6 added.
- /user/email string
+ /user/email string
- /user/profile/avatar null
+ /user/profile/avatar string
- /user/roles/0 string
- /user/roles/1 string
+ /user/roles/0 string
+ /user/roles/1 string
+ /user/roles/2 string
+ /user/stats object
`, res.stdout)

	// Same file on both sides
	res = runSemjson(t, t.TempDir(), "", left, left)
	assert.Equal(t, 0, res.code, "stderr: %s", res.stderr)
}
