// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"encoding/json"
	"regexp"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
)

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererTable creates a test renderer that draws tables (simulated TTY).
func NewTestRendererTable() *TestRenderer {
	return NewTestRenderer(output.ModeAuto, true)
}

// NewTestRendererPlain creates a test renderer in plain mode.
func NewTestRendererPlain() *TestRenderer {
	return NewTestRenderer(output.ModeAuto, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertOutputMode checks that the captured output is well-formed for the mode.
func AssertOutputMode(t *testing.T, tr *TestRenderer, expectedMode output.OutputMode) {
	t.Helper()

	out := tr.Output()
	AssertNoANSI(t, out+tr.ErrorOutput())

	var v any
	switch expectedMode {
	case output.ModeJSON:
		if err := json.Unmarshal([]byte(out), &v); err != nil {
			t.Errorf("output is not valid JSON: %v\n%s", err, out)
		}
	case output.ModeYAML:
		if err := yaml.Unmarshal([]byte(out), &v); err != nil {
			t.Errorf("output is not valid YAML: %v\n%s", err, out)
		}
	case output.ModeTable:
		if !bytes.ContainsRune(tr.Out.Bytes(), '┌') && out != "(0 rows)\n" {
			t.Errorf("output is not a table:\n%s", out)
		}
	}
}
