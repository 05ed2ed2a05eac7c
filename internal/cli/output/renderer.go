// Package output renders command results as terminal tables, plain text,
// JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// OutputMode selects how results are rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto  OutputMode = "auto"  // table on a terminal, plain otherwise
	ModeTable OutputMode = "table" // box-drawn tables
	ModePlain OutputMode = "plain" // tab-separated rows without decoration
	ModeJSON  OutputMode = "json"
	ModeYAML  OutputMode = "yaml"
)

// Mode parses a mode name. Unknown or empty names mean auto.
func Mode(s string) OutputMode {
	switch m := OutputMode(strings.ToLower(s)); m {
	case ModeTable, ModePlain, ModeJSON, ModeYAML:
		return m
	default:
		return ModeAuto
	}
}

// Renderer writes results to an output stream in the selected mode.
type Renderer struct {
	w     io.Writer
	errW  io.Writer
	isTTY bool
	mode  OutputMode
}

// NewRenderer creates a renderer, detecting whether w is a terminal.
func NewRenderer(w, errW io.Writer, mode OutputMode) *Renderer {
	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(w, errW, isTTY, mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(w, errW io.Writer, isTTY bool, mode OutputMode) *Renderer {
	return &Renderer{w: w, errW: errW, isTTY: isTTY, mode: mode}
}

// EffectiveMode resolves auto against the terminal state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeTable
	}
	return ModePlain
}

// Table is a tabular view of a result.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render writes data in JSON/YAML modes and t in table/plain modes.
func (r *Renderer) Render(data any, t Table) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.json(data)
	case ModeYAML:
		return r.yaml(data)
	case ModeTable:
		r.table(t)
		return nil
	default:
		r.plain(t)
		return nil
	}
}

// Value writes a single named value: bare text in table/plain modes,
// a one-key object in JSON/YAML modes.
func (r *Renderer) Value(key, text string) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.json(map[string]string{key: text})
	case ModeYAML:
		return r.yaml(map[string]string{key: text})
	default:
		_, err := fmt.Fprintln(r.w, text)
		return err
	}
}

// Warn writes a message to the error stream.
func (r *Renderer) Warn(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errW, format+"\n", args...)
}

func (r *Renderer) json(data any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (r *Renderer) yaml(data any) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Renderer) table(t Table) {
	if len(t.Rows) == 0 {
		_, _ = fmt.Fprintln(r.w, "(0 rows)")
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(r.w)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, row := range t.Rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = v
		}
		tw.AppendRow(out)
	}
	tw.Render()
}

func (r *Renderer) plain(t Table) {
	for _, row := range t.Rows {
		_, _ = fmt.Fprintln(r.w, strings.Join(row, "\t"))
	}
}
