package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
	"github.com/leapstack-labs/leaprecord/internal/cli/testutil"
	"github.com/leapstack-labs/leaprecord/pkg/connection"
	"github.com/leapstack-labs/leaprecord/pkg/core"
)

var sampleResult = &connection.Result{
	Columns: []string{"id", "name"},
	Rows: [][]core.Value{
		{core.IntValue(1), core.StringValue("ada")},
		{core.IntValue(2), core.Null()},
	},
}

func TestRenderResult(t *testing.T) {
	tests := []struct {
		name string
		tr   *testutil.TestRenderer
		mode output.OutputMode
		want string
	}{
		{"table", testutil.NewTestRendererTable(), output.ModeTable, "│ NULL │"},
		{"plain", testutil.NewTestRendererPlain(), output.ModePlain, "1\tada\n2\tNULL\n"},
		{"json", testutil.NewTestRendererJSON(), output.ModeJSON, `"name": null`},
		{"yaml", testutil.NewTestRenderer(output.ModeYAML, false), output.ModeYAML, "name: ada"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, renderResult(tt.tr.Renderer, sampleResult))
			testutil.AssertOutputMode(t, tt.tr, tt.mode)
			assert.Contains(t, tt.tr.Output(), tt.want)
		})
	}
}

func TestNewColumnView(t *testing.T) {
	v := newColumnView(core.Column{Name: "name", SQLType: "varchar(40)", Type: core.String, Limit: 40, Default: core.StringValue("anon")})
	require.NotNil(t, v.Default)
	assert.Equal(t, "anon", *v.Default)
	assert.Equal(t, "string", v.Type)

	v = newColumnView(core.Column{Name: "age", Type: core.Integer})
	assert.Nil(t, v.Default)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b,"))
	assert.Nil(t, splitList(""))
}
