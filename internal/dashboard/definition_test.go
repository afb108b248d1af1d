package dashboard

import (
	"strings"
	"testing"

	"github.com/aescanero/dago-prompt-dashboard/internal/chart"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDefinitionIsValid(t *testing.T) {
	def := Default()
	require.NoError(t, def.Validate())
	assert.Equal(t, DefaultPreviewRows, def.PreviewRows)
	assert.Len(t, def.Templates, 4)
}

func TestLoadFile(t *testing.T) {
	def, err := LoadFile("testdata/bom.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Bill of Materials Review", def.Title)
	assert.Contains(t, def.Description, "<b>BOM</b>")
	assert.NotContains(t, def.Description, "<script>")
	require.Len(t, def.Charts, 2)
	assert.Equal(t, chart.KindBox, def.Charts[1].Kind)
	assert.Equal(t, "rows >= 2", def.Charts[1].When)
	assert.True(t, def.Graph.Enabled())
	assert.Equal(t, []string{"Assembly ID"}, def.Filter.Columns)
	assert.Equal(t, 2, def.PreviewRows)
}

func TestExampleMatchesDefault(t *testing.T) {
	def, err := LoadFile("../../configs/dashboard.example.yaml")
	require.NoError(t, err)

	want := Default()
	if diff := cmp.Diff(want.Templates, def.Templates); diff != "" {
		t.Errorf("templates mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.Charts, def.Charts); diff != "" {
		t.Errorf("charts mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, want.Graph, def.Graph)
	assert.Equal(t, want.Filter, def.Filter)
	assert.Equal(t, want.Title, def.Title)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.yaml")
	assert.ErrorContains(t, err, "failed to read dashboard file")
}

func TestParseDefaultsPreviewRows(t *testing.T) {
	def, err := Parse(strings.NewReader(`
title: Minimal
templates:
  - name: Only
    body: "{table}"
`))
	require.NoError(t, err)
	assert.Equal(t, DefaultPreviewRows, def.PreviewRows)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "empty",
			yaml: "",
			want: "empty dashboard definition",
		},
		{
			name: "unknown field",
			yaml: "title: x\ncolour: red\ntemplates: [{name: a, body: b}]\n",
			want: "failed to decode dashboard",
		},
		{
			name: "no templates",
			yaml: "title: x\n",
			want: "invalid dashboard",
		},
		{
			name: "duplicate template",
			yaml: "title: x\ntemplates: [{name: a, body: b}, {name: a, body: c}]\n",
			want: "duplicate name",
		},
		{
			name: "bad chart kind",
			yaml: "title: x\ntemplates: [{name: a, body: b}]\ncharts: [{title: c, kind: pie, x: a}]\n",
			want: "invalid dashboard",
		},
		{
			name: "line without y",
			yaml: "title: x\ntemplates: [{name: a, body: b}]\ncharts: [{title: c, kind: line, x: a}]\n",
			want: "invalid dashboard",
		},
		{
			name: "non boolean gate",
			yaml: "title: x\ntemplates: [{name: a, body: b}]\ncharts: [{title: c, kind: bar, x: a, when: rows}]\n",
			want: "invalid when expression",
		},
		{
			name: "partial graph",
			yaml: "title: x\ntemplates: [{name: a, body: b}]\ngraph: {parent: P}\n",
			want: "invalid dashboard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
