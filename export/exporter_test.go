package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laneflow/diagram"
)

func TestNewExporterAllFormats(t *testing.T) {
	for _, format := range GetAvailableFormats() {
		exporter, err := NewExporter(format)
		require.NoError(t, err, "format %s", format)
		assert.NotEmpty(t, exporter.GetFileExtension())
		assert.NotEmpty(t, exporter.GetFormatName())
	}
}

func TestNewExporterUnknownFormat(t *testing.T) {
	_, err := NewExporter(Format("png"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"svg", FormatSVG},
		{"mermaid", FormatMermaid},
		{"mmd", FormatMermaid},
		{"json", FormatJSON},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("dot")
	assert.Error(t, err)
}

func TestFormatDescriptionsCoverAllFormats(t *testing.T) {
	descriptions := GetFormatDescriptions()
	for _, format := range GetAvailableFormats() {
		assert.Contains(t, descriptions, format)
	}
}

func TestJSONExportRoundTrips(t *testing.T) {
	d := sampleDiagram()
	out, err := NewJSONExporter().Export(d)
	require.NoError(t, err)

	var back diagram.ProcessDiagram
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	assert.Equal(t, d.ProcessName, back.ProcessName)
	assert.Len(t, back.Elements, len(d.Elements))
	assert.Len(t, back.Connections, len(d.Connections))
}
