// Package export renders repaired diagrams to output formats. Every format
// that draws geometry goes through the shared layout and geometry modules, so
// all rendering surfaces place shapes and connector endpoints identically.
package export

import (
	"fmt"

	"laneflow/diagram"
)

// Format represents an export format.
type Format string

const (
	// FormatSVG exports scalable vector graphics with lane bands and
	// curved connectors (default laneflow format).
	FormatSVG Format = "svg"
	// FormatMermaid exports Mermaid flowchart syntax.
	FormatMermaid Format = "mermaid"
	// FormatJSON exports the canonical diagram document.
	FormatJSON Format = "json"
)

// Exporter interface for different export formats.
type Exporter interface {
	// Export converts a diagram to the target format.
	Export(d *diagram.ProcessDiagram) (string, error)
	// GetFileExtension returns the recommended file extension for this format.
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format.
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format.
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatSVG:
		return NewSVGExporter(), nil
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "svg":
		return FormatSVG, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats.
func GetAvailableFormats() []Format {
	return []Format{
		FormatSVG,
		FormatMermaid,
		FormatJSON,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats.
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatSVG:     "Scalable vector graphics (laneflow native format)",
		FormatMermaid: "Mermaid flowchart syntax (for Markdown)",
		FormatJSON:    "Canonical repaired diagram document",
	}
}
