package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"laneflow/diagram"
	"laneflow/export"
	"laneflow/layout"
	"laneflow/repair"
	"laneflow/validation"
)

func main() {
	var (
		inputFile  = flag.String("i", "", "Input diagram file path (JSON)")
		format     = flag.String("f", "svg", "Output format (svg, mermaid, json)")
		output     = flag.String("o", "", "Output file path (default: stdout)")
		layoutFile = flag.String("layout", "", "YAML file overriding layout constants")
		showAdded  = flag.Bool("show-added", false, "Print connections added by repair to stderr")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: laneflow -i diagram.json [options]\n\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		descriptions := export.GetFormatDescriptions()
		for _, f := range export.GetAvailableFormats() {
			fmt.Fprintf(os.Stderr, "  %-8s %s\n", f, descriptions[f])
		}
	}
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required (-i)\n")
		flag.Usage()
		os.Exit(1)
	}

	exportFormat, err := export.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	content, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	// Validate the candidate document before anything touches it.
	validator, err := validation.NewValidator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building validator: %v\n", err)
		os.Exit(1)
	}
	if err := validator.ValidateBytes(content); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid diagram: %v\n", err)
		if serr, ok := err.(*validation.SchemaError); ok {
			for _, violation := range serr.Violations {
				fmt.Fprintf(os.Stderr, "  %s\n", violation)
			}
		}
		os.Exit(1)
	}

	var d diagram.ProcessDiagram
	if err := json.Unmarshal(content, &d); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing diagram: %v\n", err)
		os.Exit(1)
	}

	engine, err := buildEngine(*layoutFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading layout config: %v\n", err)
		os.Exit(1)
	}

	// Repair: prune dangling references and stitch components together.
	result := repair.NewRepairerWithEngine(engine).Repair(&d)
	if *showAdded {
		for _, conn := range result.Pruned {
			fmt.Fprintf(os.Stderr, "pruned dangling connection %s -> %s\n", conn.Source, conn.Target)
		}
		for _, conn := range result.Added {
			fmt.Fprintf(os.Stderr, "added connection %s -> %s\n", conn.Source, conn.Target)
		}
	}

	rendered, err := render(exportFormat, engine, &result.Diagram)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting diagram: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(rendered)
	}
}

// render builds the exporter for the requested format. The SVG exporter gets
// the same engine the repairer measured distances on, so the drawn picture
// matches the repair decisions.
func render(format export.Format, engine *layout.Engine, d *diagram.ProcessDiagram) (string, error) {
	var exporter export.Exporter
	if format == export.FormatSVG {
		exporter = export.NewSVGExporterWithEngine(engine)
	} else {
		var err error
		exporter, err = export.NewExporter(format)
		if err != nil {
			return "", err
		}
	}
	return exporter.Export(d)
}

// layoutOverrides mirrors layout.Config with optional fields, so a YAML file
// only needs to name the constants it changes.
type layoutOverrides struct {
	CanvasWidth *float64 `yaml:"canvasWidth"`
	LaneHeight  *float64 `yaml:"laneHeight"`
	LaneGap     *float64 `yaml:"laneGap"`
	LeftMargin  *float64 `yaml:"leftMargin"`
	RightMargin *float64 `yaml:"rightMargin"`
	MinGap      *float64 `yaml:"minGap"`
}

func buildEngine(path string) (*layout.Engine, error) {
	cfg := layout.DefaultConfig()
	if path == "" {
		return layout.NewEngineWithConfig(cfg), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var overrides layoutOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if overrides.CanvasWidth != nil {
		cfg.CanvasWidth = *overrides.CanvasWidth
	}
	if overrides.LaneHeight != nil {
		cfg.LaneHeight = *overrides.LaneHeight
	}
	if overrides.LaneGap != nil {
		cfg.LaneGap = *overrides.LaneGap
	}
	if overrides.LeftMargin != nil {
		cfg.LeftMargin = *overrides.LeftMargin
	}
	if overrides.RightMargin != nil {
		cfg.RightMargin = *overrides.RightMargin
	}
	if overrides.MinGap != nil {
		cfg.MinGap = *overrides.MinGap
	}
	return layout.NewEngineWithConfig(cfg), nil
}
