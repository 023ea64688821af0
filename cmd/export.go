package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gorcd/internal/detailing"
	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/diagram"
	"github.com/alexiusacademia/gorcd/internal/report"
	"github.com/spf13/cobra"
)

var (
	exportFile   string
	exportOutput string
	exportTitle  string
	exportSpan   int
	exportFace   string
	exportGraph  bool
	exportDemand bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a detailed development to a report or drawing",
	Long: `Detail a development and write the result to a file. The output
kind follows the extension and flags:

  .pdf, .xlsx            detailing report with the bar schedule
  .dot                   connectivity graph source
  .svg with --graph      connectivity graph rendered by Graphviz
  .png, .svg, .pdf with --span
                         section drawing of one span, or the cut-off
                         bars along it with --demand

Examples:
  gorcd export -f beam.json -o report.pdf
  gorcd export -f beam.json -o schedule.xlsx --title "Beam B-1"
  gorcd export -f beam.json -o nodes.svg --graph
  gorcd export -f beam.json -o span1.png --span 1
  gorcd export -f beam.json -o span1-top.svg --span 1 --face top --demand`,
	Run: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "Path to development file (json, yaml) [required]")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file [required]")
	exportCmd.Flags().StringVar(&exportTitle, "title", "", "Report title")
	exportCmd.Flags().IntVar(&exportSpan, "span", 0, "Draw this span (from 1) instead of writing a report")
	exportCmd.Flags().StringVar(&exportFace, "face", "bottom", "Face for --demand: top or bottom")
	exportCmd.Flags().BoolVar(&exportGraph, "graph", false, "Render the connectivity graph")
	exportCmd.Flags().BoolVar(&exportDemand, "demand", false, "Plot the cut-off bars along the span")
	exportCmd.MarkFlagRequired("file")
	exportCmd.MarkFlagRequired("output")
}

func runExport(cmd *cobra.Command, args []string) {
	logger := loggerFromContext(cmd.Context())
	dev, err := loadDevelopment(exportFile, logger)
	if err != nil {
		fmt.Printf("Error loading development: %v\n", err)
		return
	}
	res := detailing.Detail(dev, detailing.WithLogger(logger))

	ext := strings.ToLower(filepath.Ext(exportOutput))
	switch {
	case exportSpan > 0:
		err = exportSpanDrawing(dev, res)
	case ext == ".dot":
		err = writeFile(exportOutput, []byte(diagram.ConnectivityDOT(dev, res.Connections)))
	case exportGraph:
		if ext != ".svg" {
			err = fmt.Errorf("graph output must be .svg or .dot, got %q", ext)
			break
		}
		var svg []byte
		svg, err = diagram.RenderSVG(cmd.Context(), diagram.ConnectivityDOT(dev, res.Connections))
		if err == nil {
			err = writeFile(exportOutput, svg)
		}
	default:
		meta := report.NewMeta(firstNonEmpty(exportTitle, dev.Name))
		err = report.Export(exportOutput, res, meta)
		if err == nil {
			logger.Debug("report written", "id", meta.ID, "path", exportOutput)
		}
	}
	if err != nil {
		fmt.Printf("Error exporting: %v\n", err)
		return
	}

	for _, warn := range res.Warnings() {
		fmt.Println("  " + styles.Warn(warn))
	}
	fmt.Println("  " + styles.OK("Exported to "+exportOutput))
}

func exportSpanDrawing(dev *development.Development, res *detailing.Result) error {
	i := exportSpan - 1
	if i >= len(res.Spans) {
		return fmt.Errorf("span %d out of range (1..%d)", exportSpan, len(res.Spans))
	}
	sp := res.Spans[i]

	if exportDemand {
		face, err := development.ParseFace(exportFace)
		if err != nil {
			return err
		}
		fr := sp.Face(face)
		return diagram.ExportDemandDiagram(fr.Demand, fr.Layout, exportOutput)
	}

	return diagram.ExportSectionDiagram(sectionData(dev, sp), exportOutput)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
