package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gorcd/internal/demand"
	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/diagram"
	"github.com/spf13/cobra"
)

var (
	demandFile    string
	demandSpan    int
	demandFace    string
	demandAt      float64
	demandDiagram bool
)

var demandCmd = &cobra.Command{
	Use:   "demand",
	Short: "Sweep the cut-off bars of one span face",
	Long: `Build the cut-off bar (bastón) intervals of the three zones of one
face of a span and report the peak number of bars running at the
same time, per line and combined.

Spans are numbered from 1. Distances are in metres from the left
support.

Examples:
  gorcd demand -f beam.json --span 1 --face top
  gorcd demand -f beam.yaml --span 2 --face bottom --at 2.5 --diagram`,
	Run: runDemand,
}

func init() {
	rootCmd.AddCommand(demandCmd)

	demandCmd.Flags().StringVarP(&demandFile, "file", "f", "", "Path to development file (json, yaml) [required]")
	demandCmd.Flags().IntVar(&demandSpan, "span", 1, "Span number (from 1)")
	demandCmd.Flags().StringVar(&demandFace, "face", "top", "Face: top or bottom")
	demandCmd.Flags().Float64Var(&demandAt, "at", -1, "Report the bars running at this distance (m)")
	demandCmd.Flags().BoolVar(&demandDiagram, "diagram", false, "Show the cut-off bars along the span")
	demandCmd.MarkFlagRequired("file")
}

func runDemand(cmd *cobra.Command, args []string) {
	logger := loggerFromContext(cmd.Context())
	dev, err := loadDevelopment(demandFile, logger)
	if err != nil {
		fmt.Printf("Error loading development: %v\n", err)
		return
	}
	face, err := development.ParseFace(demandFace)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	span := demandSpan - 1
	if span < 0 || span >= len(dev.Spans) {
		fmt.Printf("Error: span %d out of range (1..%d)\n", demandSpan, len(dev.Spans))
		return
	}

	d := demand.ComputeCutoffDemand(dev, span, face)

	printBanner("CUT-OFF BAR DEMAND")
	w := newTable()
	fmt.Fprintf(w, "  Span:\t%d %s\n", demandSpan, dev.Spans[span].Name)
	fmt.Fprintf(w, "  Face:\t%s\n", face)
	fmt.Fprintf(w, "  Length:\t%.2f m\n", d.LengthM)
	w.Flush()
	fmt.Println()

	if d.Empty() {
		fmt.Println("  No cut-off bars on this face.")
		fmt.Println()
		return
	}

	printSection("Intervals")
	w = newTable()
	fmt.Fprintf(w, "  Zone\tLine\tStart (m)\tEnd (m)\tBars\tDia (cm)\n")
	fmt.Fprintf(w, "  ────\t────\t─────────\t───────\t────\t────────\n")
	for _, iv := range d.Intervals {
		fmt.Fprintf(w, "  %s\t%s\t%.2f\t%.2f\t%d\t%.3f\n", iv.Zone, iv.Line, iv.Start, iv.End, iv.Weight, iv.DiameterCm)
	}
	w.Flush()
	fmt.Println()

	printSection("Peaks")
	w = newTable()
	fmt.Fprintf(w, "  L1 (outer):\t%d\n", d.L1Peak)
	fmt.Fprintf(w, "  L2 (inner):\t%d\n", d.L2Peak)
	fmt.Fprintf(w, "  Combined:\t%d\n", d.CombinedPeak)
	fmt.Fprintf(w, "  Governing diameter:\t%.3f cm\n", d.GoverningDiameterCm)
	w.Flush()
	fmt.Println()

	if demandAt >= 0 {
		fmt.Printf("  At x = %.2f m: L1 %d, L2 %d\n\n",
			demandAt, d.ActiveAt(demandAt, development.L1), d.ActiveAt(demandAt, development.L2))
	}
	if demandDiagram {
		fmt.Print(diagram.DrawDemandStrip(d, nil, 60))
		fmt.Println()
	}
}
