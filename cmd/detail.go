package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/alexiusacademia/gorcd/internal/capacity"
	"github.com/alexiusacademia/gorcd/internal/detailing"
	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/diagram"
	"github.com/alexiusacademia/gorcd/internal/nscp"
	"github.com/alexiusacademia/gorcd/internal/rebar"
	"github.com/spf13/cobra"
)

var (
	detailFile        string
	detailDiagram     bool
	detailCapacity    bool
	detailConcurrency int
)

var detailCmd = &cobra.Command{
	Use:   "detail",
	Short: "Detail every span and node of a beam development",
	Long: `Run the whole detailing engine over a development file: cut-off
demand and bar layout for both faces of every span, then the
connectivity of every bar group at every node.

Layout failures and cut-off shortfalls are reported as warnings and
never stop the run.

Examples:
  gorcd detail -f beam.json
  gorcd detail -f beam.yaml --diagram --capacity
  gorcd detail -f beam.json --settings layout.toml -v`,
	Run: runDetail,
}

func init() {
	rootCmd.AddCommand(detailCmd)

	detailCmd.Flags().StringVarP(&detailFile, "file", "f", "", "Path to development file (json, yaml) [required]")
	detailCmd.Flags().BoolVar(&detailDiagram, "diagram", false, "Show ASCII sections and cut-off strips")
	detailCmd.Flags().BoolVar(&detailCapacity, "capacity", false, "Check the flexural capacity of every detailed section")
	detailCmd.Flags().IntVar(&detailConcurrency, "concurrency", runtime.GOMAXPROCS(0), "Spans detailed at once")
	detailCmd.MarkFlagRequired("file")
}

func runDetail(cmd *cobra.Command, args []string) {
	logger := loggerFromContext(cmd.Context())
	dev, err := loadDevelopment(detailFile, logger)
	if err != nil {
		fmt.Printf("Error loading development: %v\n", err)
		return
	}

	res := detailing.Detail(dev,
		detailing.WithLogger(logger),
		detailing.WithConcurrency(detailConcurrency),
	)

	printBanner("BEAM REINFORCEMENT DETAILING")
	w := newTable()
	if dev.Name != "" {
		fmt.Fprintf(w, "  Development:\t%s\n", dev.Name)
	}
	fmt.Fprintf(w, "  Spans:\t%d\n", len(dev.Spans))
	fmt.Fprintf(w, "  Total length:\t%.2f m\n", dev.TotalLength())
	fmt.Fprintf(w, "  f'c / fy:\t%.1f / %.1f MPa\n", dev.FcMPa, dev.FyMPa)
	fmt.Fprintf(w, "  Cover:\t%.1f cm\n", dev.CoverM*100)
	w.Flush()
	fmt.Println()

	printSection("Sections")
	w = newTable()
	fmt.Fprintf(w, "  Span\tFace\tMain\tL1 peak/placed\tL2 peak/placed\tGrid\tPitch (cm)\tStatus\n")
	fmt.Fprintf(w, "  ────\t────\t────\t──────────────\t──────────────\t────\t──────────\t──────\n")
	for _, sp := range res.Spans {
		for _, f := range development.Faces {
			fr := sp.Face(f)
			steel := dev.Spans[sp.Index].Steel(f)
			mainText := "-"
			if steel.Qty > 0 {
				mainText = fmt.Sprintf("%d-%s", steel.Qty, rebar.Canonical(steel.Diameter.String()))
			}
			l1 := fmt.Sprintf("%d/-", fr.Demand.L1Peak)
			l2 := fmt.Sprintf("%d/-", fr.Demand.L2Peak)
			grid, pitch, status := "-", "-", "ok"
			switch {
			case fr.Failure != nil:
				status = styles.Fail("no fit")
			case fr.Layout.Empty():
				status = "empty"
			default:
				l1 = fmt.Sprintf("%d/%d", fr.Demand.L1Peak, fr.Layout.CutoffPool(development.L1))
				l2 = fmt.Sprintf("%d/%d", fr.Demand.L2Peak, fr.Layout.CutoffPool(development.L2))
				grid = fmt.Sprintf("%dx%d", fr.Layout.Rows, fr.Layout.Cols)
				pitch = fmt.Sprintf("%.2f", fr.Layout.PitchCm)
				if len(fr.Layout.Shortfalls) > 0 {
					status = styles.Warn("shortfall")
				}
			}
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", sp.Index+1, f, mainText, l1, l2, grid, pitch, status)
		}
	}
	w.Flush()
	fmt.Println()

	if detailDiagram {
		for _, sp := range res.Spans {
			printSpanDiagrams(dev, sp)
		}
	}
	if detailCapacity {
		for _, sp := range res.Spans {
			printSpanCapacity(dev, sp)
		}
	}

	if len(res.Connections) > 0 {
		printSection("Connectivity")
		printConnections(res.Connections)
	}

	warnings := res.Warnings()
	if len(warnings) > 0 {
		printSection("Warnings")
		for _, warn := range warnings {
			fmt.Println("  " + styles.Warn(warn))
		}
		fmt.Println()
	} else {
		fmt.Println("  " + styles.OK("All faces detailed"))
		fmt.Println()
	}
}

func spanTitle(sp detailing.SpanResult) string {
	if sp.Name != "" {
		return fmt.Sprintf("Span %d (%s)", sp.Index+1, sp.Name)
	}
	return fmt.Sprintf("Span %d", sp.Index+1)
}

// sectionData collects both face layouts of a span for drawing.
func sectionData(dev *development.Development, sp detailing.SpanResult) diagram.SectionDiagramData {
	span := dev.Spans[sp.Index]
	data := diagram.SectionDiagramData{
		Title:  spanTitle(sp),
		Width:  span.B * 100,
		Height: span.H * 100,
		Top:    sp.Top.Layout,
		Bottom: sp.Bottom.Layout,
	}
	for _, f := range development.Faces {
		if lay := sp.Face(f).Layout; !lay.Empty() {
			data.CoverEffCm = lay.CoverEffCm
			break
		}
	}
	return data
}

func printSpanDiagrams(dev *development.Development, sp detailing.SpanResult) {
	fmt.Print(diagram.DrawASCIISection(sectionData(dev, sp)))
	for _, f := range development.Faces {
		fr := sp.Face(f)
		if fr.Demand.Empty() {
			continue
		}
		fmt.Print(diagram.DrawDemandStrip(fr.Demand, fr.Layout, 60))
	}
	fmt.Println()
}

func printSpanCapacity(dev *development.Development, sp detailing.SpanResult) {
	span := dev.Spans[sp.Index]
	fc, fy := dev.FcMPa, dev.FyMPa
	if fc <= 0 {
		fc = nscp.DefaultFc
	}
	if fy <= 0 {
		fy = nscp.DefaultFy
	}

	printSection(spanTitle(sp) + " capacity")
	for _, bending := range []capacity.Bending{capacity.Positive, capacity.Negative} {
		in := capacity.FromLayout(span.B*100, span.H*100, sp.Top.Layout, sp.Bottom.Layout, fc, fy, bending)
		result, err := capacity.Analyze(in)
		if err != nil {
			fmt.Printf("  %s bending: %s\n\n", bending, styles.Fail(err.Error()))
			continue
		}

		w := newTable()
		fmt.Fprintf(w, "  Layer\tY (mm)\tArea (mm²)\tStrain\tStress (MPa)\tForce (kN)\tStatus\n")
		fmt.Fprintf(w, "  ─────\t──────\t──────────\t──────\t────────────\t──────────\t──────\n")
		for _, l := range result.Layers {
			status := "Tension"
			if !l.IsTension {
				status = "Compression"
			}
			if l.HasYielded {
				status += " (yields)"
			}
			fmt.Fprintf(w, "  %s\t%.1f\t%.1f\t%.6f\t%.2f\t%.2f\t%s\n",
				l.Label, l.Y, l.Area, l.Strain, l.Stress, l.Force, status)
		}
		w.Flush()
		fmt.Println()

		lines := []string{
			fmt.Sprintf("c = %.2f mm, a = %.2f mm", result.C, result.A),
			fmt.Sprintf("εt = %.5f, φ = %.3f", result.EpsilonT, result.Phi),
			fmt.Sprintf("Mn = %.2f kN-m", result.Mn),
			fmt.Sprintf("φMn = %.2f kN-m", result.PhiMn),
		}
		moments := span.Moments.Positive
		if bending == capacity.Negative {
			moments = span.Moments.Negative
		}
		var check *capacity.Check
		if !moments.IsZero() {
			c := capacity.CheckMoments(result, moments)
			check = &c
			lines = append(lines,
				fmt.Sprintf("Mu = %.2f kN-m (%s)", c.Mu, c.Combination.Description),
				fmt.Sprintf("Mu/φMn = %.3f", c.Ratio),
			)
		}
		fmt.Print(diagram.DrawSummaryBox(fmt.Sprintf("%s BENDING", strings.ToUpper(bending.String())), lines))
		if check != nil {
			if check.OK {
				fmt.Println("  " + styles.OK("φMn ≥ Mu"))
			} else {
				fmt.Println("  " + styles.Fail("φMn < Mu, section is inadequate"))
			}
		}
		if result.MeetsMinReinf {
			fmt.Println("  " + result.Message)
		} else {
			fmt.Println("  " + styles.Warn(result.Message))
		}
		fmt.Println()
	}
}
