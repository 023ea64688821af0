package cmd

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/diagram"
	"github.com/alexiusacademia/gorcd/internal/layout"
	"github.com/alexiusacademia/gorcd/internal/rebar"
	"github.com/spf13/cobra"
)

var (
	layoutWidth      float64
	layoutHeight     float64
	layoutCover      float64
	layoutQty        int
	layoutDia        string
	layoutL1Qty      int
	layoutL1Dia      string
	layoutL2Qty      int
	layoutL2Dia      string
	layoutStirrupDia string
	layoutLoops      int
	layoutFace       string
	layoutRows       int
	layoutCols       int
	layoutDiagram    bool
	layoutOutput     string
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Lay out the bars of one section face",
	Long: `Place the main and cut-off bars of one face of a beam section into
a row/column grid that respects the code clear spacing, the width
based column rules and the row cap.

Dimensions are in centimetres.

Examples:
  gorcd layout --width 30 --height 50 --qty 3 --dia 5/8
  gorcd layout -b 30 --height 50 --qty 2 --dia 3/4 --l1 2 --l1-dia 5/8 --face top --diagram
  gorcd layout -b 25 --height 45 --qty 4 --dia 1 --rows 2 -o section.png`,
	Run: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	layoutCmd.Flags().Float64VarP(&layoutWidth, "width", "b", 0, "Section width b (cm) [required]")
	layoutCmd.Flags().Float64Var(&layoutHeight, "height", 0, "Section height h (cm) [required]")
	layoutCmd.Flags().Float64Var(&layoutCover, "cover", 4, "Nominal concrete cover (cm)")
	layoutCmd.Flags().IntVar(&layoutQty, "qty", 0, "Number of main bars [required]")
	layoutCmd.Flags().StringVar(&layoutDia, "dia", "", "Main bar diameter token [required]")
	layoutCmd.MarkFlagRequired("width")
	layoutCmd.MarkFlagRequired("height")
	layoutCmd.MarkFlagRequired("qty")
	layoutCmd.MarkFlagRequired("dia")

	// Cut-off bars
	layoutCmd.Flags().IntVar(&layoutL1Qty, "l1", 0, "Number of L1 (outer) cut-off bars")
	layoutCmd.Flags().StringVar(&layoutL1Dia, "l1-dia", "", "L1 bar diameter token (defaults to --dia)")
	layoutCmd.Flags().IntVar(&layoutL2Qty, "l2", 0, "Number of L2 (inner) cut-off bars")
	layoutCmd.Flags().StringVar(&layoutL2Dia, "l2-dia", "", "L2 bar diameter token (defaults to --dia)")

	// Hoops
	layoutCmd.Flags().StringVar(&layoutStirrupDia, "stirrup-dia", "3/8", "Hoop diameter token")
	layoutCmd.Flags().IntVar(&layoutLoops, "loops", 1, "Number of concentric hoops")

	layoutCmd.Flags().StringVar(&layoutFace, "face", "bottom", "Face: top or bottom")
	layoutCmd.Flags().IntVar(&layoutRows, "rows", 0, "Force the number of rows")
	layoutCmd.Flags().IntVar(&layoutCols, "cols", 0, "Force the number of columns")

	// Diagram options
	layoutCmd.Flags().BoolVar(&layoutDiagram, "diagram", false, "Show ASCII section diagram")
	layoutCmd.Flags().StringVarP(&layoutOutput, "output", "o", "", "Export section diagram to file (png, svg, pdf)")
}

func runLayout(cmd *cobra.Command, args []string) {
	logger := loggerFromContext(cmd.Context())
	s, err := loadSettings(logger)
	if err != nil {
		fmt.Printf("Error loading settings: %v\n", err)
		return
	}
	face, err := development.ParseFace(layoutFace)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	cutDia := func(tok string) float64 {
		if tok == "" {
			tok = layoutDia
		}
		return rebar.DiameterToCm(tok, s)
	}
	in := layout.FaceInput{
		Face:     face,
		WidthCm:  layoutWidth,
		HeightCm: layoutHeight,
		CoverCm:  layoutCover,
		Stirrups: development.StirrupsSection{Diameter: rebar.ParseDiameter(layoutStirrupDia), Loops: layoutLoops},
		Main:     development.SteelMeta{Qty: layoutQty, Diameter: rebar.ParseDiameter(layoutDia)},
		Cutoff: layout.CutoffDemand{
			L1Qty:        layoutL1Qty,
			L2Qty:        layoutL2Qty,
			L1DiameterCm: cutDia(layoutL1Dia),
			L2DiameterCm: cutDia(layoutL2Dia),
		},
		Override: development.LayoutOverride{Rows: layoutRows, Cols: layoutCols},
	}

	res, err := layout.ComputeFaceLayout(in, s)

	printBanner("SECTION BAR LAYOUT")
	w := newTable()
	fmt.Fprintf(w, "  Face:\t%s\n", face)
	fmt.Fprintf(w, "  b x h:\t%.1f x %.1f cm\n", layoutWidth, layoutHeight)
	fmt.Fprintf(w, "  Cover:\t%.1f cm\n", layoutCover)
	fmt.Fprintf(w, "  Main bars:\t%d-%s\n", layoutQty, rebar.Canonical(layoutDia))
	if layoutL1Qty > 0 {
		fmt.Fprintf(w, "  L1 cut-off:\t%d-%s\n", layoutL1Qty, rebar.Canonical(firstNonEmpty(layoutL1Dia, layoutDia)))
	}
	if layoutL2Qty > 0 {
		fmt.Fprintf(w, "  L2 cut-off:\t%d-%s\n", layoutL2Qty, rebar.Canonical(firstNonEmpty(layoutL2Dia, layoutDia)))
	}
	w.Flush()
	fmt.Println()

	if err != nil {
		var f *layout.Failure
		if errors.As(err, &f) {
			fmt.Println("  " + styles.Fail(f.Reason))
		} else {
			fmt.Printf("Error computing layout: %v\n", err)
		}
		fmt.Println()
		return
	}
	if res.Empty() {
		fmt.Println("  Nothing to place.")
		fmt.Println()
		return
	}

	printSection("Grid")
	printLayout(res)
	fmt.Println()

	data := diagram.SectionDiagramData{
		Title:      fmt.Sprintf("%s face", face),
		Width:      layoutWidth,
		Height:     layoutHeight,
		CoverEffCm: res.CoverEffCm,
	}
	if face == development.Top {
		data.Top = res
	} else {
		data.Bottom = res
	}
	if layoutDiagram {
		fmt.Print(diagram.DrawASCIISection(data))
		fmt.Println()
	}
	if layoutOutput != "" {
		if err := diagram.ExportSectionDiagram(data, layoutOutput); err != nil {
			fmt.Printf("Error exporting diagram: %v\n", err)
			return
		}
		fmt.Println("  " + styles.OK("Diagram exported to "+layoutOutput))
		fmt.Println()
	}
}
