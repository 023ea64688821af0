package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gorcd/internal/rebar"
	"github.com/spf13/cobra"
)

var diameterCmd = &cobra.Command{
	Use:   "diameter <token>...",
	Short: "Resolve bar diameter tokens",
	Long: `Resolve bar diameter tokens to centimetres using the layout settings
table, and show the code minimum clear spacing for each bar.

Tokens may be inch fractions (5/8, 3/4, 1"), mixed numbers (1-1/8),
millimetre sizes (16mm) or any key of the settings table. Unknown
tokens fall back to a 3/4" bar.

Examples:
  gorcd diameter 5/8 3/4 1
  gorcd diameter 16mm 1-1/8 --settings layout.toml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runDiameter,
}

func init() {
	rootCmd.AddCommand(diameterCmd)
}

func runDiameter(cmd *cobra.Command, args []string) {
	s, err := loadSettings(loggerFromContext(cmd.Context()))
	if err != nil {
		fmt.Printf("Error loading settings: %v\n", err)
		return
	}

	fmt.Println()
	w := newTable()
	fmt.Fprintf(w, "  Token\tCanonical\tdb (cm)\tdb (mm)\tArea (cm²)\ts_min (cm)\n")
	fmt.Fprintf(w, "  ─────\t─────────\t───────\t───────\t──────────\t──────────\n")
	for _, tok := range args {
		db, ok := rebar.Resolve(tok, s)
		canon := rebar.Canonical(tok)
		if !ok {
			canon += " (fallback)"
		}
		fmt.Fprintf(w, "  %s\t%s\t%.3f\t%.1f\t%.3f\t%.2f\n",
			tok, canon, db, db*10, rebar.AreaCm2(db), rebar.MinClearSpacingCm(db, s))
	}
	w.Flush()
	fmt.Println()
}
