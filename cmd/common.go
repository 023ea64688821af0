package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/layout"
	"github.com/alexiusacademia/gorcd/internal/settings"
	"github.com/charmbracelet/log"
)

// loadSettings returns the layout settings named by --settings or
// $GORCD_SETTINGS, or the defaults when neither is set.
func loadSettings(logger *log.Logger) (settings.SteelLayoutSettings, error) {
	s, ok, err := settings.Resolve(settingsPath)
	if err != nil {
		return settings.SteelLayoutSettings{}, err
	}
	if !ok {
		return settings.Default(), nil
	}
	logger.Debug("loaded layout settings", "path", firstNonEmpty(settingsPath, os.Getenv(settings.EnvPath)))
	return s, nil
}

// loadDevelopment reads a development file. A settings file replaces the
// settings embedded in the development.
func loadDevelopment(path string, logger *log.Logger) (*development.Development, error) {
	dev, err := development.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	s, ok, err := settings.Resolve(settingsPath)
	if err != nil {
		return nil, err
	}
	if ok {
		dev.Settings = s
		logger.Debug("layout settings replaced from file")
	}
	logger.Debug("loaded development", "path", path, "spans", len(dev.Spans), "nodes", len(dev.Nodes))
	return dev, nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func printSection(title string) {
	fmt.Println(styles.Header(title))
}

func printBanner(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     %s\n", styles.Title.Render(title))
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}

// printLayout prints the grid and the placed bars of one face.
func printLayout(res *layout.Result) {
	w := newTable()
	fmt.Fprintf(w, "  Grid:\t%d row(s) x %d column(s)\n", res.Rows, res.Cols)
	fmt.Fprintf(w, "  Horizontal pitch:\t%.2f cm\n", res.PitchCm)
	fmt.Fprintf(w, "  Row pitch:\t%.2f cm\n", res.RowPitchCm)
	fmt.Fprintf(w, "  Min clear spacing:\t%.2f cm\n", res.MinSpacingCm)
	fmt.Fprintf(w, "  Effective cover:\t%.2f cm\n", res.CoverEffCm)
	fmt.Fprintf(w, "  Governing diameter:\t%.3f cm\n", res.GoverningDiameterCm)
	fmt.Fprintf(w, "  Steel area:\t%.2f cm²\n", res.SteelAreaCm2())
	w.Flush()
	fmt.Println()

	w = newTable()
	fmt.Fprintf(w, "  Role\tRow\tCol\tY (cm)\tZ (cm)\tDia (cm)\n")
	fmt.Fprintf(w, "  ────\t───\t───\t──────\t──────\t────────\n")
	for _, role := range []layout.Role{layout.RoleMain, layout.RoleL1, layout.RoleL2} {
		db := res.MainDiameterCm
		switch role {
		case layout.RoleL1:
			db = res.L1DiameterCm
		case layout.RoleL2:
			db = res.L2DiameterCm
		}
		for _, b := range res.Bars(role) {
			fmt.Fprintf(w, "  %s\t%d\t%d\t%.2f\t%.2f\t%.3f\n", role, b.Row+1, b.Col+1, b.Y, b.Z, db)
		}
	}
	w.Flush()

	for _, sf := range res.Shortfalls {
		fmt.Println("  " + styles.Warn(sf.String()))
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
