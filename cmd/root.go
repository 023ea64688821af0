package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/alexiusacademia/gorcd/internal/report"
	"github.com/alexiusacademia/gorcd/internal/settings"
	"github.com/alexiusacademia/gorcd/internal/version"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	settingsPath string
)

// styles is chosen once stdout is known.
var styles = report.NewStyles(false)

var rootCmd = &cobra.Command{
	Use:   "gorcd",
	Short: "Reinforced Concrete Beam Detailing Tool",
	Long: `gorcd - Go Reinforced Concrete Beam Detailer

A CLI tool for the reinforcement detailing of multi-span
reinforced concrete beams.

This tool helps structural engineers:
  - Resolve bar diameters and code minimum clear spacing
  - Lay out main and cut-off bars in a row/column grid per face
  - Sweep cut-off bar (bastón) demand along each span
  - Resolve how every bar group ends at every node
  - Check the flexural capacity of the detailed sections
  - Export bar schedules and reports (PDF, XLSX) and diagrams

Anchorage lengths follow NSCP 2015 (Volume 1) provisions.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		styles = report.NewStyles(report.ColorEnabled(os.Stdout))
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gorcd v%-49s║\n", version.Version)
		fmt.Println("  ║   Go Reinforced Concrete Beam Detailer                    ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Commands:")
		fmt.Println("    • detail    detail every span and node of a development")
		fmt.Println("    • layout    lay out the bars of one section face")
		fmt.Println("    • demand    sweep the cut-off bars of one span face")
		fmt.Println("    • connect   resolve the bar ends at one node")
		fmt.Println("    • diameter  resolve bar diameter tokens")
		fmt.Println("    • export    write a report, schedule or diagram")
		fmt.Println()
		fmt.Println("  Use 'gorcd --help' to see all flags.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "layout settings file (toml or json), defaults to $"+settings.EnvPath)
}
