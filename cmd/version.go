package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gorcd/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gorcd",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gorcd v%s\n", version.Version)
		fmt.Printf("commit: %s\n", version.GitCommit)
		fmt.Printf("built: %s\n", version.BuildTime)
		fmt.Println("Reinforced Concrete Beam Detailing Tool")
		fmt.Println("Anchorage per NSCP 2015 (National Structural Code of the Philippines)")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
