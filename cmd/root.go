// Package cmd wires the chip8vm CLI: argument parsing and the top-level
// run/teardown sequence, following the command-per-file layout the
// retrieval pack's cobra-based CHIP-8 CLI uses.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chip8vm",
	Short: "chip8vm is a terminal CHIP-8 interpreter",
	Long:  "chip8vm is a terminal CHIP-8 interpreter",
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs chip8vm according to the user's subcommand and flags.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
