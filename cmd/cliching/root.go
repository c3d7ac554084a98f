package main

import (
	"fmt"
	"os"

	"github.com/aretw0/cliching/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cliching",
	Short: "Cliching is an I Ching divination table for the terminal",
	Long: `Cliching casts hexagrams with the classic three-coin method and looks
them up in the King Wen interpretation corpus.

Run without a subcommand to sit down at the interactive divination table.`,
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("no-color")
		debug, _ := cmd.Flags().GetBool("debug")
		question, _ := cmd.Flags().GetString("question")

		err := cli.RunTable(cli.Options{
			Plain:    plain,
			Debug:    debug,
			Question: question,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colors and markdown rendering")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringP("question", "q", "", "The question under consultation")
}
