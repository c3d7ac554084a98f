package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/cliching"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cliching",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cliching version %s\n", strings.TrimSpace(cliching.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
