package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/animgraph"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of animgraph",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "animgraph version %s\n", strings.TrimSpace(animgraph.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
