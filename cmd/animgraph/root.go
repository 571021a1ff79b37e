package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/animgraph/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "animgraph",
	Short: "animgraph compiles animation controller graphs into a slot store",
	Long: `animgraph reads a YAML project describing colour pickers, toggles and
preset menus, compiles them into animator controllers and publishes each one
into a slot that keeps its identity across regenerations.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("store", "file", "Slot store backend: memory, file, bolt or redis")
	rootCmd.PersistentFlags().String("path", "", "Store location (directory for file, database file for bolt)")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address for the redis store")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}
