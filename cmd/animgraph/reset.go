package main

import (
	"fmt"

	"github.com/aretw0/animgraph/pkg/container"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <container>",
	Short: "Remove every generated slot of a container",
	Long:  `Removes every slot of the container except its root marker. The next compile recreates slots with new IDs.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer b.close()

		opts := []container.Option{container.WithLogger(newLogger(cmd))}
		if b.locker != nil {
			opts = append(opts, container.WithLocker(b.locker))
		}
		removed, err := container.NewManager(b.store, opts...).Reset(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d slots removed from %s\n", removed, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
