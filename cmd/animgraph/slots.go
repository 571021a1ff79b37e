package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var slotsCmd = &cobra.Command{
	Use:   "slots <container>",
	Short: "List the slots of a container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer b.close()

		ctx := cmd.Context()
		keys, err := b.store.List(ctx, args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tID\tREVISION\tUPDATED")
		for _, key := range keys {
			slot, err := b.store.Get(ctx, args[0], key)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", slot.Key, slot.ID, slot.Revision, slot.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(slotsCmd)
}
