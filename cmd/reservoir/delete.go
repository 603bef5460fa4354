package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "delete a bookmark by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := e.load()
			if err != nil {
				return err
			}

			b := c.Get(args[0])
			if b == nil {
				return fmt.Errorf("no bookmark with id %q", args[0])
			}
			title := b.Title

			c.RemoveBookmark(args[0])
			if err := e.save(c); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", title)
			return nil
		},
	}
}
