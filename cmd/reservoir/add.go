package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/reservoir/internal/app"
	"github.com/nikbrunner/reservoir/internal/model"
)

// ErrDuplicateLink is returned when the link is already stored.
var ErrDuplicateLink = errors.New("link already bookmarked")

func newAddCmd(e *env) *cobra.Command {
	var (
		noteFlag string
		tagsFlag string
	)

	cmd := &cobra.Command{
		Use:     "add <title> <link>",
		Short:   "add a bookmark",
		Example: `  reservoir add "Hacker News" https://news.ycombinator.com --tags news,tech`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := e.load()
			if err != nil {
				return err
			}

			form := app.AddForm{Title: args[0], Link: args[1], Note: noteFlag, Tags: tagsFlag}
			if c.HasLink(model.NormalizeLink(form.Link)) {
				return fmt.Errorf("%w: %s", ErrDuplicateLink, model.NormalizeLink(form.Link))
			}

			b, ok := app.AddBookmark(c, form, model.Now())
			if !ok {
				return errors.New("title and link must not be empty")
			}
			if err := e.save(c); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), b.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&noteFlag, "note", "n", "", "free-form note")
	cmd.Flags().StringVarP(&tagsFlag, "tags", "t", "", "comma separated tags")

	return cmd
}
