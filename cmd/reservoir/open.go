package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/reservoir/internal/logger"
	"github.com/nikbrunner/reservoir/internal/model"
	"github.com/nikbrunner/reservoir/internal/picker"
	"github.com/nikbrunner/reservoir/internal/search"
	"github.com/nikbrunner/reservoir/internal/sys"
)

func newOpenCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "open <query>",
		Short: "fuzzy search titles, pick one and open it in the browser",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			c, err := e.load()
			if err != nil {
				return err
			}

			results := search.FuzzySearchBookmarks(c, query)
			if len(results) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No bookmarks found for '%s'\n", query)
				return nil
			}

			var selected *model.Bookmark
			if len(results) == 1 {
				selected = results[0].Bookmark
			} else {
				final, err := tea.NewProgram(picker.New(results, query)).Run()
				if err != nil {
					return fmt.Errorf("running picker: %w", err)
				}
				selected = final.(picker.Picker).SelectedBookmark()
			}
			if selected == nil {
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Opening: %s\n", selected.Title)
			if err := sys.OpenLink(selected.Link); err != nil {
				e.log.Error("open link failed", logger.String("link", selected.Link), logger.Err(err))
				return err
			}
			return nil
		},
	}
}
