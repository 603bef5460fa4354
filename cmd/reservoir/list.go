package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/reservoir/internal/model"
	"github.com/nikbrunner/reservoir/internal/search"
)

func newListCmd(e *env) *cobra.Command {
	var (
		fieldFlag string
		sortFlag  string
		jsonFlag  bool
	)

	cmd := &cobra.Command{
		Use:     "list [query]",
		Aliases: []string{"ls"},
		Short:   "print bookmarks, optionally filtered",
		Example: "  reservoir list\n  reservoir list --field tags news\n  reservoir list --sort newest --json",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := e.cfg.Query()
			if fieldFlag != "" {
				field, err := search.ParseFilterField(fieldFlag)
				if err != nil {
					return err
				}
				q.Field = field
			}
			if sortFlag != "" {
				mode, err := search.ParseSortMode(sortFlag)
				if err != nil {
					return err
				}
				q.Sort = mode
			}
			if text := strings.Join(args, " "); text != "" {
				q.Text = &text
			}

			c, err := e.load()
			if err != nil {
				return err
			}

			bookmarks := search.List(c, q)
			if jsonFlag {
				return writeJSON(cmd.OutOrStdout(), bookmarks)
			}
			return writeTable(cmd.OutOrStdout(), bookmarks)
		},
	}

	cmd.Flags().StringVarP(&fieldFlag, "field", "f", "", "filter field [all|title|link|tags]")
	cmd.Flags().StringVarP(&sortFlag, "sort", "s", "", "sort mode [relevance|newest|oldest]")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "JSON output")

	return cmd
}

func writeJSON(w io.Writer, bookmarks []*model.Bookmark) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bookmarks)
}

func writeTable(w io.Writer, bookmarks []*model.Bookmark) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, b := range bookmarks {
		tags := ""
		if len(b.Tags) > 0 {
			tags = "#" + strings.Join(b.Tags, " #")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Link, tags)
	}
	return tw.Flush()
}
