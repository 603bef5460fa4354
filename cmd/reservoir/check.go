package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/reservoir/internal/culler"
	"github.com/nikbrunner/reservoir/internal/logger"
)

func newCheckCmd(e *env) *cobra.Command {
	var (
		pruneFlag bool
		quietFlag bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "find dead and unreachable links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := e.load()
			if err != nil {
				return err
			}

			opts := culler.Options{
				Concurrency:    e.cfg.Check.Concurrency,
				Timeout:        e.cfg.Check.Timeout,
				ExcludeDomains: e.cfg.Check.ExcludeDomains,
				Logger:         e.log,
			}
			if !quietFlag {
				errOut := cmd.ErrOrStderr()
				opts.OnProgress = func(completed, total int) {
					fmt.Fprintf(errOut, "\rChecking %d/%d", completed, total)
					if completed == total {
						fmt.Fprintln(errOut)
					}
				}
			}

			results := culler.CheckLinks(cmd.Context(), c.All(), opts)

			out := cmd.OutOrStdout()
			var dead []string
			for _, r := range results {
				switch r.Status {
				case culler.Dead:
					dead = append(dead, r.Bookmark.ID)
					fmt.Fprintf(out, "dead         %d  %s  %s\n", r.StatusCode, r.Bookmark.Title, r.Bookmark.Link)
				case culler.Unreachable:
					fmt.Fprintf(out, "unreachable  %s  %s  %s\n", r.Error, r.Bookmark.Title, r.Bookmark.Link)
				}
			}

			s := culler.Summarize(results)
			fmt.Fprintf(out, "%d healthy, %d dead, %d unreachable\n", s.Healthy, s.Dead, s.Unreachable)
			e.log.Info("checked links",
				logger.Int("healthy", s.Healthy),
				logger.Int("dead", s.Dead),
				logger.Int("unreachable", s.Unreachable))

			if pruneFlag && len(dead) > 0 {
				for _, id := range dead {
					c.RemoveBookmark(id)
				}
				if err := e.save(c); err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d dead bookmarks\n", len(dead))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pruneFlag, "prune", false, "delete bookmarks with dead links")
	cmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "no progress output")

	return cmd
}
