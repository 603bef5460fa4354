package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/reservoir/internal/importer"
	"github.com/nikbrunner/reservoir/internal/logger"
)

func newImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "import bookmarks from a browser HTML export",
		Long:  "Import a Netscape bookmark file. Folder names become tags and links\nthat are already stored are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening file: %w", err)
			}
			defer file.Close()

			bookmarks, err := importer.ParseHTMLBookmarks(file)
			if err != nil {
				return fmt.Errorf("parsing HTML: %w", err)
			}

			c, err := e.load()
			if err != nil {
				return err
			}

			added, skipped := c.ImportMerge(bookmarks)
			if added > 0 {
				if err := e.save(c); err != nil {
					return err
				}
			}
			e.log.Info("imported",
				logger.String("file", args[0]),
				logger.Int("added", added),
				logger.Int("skipped", skipped))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d bookmarks", added)
			if skipped > 0 {
				fmt.Fprintf(out, " (%d duplicates skipped)", skipped)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
