package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/reservoir/internal/exporter"
	"github.com/nikbrunner/reservoir/internal/logger"
	"github.com/nikbrunner/reservoir/internal/storage"
)

func newExportCmd(e *env) *cobra.Command {
	var (
		htmlFlag bool
		dirFlag  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "write a copy of all bookmarks to the export directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirFlag
			if dir == "" {
				var err error
				if dir, err = e.cfg.ResolveExportDir(); err != nil {
					return err
				}
			}

			c, err := e.load()
			if err != nil {
				return err
			}

			var path string
			if htmlFlag {
				path, err = exporter.WriteHTML(c, dir, time.Now())
			} else {
				path, err = storage.Export(c, dir, time.Now())
			}
			if err != nil {
				e.log.Error("export failed", logger.String("dir", dir), logger.Err(err))
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks to %s\n", c.Len(), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&htmlFlag, "html", false, "Netscape HTML instead of JSON")
	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "target directory (default export_dir)")

	return cmd
}
