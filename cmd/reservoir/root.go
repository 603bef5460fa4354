package main

import (
	"fmt"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/reservoir/internal/config"
	"github.com/nikbrunner/reservoir/internal/logger"
	"github.com/nikbrunner/reservoir/internal/model"
	"github.com/nikbrunner/reservoir/internal/storage"
	"github.com/nikbrunner/reservoir/internal/tui"
)

// LogFileName is the log file inside the data directory.
const LogFileName = "reservoir.log"

// env is the state shared by all commands, set up before each run.
type env struct {
	cfg   *config.Config
	log   logger.Logger
	store storage.Storage
}

// load reads the whole collection, logging failures.
func (e *env) load() (*model.Collection, error) {
	c, err := e.store.Load()
	if err != nil {
		e.log.Error("load failed", logger.String("path", e.store.Path()), logger.Err(err))
		return nil, err
	}
	return c, nil
}

// save persists the collection, logging failures.
func (e *env) save(c *model.Collection) error {
	if err := e.store.Save(c); err != nil {
		e.log.Error("save failed", logger.String("path", e.store.Path()), logger.Err(err))
		return err
	}
	e.log.Debug("saved", logger.Int("bookmarks", c.Len()))
	return nil
}

// close releases the store and flushes the log. It runs after every
// command, failed or not, and is safe to call more than once.
func (e *env) close() {
	if e.store != nil {
		if closer, ok := e.store.(io.Closer); ok {
			_ = closer.Close()
		}
		e.store = nil
	}
	if e.log != nil {
		_ = e.log.Sync()
		e.log = nil
	}
}

func newRootCmd(e *env) *cobra.Command {
	var (
		configFlag  string
		verboseFlag bool
	)

	rootCmd := &cobra.Command{
		Use:           "reservoir",
		Short:         "a terminal bookmark manager",
		Long:          "reservoir keeps titled, tagged links with optional notes.\nRun without arguments to open the interactive list.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(configFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(e)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "config file (default per-user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newListCmd(e),
		newAddCmd(e),
		newDeleteCmd(e),
		newOpenCmd(e),
		newImportCmd(e),
		newExportCmd(e),
		newCheckCmd(e),
	)

	return rootCmd
}

// setup loads config, then opens the log and the store.
func (e *env) setup(configPath string, verbose bool) error {
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	e.cfg = cfg

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogPretty, filepath.Join(dataDir, LogFileName))
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	e.log = log

	store, err := storage.Open(cfg.Backend, dataDir)
	if err != nil {
		log.Error("open storage failed", logger.String("backend", cfg.Backend), logger.Err(err))
		return err
	}
	e.store = store

	log.Debug("started",
		logger.String("config", configPath),
		logger.String("backend", cfg.Backend),
		logger.String("store", store.Path()))
	return nil
}

func runTUI(e *env) error {
	exportDir, err := e.cfg.ResolveExportDir()
	if err != nil {
		// Exports report the failure when attempted
		e.log.Warn("no export directory", logger.Err(err))
	}

	app := tui.NewApp(tui.AppParams{
		Storage:       e.store,
		Logger:        e.log,
		Query:         e.cfg.Query(),
		ExportDir:     exportDir,
		NoticeTimeout: e.cfg.NoticeTimeout,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running app: %w", err)
	}
	return nil
}
