package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"archeologist/internal/adapters/editor"
	"archeologist/internal/adapters/filesystem"
	"archeologist/internal/adapters/forcelayout"
	"archeologist/internal/adapters/httpapi"
	"archeologist/internal/adapters/sqlite"
	"archeologist/internal/adapters/tui"
	"archeologist/internal/application"
	"archeologist/internal/config"
	"archeologist/internal/domain"
	"archeologist/internal/logging"
	"archeologist/internal/ports"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to the config file")
	root := flag.String("root", ".", "repository root for opening node files")
	flag.Parse()

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("archeologist needs an interactive terminal")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Initialize adapters
	var backend ports.Backend = httpapi.NewClient(cfg.Backend.URL, httpapi.WithClientLogger(logger))
	if cfg.Backend.Snapshot != "" {
		backend = filesystem.NewSource(cfg.Backend.Snapshot)
	}

	loaderOpts := []application.LoaderOption{application.WithLoaderLogger(logger)}
	if path := cfg.CachePath(); path != "" {
		cache, err := sqlite.Open(path)
		if err != nil {
			logger.Warn("graph cache unavailable", zap.String("path", path), zap.Error(err))
		} else {
			defer cache.Close()
			loaderOpts = append(loaderOpts, application.WithCache(cache))
		}
	}

	params := cfg.Layout
	app := tui.NewApp(
		application.NewGraphLoader(backend, loaderOpts...),
		backend,
		tui.Config{
			Navigation: cfg.Navigation(),
			Panels:     cfg.PanelConfig(),
			CellWidth:  cfg.Panels.CellWidth,
			CellHeight: cfg.Panels.CellHeight,
		},
		tui.WithLogger(logger),
		tui.WithEditor(editor.NewOpener(editor.WithRoot(*root))),
		tui.WithLayout(func(g *domain.Graph) ports.LayoutEngine {
			return forcelayout.New(g, params)
		}),
	)

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err = p.Run()
	return err
}
