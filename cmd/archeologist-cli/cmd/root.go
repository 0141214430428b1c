package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"archeologist/internal/adapters/filesystem"
	"archeologist/internal/adapters/forcelayout"
	"archeologist/internal/adapters/httpapi"
	"archeologist/internal/adapters/sqlite"
	"archeologist/internal/application"
	"archeologist/internal/application/commands"
	"archeologist/internal/config"
	"archeologist/internal/domain"
	"archeologist/internal/logging"
	"archeologist/internal/ports"
)

var (
	configPath string
	verbose    bool
	noCache    bool
	timeout    time.Duration

	cfg     *config.Config
	logger  *zap.Logger
	backend ports.Backend
)

// Output colors
var (
	subtle = color.New(color.FgHiBlack)
	bad    = color.New(color.FgRed)
	good   = color.New(color.FgGreen)
)

// swatches approximates the cluster palette in terminal colors
var swatches = []color.Attribute{
	color.FgHiRed,
	color.FgHiCyan,
	color.FgHiBlue,
	color.FgHiGreen,
	color.FgHiYellow,
	color.FgHiMagenta,
	color.FgCyan,
	color.FgYellow,
}

var rootCmd = &cobra.Command{
	Use:   "archeologist-cli",
	Short: "Query a code knowledge graph from the command line",
	Long: `archeologist-cli reads the code knowledge graph produced by the
analysis backend and answers questions about it without the TUI.

It can search nodes, list clusters, compute camera poses, serve a graph
snapshot as a development backend, and write snapshots to disk.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger = logging.NewConsole(verbose)

		backend = httpapi.NewClient(cfg.Backend.URL, httpapi.WithClientLogger(logger))
		if cfg.Backend.Snapshot != "" {
			backend = filesystem.NewSource(cfg.Backend.Snapshot)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		bad.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "do not read or write the graph cache")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "backend request timeout")
}

// loadGraph fetches the graph, falling back to the cache, and settles the
// layout so every node has a position
func loadGraph(ctx context.Context) (application.LoadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := []application.LoaderOption{application.WithLoaderLogger(logger)}
	if path := cfg.CachePath(); path != "" && !noCache {
		cache, err := sqlite.Open(path)
		if err != nil {
			logger.Warn("graph cache unavailable", zap.String("path", path), zap.Error(err))
		} else {
			defer cache.Close()
			opts = append(opts, application.WithCache(cache))
		}
	}

	res, err := commands.NewLoadGraphCommand(application.NewGraphLoader(backend, opts...), layout()).Execute(ctx)
	if err != nil {
		return res, err
	}
	if res.Stale != nil {
		subtle.Fprintf(os.Stderr, "backend unreachable, using cached graph (%v)\n", res.Stale)
	}
	return res, nil
}

func layout() commands.LayoutFactory {
	params := cfg.Layout
	return func(g *domain.Graph) ports.LayoutEngine {
		return forcelayout.New(g, params)
	}
}

func swatch(id domain.ClusterID) string {
	c := color.New(swatches[domain.ColorIndex(id)%len(swatches)])
	return c.Sprint("●")
}

func formatVec(v domain.Vec3) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}
