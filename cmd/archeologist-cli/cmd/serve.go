package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"archeologist/internal/adapters/filesystem"
	"archeologist/internal/adapters/httpapi"
	"archeologist/internal/domain"
)

var (
	serveAddr      string
	serveWatch     bool
	serveQueryRate float64
	serveOrigins   []string
)

var serveCmd = &cobra.Command{
	Use:   "serve <snapshot.json>",
	Short: "Serve a graph snapshot as a development backend",
	Long: `Serve a snapshot file over the analysis backend's HTTP contract:
GET /health, GET /graph, GET /clusters and POST /query?q=. Metrics are
exposed on /metrics.

With --watch the snapshot is reloaded whenever the file changes.

Examples:
  archeologist-cli serve graph.json
  archeologist-cli serve graph.json --addr 127.0.0.1:9000 --watch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		g, clusters, err := filesystem.Load(path)
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}

		opts := []httpapi.ServerOption{
			httpapi.WithServerLogger(logger),
			httpapi.WithQueryRate(serveQueryRate, max(int(serveQueryRate), 1)),
		}
		if len(serveOrigins) > 0 {
			opts = append(opts, httpapi.WithAllowedOrigins(serveOrigins...))
		}
		srv := httpapi.NewServer(httpapi.Snapshot{Graph: g, Clusters: clusters}, opts...)
		httpServer := &http.Server{
			Addr:              addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		eg, ctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			good.Printf("serving %s on http://%s\n", path, addr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
		if serveWatch {
			eg.Go(func() error {
				return filesystem.Watch(ctx, path, logger, func(g *domain.Graph, clusters []domain.ClusterSummary) {
					srv.SetSnapshot(httpapi.Snapshot{Graph: g, Clusters: clusters})
					logger.Info("snapshot reloaded", zap.Int("nodes", g.NodeCount()))
				})
			})
		}
		return eg.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload the snapshot when the file changes")
	serveCmd.Flags().Float64Var(&serveQueryRate, "query-rate", 5, "allowed /query requests per second")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "origin", nil, "allowed CORS origins (default any)")
	rootCmd.AddCommand(serveCmd)
}
