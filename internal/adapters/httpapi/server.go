package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"archeologist/internal/domain"
)

// Snapshot is the data the development server serves
type Snapshot struct {
	Graph    *domain.Graph
	Clusters []domain.ClusterSummary
}

// Server is a development backend serving a fixed graph over the same
// endpoints as the analysis service. Snapshots are swapped atomically.
type Server struct {
	mu       sync.RWMutex
	snapshot Snapshot

	logger   *zap.Logger
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	limiter  *rate.Limiter
	origins  []string
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithServerLogger sets the request logger
func WithServerLogger(logger *zap.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithQueryRate limits POST /query to perSecond requests with the given burst
func WithQueryRate(perSecond float64, burst int) ServerOption {
	return func(s *Server) {
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithAllowedOrigins sets the CORS origins; the default allows any
func WithAllowedOrigins(origins ...string) ServerOption {
	return func(s *Server) {
		s.origins = origins
	}
}

// NewServer creates a server for snap
func NewServer(snap Snapshot, opts ...ServerOption) *Server {
	s := &Server{
		logger:   zap.NewNop(),
		registry: prometheus.NewRegistry(),
		limiter:  rate.NewLimiter(rate.Inf, 0),
		origins:  []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archeologist_http_requests_total",
			Help: "Requests served by the development backend",
		},
		[]string{"route", "status"},
	)
	s.duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "archeologist_http_request_duration_seconds",
			Help:    "Request latency of the development backend",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	s.registry.MustRegister(s.requests, s.duration)

	s.SetSnapshot(snap)
	return s
}

// SetSnapshot replaces the served data. A missing cluster listing is
// derived from the graph's assignments.
func (s *Server) SetSnapshot(snap Snapshot) {
	if snap.Graph == nil {
		snap.Graph = domain.NewGraph(nil, nil)
	}
	if snap.Clusters == nil {
		snap.Clusters = DeriveClusters(snap.Graph)
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.logger.Info("snapshot loaded",
		zap.Int("nodes", snap.Graph.NodeCount()),
		zap.Int("clusters", len(snap.Clusters)))
}

func (s *Server) current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Registry exposes the server's metrics registry
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(s.logRequests)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	router.Get("/health", s.instrument("health", s.handleHealth))
	router.Get("/graph", s.instrument("graph", s.handleGraph))
	router.Get("/clusters", s.instrument("clusters", s.handleClusters))
	router.Post("/query", s.instrument("query", s.handleQuery))
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return router
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = chimiddleware.GetReqID(r.Context())
		}
		s.logger.Info("HTTP Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestID", reqID),
		)
	})
}

func (s *Server) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		h(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.requests.WithLabelValues(route, fmt.Sprint(status)).Inc()
		s.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g := s.current().Graph
	payload := struct {
		Nodes []*domain.Node `json:"nodes"`
		Links []domain.Link  `json:"links"`
	}{Nodes: g.Nodes, Links: g.Links}
	if payload.Nodes == nil {
		payload.Nodes = []*domain.Node{}
	}
	if payload.Links == nil {
		payload.Links = []domain.Link{}
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.current().Clusters)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"detail": "too many queries"})
		return
	}

	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "query parameter q is required"})
		return
	}

	writeJSON(w, http.StatusOK, Answer(s.current(), q))
}

// Answer builds the development backend's reply to a question: graph
// counts plus the nodes whose names match words in the question
func Answer(snap Snapshot, q string) QueryResponse {
	relevant := []string{}
	seen := make(map[string]bool)
	index := domain.NewSearchIndex(snap.Graph)
	for _, word := range strings.Fields(q) {
		if len(word) < 3 {
			continue
		}
		for _, n := range index.Search(word).Nodes {
			if !seen[n.ID] && len(relevant) < domain.MaxSearchResults {
				seen[n.ID] = true
				relevant = append(relevant, n.ID)
			}
		}
	}

	text := fmt.Sprintf("I analyzed your question: '%s'. This system has %d functions in %d clusters.",
		q, snap.Graph.NodeCount(), len(snap.Clusters))
	if len(relevant) > 0 {
		text += fmt.Sprintf(" The most relevant functions are: %s.", strings.Join(relevant, ", "))
	}
	return QueryResponse{Response: text, RelevantNodes: relevant}
}

// DeriveClusters builds the cluster listing from node assignments
func DeriveClusters(g *domain.Graph) []domain.ClusterSummary {
	agg := domain.NewClusterAggregator(g)
	ids := agg.ListClusterIDs()
	clusters := make([]domain.ClusterSummary, 0, len(ids))
	for _, id := range ids {
		members := agg.Members(id)
		nodeIDs := make([]string, len(members))
		for i, n := range members {
			nodeIDs[i] = n.ID
		}
		clusters = append(clusters, domain.ClusterSummary{
			ID:        domain.NewClusterID(id.String()),
			Name:      "Cluster " + id.String(),
			NodeCount: len(members),
			Nodes:     nodeIDs,
			RiskScore: "LOW",
		})
	}
	return clusters
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
