package http

import (
	"net/http"

	"github.com/jhagedorn/dartliga/internal/config"
	"github.com/jhagedorn/dartliga/internal/league"
	"github.com/jhagedorn/dartliga/internal/metrics"
	syncer "github.com/jhagedorn/dartliga/internal/sync"
)

func NewServer(store league.LeagueStore, metricsSvc metrics.Collector, metricsHandler http.Handler, cfg config.Config, orchestrator *syncer.Orchestrator) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Orchestrator:   orchestrator,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/sync", Chain(s.SyncHandler(), paramsMiddleware))
	s.Router.Handle("/api/dashboard", Chain(s.DashboardHandler(), paramsMiddleware))
	s.Router.Handle("/api/team", Chain(s.TeamHandler(), paramsMiddleware))
	s.Router.Handle("/api/synclogs", Chain(s.SyncLogsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
