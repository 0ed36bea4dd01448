package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/internal/metrics"
	"github.com/sandevgo/pastcast/pkg/log"
)

const slowRequest = 5 * time.Second

type Deps struct {
	Chat    ChatService
	Climate Estimator
	Metrics *metrics.Metrics
	Health  Health
}

// Server is the JSON API. It implements srv.Service.
type Server struct {
	cfg     *config.AppConfig
	handler http.Handler

	mu      sync.Mutex
	httpSrv *http.Server
}

func NewServer(cfg *config.AppConfig, deps Deps) *Server {
	return &Server{cfg: cfg, handler: NewRouter(cfg, deps)}
}

func NewRouter(cfg *config.AppConfig, deps Deps) http.Handler {
	h := &handlers{chat: deps.Chat, climate: deps.Climate, health: deps.Health}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(accessLog(deps.Metrics, slowRequest))
	r.Use(recoverJSON)
	r.Use(corsMiddleware(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}
		r.Post("/message", h.message)
		r.Get("/history", h.history)
		r.Post("/clear", h.clear)
	})
	r.Post("/weather/probability", h.weatherProbability)
	r.Get("/health", h.healthz)
	if cfg.EnableMetrics && deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	return r
}

func (s *Server) Handler() http.Handler { return s.handler }

// Start blocks serving until Shutdown. Requests inherit the logger of ctx
// but not its cancellation, so in-flight exchanges finish during shutdown.
func (s *Server) Start(ctx context.Context) error {
	base := context.WithoutCancel(ctx)
	httpSrv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}

	s.mu.Lock()
	s.httpSrv = httpSrv
	s.mu.Unlock()

	log.FromCtx(ctx).Info().Str("addr", s.cfg.HTTPAddr).Msg("starting http api")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	httpSrv := s.httpSrv
	s.mu.Unlock()

	if httpSrv == nil {
		return nil
	}
	return httpSrv.Shutdown(ctx)
}
