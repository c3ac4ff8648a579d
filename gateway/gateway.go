// Package gateway serves the Fotolia client over HTTP.
//
// Every API call made on behalf of a request is reported back to the caller
// through X-Fotolia-API-Call-Method-N and X-Fotolia-API-Call-Time-N headers.
//
// Routes:
//
//	GET|POST /call/:method   dispatch a registered method, arguments from query or form
//	GET      /download       stream ?url= from an allowed host, anonymous when comp=1
//	GET      /methods        list registered methods
//	GET      /metrics        Prometheus metrics
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/fotoctl/fotolia"
	"github.com/s0up4200/fotoctl/metrics"
)

// DefaultListen is the address the gateway listens on when none is set.
const DefaultListen = "127.0.0.1:8085"

// API is the part of *fotolia.Client the gateway uses.
type API interface {
	Call(ctx context.Context, method string, params fotolia.Params) (*fotolia.Response, error)
	Download(ctx context.Context, downloadURL string, sink io.Writer, requireAuth bool) error
}

// Config configures the gateway.
//
// CORSOrigins lists the browser origins allowed to call the gateway. It is
// empty by default, which denies every cross-origin request; "*" allows all.
// DownloadHosts lists the hosts /download may fetch from. A leading "*." or
// "." matches any subdomain. Downloads from other hosts are refused.
type Config struct {
	Listen          string
	CORSOrigins     []string
	DownloadHosts   []string
	ShutdownTimeout time.Duration
}

// Server routes HTTP requests to the Fotolia API.
type Server struct {
	*httprouter.Router

	api     API
	metrics *metrics.Collector
	logger  zerolog.Logger
	cfg     Config
	srv     *http.Server
}

// New creates a gateway. collector may be nil, in which case /metrics is not
// served.
func New(api API, collector *metrics.Collector, cfg Config, logger zerolog.Logger) *Server {
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		Router:  httprouter.New(),
		api:     api,
		metrics: collector,
		logger:  logger.With().Str("component", "gateway").Logger(),
		cfg:     cfg,
	}

	s.GET("/call/*method", s.handleCall)
	s.POST("/call/*method", s.handleCall)
	s.GET("/download", s.handleDownload)
	s.GET("/methods", s.handleMethods)
	if collector != nil {
		s.Handler(http.MethodGet, "/metrics", collector.Handler())
	}

	return s
}

// HTTPHandler returns the router wrapped with CORS handling.
func (s *Server) HTTPHandler() http.Handler {
	return cors.New(corsOptions(s.cfg.CORSOrigins)).Handler(s)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("address", s.cfg.Listen).Msg("Starting gateway")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("gateway listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("Stopping gateway")
		return s.srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
