package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/injuryrisk/internal/platform/timeouts"
	"github.com/louisbranch/injuryrisk/internal/prediction"
	webapp "github.com/louisbranch/injuryrisk/internal/services/web/app"
	module "github.com/louisbranch/injuryrisk/internal/services/web/module"
	"github.com/louisbranch/injuryrisk/internal/services/web/modules"
	"github.com/louisbranch/injuryrisk/internal/services/web/modules/predict"
	"github.com/louisbranch/injuryrisk/internal/services/web/platform/httpx"
	"github.com/louisbranch/injuryrisk/internal/services/web/platform/observability"
	"github.com/louisbranch/injuryrisk/internal/services/web/platform/pagerender"
	"github.com/louisbranch/injuryrisk/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/injuryrisk/internal/services/web/routepath"
	"github.com/louisbranch/injuryrisk/internal/services/web/session"
	webstatic "github.com/louisbranch/injuryrisk/internal/services/web/static"
	"github.com/louisbranch/injuryrisk/internal/services/web/storage"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	// Predictor performs the remote exchange for every session.
	Predictor prediction.Predictor
	// Submissions receives submission outcomes. Nil disables the outcome log
	// and its API.
	Submissions         storage.SubmissionStore
	SessionTTL          time.Duration
	HTMXScriptURL       string
	TrustForwardedProto bool
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Predictor == nil {
		return nil, errors.New("predictor is required")
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}
	deps := module.Dependencies{
		Sessions: session.NewRegistry(
			predict.NewControllerFactory(cfg.Predictor, cfg.Submissions),
			session.WithTTL(cfg.SessionTTL),
		),
		Submissions:         cfg.Submissions,
		Shell:               pagerender.Shell{HTMXScriptURL: strings.TrimSpace(cfg.HTMXScriptURL)},
		RequestSchemePolicy: policy,
	}
	h, err := webapp.Compose(webapp.ComposeInput{
		Modules:             modules.DefaultModules(deps),
		RequestSchemePolicy: policy,
	})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.Handle(routepath.Root, h)
	return otelhttp.NewHandler(httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(log.Default()),
	), "web"), nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
