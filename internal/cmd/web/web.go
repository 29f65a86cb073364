// Package web parses web command flags and launches the injury-risk web server.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/injuryrisk/internal/platform/cmd"
	"github.com/louisbranch/injuryrisk/internal/prediction/httpclient"
	"github.com/louisbranch/injuryrisk/internal/services/web"
	"github.com/louisbranch/injuryrisk/internal/services/web/storage"
	webpostgres "github.com/louisbranch/injuryrisk/internal/services/web/storage/postgres"
	websqlite "github.com/louisbranch/injuryrisk/internal/services/web/storage/sqlite"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"INJURYRISK_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	PredictEndpoint     string        `env:"INJURYRISK_PREDICT_ENDPOINT" envDefault:"http://localhost:3000/predict"`
	PredictTimeout      time.Duration `env:"INJURYRISK_PREDICT_TIMEOUT" envDefault:"0s"`
	SessionTTL          time.Duration `env:"INJURYRISK_WEB_SESSION_TTL" envDefault:"30m"`
	DBPath              string        `env:"INJURYRISK_WEB_DB_PATH"`
	DBURL               string        `env:"INJURYRISK_WEB_DB_URL"`
	HTMXScriptURL       string        `env:"INJURYRISK_WEB_HTMX_SCRIPT_URL"`
	TrustForwardedProto bool          `env:"INJURYRISK_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.PredictEndpoint, "predict-endpoint", cfg.PredictEndpoint, "Prediction service URL")
	fs.DurationVar(&cfg.PredictTimeout, "predict-timeout", cfg.PredictTimeout, "Prediction request timeout (0 disables)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Idle form session lifetime")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite outcome log path (empty disables)")
	fs.StringVar(&cfg.DBURL, "db-url", cfg.DBURL, "PostgreSQL outcome log URL (empty disables)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DBPath) != "" && strings.TrimSpace(cfg.DBURL) != "" {
		return Config{}, errors.New("db-path and db-url are mutually exclusive")
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		client, err := httpclient.New(cfg.PredictEndpoint, httpclient.WithTimeout(cfg.PredictTimeout))
		if err != nil {
			return fmt.Errorf("init prediction client: %w", err)
		}

		submissions, err := openSubmissions(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open outcome log: %w", err)
		}
		if submissions != nil {
			defer func() {
				if err := submissions.Close(); err != nil {
					log.Printf("close outcome log: %v", err)
				}
			}()
		}

		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			Predictor:           client,
			Submissions:         submissions,
			SessionTTL:          cfg.SessionTTL,
			HTMXScriptURL:       cfg.HTMXScriptURL,
			TrustForwardedProto: cfg.TrustForwardedProto,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		log.Printf("web listening on %s (predict endpoint %s)", server.Addr(), client.Endpoint())
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

// openSubmissions returns the configured outcome log, or nil when none is set.
func openSubmissions(ctx context.Context, cfg Config) (storage.SubmissionStore, error) {
	if url := strings.TrimSpace(cfg.DBURL); url != "" {
		return webpostgres.Open(ctx, url)
	}
	if path := strings.TrimSpace(cfg.DBPath); path != "" {
		return websqlite.Open(ctx, path)
	}
	return nil, nil
}
