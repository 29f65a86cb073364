package web

import (
	"context"
	"flag"
	"path/filepath"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.PredictEndpoint != "http://localhost:3000/predict" {
		t.Fatalf("PredictEndpoint = %q", cfg.PredictEndpoint)
	}
	if cfg.PredictTimeout != 0 {
		t.Fatalf("PredictTimeout = %s, want 0", cfg.PredictTimeout)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("SessionTTL = %s, want %s", cfg.SessionTTL, 30*time.Minute)
	}
	if cfg.DBPath != "" {
		t.Fatalf("DBPath = %q, want empty", cfg.DBPath)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("INJURYRISK_PREDICT_ENDPOINT", "http://192.168.18.15:3000/predict")
	t.Setenv("INJURYRISK_WEB_HTTP_ADDR", "0.0.0.0:9000")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-http-addr", "127.0.0.1:9002",
		"-predict-timeout", "3s",
		"-db-path", "data/web.db",
	})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("HTTPAddr = %q, want flag override", cfg.HTTPAddr)
	}
	if cfg.PredictEndpoint != "http://192.168.18.15:3000/predict" {
		t.Fatalf("PredictEndpoint = %q, want env override", cfg.PredictEndpoint)
	}
	if cfg.PredictTimeout != 3*time.Second {
		t.Fatalf("PredictTimeout = %s, want 3s", cfg.PredictTimeout)
	}
	if cfg.DBPath != "data/web.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
}

func TestParseConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("INJURYRISK_WEB_SESSION_TTL", "soon")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("ParseConfig() error = nil, want error")
	}
}

func TestParseConfigRejectsBothStores(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	_, err := ParseConfig(fs, []string{"-db-path", "web.db", "-db-url", "postgres://localhost/injuryrisk"})
	if err == nil {
		t.Fatal("ParseConfig() error = nil, want error")
	}
}

func TestOpenSubmissionsDisabledByDefault(t *testing.T) {
	store, err := openSubmissions(context.Background(), Config{})
	if err != nil {
		t.Fatalf("openSubmissions() error = %v", err)
	}
	if store != nil {
		t.Fatal("store != nil, want disabled outcome log")
	}
}

func TestOpenSubmissionsSQLite(t *testing.T) {
	store, err := openSubmissions(context.Background(), Config{DBPath: filepath.Join(t.TempDir(), "web.db")})
	if err != nil {
		t.Fatalf("openSubmissions() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	records, err := store.ListSubmissions(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListSubmissions() error = %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records = %d, want 0", len(records))
	}
}
