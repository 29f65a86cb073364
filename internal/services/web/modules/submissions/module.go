// Package submissions exposes the submission outcome log as JSON.
package submissions

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	module "github.com/louisbranch/injuryrisk/internal/services/web/module"
	apperrors "github.com/louisbranch/injuryrisk/internal/services/web/platform/errors"
	"github.com/louisbranch/injuryrisk/internal/services/web/platform/httpx"
	"github.com/louisbranch/injuryrisk/internal/services/web/routepath"
	"github.com/louisbranch/injuryrisk/internal/services/web/storage"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Module serves recent submission outcomes.
type Module struct {
	store storage.SubmissionStore
}

// New returns the submissions module backed by store.
func New(store storage.SubmissionStore) Module {
	return Module{store: store}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "submissions"
}

// Healthy reports whether the outcome log is wired.
func (m Module) Healthy() bool {
	return m.store != nil
}

// Mount wires the list route at its exact path.
func (m Module) Mount() (module.Mount, error) {
	if m.store == nil {
		return module.Mount{}, errors.New("submission store is required")
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+routepath.SubmissionsAPI, m.handleList)
	mux.HandleFunc(routepath.SubmissionsAPI, httpx.MethodNotAllowed(http.MethodGet+", "+http.MethodHead))
	return module.Mount{Prefix: routepath.SubmissionsAPI, Handler: mux}, nil
}

type submissionJSON struct {
	ID         string `json:"id"`
	Outcome    string `json:"outcome"`
	StatusCode int    `json:"status_code"`
	LatencyMS  int64  `json:"latency_ms"`
	CreatedAt  string `json:"created_at"`
}

func (m Module) handleList(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		_ = httpx.WriteJSONError(w, apperrors.HTTPStatus(err), apperrors.PublicMessage(err))
		return
	}
	records, err := m.store.ListSubmissions(r.Context(), limit)
	if err != nil {
		log.Printf("list submissions: %v", err)
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, "failed to list submissions")
		return
	}
	out := make([]submissionJSON, 0, len(records))
	for _, record := range records {
		out = append(out, submissionJSON{
			ID:         record.ID,
			Outcome:    string(record.Outcome),
			StatusCode: record.StatusCode,
			LatencyMS:  record.Latency.Milliseconds(),
			CreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]any{"submissions": out})
}

func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, apperrors.E(apperrors.KindInvalidInput, "limit must be a positive integer")
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, nil
}
