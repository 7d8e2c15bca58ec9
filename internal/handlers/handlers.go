package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vangoframework/invhealth/internal/auth"
	"github.com/vangoframework/invhealth/internal/config"
	"github.com/vangoframework/invhealth/internal/database"
	"github.com/vangoframework/invhealth/internal/metrics"
	"github.com/vangoframework/invhealth/internal/shell"
)

// Handlers contains all HTTP handler dependencies.
type Handlers struct {
	config        *config.Config
	db            *database.DB // nil when running on the memory store
	sessions      *auth.SessionStore
	tokens        *auth.TokenIssuer
	authenticator *auth.Authenticator
	metrics       *metrics.Metrics // nil when metrics are disabled
	shell         *shell.Controller
	logger        *slog.Logger
}

// New creates a new Handlers instance with all dependencies.
func New(
	cfg *config.Config,
	db *database.DB,
	sessions *auth.SessionStore,
	tokens *auth.TokenIssuer,
	authenticator *auth.Authenticator,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*Handlers, error) {
	h := &Handlers{
		config:        cfg,
		db:            db,
		sessions:      sessions,
		tokens:        tokens,
		authenticator: authenticator,
		metrics:       m,
		logger:        logger,
	}

	controller, err := h.newShell()
	if err != nil {
		return nil, fmt.Errorf("failed to build page shell: %w", err)
	}
	h.shell = controller

	return h, nil
}

// writeJSON writes v with the given status.
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
