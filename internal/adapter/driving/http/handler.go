// Package httphandler is the HTTP driving adapter: it turns authenticated
// GitHub webhook deliveries into semantic events and feeds them to the
// reconciler.
package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	gh "github.com/google/go-github/v82/github"

	"github.com/chevah/github-hooks-server/internal/domain/model"
)

// EventHandler is the driving port into the reconciliation core.
type EventHandler interface {
	Handle(ctx context.Context, e model.Event) model.ReviewOutcome
}

// BranchFinder resolves the head branch of a pull request. Issue comment
// payloads do not carry one, so the handler looks it up before dispatch.
type BranchFinder interface {
	HeadBranch(ctx context.Context, repoFullName string, prNumber int) (string, error)
}

// Handler is the HTTP driving adapter serving the webhook endpoint.
type Handler struct {
	events        EventHandler
	branches      BranchFinder
	webhookSecret []byte
	timeout       time.Duration
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. timeout
// bounds the handling of one delivery, external calls included.
func NewHandler(
	events EventHandler,
	branches BranchFinder,
	webhookSecret string,
	timeout time.Duration,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		events:        events,
		branches:      branches,
		webhookSecret: []byte(webhookSecret),
		timeout:       timeout,
		logger:        logger,
	}
}

// RegisterRoutes registers the webhook and health endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /hooks/github", h.HandleWebhook)
	mux.HandleFunc("GET /healthz", h.Health)
}

// ApplyMiddleware wraps the mux with logging and recovery middleware.
// Recovery sits innermost so panics are caught before the request is logged.
func ApplyMiddleware(mux http.Handler, logger *slog.Logger) http.Handler {
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)
	return wrapped
}

// HandleWebhook validates, parses and dispatches one webhook delivery.
// Non-actionable deliveries still answer 200: GitHub sends plenty of event
// shapes this service does not care about, and a 2xx keeps the hook healthy.
// A disposition of error answers 500 so the delivery can be replayed.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := gh.ValidatePayload(r, h.webhookSecret)
	if err != nil {
		h.logger.Warn("webhook signature rejected", "error", err)
		writeError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	parsed, err := gh.ParseWebHook(gh.WebHookType(r), payload)
	if err != nil {
		h.logger.Warn("webhook payload rejected",
			"type", gh.WebHookType(r),
			"error", err,
		)
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	event := MapWebHook(parsed)
	h.resolveBranch(ctx, &event)

	outcome := h.events.Handle(ctx, event)

	status := http.StatusOK
	if outcome.Disposition == model.DispositionError {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, toOutcomeResponse(outcome))
}

// resolveBranch fills in the head branch for events whose payload lacks one.
// A failed lookup degrades to "no ticket" rather than failing the delivery:
// label sync does not need the branch.
func (h *Handler) resolveBranch(ctx context.Context, e *model.Event) {
	if e.Kind != model.EventCommentCreated || e.BranchName != "" {
		return
	}

	branch, err := h.branches.HeadBranch(ctx, e.RepoFullName, e.PRNumber)
	if err != nil {
		h.logger.Warn("head branch lookup failed",
			"repo", e.RepoFullName,
			"pr", e.PRNumber,
			"error", err,
		)
		return
	}
	e.BranchName = branch
}

// Health answers the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
