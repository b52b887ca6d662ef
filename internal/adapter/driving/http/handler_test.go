package httphandler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chevah/github-hooks-server/internal/domain/model"
)

const testSecret = "hook-secret"

type mockEventHandler struct {
	outcome model.ReviewOutcome
	events  []model.Event
}

func (m *mockEventHandler) Handle(_ context.Context, e model.Event) model.ReviewOutcome {
	m.events = append(m.events, e)
	return m.outcome
}

type mockBranchFinder struct {
	branch string
	err    error
	calls  int
}

func (m *mockBranchFinder) HeadBranch(_ context.Context, _ string, _ int) (string, error) {
	m.calls++
	return m.branch, m.err
}

func newTestHandler(events *mockEventHandler, branches *mockBranchFinder) *Handler {
	return NewHandler(events, branches, testSecret, 5*time.Second, slog.New(slog.DiscardHandler))
}

// signedRequest builds a webhook delivery with a valid HMAC signature.
func signedRequest(t *testing.T, eventType string, payload any) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)

	req := httptest.NewRequest(http.MethodPost, "/hooks/github", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-Hub-Signature-256", "sha256="+hex.EncodeToString(mac.Sum(nil)))
	return req
}

func reviewRequestedPayload() map[string]any {
	return map[string]any{
		"action": "review_requested",
		"repository": map[string]any{
			"full_name": "chevah/server",
		},
		"pull_request": map[string]any{
			"number": 42,
			"head":   map[string]any{"ref": "123-fix-bug"},
		},
		"sender": map[string]any{"login": "adiroiban"},
	}
}

func TestHandleWebhook_RejectsBadSignature(t *testing.T) {
	events := &mockEventHandler{}
	h := newTestHandler(events, &mockBranchFinder{})

	body, err := json.Marshal(reviewRequestedPayload())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/hooks/github", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "pull_request")
	req.Header.Set("X-Hub-Signature-256", "sha256="+hex.EncodeToString(make([]byte, 32)))
	rec := httptest.NewRecorder()

	h.HandleWebhook(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, events.events, "unsigned deliveries never reach the core")
}

func TestHandleWebhook_RejectsMalformedPayload(t *testing.T) {
	events := &mockEventHandler{}
	h := newTestHandler(events, &mockBranchFinder{})

	body := []byte(`{"action": `)
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	req := httptest.NewRequest(http.MethodPost, "/hooks/github", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "pull_request")
	req.Header.Set("X-Hub-Signature-256", "sha256="+hex.EncodeToString(mac.Sum(nil)))
	rec := httptest.NewRecorder()

	h.HandleWebhook(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, events.events)
}

func TestHandleWebhook_DispatchesReviewRequested(t *testing.T) {
	events := &mockEventHandler{outcome: model.ReviewOutcome{
		Disposition: model.DispositionApplied,
		Labels:      model.NewLabelSet(model.LabelNeedsReview),
	}}
	branches := &mockBranchFinder{}
	h := newTestHandler(events, branches)

	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, signedRequest(t, "pull_request", reviewRequestedPayload()))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, events.events, 1)
	e := events.events[0]
	assert.Equal(t, model.EventReviewRequested, e.Kind)
	assert.Equal(t, "chevah/server", e.RepoFullName)
	assert.Equal(t, 42, e.PRNumber)
	assert.Equal(t, "123-fix-bug", e.BranchName)
	assert.Equal(t, "adiroiban", e.SenderLogin)
	assert.Zero(t, branches.calls, "branch came with the payload")

	var resp OutcomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "applied", resp.Disposition)
	assert.Equal(t, []string{model.LabelNeedsReview}, resp.Labels)
	assert.Equal(t, model.LabelNeedsReview, resp.ReviewState)
}

func TestToOutcomeResponse_ReviewState(t *testing.T) {
	tests := []struct {
		name   string
		labels model.LabelSet
		want   string
	}{
		{"managed label present", model.NewLabelSet(model.LabelNeedsMerge, "bug"), model.LabelNeedsMerge},
		{"no managed label", model.NewLabelSet("bug"), ""},
		{"labels unread", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := toOutcomeResponse(model.ReviewOutcome{
				Disposition: model.DispositionApplied,
				Labels:      tt.labels,
			})

			assert.Equal(t, tt.want, resp.ReviewState)
		})
	}
}

func TestHandleWebhook_ResolvesBranchForIssueComments(t *testing.T) {
	events := &mockEventHandler{outcome: model.ReviewOutcome{Disposition: model.DispositionApplied}}
	branches := &mockBranchFinder{branch: "55-docs"}
	h := newTestHandler(events, branches)

	payload := map[string]any{
		"action": "created",
		"repository": map[string]any{
			"full_name": "chevah/server",
		},
		"issue": map[string]any{
			"number": 9,
			"pull_request": map[string]any{
				"url": "https://api.github.com/repos/chevah/server/pulls/9",
			},
		},
		"comment": map[string]any{"body": "Looks fine."},
		"sender":  map[string]any{"login": "io7m"},
	}
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, signedRequest(t, "issue_comment", payload))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, branches.calls)
	require.Len(t, events.events, 1)
	assert.Equal(t, "55-docs", events.events[0].BranchName)
	assert.Equal(t, "Looks fine.", events.events[0].CommentBody)
}

func TestHandleWebhook_BranchLookupFailureStillDispatches(t *testing.T) {
	events := &mockEventHandler{outcome: model.ReviewOutcome{Disposition: model.DispositionNoTicket}}
	branches := &mockBranchFinder{err: errors.New("github 502")}
	h := newTestHandler(events, branches)

	payload := map[string]any{
		"action": "created",
		"repository": map[string]any{
			"full_name": "chevah/server",
		},
		"issue": map[string]any{
			"number": 9,
			"pull_request": map[string]any{
				"url": "https://api.github.com/repos/chevah/server/pulls/9",
			},
		},
		"comment": map[string]any{"body": "ping"},
		"sender":  map[string]any{"login": "io7m"},
	}
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, signedRequest(t, "issue_comment", payload))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, events.events, 1)
	assert.Empty(t, events.events[0].BranchName, "delivery proceeds without a branch")
}

func TestHandleWebhook_IgnoredEventAnswers200(t *testing.T) {
	events := &mockEventHandler{outcome: model.ReviewOutcome{Disposition: model.DispositionIgnored}}
	h := newTestHandler(events, &mockBranchFinder{})

	payload := map[string]any{"action": "closed"}
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, signedRequest(t, "pull_request", payload))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp OutcomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ignored", resp.Disposition)
}

func TestHandleWebhook_ErrorDispositionAnswers500(t *testing.T) {
	events := &mockEventHandler{outcome: model.ReviewOutcome{
		Disposition: model.DispositionError,
		CommentErr:  errors.New("trac is down"),
	}}
	h := newTestHandler(events, &mockBranchFinder{})

	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, signedRequest(t, "pull_request", reviewRequestedPayload()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp OutcomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Disposition)
	assert.Equal(t, "trac is down", resp.CommentError)
}

func TestHealth(t *testing.T) {
	h := newTestHandler(&mockEventHandler{}, &mockBranchFinder{})

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Time)
}
