package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/chevah/github-hooks-server/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// OutcomeResponse is the JSON representation of a handled delivery.
// ReviewState is the managed state derived from the resulting label set,
// empty when no managed label is present or the labels could not be read.
type OutcomeResponse struct {
	Disposition  string   `json:"disposition"`
	Labels       []string `json:"labels,omitempty"`
	ReviewState  string   `json:"review_state,omitempty"`
	Ticket       uint32   `json:"ticket,omitempty"`
	Comment      string   `json:"comment,omitempty"`
	LabelError   string   `json:"label_error,omitempty"`
	CommentError string   `json:"comment_error,omitempty"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toOutcomeResponse converts a ReviewOutcome to its JSON response representation.
func toOutcomeResponse(o model.ReviewOutcome) OutcomeResponse {
	resp := OutcomeResponse{
		Disposition: string(o.Disposition),
		Comment:     o.Comment,
	}
	if o.Labels != nil {
		resp.Labels = o.Labels.Sorted()
		resp.ReviewState = model.StateFromLabels(o.Labels).Label()
	}
	if o.Ticket != nil {
		resp.Ticket = o.Ticket.ID
	}
	if o.LabelErr != nil {
		resp.LabelError = o.LabelErr.Error()
	}
	if o.CommentErr != nil {
		resp.CommentError = o.CommentErr.Error()
	}
	return resp
}
