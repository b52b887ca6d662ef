// Package web serves the HTML leaderboard page. The page body is produced
// as GitHub-flavored markdown and rendered through the sanitizing markdown
// pipeline, so the scores stay plain data until the last step.
package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/chevah/github-hooks-server/internal/application"
)

// Handler serves the monthly review leaderboard.
type Handler struct {
	leaderboard *application.LeaderboardService
	logger      *slog.Logger
}

// NewHandler creates a Handler with the required dependencies.
func NewHandler(leaderboard *application.LeaderboardService, logger *slog.Logger) *Handler {
	return &Handler{leaderboard: leaderboard, logger: logger}
}

// RegisterRoutes registers the leaderboard page on the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /leaderboard", h.Leaderboard)
}

const pageShell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<nav>%s</nav>
%s
</body>
</html>
`

// Leaderboard renders the ranked scores for one calendar month. The month
// defaults to the current one and can be selected with ?time=YYYY-MM-DD
// (any day within the wanted month).
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	month := time.Now().UTC()
	if q := r.URL.Query().Get("time"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			http.Error(w, "invalid time parameter, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		month = parsed
	}

	scores, err := h.leaderboard.ScoresForMonth(r.Context(), month)
	if err != nil {
		h.logger.Error("leaderboard query failed", "month", month.Format("2006-01"), "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	start, _ := application.MonthRange(month)
	title := "Review leaderboard for " + start.Format("January 2006")
	body := RenderMarkdown(leaderboardMarkdown(title, scores))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell, title, monthNav(start), body)
}

// leaderboardMarkdown builds the page body: a ranked score table followed
// by the scoring legend.
func leaderboardMarkdown(title string, scores []application.Score) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)

	if len(scores) == 0 {
		b.WriteString("No activity recorded this month.\n")
	} else {
		b.WriteString("| Rank | Author | Points |\n")
		b.WriteString("| --- | --- | --- |\n")
		for i, s := range scores {
			fmt.Fprintf(&b, "| %s | %s | %d |\n", ordinal(i+1), s.Author, s.Points)
		}
	}

	b.WriteString("\n")
	for _, f := range application.Factors() {
		fmt.Fprintf(&b, "%d points for %s.\n\n", f.Points, f.Description)
	}

	return b.String()
}

// monthNav builds the previous/next month links. The next link disappears
// once it would point into the future.
func monthNav(start time.Time) string {
	previous := start.AddDate(0, -1, 0)
	next := start.AddDate(0, 1, 0)

	nav := fmt.Sprintf(`<a href="?time=%s">&laquo; previous</a>`, previous.Format("2006-01-02"))
	if !next.After(time.Now().UTC()) {
		nav += fmt.Sprintf(` <a href="?time=%s">next &raquo;</a>`, next.Format("2006-01-02"))
	}
	return nav
}

// ordinal formats a rank as 1st, 2nd, 3rd, 4th and so on, with the 11-13
// exception.
func ordinal(n int) string {
	if r := n % 100; r >= 11 && r <= 13 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	}
	return fmt.Sprintf("%dth", n)
}
