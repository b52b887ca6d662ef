package application

import (
	"bufio"
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/chevah/github-hooks-server/internal/domain/model"
	"github.com/chevah/github-hooks-server/internal/domain/port/driven"
)

// Factor is the score awarded for one kind of action.
type Factor struct {
	Points      int
	Description string
}

// Scoring factors, in display order. The values predate this implementation
// and are load-bearing: people compare months.
var factors = []struct {
	Kind   model.ActionKind
	Factor Factor
}{
	{model.ActionDoneReview, Factor{Points: 200, Description: "completing a review"}},
	{model.ActionNeedsReview, Factor{Points: 75, Description: "submitting a pull request for review"}},
	{model.ActionComment, Factor{Points: 10, Description: "leaving a comment"}},
}

// actionPointsRatio is the per-action activity tiebreaker: each successive
// action in the month is worth a little more, so equal raw scores rank the
// more recently active author higher.
const actionPointsRatio = 0.1

// Score is one leaderboard row.
type Score struct {
	Author string
	Points int
}

// Factors returns the scoring table in display order, for the page footer.
func Factors() []Factor {
	out := make([]Factor, 0, len(factors))
	for _, f := range factors {
		out = append(out, f.Factor)
	}
	return out
}

// factorPoints returns the points for an action kind, defaulting unknown
// kinds to the comment factor so old rows survive vocabulary changes.
func factorPoints(kind model.ActionKind) int {
	for _, f := range factors {
		if f.Kind == kind {
			return f.Factor.Points
		}
	}
	return factors[len(factors)-1].Factor.Points
}

// ComputeScores aggregates a month of actions into ranked scores, highest
// first. Raw sums carry the activity tiebreaker and are rounded down to
// whole points.
func ComputeScores(actions []model.Action) []Score {
	raw := make(map[string]float64)
	for i, a := range actions {
		raw[a.Author] += float64(factorPoints(a.Kind)) + float64(i)*actionPointsRatio
	}

	scores := make([]Score, 0, len(raw))
	for author, points := range raw {
		scores = append(scores, Score{Author: author, Points: int(points)})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Points != scores[j].Points {
			return scores[i].Points > scores[j].Points
		}
		return scores[i].Author < scores[j].Author
	})
	return scores
}

// MonthRange returns the calendar month containing t: the first instant of
// the month and the first instant of the next one, in t's location.
func MonthRange(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0)
	return start, end
}

// LoadAliases reads author alias definitions: one "canonical,alias" pair per
// line, mapping the alias to its canonical name. Blank and malformed lines
// are skipped.
func LoadAliases(r io.Reader) (map[string]string, error) {
	aliases := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		canonical, alias, found := strings.Cut(scanner.Text(), ",")
		if !found {
			continue
		}
		canonical = strings.TrimSpace(canonical)
		alias = strings.TrimSpace(alias)
		if canonical == "" || alias == "" {
			continue
		}
		aliases[alias] = canonical
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return aliases, nil
}

// LeaderboardService assembles monthly leaderboards from the activity log.
type LeaderboardService struct {
	actions driven.ActionStore
	aliases map[string]string
}

// NewLeaderboardService creates a LeaderboardService. aliases may be nil.
func NewLeaderboardService(actions driven.ActionStore, aliases map[string]string) *LeaderboardService {
	return &LeaderboardService{actions: actions, aliases: aliases}
}

// ScoresForMonth computes the ranked scores for the calendar month
// containing t. Author names are lowercased and canonicalized through the
// alias table before aggregation.
func (s *LeaderboardService) ScoresForMonth(ctx context.Context, t time.Time) ([]Score, error) {
	start, end := MonthRange(t)

	actions, err := s.actions.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	for i := range actions {
		author := strings.ToLower(actions[i].Author)
		if canonical, ok := s.aliases[author]; ok {
			author = canonical
		}
		actions[i].Author = author
	}

	return ComputeScores(actions), nil
}
