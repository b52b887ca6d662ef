package application

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chevah/github-hooks-server/internal/domain/model"
)

func TestImportActions(t *testing.T) {
	export := strings.Join([]string{
		"2024-03-05T10:00:00Z\t123\tneeds-review: adiroiban on PR #42",
		"2024-03-06T11:30:00Z\t123\tchanges-approved: danuker on PR #42",
		"2024-03-07T09:00:00Z\t55\tapproved-at: io7m on PR #9",
		"2024-03-08T09:00:00Z\t55\tcomment: io7m on PR #9",
	}, "\n")

	actions, err := ImportActions(strings.NewReader(export))

	require.NoError(t, err)
	require.Len(t, actions, 4)

	assert.Equal(t, model.ActionNeedsReview, actions[0].Kind)
	assert.Equal(t, "adiroiban", actions[0].Author)
	assert.Equal(t, uint32(123), actions[0].Ticket)
	assert.Equal(t, 42, actions[0].PRNumber)
	assert.True(t, actions[0].OccurredAt.Equal(time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)))

	assert.Equal(t, model.ActionDoneReview, actions[1].Kind)
	assert.Equal(t, model.ActionDoneReview, actions[2].Kind, "legacy marker still counts as a completed review")
	assert.Equal(t, model.ActionComment, actions[3].Kind)
}

func TestImportActions_SkipsUnparsableLines(t *testing.T) {
	export := strings.Join([]string{
		"",
		"not tab separated at all",
		"yesterday\t123\tneeds-review: adiroiban on PR #42",
		"2024-03-05T10:00:00Z\tnot-a-ticket\tneeds-review: adiroiban on PR #42",
		"2024-03-05T10:00:00Z\t123\tthanks, looks good to me",
		"2024-03-05T10:00:00Z\t123\tmerged: adiroiban on PR #42",
		"2024-03-06T10:00:00Z\t123\tneeds-changes: danuker on PR #42",
	}, "\n")

	actions, err := ImportActions(strings.NewReader(export))

	require.NoError(t, err)
	require.Len(t, actions, 1, "only the marker-bearing well-formed line survives")
	assert.Equal(t, model.ActionDoneReview, actions[0].Kind)
	assert.Equal(t, "danuker", actions[0].Author)
}

func TestImportActions_Empty(t *testing.T) {
	actions, err := ImportActions(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, actions)
}
