package application

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chevah/github-hooks-server/internal/domain/model"
)

// markerActionKinds maps a canonical comment marker back to the activity
// classification that produced it. needs-changes and changes-approved both
// mean a review was completed.
var markerActionKinds = map[string]model.ActionKind{
	MarkerNeedsReview:     model.ActionNeedsReview,
	MarkerNeedsChanges:    model.ActionDoneReview,
	MarkerChangesApproved: model.ActionDoneReview,
	MarkerComment:         model.ActionComment,
}

// ImportActions reconstructs activity-log entries from a ticket comment
// export. The activity database only covers the months since this service
// started recording; older leaderboards are rebuilt by exporting the ticket
// change history from Trac and feeding it through here.
//
// Each line is three tab-separated fields: an RFC 3339 timestamp, the
// ticket id, and the comment head. The author and PR number come out of the
// comment head itself, which also translates legacy marker spellings. Lines
// that do not parse are skipped, not fatal: a Trac export contains plenty
// of human comments that never carried a marker.
func ImportActions(r io.Reader) ([]model.Action, error) {
	var actions []model.Action

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.SplitN(scanner.Text(), "\t", 3)
		if len(fields) != 3 {
			continue
		}

		occurredAt, err := time.Parse(time.RFC3339, fields[0])
		if err != nil {
			continue
		}

		ticket, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			continue
		}

		marker, sender, pr, ok := ParseTicketComment(fields[2])
		if !ok {
			continue
		}

		actions = append(actions, model.Action{
			Kind:       markerActionKinds[marker],
			Ticket:     uint32(ticket),
			Author:     sender,
			PRNumber:   pr,
			OccurredAt: occurredAt.UTC(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return actions, nil
}
