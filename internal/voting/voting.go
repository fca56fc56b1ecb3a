// Package voting defines the boundary contract with the external voting
// backend. The analytics layer never implements authentication or storage
// for votes; it only needs a way to submit ballots, read counts and react
// to changes.
package voting

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateVote is returned when a principal has already voted for the
// same deputy in the same week bucket. The backend enforces this with a
// uniqueness constraint; callers must be able to tell it apart from
// transport failures.
var ErrDuplicateVote = errors.New("duplicate vote for principal, deputy and week")

// Ballot is one vote submission. Principal is an email-equivalent identity
// established by the auth layer before the ballot reaches this boundary.
type Ballot struct {
	Principal  string `json:"principal"`
	DeputyID   int    `json:"deputyId"`
	DeputyName string `json:"deputyName"`
	Week       string `json:"week"` // ISO week bucket, e.g. "2026-W35"
}

// Validate checks that the ballot carries everything the backend requires.
func (b Ballot) Validate() error {
	if b.Principal == "" {
		return fmt.Errorf("ballot requires an authenticated principal")
	}
	if b.DeputyID <= 0 {
		return fmt.Errorf("ballot requires a deputy id (received %d)", b.DeputyID)
	}
	if b.Week == "" {
		return fmt.Errorf("ballot requires a week bucket")
	}
	return nil
}

// WeekBucket returns the ISO week identifier for a point in time, in the
// "YYYY-Www" form used as the vote uniqueness window.
func WeekBucket(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Service is the vote backend as seen from the analytics layer.
type Service interface {
	// Submit records a ballot. Returns ErrDuplicateVote when the principal
	// already voted for this deputy in this week bucket.
	Submit(ctx context.Context, b Ballot) error

	// Count returns the number of votes a deputy received in a week bucket.
	Count(ctx context.Context, deputyID int, week string) (int, error)
}
