package voting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekBucket(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-08-29", "2026-W35"},
		{"2026-01-01", "2026-W01"},
		// ISO week years differ from calendar years at the boundary
		{"2027-01-01", "2026-W53"},
		{"2024-12-30", "2025-W01"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			ts, err := time.Parse("2006-01-02", tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, WeekBucket(ts))
		})
	}
}

func TestBallotValidate(t *testing.T) {
	valid := Ballot{Principal: "cidada@example.com", DeputyID: 42, DeputyName: "Ana Souza", Week: "2026-W35"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Ballot)
	}{
		{"missing principal", func(b *Ballot) { b.Principal = "" }},
		{"missing deputy id", func(b *Ballot) { b.DeputyID = 0 }},
		{"negative deputy id", func(b *Ballot) { b.DeputyID = -1 }},
		{"missing week", func(b *Ballot) { b.Week = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			assert.Error(t, b.Validate())
		})
	}
}

func TestMemoryServiceSubmit(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService(nil)
	ballot := Ballot{Principal: "a@example.com", DeputyID: 1, DeputyName: "Ana", Week: "2026-W35"}

	require.NoError(t, svc.Submit(ctx, ballot))

	t.Run("duplicate is rejected with the sentinel", func(t *testing.T) {
		err := svc.Submit(ctx, ballot)
		assert.ErrorIs(t, err, ErrDuplicateVote)
	})

	t.Run("different week is a fresh vote", func(t *testing.T) {
		next := ballot
		next.Week = "2026-W36"
		assert.NoError(t, svc.Submit(ctx, next))
	})

	t.Run("different principal is a fresh vote", func(t *testing.T) {
		other := ballot
		other.Principal = "b@example.com"
		assert.NoError(t, svc.Submit(ctx, other))
	})

	t.Run("counts accumulate per deputy and week", func(t *testing.T) {
		count, err := svc.Count(ctx, 1, "2026-W35")
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		count, err = svc.Count(ctx, 1, "2026-W36")
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = svc.Count(ctx, 99, "2026-W35")
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("invalid ballot never lands", func(t *testing.T) {
		err := svc.Submit(ctx, Ballot{DeputyID: 1, Week: "2026-W35"})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateVote)
	})
}

func TestHub(t *testing.T) {
	hub := NewHub()
	ballot := Ballot{Principal: "a@example.com", DeputyID: 1, Week: "2026-W35"}

	t.Run("subscribers receive published ballots", func(t *testing.T) {
		ch, cancel := hub.Subscribe()
		defer cancel()

		hub.Publish(ballot)
		select {
		case got := <-ch:
			assert.Equal(t, ballot, got)
		default:
			t.Fatal("expected a buffered event")
		}
	})

	t.Run("cancel closes the channel", func(t *testing.T) {
		ch, cancel := hub.Subscribe()
		cancel()
		_, open := <-ch
		assert.False(t, open)

		// Double cancel is safe
		cancel()
	})

	t.Run("slow subscribers drop instead of blocking", func(t *testing.T) {
		ch, cancel := hub.Subscribe()
		defer cancel()

		for i := 0; i < 20; i++ {
			hub.Publish(ballot)
		}
		assert.Equal(t, 8, len(ch), "buffer capacity bounds queued events")
	})
}

func TestMemoryServicePublishesToHub(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	svc := NewMemoryService(hub)
	ballot := Ballot{Principal: "a@example.com", DeputyID: 7, DeputyName: "Ana", Week: "2026-W35"}
	require.NoError(t, svc.Submit(context.Background(), ballot))

	select {
	case got := <-ch:
		assert.Equal(t, ballot, got)
	default:
		t.Fatal("accepted ballot should be published")
	}

	// Rejected duplicates are not published
	_ = svc.Submit(context.Background(), ballot)
	assert.Zero(t, len(ch))
}
