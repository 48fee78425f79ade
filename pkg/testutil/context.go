package testutil

import (
	"context"
	"testing"
	"time"

	"nhplus/pkg/requestcontext"
)

// Date parses a YYYY-MM-DD literal as UTC midnight and fails the test on a
// malformed value.
func Date(t testing.TB, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		t.Fatalf("invalid date literal %q: %v", s, err)
	}
	return d
}

// DatePtr is Date for optional date fields.
func DatePtr(t testing.TB, s string) *time.Time {
	t.Helper()
	d := Date(t, s)
	return &d
}

// At returns a context whose operation time is pinned to the given instant.
// Services read "now" through requestcontext.Now, so this is how tests move
// the clock.
func At(ctx context.Context, now time.Time) context.Context {
	return requestcontext.WithTime(ctx, now)
}
