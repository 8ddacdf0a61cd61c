package match

import (
	"context"
	"time"
)

type Repository interface {
	// Upsert returns the match keyed by (name, date), creating it when absent.
	// created reports whether this call inserted the row.
	Upsert(ctx context.Context, name string, date time.Time) (item Match, created bool, err error)
}
