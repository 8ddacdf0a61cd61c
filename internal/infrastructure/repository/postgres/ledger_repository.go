package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/fantasy-badminton/internal/platform/querybuilder"
)

type LedgerRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db, now: time.Now}
}

func (r *LedgerRepository) ListIngestedDates(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("date").From("scraped_dates").
		OrderBy("scraped_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select scraped dates query")
	}

	var labels []string
	if err := r.db.SelectContext(ctx, &labels, query, args...); err != nil {
		return nil, wrapQueryErr(err, "select scraped dates")
	}
	if labels == nil {
		labels = []string{}
	}
	return labels, nil
}

func (r *LedgerRepository) RecordIngestedDates(ctx context.Context, labels []string) error {
	labels = dedupeStrings(labels)
	if len(labels) == 0 {
		return nil
	}

	query, args, err := buildRecordScrapedDatesQuery(labels, r.now().UTC())
	if err != nil {
		return crerr.Wrap(err, "build upsert scraped dates query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapQueryErr(err, "upsert %d scraped dates", len(labels))
	}
	return nil
}

func buildRecordScrapedDatesQuery(labels []string, scrapedAt time.Time) (string, []any, error) {
	builder := qb.InsertInto("scraped_dates").Columns("date", "scraped_at")
	for _, label := range labels {
		builder.Values(label, scrapedAt)
	}
	return builder.
		Suffix("ON CONFLICT (date) DO UPDATE SET scraped_at = EXCLUDED.scraped_at").
		ToSQL()
}
