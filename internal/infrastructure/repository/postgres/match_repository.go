package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/match"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/id"
	qb "github.com/riskibarqy/fantasy-badminton/internal/platform/querybuilder"
)

// The no-op update makes RETURNING yield the existing row on conflict.
// xmax is 0 only for rows inserted by this statement.
const matchUpsertSuffix = `ON CONFLICT (name, date)
DO UPDATE SET name = EXCLUDED.name
RETURNING public_id, name, date, (xmax = 0) AS inserted`

type MatchRepository struct {
	db    *sqlx.DB
	idGen id.Generator
}

func NewMatchRepository(db *sqlx.DB, idGen id.Generator) *MatchRepository {
	return &MatchRepository{db: db, idGen: idGen}
}

func (r *MatchRepository) Upsert(ctx context.Context, name string, date time.Time) (match.Match, bool, error) {
	publicID, err := r.idGen.NewID()
	if err != nil {
		return match.Match{}, false, crerr.Wrap(err, "generate match id")
	}

	query, args, err := buildMatchUpsertQuery(publicID, name, date)
	if err != nil {
		return match.Match{}, false, crerr.Wrap(err, "build upsert match query")
	}

	var row matchUpsertRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return match.Match{}, false, wrapQueryErr(err, "upsert match name=%s date=%s", name, date.Format(time.DateOnly))
	}

	return match.Match{
		ID:   row.PublicID,
		Name: row.Name,
		Date: row.Date,
	}, row.Inserted, nil
}

func buildMatchUpsertQuery(publicID, name string, date time.Time) (string, []any, error) {
	return qb.InsertModel("matches", matchInsertModel{
		PublicID: publicID,
		Name:     name,
		Date:     date.Format(time.DateOnly),
	}, matchUpsertSuffix)
}
