package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-badminton/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"price",
	"category",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) FindByExactName(ctx context.Context, name string) (player.Player, bool, error) {
	return r.findOne(ctx, qb.EqFold("name", name))
}

func (r *PlayerRepository) FindByNameSubstring(ctx context.Context, fragment string) (player.Player, bool, error) {
	return r.findOne(ctx, qb.ContainsFold("name", fragment))
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select players query")
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapQueryErr(err, "select players")
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) findOne(ctx context.Context, condition qb.Condition) (player.Player, bool, error) {
	query, args, err := buildFindPlayerQuery(condition)
	if err != nil {
		return player.Player{}, false, crerr.Wrap(err, "build find player query")
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, wrapQueryErr(err, "find player")
	}
	return playerFromRow(row), true, nil
}

// Lowest id wins when several registry rows match.
func buildFindPlayerQuery(condition qb.Condition) (string, []any, error) {
	return qb.Select(playerSelectColumns...).From("players").
		Where(condition, qb.IsNull("deleted_at")).
		OrderBy("id").
		Limit(1).
		ToSQL()
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.PublicID,
		Name:     row.Name,
		Price:    row.Price,
		Category: player.Category(row.Category),
	}
}

const playerSeedSuffix = `ON CONFLICT (public_id)
DO UPDATE SET
    name = EXCLUDED.name,
    price = EXCLUDED.price,
    category = EXCLUDED.category,
    updated_at = NOW(),
    deleted_at = NULL`

type playerInsertModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
	Price    int64  `db:"price"`
	Category string `db:"category"`
}

// Seed upserts registry entries by public id in one transaction. Ingestion never calls it.
func (r *PlayerRepository) Seed(ctx context.Context, items []player.Player) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx seed players")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return crerr.Wrapf(err, "seed player %q", item.Name)
		}
		query, args, err := qb.InsertModel("players", playerInsertModel{
			PublicID: item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Category: string(item.Category),
		}, playerSeedSuffix)
		if err != nil {
			return crerr.Wrap(err, "build seed player query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return wrapQueryErr(err, "seed player id=%s", item.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit seed players tx")
	}
	return nil
}
