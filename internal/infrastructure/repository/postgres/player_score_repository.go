package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/playerscore"
	qb "github.com/riskibarqy/fantasy-badminton/internal/platform/querybuilder"
)

const playerScoreIncrementSuffix = `ON CONFLICT (match_public_id, player_public_id)
DO UPDATE SET
    points = player_scores.points + EXCLUDED.points,
    updated_at = NOW()
RETURNING match_public_id, player_public_id, points`

type PlayerScoreRepository struct {
	db *sqlx.DB
}

func NewPlayerScoreRepository(db *sqlx.DB) *PlayerScoreRepository {
	return &PlayerScoreRepository{db: db}
}

func (r *PlayerScoreRepository) Increment(ctx context.Context, matchID, playerID string, points int) (playerscore.PlayerScore, error) {
	query, args, err := buildPlayerScoreIncrementQuery(matchID, playerID, points)
	if err != nil {
		return playerscore.PlayerScore{}, crerr.Wrap(err, "build increment player score query")
	}

	var row playerScoreRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return playerscore.PlayerScore{}, wrapQueryErr(err, "increment player score match=%s player=%s", matchID, playerID)
	}

	return playerscore.PlayerScore{
		MatchID:  row.MatchPublicID,
		PlayerID: row.PlayerPublicID,
		Points:   row.Points,
	}, nil
}

func buildPlayerScoreIncrementQuery(matchID, playerID string, points int) (string, []any, error) {
	return qb.InsertModel("player_scores", playerScoreInsertModel{
		MatchPublicID:  matchID,
		PlayerPublicID: playerID,
		Points:         points,
	}, playerScoreIncrementSuffix)
}
