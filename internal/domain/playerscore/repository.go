package playerscore

import "context"

type Repository interface {
	// Increment creates the (matchID, playerID) row with points, or adds points to the existing row.
	Increment(ctx context.Context, matchID, playerID string, points int) (PlayerScore, error)
}
