package player

import "context"

// Repository is the read side of the player registry used during ingestion.
// Ingestion never creates players.
type Repository interface {
	// FindByExactName matches the whole name, case-insensitive.
	FindByExactName(ctx context.Context, name string) (Player, bool, error)
	// FindByNameSubstring returns the first player whose name contains fragment, case-insensitive.
	FindByNameSubstring(ctx context.Context, fragment string) (Player, bool, error)
	// ListAll returns every registry entry in stable id order.
	ListAll(ctx context.Context) ([]Player, error)
}
