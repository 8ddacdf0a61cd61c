package postgres

import "time"

type playerTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	Price     int64      `db:"price"`
	Category  string     `db:"category"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
	// Date is sent as YYYY-MM-DD so the session time zone cannot shift it.
	Date string `db:"date"`
}

type matchUpsertRow struct {
	PublicID string    `db:"public_id"`
	Name     string    `db:"name"`
	Date     time.Time `db:"date"`
	Inserted bool      `db:"inserted"`
}

type playerScoreInsertModel struct {
	MatchPublicID  string `db:"match_public_id"`
	PlayerPublicID string `db:"player_public_id"`
	Points         int    `db:"points"`
}

type playerScoreRow struct {
	MatchPublicID  string `db:"match_public_id"`
	PlayerPublicID string `db:"player_public_id"`
	Points         int    `db:"points"`
}
