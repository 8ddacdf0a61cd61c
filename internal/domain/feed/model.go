package feed

import "time"

// CompletedMatch is one finished fixture read from the feed. WinnerName is derived from the scores.
type CompletedMatch struct {
	Tournament string `json:"tournament" validate:"required"`
	HomeName   string `json:"home_name" validate:"required"`
	AwayName   string `json:"away_name" validate:"required"`
	HomeScore  string `json:"home_score" validate:"required"`
	AwayScore  string `json:"away_score" validate:"required"`
	Date       string `json:"date"`
	WinnerName string `json:"winner_name" validate:"required"`
}

// LoserName returns the side that did not win, or "" when both sides carry the
// same name and no distinct opponent exists.
func (m CompletedMatch) LoserName() string {
	if m.HomeName == m.AwayName {
		return ""
	}
	if m.WinnerName == m.HomeName {
		return m.AwayName
	}
	return m.HomeName
}

// DayBatch holds the completed matches of one navigated feed day.
// CalendarLabel is the feed's own day text and is the ledger key.
type DayBatch struct {
	CalendarLabel string           `json:"calendar_label" validate:"required"`
	ScrapedAt     time.Time        `json:"scraped_at" validate:"required"`
	Matches       []CompletedMatch `json:"matches" validate:"dive"`
}

// ScrapeResult is the outcome of one session over the lookback window.
type ScrapeResult struct {
	TotalMatches   int        `json:"total_matches"`
	DayBatches     []DayBatch `json:"day_batches"`
	IngestedLabels []string   `json:"ingested_labels"`
}
