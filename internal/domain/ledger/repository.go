package ledger

import "context"

type Repository interface {
	// ListIngestedDates returns labels ordered by most recent ingestion first.
	ListIngestedDates(ctx context.Context) ([]string, error)
	// RecordIngestedDates upserts labels, refreshing the ingestion time of existing ones.
	RecordIngestedDates(ctx context.Context, labels []string) error
}
