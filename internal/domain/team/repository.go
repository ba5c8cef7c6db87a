package team

import "context"

// RecordSource reads one team's live record by abbreviation code.
type RecordSource interface {
	FetchTeamRecord(ctx context.Context, code string) (Record, error)
}
