package schedule

import "context"

// Source lists the current league scoreboard events.
type Source interface {
	FetchScoreboard(ctx context.Context) ([]Event, error)
}
