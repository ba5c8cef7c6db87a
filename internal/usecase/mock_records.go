package usecase

import (
	"math/rand/v2"
	"sync"

	"github.com/riskibarqy/wins-pool/internal/domain/team"
)

const (
	mockMaxWins   = 10
	mockMaxLosses = 5
)

// MockRecordGenerator synthesizes plausible records for the fallback path.
//
// By default the display summary is drawn independently of the numeric
// wins/losses, so "7-1" may sit next to wins=3. Set consistentSummary to
// derive the summary from the numeric fields instead.
type MockRecordGenerator struct {
	mu                sync.Mutex
	rng               *rand.Rand
	consistentSummary bool
}

func NewMockRecordGenerator(rng *rand.Rand, consistentSummary bool) *MockRecordGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &MockRecordGenerator{rng: rng, consistentSummary: consistentSummary}
}

// GenerateAll returns one record per team: wins in [0,10], losses in [0,5].
func (g *MockRecordGenerator) GenerateAll(teams []string) team.Records {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make(team.Records, len(teams))
	for _, name := range teams {
		wins := g.rng.IntN(mockMaxWins + 1)
		losses := g.rng.IntN(mockMaxLosses + 1)

		summary := team.FormatSummary(wins, losses)
		if !g.consistentSummary {
			summary = team.FormatSummary(g.rng.IntN(mockMaxWins+1), g.rng.IntN(mockMaxLosses+1))
		}

		out[name] = team.Record{Wins: wins, Losses: losses, Summary: summary}
	}
	return out
}
