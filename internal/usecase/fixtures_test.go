package usecase

import (
	"fmt"
	"testing"

	"github.com/riskibarqy/wins-pool/internal/domain/ownership"
)

// testRoster builds n teams named "City NN Mascot NN" with codes "TNN",
// owners rotating over owners.
func testRoster(t *testing.T, n int, owners ...string) ownership.Roster {
	t.Helper()

	if len(owners) == 0 {
		owners = []string{"Alice", "Bob", "Cara", "Dev"}
	}

	entries := make([]ownership.Entry, 0, n)
	codes := make(map[string]string, n)
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("City%02d Mascot%02d", i, i)
		entries = append(entries, ownership.Entry{
			Team:       name,
			Assignment: ownership.Assignment{Owner: owners[(i-1)%len(owners)], Bet: float64(i)},
		})
		codes[name] = fmt.Sprintf("T%02d", i)
	}

	table, err := ownership.NewTable(entries)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	return ownership.Roster{Table: table, Codes: codes, Aliases: map[string]string{}}
}

func mustTable(t *testing.T, entries ...ownership.Entry) *ownership.Table {
	t.Helper()

	table, err := ownership.NewTable(entries)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	return table
}

func entry(name, owner string, bet float64) ownership.Entry {
	return ownership.Entry{Team: name, Assignment: ownership.Assignment{Owner: owner, Bet: bet}}
}
