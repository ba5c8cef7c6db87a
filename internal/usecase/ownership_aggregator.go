package usecase

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/riskibarqy/wins-pool/internal/domain/ownership"
	"github.com/riskibarqy/wins-pool/internal/domain/team"
)

// TeamLine is one team inside an owner's summary.
type TeamLine struct {
	Name   string
	Wins   int
	Losses int
	Record string
	Bet    float64
}

// OwnerSummary is the per-owner rollup. Teams are sorted by wins descending,
// ties in ownership table order.
type OwnerSummary struct {
	Owner     string
	TotalWins int
	TotalBets float64
	TeamCount int
	Teams     []TeamLine
}

// AverageWins is TotalWins / TeamCount, 0 for an owner with no teams.
func (s OwnerSummary) AverageWins() float64 {
	if s.TeamCount == 0 {
		return 0
	}
	return float64(s.TotalWins) / float64(s.TeamCount)
}

// BestTeams renders the first n teams as "Mascot (wins)" joined by ", ".
func (s OwnerSummary) BestTeams(n int) string {
	if n > len(s.Teams) {
		n = len(s.Teams)
	}
	parts := make([]string, 0, n)
	for _, t := range s.Teams[:n] {
		parts = append(parts, team.Mascot(t.Name)+" ("+strconv.Itoa(t.Wins)+")")
	}
	return strings.Join(parts, ", ")
}

// TeamRow is one team in the flat all-teams view.
type TeamRow struct {
	Name   string
	Owner  string
	Wins   int
	Losses int
	Record string
	Bet    float64
}

// WinsPerDollar is wins / bet, or 0 when the bet is 0.
func (r TeamRow) WinsPerDollar() float64 {
	if r.Bet <= 0 {
		return 0
	}
	return float64(r.Wins) / r.Bet
}

// OwnershipAggregator joins records against the ownership table. Every
// method is a pure function of its inputs and the immutable table.
type OwnershipAggregator struct {
	table *ownership.Table

	collatorMu sync.Mutex
	collator   *collate.Collator
}

func NewOwnershipAggregator(table *ownership.Table) *OwnershipAggregator {
	return &OwnershipAggregator{
		table:    table,
		collator: collate.New(language.English),
	}
}

// Summarize visits every table entry, substituting the zero record for
// missing teams, so every owner is always present.
func (a *OwnershipAggregator) Summarize(records team.Records) map[string]OwnerSummary {
	out := make(map[string]OwnerSummary, len(a.table.Owners()))
	for _, owner := range a.table.Owners() {
		out[owner] = OwnerSummary{Owner: owner}
	}

	for _, entry := range a.table.Entries() {
		rec := records.Get(entry.Team)
		s := out[entry.Owner]
		s.TotalWins += rec.Wins
		s.TotalBets += entry.Bet
		s.TeamCount++
		s.Teams = append(s.Teams, TeamLine{
			Name:   entry.Team,
			Wins:   rec.Wins,
			Losses: rec.Losses,
			Record: rec.Summary,
			Bet:    entry.Bet,
		})
		out[entry.Owner] = s
	}

	for owner, s := range out {
		sort.SliceStable(s.Teams, func(i, j int) bool {
			return s.Teams[i].Wins > s.Teams[j].Wins
		})
		out[owner] = s
	}

	return out
}

// RankOwners orders summaries by total wins descending; ties keep the owners'
// first-appearance order in the table.
func (a *OwnershipAggregator) RankOwners(summaries map[string]OwnerSummary) []OwnerSummary {
	ranked := make([]OwnerSummary, 0, len(summaries))
	for _, owner := range a.table.Owners() {
		if s, ok := summaries[owner]; ok {
			ranked = append(ranked, s)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalWins > ranked[j].TotalWins
	})
	return ranked
}

// FlattenTeams lists every table entry with its owner, in table order.
func (a *OwnershipAggregator) FlattenTeams(records team.Records) []TeamRow {
	rows := make([]TeamRow, 0, a.table.Len())
	for _, entry := range a.table.Entries() {
		rec := records.Get(entry.Team)
		rows = append(rows, TeamRow{
			Name:   entry.Team,
			Owner:  entry.Owner,
			Wins:   rec.Wins,
			Losses: rec.Losses,
			Record: rec.Summary,
			Bet:    entry.Bet,
		})
	}
	return rows
}

// SortTeamsByName returns a copy ordered alphabetically with English collation.
func (a *OwnershipAggregator) SortTeamsByName(rows []TeamRow) []TeamRow {
	out := append([]TeamRow(nil), rows...)

	a.collatorMu.Lock()
	defer a.collatorMu.Unlock()
	sort.SliceStable(out, func(i, j int) bool {
		return a.collator.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// SortTeamsByWins returns a copy ordered by wins descending, ties in input order.
func (a *OwnershipAggregator) SortTeamsByWins(rows []TeamRow) []TeamRow {
	out := append([]TeamRow(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Wins > out[j].Wins
	})
	return out
}

// FormatWinsPerDollar renders the efficiency with three decimals.
func FormatWinsPerDollar(row TeamRow) string {
	if row.Bet <= 0 {
		return "0.000"
	}
	return formatFixed(row.WinsPerDollar(), 3)
}

// FormatAverageWins renders the per-team average with one decimal.
func FormatAverageWins(s OwnerSummary) string {
	return formatFixed(s.AverageWins(), 1)
}

// formatFixed rounds half away from zero, so 1/16 at three digits is 0.063.
func formatFixed(v float64, digits int) string {
	scale := math.Pow10(digits)
	rounded := math.Floor(math.Abs(v)*scale+0.5) / scale
	return strconv.FormatFloat(math.Copysign(rounded, v), 'f', digits, 64)
}

// FormatAmount renders a wager without trailing zeros, e.g. 25 or 12.5.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
