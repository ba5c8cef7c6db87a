package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/wins-pool/internal/domain/schedule"
	"github.com/riskibarqy/wins-pool/internal/domain/team"
	"github.com/riskibarqy/wins-pool/internal/platform/slug"
)

const bestTeamsCount = 3

// TeamSort selects the flat team list ordering.
type TeamSort string

const (
	TeamSortName TeamSort = "name"
	TeamSortWins TeamSort = "wins"
)

// OwnerCard is an owner summary decorated for display.
type OwnerCard struct {
	OwnerSummary
	Rank        int
	Anchor      string
	AverageWins string
	BestTeams   string
}

// TeamDetail is a flat team row decorated with its efficiency.
type TeamDetail struct {
	TeamRow
	WinsPerDollar string
}

// ScheduleRow is a projected game decorated with its display lines.
type ScheduleRow struct {
	schedule.Game
	Matchup    string
	OwnersLine string
}

// ScheduleSection is the schedule sub-view handed to the renderer.
type ScheduleSection struct {
	Status    ScheduleStatus
	Games     []ScheduleRow
	Message   string
	UpdatedAt time.Time
}

// Dashboard is the complete view model.
type Dashboard struct {
	RefreshID   string
	Provenance  team.Provenance
	LastUpdated *time.Time
	Owners      []OwnerCard
	TeamsByName []TeamDetail
	TeamsByWins []TeamDetail
	Schedule    ScheduleSection
}

// Dashboard builds the view model from the current snapshot. Before the
// first refresh LastUpdated is nil and every team carries the zero record.
func (s *DashboardService) Dashboard(ctx context.Context) Dashboard {
	_, span := startUsecaseSpan(ctx, "usecase.DashboardService.Dashboard")
	defer span.End()

	snap := s.snapshot.Load()
	view := Dashboard{
		Owners:   s.ownerCards(snap),
		Schedule: s.ScheduleSection(),
	}

	rows := s.aggregator.FlattenTeams(recordsOf(snap))
	view.TeamsByName = decorateTeams(s.aggregator.SortTeamsByName(rows))
	view.TeamsByWins = decorateTeams(s.aggregator.SortTeamsByWins(rows))

	if snap != nil {
		updated := snap.UpdatedAt
		view.RefreshID = snap.ID
		view.Provenance = snap.Provenance
		view.LastUpdated = &updated
	}
	return view
}

// Owners returns the ranked owner cards for the current snapshot.
func (s *DashboardService) Owners(ctx context.Context) []OwnerCard {
	_, span := startUsecaseSpan(ctx, "usecase.DashboardService.Owners")
	defer span.End()

	return s.ownerCards(s.snapshot.Load())
}

// Teams returns the flat team list in the requested order.
func (s *DashboardService) Teams(ctx context.Context, order TeamSort) ([]TeamDetail, error) {
	_, span := startUsecaseSpan(ctx, "usecase.DashboardService.Teams")
	defer span.End()

	rows := s.aggregator.FlattenTeams(recordsOf(s.snapshot.Load()))
	switch order {
	case TeamSortName, "":
		return decorateTeams(s.aggregator.SortTeamsByName(rows)), nil
	case TeamSortWins:
		return decorateTeams(s.aggregator.SortTeamsByWins(rows)), nil
	default:
		return nil, fmt.Errorf("%w: unknown team sort %q", ErrInvalidInput, order)
	}
}

// ScheduleSection decorates the current schedule view for display.
func (s *DashboardService) ScheduleSection() ScheduleSection {
	view := s.Schedule()
	section := ScheduleSection{
		Status:    view.Status,
		Message:   view.Message,
		UpdatedAt: view.UpdatedAt,
		Games:     make([]ScheduleRow, 0, len(view.Games)),
	}
	for _, g := range view.Games {
		section.Games = append(section.Games, ScheduleRow{
			Game:       g,
			Matchup:    Matchup(g),
			OwnersLine: OwnersLine(g),
		})
	}
	return section
}

func (s *DashboardService) ownerCards(snap *Snapshot) []OwnerCard {
	ranked := s.aggregator.RankOwners(s.aggregator.Summarize(recordsOf(snap)))

	cards := make([]OwnerCard, 0, len(ranked))
	for i, summary := range ranked {
		cards = append(cards, OwnerCard{
			OwnerSummary: summary,
			Rank:         i + 1,
			Anchor:       slug.Anchor("owner", summary.Owner),
			AverageWins:  FormatAverageWins(summary),
			BestTeams:    summary.BestTeams(bestTeamsCount),
		})
	}
	return cards
}

func decorateTeams(rows []TeamRow) []TeamDetail {
	out := make([]TeamDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, TeamDetail{TeamRow: row, WinsPerDollar: FormatWinsPerDollar(row)})
	}
	return out
}

func recordsOf(snap *Snapshot) team.Records {
	if snap == nil {
		return nil
	}
	return snap.Records
}
