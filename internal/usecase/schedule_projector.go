package usecase

import (
	"sort"
	"strings"

	"github.com/riskibarqy/wins-pool/internal/domain/ownership"
	"github.com/riskibarqy/wins-pool/internal/domain/schedule"
	"github.com/riskibarqy/wins-pool/internal/domain/team"
)

const (
	ScheduleEmptyMessage   = "No upcoming games found for this week."
	ScheduleFailureMessage = "Unable to load schedule. Please try again later."
)

// ScheduleProjector turns raw scoreboard events into the owner-relevant upcoming list.
type ScheduleProjector struct {
	resolver *TeamNameResolver
	table    *ownership.Table
}

func NewScheduleProjector(resolver *TeamNameResolver, table *ownership.Table) *ScheduleProjector {
	return &ScheduleProjector{resolver: resolver, table: table}
}

// Project keeps scheduled or postponed events with at least one owned side,
// sorted by date ascending. Equal dates keep source order.
func (p *ScheduleProjector) Project(events []schedule.Event) []schedule.Game {
	games := make([]schedule.Game, 0, len(events))
	for _, event := range events {
		if !schedule.IsUpcoming(event.StatusName) {
			continue
		}

		home, okHome := event.Side(schedule.HomeSide)
		away, okAway := event.Side(schedule.AwaySide)
		if !okHome || !okAway {
			continue
		}

		homeTeam := p.resolver.Resolve(home.DisplayName)
		awayTeam := p.resolver.Resolve(away.DisplayName)
		homeOwner := p.table.OwnerOf(homeTeam)
		awayOwner := p.table.OwnerOf(awayTeam)
		if homeOwner == nil && awayOwner == nil {
			continue
		}

		status := strings.TrimSpace(event.StatusDetail)
		if status == "" {
			status = schedule.StatusTBD
		}

		games = append(games, schedule.Game{
			Date:          event.Date,
			HomeTeam:      homeTeam,
			AwayTeam:      awayTeam,
			HomeOwner:     homeOwner,
			AwayOwner:     awayOwner,
			DisplayStatus: status,
			Week:          schedule.FormatWeek(event.Week),
		})
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Date.Before(games[j].Date)
	})
	return games
}

// Matchup renders "Away @ Home".
func Matchup(g schedule.Game) string {
	return g.AwayTeam + " @ " + g.HomeTeam
}

// OwnersLine renders "Mascot (owner)" for the away then home side, joined by " vs ".
func OwnersLine(g schedule.Game) string {
	parts := make([]string, 0, 2)
	if g.AwayOwner != nil {
		parts = append(parts, team.Mascot(g.AwayTeam)+" ("+*g.AwayOwner+")")
	}
	if g.HomeOwner != nil {
		parts = append(parts, team.Mascot(g.HomeTeam)+" ("+*g.HomeOwner+")")
	}
	return strings.Join(parts, " vs ")
}
