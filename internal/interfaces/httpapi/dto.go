package httpapi

import (
	"fmt"
	"io"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/wins-pool/internal/usecase"
)

type dashboardDTO struct {
	RefreshID   string          `json:"refreshId,omitempty"`
	Provenance  string          `json:"provenance,omitempty"`
	LastUpdated *string         `json:"lastUpdated"`
	Owners      []ownerCardDTO  `json:"owners"`
	TeamsByName []teamDetailDTO `json:"teamsByName"`
	TeamsByWins []teamDetailDTO `json:"teamsByWins"`
	Schedule    scheduleDTO     `json:"schedule"`
}

type ownerCardDTO struct {
	Rank        int           `json:"rank"`
	Owner       string        `json:"owner"`
	Anchor      string        `json:"anchor"`
	TotalWins   int           `json:"totalWins"`
	TotalBets   float64       `json:"totalBets"`
	TeamCount   int           `json:"teamCount"`
	AverageWins string        `json:"averageWins"`
	BestTeams   string        `json:"bestTeams"`
	Teams       []teamLineDTO `json:"teams"`
}

type teamLineDTO struct {
	Team    string  `json:"team"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Summary string  `json:"summary"`
	Bet     float64 `json:"bet"`
}

type teamDetailDTO struct {
	Team          string  `json:"team"`
	Owner         string  `json:"owner"`
	Bet           float64 `json:"bet"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Summary       string  `json:"summary"`
	WinsPerDollar string  `json:"winsPerDollar"`
}

type scheduleDTO struct {
	Status    string           `json:"status"`
	Message   string           `json:"message,omitempty"`
	UpdatedAt *string          `json:"updatedAt"`
	Games     []scheduleRowDTO `json:"games"`
}

type scheduleRowDTO struct {
	Date       string  `json:"date"`
	Week       string  `json:"week"`
	HomeTeam   string  `json:"homeTeam"`
	AwayTeam   string  `json:"awayTeam"`
	HomeOwner  *string `json:"homeOwner"`
	AwayOwner  *string `json:"awayOwner"`
	Status     string  `json:"status"`
	Matchup    string  `json:"matchup"`
	OwnersLine string  `json:"ownersLine"`
}

type refreshStatusDTO struct {
	State       string  `json:"state"`
	RefreshID   string  `json:"refreshId,omitempty"`
	Provenance  string  `json:"provenance,omitempty"`
	Coverage    int     `json:"coverage"`
	Threshold   int     `json:"threshold"`
	LastUpdated *string `json:"lastUpdated"`
	Refreshing  bool    `json:"refreshing"`
	Joined      bool    `json:"joined"`
	AutoRefresh bool    `json:"autoRefresh"`
}

type autoRefreshDTO struct {
	Enabled bool `json:"enabled"`
}

func dashboardToDTO(v usecase.Dashboard) dashboardDTO {
	return dashboardDTO{
		RefreshID:   v.RefreshID,
		Provenance:  string(v.Provenance),
		LastUpdated: formatTimePtr(v.LastUpdated),
		Owners:      ownerCardsToDTO(v.Owners),
		TeamsByName: teamDetailsToDTO(v.TeamsByName),
		TeamsByWins: teamDetailsToDTO(v.TeamsByWins),
		Schedule:    scheduleToDTO(v.Schedule),
	}
}

func ownerCardsToDTO(cards []usecase.OwnerCard) []ownerCardDTO {
	out := make([]ownerCardDTO, 0, len(cards))
	for _, c := range cards {
		teams := make([]teamLineDTO, 0, len(c.Teams))
		for _, t := range c.Teams {
			teams = append(teams, teamLineDTO{
				Team:    t.Name,
				Wins:    t.Wins,
				Losses:  t.Losses,
				Summary: t.Record,
				Bet:     t.Bet,
			})
		}
		out = append(out, ownerCardDTO{
			Rank:        c.Rank,
			Owner:       c.Owner,
			Anchor:      c.Anchor,
			TotalWins:   c.TotalWins,
			TotalBets:   c.TotalBets,
			TeamCount:   c.TeamCount,
			AverageWins: c.AverageWins,
			BestTeams:   c.BestTeams,
			Teams:       teams,
		})
	}
	return out
}

func teamDetailsToDTO(rows []usecase.TeamDetail) []teamDetailDTO {
	out := make([]teamDetailDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, teamDetailDTO{
			Team:          r.Name,
			Owner:         r.Owner,
			Bet:           r.Bet,
			Wins:          r.Wins,
			Losses:        r.Losses,
			Summary:       r.Record,
			WinsPerDollar: r.WinsPerDollar,
		})
	}
	return out
}

func scheduleToDTO(v usecase.ScheduleSection) scheduleDTO {
	out := scheduleDTO{
		Status:  string(v.Status),
		Message: v.Message,
		Games:   make([]scheduleRowDTO, 0, len(v.Games)),
	}
	if !v.UpdatedAt.IsZero() {
		out.UpdatedAt = formatTimePtr(&v.UpdatedAt)
	}
	for _, g := range v.Games {
		out.Games = append(out.Games, scheduleRowToDTO(g))
	}
	return out
}

func scheduleRowToDTO(g usecase.ScheduleRow) scheduleRowDTO {
	return scheduleRowDTO{
		Date:       g.Date.UTC().Format(time.RFC3339),
		Week:       g.Week,
		HomeTeam:   g.HomeTeam,
		AwayTeam:   g.AwayTeam,
		HomeOwner:  g.HomeOwner,
		AwayOwner:  g.AwayOwner,
		Status:     g.DisplayStatus,
		Matchup:    g.Matchup,
		OwnersLine: g.OwnersLine,
	}
}

func refreshStatusToDTO(v usecase.RefreshStatus, joined bool) refreshStatusDTO {
	return refreshStatusDTO{
		State:       string(v.State),
		RefreshID:   v.RefreshID,
		Provenance:  string(v.Provenance),
		Coverage:    v.Coverage,
		Threshold:   v.Threshold,
		LastUpdated: formatTimePtr(v.LastUpdated),
		Joined:      joined,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// WriteDashboardJSON writes the dashboard payload served by GET /v1/dashboard, without the envelope.
func WriteDashboardJSON(w io.Writer, v usecase.Dashboard, pretty bool) error {
	payload := dashboardToDTO(v)

	var (
		raw []byte
		err error
	)
	if pretty {
		raw, err = sonic.ConfigDefault.MarshalIndent(payload, "", "  ")
	} else {
		raw, err = sonic.Marshal(payload)
	}
	if err != nil {
		return fmt.Errorf("encode dashboard: %w", err)
	}

	raw = append(raw, '\n')
	_, err = w.Write(raw)
	return err
}
