package espn

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/riskibarqy/wins-pool/internal/domain/schedule"
	"github.com/riskibarqy/wins-pool/internal/domain/team"
)

// mapTeamRecord reads the first record item. Missing wins or losses stats
// default to 0; a payload without any record item is malformed.
func mapTeamRecord(payload teamEnvelope) (team.Record, error) {
	items := payload.Team.Record.Items
	if len(items) == 0 {
		return team.Record{}, fmt.Errorf("%w: team payload has no record items", errMalformedPayload)
	}

	item := items[0]
	wins := statInt(item.Stats, "wins")
	losses := statInt(item.Stats, "losses")

	summary := strings.TrimSpace(item.Summary)
	if summary == "" {
		summary = team.FormatSummary(wins, losses)
	}

	return team.Record{Wins: wins, Losses: losses, Summary: summary}, nil
}

// statInt truncates the named stat toward zero and clamps it at 0.
func statInt(stats []statItem, name string) int {
	for _, s := range stats {
		if s.Name != name {
			continue
		}
		if s.Value == nil || math.IsNaN(*s.Value) || math.IsInf(*s.Value, 0) {
			return 0
		}
		v := int(math.Trunc(*s.Value))
		if v < 0 {
			return 0
		}
		return v
	}
	return 0
}

// mapScoreboard converts events; ones without a parseable date or a
// competition are skipped.
func mapScoreboard(payload scoreboardEnvelope) ([]schedule.Event, int) {
	out := make([]schedule.Event, 0, len(payload.Events))
	skipped := 0
	for _, raw := range payload.Events {
		date, ok := parseEventDate(raw.Date)
		if !ok || len(raw.Competitions) == 0 {
			skipped++
			continue
		}

		event := schedule.Event{
			ID:           raw.ID,
			Date:         date,
			StatusName:   strings.TrimSpace(raw.Status.Type.Name),
			StatusDetail: strings.TrimSpace(raw.Status.Type.ShortDetail),
		}
		if raw.Week != nil {
			week := raw.Week.Number
			event.Week = &week
		}
		for _, c := range raw.Competitions[0].Competitors {
			event.Competitors = append(event.Competitors, schedule.Competitor{
				HomeAway:    strings.ToLower(strings.TrimSpace(c.HomeAway)),
				DisplayName: strings.TrimSpace(c.Team.DisplayName),
			})
		}
		out = append(out, event)
	}
	return out, skipped
}

// parseEventDate accepts the minute-precision form the scoreboard uses
// ("2025-09-07T17:00Z") as well as full RFC3339.
func parseEventDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	layouts := []string{
		"2006-01-02T15:04Z07:00",
		time.RFC3339,
		time.RFC3339Nano,
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}
