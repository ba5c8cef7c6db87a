package schedule

import (
	"strconv"
	"time"
)

const (
	StatusScheduled  = "STATUS_SCHEDULED"
	StatusPostponed  = "STATUS_POSTPONED"
	StatusInProgress = "STATUS_IN_PROGRESS"
	StatusFinal      = "STATUS_FINAL"

	HomeSide = "home"
	AwaySide = "away"

	// WeekTBD is shown when the source omits the week number.
	WeekTBD = "TBD"
	// StatusTBD is shown when the source omits the short status detail.
	StatusTBD = "TBD"
)

// Event is one raw fixture as reported by the league schedule source.
type Event struct {
	ID           string
	Date         time.Time
	StatusName   string
	StatusDetail string
	Week         *int
	Competitors  []Competitor
}

// Competitor is one side of an event.
type Competitor struct {
	HomeAway    string
	DisplayName string
}

// Side returns the competitor tagged home or away.
func (e Event) Side(homeAway string) (Competitor, bool) {
	for _, c := range e.Competitors {
		if c.HomeAway == homeAway {
			return c, true
		}
	}
	return Competitor{}, false
}

// IsUpcoming is true for scheduled and postponed events only.
func IsUpcoming(status string) bool {
	return status == StatusScheduled || status == StatusPostponed
}

// Game is a projected upcoming fixture involving at least one owned team.
type Game struct {
	Date          time.Time
	HomeTeam      string
	AwayTeam      string
	HomeOwner     *string
	AwayOwner     *string
	DisplayStatus string
	Week          string
}

// FormatWeek renders the week number or "TBD" when missing or zero.
func FormatWeek(week *int) string {
	if week == nil || *week == 0 {
		return WeekTBD
	}
	return strconv.Itoa(*week)
}
