package schedule

import "testing"

func TestFormatWeek(t *testing.T) {
	t.Parallel()

	three := 3
	zero := 0
	if got := FormatWeek(&three); got != "3" {
		t.Fatalf("expected 3, got %s", got)
	}
	if got := FormatWeek(&zero); got != WeekTBD {
		t.Fatalf("expected TBD for zero week, got %s", got)
	}
	if got := FormatWeek(nil); got != WeekTBD {
		t.Fatalf("expected TBD for nil week, got %s", got)
	}
}

func TestEventSide(t *testing.T) {
	t.Parallel()

	e := Event{Competitors: []Competitor{
		{HomeAway: HomeSide, DisplayName: "Detroit Lions"},
		{HomeAway: AwaySide, DisplayName: "Chicago Bears"},
	}}
	home, ok := e.Side(HomeSide)
	if !ok || home.DisplayName != "Detroit Lions" {
		t.Fatalf("unexpected home side: %+v ok=%v", home, ok)
	}
	if _, ok := (Event{}).Side(AwaySide); ok {
		t.Fatalf("expected missing side on empty event")
	}
}

func TestIsUpcoming(t *testing.T) {
	t.Parallel()

	for status, want := range map[string]bool{
		StatusScheduled:  true,
		StatusPostponed:  true,
		StatusFinal:      false,
		StatusInProgress: false,
		"":               false,
	} {
		if got := IsUpcoming(status); got != want {
			t.Fatalf("IsUpcoming(%q)=%v want=%v", status, got, want)
		}
	}
}
