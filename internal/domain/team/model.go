package team

import (
	"strconv"
	"strings"
)

// Provenance tells whether a snapshot came from the live API or the synthetic fallback.
type Provenance string

const (
	ProvenanceNone      Provenance = ""
	ProvenanceLive      Provenance = "live"
	ProvenanceSynthetic Provenance = "synthetic"
)

// Record is one team's season standing.
type Record struct {
	Wins    int
	Losses  int
	Summary string
}

// Records is keyed by canonical team name.
type Records map[string]Record

// Code maps a canonical team name to its API abbreviation.
type Code struct {
	Team         string
	Abbreviation string
}

func NewRecord(wins, losses int) Record {
	return Record{Wins: wins, Losses: losses, Summary: FormatSummary(wins, losses)}
}

func ZeroRecord() Record {
	return NewRecord(0, 0)
}

// FormatSummary renders the "W-L" display string.
func FormatSummary(wins, losses int) string {
	return strconv.Itoa(wins) + "-" + strconv.Itoa(losses)
}

// Get returns the record for name or the zero record when absent.
func (r Records) Get(name string) Record {
	if rec, ok := r[name]; ok {
		return rec
	}
	return ZeroRecord()
}

// Clone copies the map so callers can never mutate a published snapshot.
func (r Records) Clone() Records {
	out := make(Records, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Mascot is the last whitespace-delimited token of a team name.
func Mascot(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
