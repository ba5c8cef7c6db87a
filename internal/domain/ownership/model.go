package ownership

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/wins-pool/internal/domain/team"
)

// Assignment is the owner and wager attached to one team.
type Assignment struct {
	Owner string
	Bet   float64
}

// Entry is one row of the ownership table.
type Entry struct {
	Team string
	Assignment
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Team) == "" {
		return fmt.Errorf("team name is required")
	}
	if strings.TrimSpace(e.Owner) == "" {
		return fmt.Errorf("owner is required for team %q", e.Team)
	}
	if e.Bet < 0 {
		return fmt.Errorf("bet must be >= 0 for team %q", e.Team)
	}
	return nil
}

// Table is the immutable, ordered team -> assignment mapping. Its order is
// the iteration order used for fuzzy name matching and for tie preservation.
type Table struct {
	entries []Entry
	index   map[string]int
	owners  []string
}

func NewTable(entries []Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	seenOwner := make(map[string]struct{})

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, dup := t.index[e.Team]; dup {
			return nil, fmt.Errorf("duplicate team %q", e.Team)
		}
		t.index[e.Team] = len(t.entries)
		t.entries = append(t.entries, e)

		if _, ok := seenOwner[e.Owner]; !ok {
			seenOwner[e.Owner] = struct{}{}
			t.owners = append(t.owners, e.Owner)
		}
	}

	return t, nil
}

// Lookup returns the assignment for an exact canonical name.
func (t *Table) Lookup(team string) (Assignment, bool) {
	i, ok := t.index[team]
	if !ok {
		return Assignment{}, false
	}
	return t.entries[i].Assignment, true
}

// OwnerOf returns nil when the team is untracked.
func (t *Table) OwnerOf(team string) *string {
	a, ok := t.Lookup(team)
	if !ok {
		return nil
	}
	owner := a.Owner
	return &owner
}

func (t *Table) Contains(team string) bool {
	_, ok := t.index[team]
	return ok
}

// Entries returns a copy in table order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Teams returns canonical names in table order.
func (t *Table) Teams() []string {
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.Team)
	}
	return out
}

// Owners returns distinct owners in order of first appearance.
func (t *Table) Owners() []string {
	out := make([]string, len(t.owners))
	copy(out, t.owners)
	return out
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Roster bundles the three static inputs: ownership table, abbreviation codes and aliases.
type Roster struct {
	Table   *Table
	Codes   map[string]string
	Aliases map[string]string
}

func (r Roster) Validate() error {
	if r.Table == nil || r.Table.Len() == 0 {
		return fmt.Errorf("roster has no teams")
	}
	for _, name := range r.Table.Teams() {
		if strings.TrimSpace(r.Codes[name]) == "" {
			return fmt.Errorf("abbreviation code is required for team %q", name)
		}
	}
	for alias, canonical := range r.Aliases {
		if !r.Table.Contains(canonical) {
			return fmt.Errorf("alias %q points to unknown team %q", alias, canonical)
		}
	}
	return nil
}

// CodeList returns team codes in table order.
func (r Roster) CodeList() []team.Code {
	out := make([]team.Code, 0, r.Table.Len())
	for _, name := range r.Table.Teams() {
		out = append(out, team.Code{Team: name, Abbreviation: r.Codes[name]})
	}
	return out
}
