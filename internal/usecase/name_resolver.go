package usecase

import (
	"strings"

	"github.com/riskibarqy/wins-pool/internal/domain/ownership"
	"github.com/riskibarqy/wins-pool/internal/domain/team"
)

// MatchStrategy names the rule that resolved an API team name.
type MatchStrategy string

const (
	MatchExact MatchStrategy = "exact"
	MatchAlias MatchStrategy = "alias"
	MatchFuzzy MatchStrategy = "fuzzy"
	MatchNone  MatchStrategy = "none"
)

type nameStrategy struct {
	kind  MatchStrategy
	match func(apiName string) (string, bool)
}

type canonicalName struct {
	name        string
	lowerName   string
	lowerMascot string
}

// TeamNameResolver maps API display names onto canonical ownership keys.
// Strategies run in a fixed order and the first hit wins.
type TeamNameResolver struct {
	table      *ownership.Table
	aliases    map[string]string
	canonical  []canonicalName
	strategies []nameStrategy
}

func NewTeamNameResolver(table *ownership.Table, aliases map[string]string) *TeamNameResolver {
	r := &TeamNameResolver{
		table:   table,
		aliases: make(map[string]string, len(aliases)),
	}
	for k, v := range aliases {
		r.aliases[k] = v
	}
	for _, name := range table.Teams() {
		r.canonical = append(r.canonical, canonicalName{
			name:        name,
			lowerName:   strings.ToLower(name),
			lowerMascot: strings.ToLower(team.Mascot(name)),
		})
	}

	r.strategies = []nameStrategy{
		{kind: MatchExact, match: r.matchExact},
		{kind: MatchAlias, match: r.matchAlias},
		{kind: MatchFuzzy, match: r.matchFuzzy},
	}
	return r
}

// Resolve returns the canonical name, or apiName unchanged when nothing matches.
func (r *TeamNameResolver) Resolve(apiName string) string {
	name, _ := r.ResolveWithStrategy(apiName)
	return name
}

func (r *TeamNameResolver) ResolveWithStrategy(apiName string) (string, MatchStrategy) {
	for _, s := range r.strategies {
		if name, ok := s.match(apiName); ok {
			return name, s.kind
		}
	}
	return apiName, MatchNone
}

func (r *TeamNameResolver) matchExact(apiName string) (string, bool) {
	if r.table.Contains(apiName) {
		return apiName, true
	}
	return "", false
}

func (r *TeamNameResolver) matchAlias(apiName string) (string, bool) {
	name, ok := r.aliases[apiName]
	return name, ok
}

// matchFuzzy succeeds when the canonical name contains the API name, or the
// API name contains the canonical mascot word.
func (r *TeamNameResolver) matchFuzzy(apiName string) (string, bool) {
	// Blank input never matches. Plain containment would map it to the
	// first table entry, since every name contains the empty string.
	if strings.TrimSpace(apiName) == "" {
		return "", false
	}
	lower := strings.ToLower(apiName)
	for _, c := range r.canonical {
		if strings.Contains(c.lowerName, lower) {
			return c.name, true
		}
		if c.lowerMascot != "" && strings.Contains(lower, c.lowerMascot) {
			return c.name, true
		}
	}
	return "", false
}
