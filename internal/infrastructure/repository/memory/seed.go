package memory

import "github.com/riskibarqy/wins-pool/internal/domain/ownership"

type seedTeam struct {
	name  string
	code  string
	owner string
	bet   float64
}

// seedTeams is the default pool: every NFL team, four owners with eight teams each.
var seedTeams = []seedTeam{
	{name: "Kansas City Chiefs", code: "KC", owner: "Alex", bet: 30},
	{name: "Buffalo Bills", code: "BUF", owner: "Jordan", bet: 28},
	{name: "Philadelphia Eagles", code: "PHI", owner: "Sam", bet: 28},
	{name: "Baltimore Ravens", code: "BAL", owner: "Taylor", bet: 27},
	{name: "Detroit Lions", code: "DET", owner: "Alex", bet: 25},
	{name: "San Francisco 49ers", code: "SF", owner: "Jordan", bet: 24},
	{name: "Cincinnati Bengals", code: "CIN", owner: "Sam", bet: 20},
	{name: "Green Bay Packers", code: "GB", owner: "Taylor", bet: 20},
	{name: "Houston Texans", code: "HOU", owner: "Alex", bet: 18},
	{name: "Los Angeles Rams", code: "LAR", owner: "Jordan", bet: 17},
	{name: "Los Angeles Chargers", code: "LAC", owner: "Sam", bet: 16},
	{name: "Dallas Cowboys", code: "DAL", owner: "Taylor", bet: 16},
	{name: "Minnesota Vikings", code: "MIN", owner: "Alex", bet: 15},
	{name: "Pittsburgh Steelers", code: "PIT", owner: "Jordan", bet: 14},
	{name: "Tampa Bay Buccaneers", code: "TB", owner: "Sam", bet: 14},
	{name: "Washington Commanders", code: "WSH", owner: "Taylor", bet: 13},
	{name: "Atlanta Falcons", code: "ATL", owner: "Alex", bet: 10},
	{name: "Denver Broncos", code: "DEN", owner: "Jordan", bet: 10},
	{name: "Seattle Seahawks", code: "SEA", owner: "Sam", bet: 10},
	{name: "Miami Dolphins", code: "MIA", owner: "Taylor", bet: 9},
	{name: "Chicago Bears", code: "CHI", owner: "Alex", bet: 8},
	{name: "Arizona Cardinals", code: "ARI", owner: "Jordan", bet: 7},
	{name: "Indianapolis Colts", code: "IND", owner: "Sam", bet: 7},
	{name: "Jacksonville Jaguars", code: "JAX", owner: "Taylor", bet: 6},
	{name: "New York Jets", code: "NYJ", owner: "Alex", bet: 5},
	{name: "Las Vegas Raiders", code: "LV", owner: "Jordan", bet: 5},
	{name: "New Orleans Saints", code: "NO", owner: "Sam", bet: 4},
	{name: "Cleveland Browns", code: "CLE", owner: "Taylor", bet: 4},
	{name: "Tennessee Titans", code: "TEN", owner: "Alex", bet: 3},
	{name: "New England Patriots", code: "NE", owner: "Jordan", bet: 3},
	{name: "New York Giants", code: "NYG", owner: "Sam", bet: 2},
	{name: "Carolina Panthers", code: "CAR", owner: "Taylor", bet: 2},
}

// seedAliases maps names the scoreboard has used historically onto canonical keys.
var seedAliases = map[string]string{
	"LA Rams":                  "Los Angeles Rams",
	"St. Louis Rams":           "Los Angeles Rams",
	"LA Chargers":              "Los Angeles Chargers",
	"San Diego Chargers":       "Los Angeles Chargers",
	"Oakland Raiders":          "Las Vegas Raiders",
	"Washington":               "Washington Commanders",
	"Washington Football Team": "Washington Commanders",
	"NY Giants":                "New York Giants",
	"NY Jets":                  "New York Jets",
}

func SeedEntries() []ownership.Entry {
	out := make([]ownership.Entry, 0, len(seedTeams))
	for _, t := range seedTeams {
		out = append(out, ownership.Entry{
			Team:       t.name,
			Assignment: ownership.Assignment{Owner: t.owner, Bet: t.bet},
		})
	}
	return out
}

func SeedCodes() map[string]string {
	out := make(map[string]string, len(seedTeams))
	for _, t := range seedTeams {
		out[t.name] = t.code
	}
	return out
}

func SeedAliases() map[string]string {
	out := make(map[string]string, len(seedAliases))
	for k, v := range seedAliases {
		out[k] = v
	}
	return out
}
