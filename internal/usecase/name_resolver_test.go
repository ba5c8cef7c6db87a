package usecase

import "testing"

func TestTeamNameResolver_Resolve(t *testing.T) {
	t.Parallel()

	table := mustTable(t,
		entry("Los Angeles Rams", "Alice", 10),
		entry("Los Angeles Chargers", "Bob", 10),
		entry("Washington Commanders", "Cara", 10),
		entry("New York Giants", "Dev", 10),
	)
	resolver := NewTeamNameResolver(table, map[string]string{
		"LA Rams":         "Los Angeles Rams",
		"Washington":      "Washington Commanders",
		"New York Giants": "Los Angeles Rams",
	})

	cases := []struct {
		name         string
		in           string
		wantName     string
		wantStrategy MatchStrategy
	}{
		{name: "exact", in: "Los Angeles Chargers", wantName: "Los Angeles Chargers", wantStrategy: MatchExact},
		{name: "exact beats alias", in: "New York Giants", wantName: "New York Giants", wantStrategy: MatchExact},
		{name: "alias", in: "LA Rams", wantName: "Los Angeles Rams", wantStrategy: MatchAlias},
		{name: "canonical contains api name", in: "giants", wantName: "New York Giants", wantStrategy: MatchFuzzy},
		{name: "api name contains mascot", in: "The Chargers Football Club", wantName: "Los Angeles Chargers", wantStrategy: MatchFuzzy},
		{name: "first table entry wins", in: "Los Angeles", wantName: "Los Angeles Rams", wantStrategy: MatchFuzzy},
		{name: "no match unchanged", in: "Chicago Bears", wantName: "Chicago Bears", wantStrategy: MatchNone},
		{name: "blank unchanged", in: "  ", wantName: "  ", wantStrategy: MatchNone},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, strategy := resolver.ResolveWithStrategy(tc.in)
			if got != tc.wantName || strategy != tc.wantStrategy {
				t.Fatalf("ResolveWithStrategy(%q)=(%q,%s) want=(%q,%s)", tc.in, got, strategy, tc.wantName, tc.wantStrategy)
			}
			if plain := resolver.Resolve(tc.in); plain != tc.wantName {
				t.Fatalf("Resolve(%q)=%q want=%q", tc.in, plain, tc.wantName)
			}
		})
	}
}

func TestTeamNameResolver_CopiesAliases(t *testing.T) {
	t.Parallel()

	aliases := map[string]string{"Skins": "Washington Commanders"}
	resolver := NewTeamNameResolver(mustTable(t, entry("Washington Commanders", "Cara", 1)), aliases)
	aliases["Skins"] = "Nobody"

	if got := resolver.Resolve("Skins"); got != "Washington Commanders" {
		t.Fatalf("expected resolver to keep its own alias copy, got %q", got)
	}
}
