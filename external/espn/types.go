package espn

// teamEnvelope is the /teams/{abbrev} payload, trimmed to what the record mapping reads.
type teamEnvelope struct {
	Team struct {
		ID           string `json:"id"`
		DisplayName  string `json:"displayName"`
		Abbreviation string `json:"abbreviation"`
		Record       struct {
			Items []recordItem `json:"items"`
		} `json:"record"`
	} `json:"team"`
}

type recordItem struct {
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Summary     string     `json:"summary"`
	Stats       []statItem `json:"stats"`
}

type statItem struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// scoreboardEnvelope is the /scoreboard payload.
type scoreboardEnvelope struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
	Week *struct {
		Number int `json:"number"`
	} `json:"week"`
	Status struct {
		Type struct {
			Name        string `json:"name"`
			State       string `json:"state"`
			Completed   bool   `json:"completed"`
			ShortDetail string `json:"shortDetail"`
		} `json:"type"`
	} `json:"status"`
	Competitions []struct {
		ID          string `json:"id"`
		Competitors []struct {
			HomeAway string `json:"homeAway"`
			Team     struct {
				ID           string `json:"id"`
				DisplayName  string `json:"displayName"`
				Abbreviation string `json:"abbreviation"`
			} `json:"team"`
		} `json:"competitors"`
	} `json:"competitions"`
}
