package memory

import (
	"fmt"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/wins-pool/internal/domain/ownership"
)

type rosterFile struct {
	Teams   []rosterFileTeam  `json:"teams" validate:"required,min=1,dive"`
	Aliases map[string]string `json:"aliases" validate:"omitempty,dive,keys,required,endkeys,required"`
}

type rosterFileTeam struct {
	Name  string  `json:"name" validate:"required"`
	Code  string  `json:"code" validate:"required,alphanum,max=4"`
	Owner string  `json:"owner" validate:"required"`
	Bet   float64 `json:"bet" validate:"gte=0"`
}

// DefaultRoster returns the built-in NFL pool.
func DefaultRoster() (ownership.Roster, error) {
	table, err := ownership.NewTable(SeedEntries())
	if err != nil {
		return ownership.Roster{}, fmt.Errorf("build seed table: %w", err)
	}

	roster := ownership.Roster{Table: table, Codes: SeedCodes(), Aliases: SeedAliases()}
	if err := roster.Validate(); err != nil {
		return ownership.Roster{}, fmt.Errorf("validate seed roster: %w", err)
	}
	return roster, nil
}

// LoadRoster reads a JSON roster file, or returns the built-in pool when path is empty.
func LoadRoster(path string) (ownership.Roster, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultRoster()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return ownership.Roster{}, fmt.Errorf("read roster file: %w", err)
	}
	return ParseRoster(raw)
}

// ParseRoster decodes and validates roster JSON. Team order in the file is preserved.
func ParseRoster(raw []byte) (ownership.Roster, error) {
	var file rosterFile
	if err := sonic.Unmarshal(raw, &file); err != nil {
		return ownership.Roster{}, fmt.Errorf("decode roster file: %w", err)
	}
	if err := validator.New().Struct(file); err != nil {
		return ownership.Roster{}, fmt.Errorf("validate roster file: %w", err)
	}

	entries := make([]ownership.Entry, 0, len(file.Teams))
	codes := make(map[string]string, len(file.Teams))
	for _, t := range file.Teams {
		name := strings.TrimSpace(t.Name)
		entries = append(entries, ownership.Entry{
			Team:       name,
			Assignment: ownership.Assignment{Owner: strings.TrimSpace(t.Owner), Bet: t.Bet},
		})
		codes[name] = strings.ToUpper(strings.TrimSpace(t.Code))
	}

	table, err := ownership.NewTable(entries)
	if err != nil {
		return ownership.Roster{}, fmt.Errorf("build roster table: %w", err)
	}

	aliases := file.Aliases
	if aliases == nil {
		aliases = map[string]string{}
	}

	roster := ownership.Roster{Table: table, Codes: codes, Aliases: aliases}
	if err := roster.Validate(); err != nil {
		return ownership.Roster{}, fmt.Errorf("validate roster: %w", err)
	}
	return roster, nil
}
