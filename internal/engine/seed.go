package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/celerix-dev/celerix-users/pkg/schema"
)

// DefaultSeed returns the records a fresh process starts with.
func DefaultSeed() []schema.User {
	return []schema.User{
		{
			ID:        1,
			FirstName: "Anna",
			LastName:  "Müller",
			Email:     "anna.mueller@firma.de",
			Address:   "Hauptstraße 1, Berlin",
			Age:       34,
			Job:       "HR Managerin",
		},
		{
			ID:        2,
			FirstName: "Max",
			LastName:  "Mustermann",
			Email:     "max.mustermann@firma.de",
			Address:   "Musterweg 5, Hamburg",
			Age:       41,
			Job:       "IT Administrator",
		},
	}
}

// LoadSeed reads an initial user list from a JSON or YAML file.
// The format is picked from the file extension; anything other than .yaml/.yml is parsed as JSON.
// Every record must carry a positive, unique id and pass ValidateUser.
func LoadSeed(path string) ([]schema.User, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var users []schema.User
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &users)
	default:
		err = json.Unmarshal(content, &users)
	}
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", filepath.Base(path), err)
	}

	seen := make(map[int]struct{}, len(users))
	for _, u := range users {
		if u.ID <= 0 {
			return nil, fmt.Errorf("seed user %q: id must be positive", u.Email)
		}
		if _, dup := seen[u.ID]; dup {
			return nil, fmt.Errorf("seed user %q: duplicate id %d", u.Email, u.ID)
		}
		seen[u.ID] = struct{}{}
		if err := ValidateUser(u); err != nil {
			return nil, fmt.Errorf("seed user %d: %w", u.ID, err)
		}
	}
	return users, nil
}
