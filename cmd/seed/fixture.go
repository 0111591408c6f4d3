package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"job-tracker-api/internal/domain/model"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type fixtureUser struct {
	ID                   string             `json:"user_id"`
	Email                string             `json:"email"`
	Name                 string             `json:"name"`
	PreferredDisplayName string             `json:"preferred_display_name"`
	CommunicationEmail   string             `json:"communication_email"`
	Preferences          *model.Preferences `json:"preferences"`
}

type fixture struct {
	User *model.User
	Jobs []*model.Job
}

// loadFixture reads a YAML or JSON document of the form {user, jobs}. YAML
// is converted to JSON first so jobs go through the same loose decoding as
// any other ingested document.
func loadFixture(path string) (*fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		if b, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
	}
	return parseFixture(b)
}

func parseFixture(b []byte) (*fixture, error) {
	var raw struct {
		User fixtureUser  `json:"user"`
		Jobs []*model.Job `json:"jobs"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	u, err := model.NewUser(raw.User.ID, raw.User.Email, raw.User.Name)
	if err != nil {
		return nil, fmt.Errorf("fixture user: %w", err)
	}
	u.PreferredDisplayName = raw.User.PreferredDisplayName
	u.CommunicationEmail = raw.User.CommunicationEmail
	if raw.User.Preferences != nil {
		u.Preferences = *raw.User.Preferences
	}

	for i, j := range raw.Jobs {
		if j == nil {
			return nil, fmt.Errorf("fixture job %d is null", i)
		}
		if j.ID == "" {
			j.ID = uuid.NewString()
		}
		j.UserID = u.ID
		if j.CreatedAt.IsZero() {
			j.CreatedAt = u.CreatedAt
		}
	}
	return &fixture{User: u, Jobs: raw.Jobs}, nil
}
