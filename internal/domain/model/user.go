package model

import (
	"strings"
	"time"

	"job-tracker-api/internal/domain"

	"github.com/google/uuid"
)

// Preferences drive the scheduled report sweep.
type Preferences struct {
	WeeklyEmail  bool `json:"weekly_email"`
	MonthlyEmail bool `json:"monthly_email"`
}

// User is the account a set of job applications belongs to. Only the fields
// used for personalising reports live here; session handling is external.
type User struct {
	ID                   string      `json:"user_id"`
	Email                string      `json:"email"`
	Name                 string      `json:"name,omitempty"`
	PreferredDisplayName string      `json:"preferred_display_name,omitempty"`
	CommunicationEmail   string      `json:"communication_email,omitempty"`
	Preferences          Preferences `json:"preferences"`
	CreatedAt            time.Time   `json:"created_at"`
}

func NewUser(id, email, name string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		ID:          id,
		Email:       email,
		Name:        strings.TrimSpace(name),
		Preferences: Preferences{WeeklyEmail: true, MonthlyEmail: true},
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }

// DisplayName is the salutation used in reports.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return "Job Seeker"
	case u.PreferredDisplayName != "":
		return u.PreferredDisplayName
	case u.Name != "":
		return u.Name
	default:
		return "Job Seeker"
	}
}

// DeliveryEmail prefers the dedicated communication address.
func (u *User) DeliveryEmail() string {
	if u == nil {
		return ""
	}
	if u.CommunicationEmail != "" {
		return u.CommunicationEmail
	}
	return u.Email
}
