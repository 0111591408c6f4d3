package model

import (
	"encoding/json"
	"strings"
	"time"

	"job-tracker-api/internal/datemath"
	"job-tracker-api/internal/domain"

	"github.com/google/uuid"
)

type Location struct {
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Job is one tracked application. All timestamps are UTC; optional ones are
// nil when the source document did not carry a usable value.
type Job struct {
	ID               string       `json:"job_id"`
	UserID           string       `json:"user_id"`
	Company          string       `json:"company_name"`
	Position         string       `json:"position"`
	Status           Stage        `json:"status"`
	Location         Location     `json:"location"`
	SalaryRange      *SalaryRange `json:"salary_range,omitempty"`
	WorkMode         string       `json:"work_mode"`
	JobType          string       `json:"job_type,omitempty"`
	JobURL           string       `json:"job_url,omitempty"`
	RecruiterEmail   string       `json:"recruiter_email,omitempty"`
	DateApplied      *time.Time   `json:"date_applied,omitempty"`
	FollowUpDays     *int         `json:"follow_up_days,omitempty"`
	IsPriority       bool         `json:"is_priority"`
	UpcomingStage    Stage        `json:"upcoming_stage,omitempty"`
	UpcomingSchedule string       `json:"upcoming_schedule,omitempty"`
	Notes            string       `json:"notes,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        *time.Time   `json:"updated_at,omitempty"`
}

func NewJob(userID, company, position string) (*Job, error) {
	company, position = strings.TrimSpace(company), strings.TrimSpace(position)
	if userID == "" || company == "" || position == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now().UTC()
	return &Job{
		ID:        uuid.NewString(),
		UserID:    userID,
		Company:   company,
		Position:  position,
		Status:    StageApplied,
		CreatedAt: now,
		UpdatedAt: &now,
	}, nil
}

// Anchor is the instant aging is measured from: date_applied, else created_at.
// Dates outside the plausible year range are skipped.
func (j *Job) Anchor() (time.Time, bool) {
	if j.DateApplied != nil && datemath.Plausible(*j.DateApplied) {
		return *j.DateApplied, true
	}
	if datemath.Plausible(j.CreatedAt) {
		return j.CreatedAt, true
	}
	return time.Time{}, false
}

// FollowUpAfter returns the configured follow-up interval, 0 when unset.
func (j *Job) FollowUpAfter() int {
	if j.FollowUpDays == nil || *j.FollowUpDays < 0 {
		return 0
	}
	return *j.FollowUpDays
}

// UnmarshalJSON accepts the loosely typed documents produced by older
// clients: timestamps may be RFC3339, naive, or missing, the status may be
// absent, and an empty salary object means "no salary".
func (j *Job) UnmarshalJSON(b []byte) error {
	type plain Job
	aux := struct {
		*plain
		Status        *string            `json:"status"`
		UpcomingStage string             `json:"upcoming_stage"`
		SalaryRange   map[string]float64 `json:"salary_range"`
		DateApplied   any                `json:"date_applied"`
		CreatedAt     any                `json:"created_at"`
		UpdatedAt     any                `json:"updated_at"`
	}{plain: (*plain)(j)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	j.Status = StageApplied
	if aux.Status != nil {
		j.Status = ParseStage(*aux.Status)
	}
	j.UpcomingStage = ParseStage(aux.UpcomingStage)

	j.SalaryRange = nil
	if len(aux.SalaryRange) > 0 {
		j.SalaryRange = &SalaryRange{Min: aux.SalaryRange["min"], Max: aux.SalaryRange["max"]}
	}

	j.DateApplied = optionalTime(aux.DateApplied)
	j.UpdatedAt = optionalTime(aux.UpdatedAt)
	j.CreatedAt = time.Time{}
	if t, ok := datemath.ToUTC(aux.CreatedAt); ok {
		j.CreatedAt = t
	}
	return nil
}

func optionalTime(v any) *time.Time {
	t, ok := datemath.ToUTC(v)
	if !ok {
		return nil
	}
	return &t
}
