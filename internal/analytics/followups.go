package analytics

import (
	"encoding/json"
	"sort"

	"job-tracker-api/internal/domain/model"
)

type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
)

func (u Urgency) rank() int {
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyHigh:
		return 1
	default:
		return 2
	}
}

const noFollowUpsText = "✅ No follow-ups due—you're on track!"

var actionHints = map[model.Stage]string{
	model.StageApplied:            "Send a brief check-in email",
	model.StageRecruiterScreening: "Follow up on next steps",
	model.StagePhoneScreen:        "Ask for feedback or timeline",
}

const defaultActionHint = "Request status update"

// FollowUp is either a reminder for one application or, when nothing is
// due, a single summary entry with Summary set and only Text filled.
type FollowUp struct {
	Summary bool
	Text    string

	Company             string
	StatusLabel         string
	OverdueDays         int
	BusinessDaysAtStage int
	IsPriority          bool
	Urgency             Urgency
	ActionHint          string
	RecruiterEmail      string
}

func (f FollowUp) MarshalJSON() ([]byte, error) {
	if f.Summary {
		return json.Marshal(struct {
			Summary bool   `json:"summary"`
			Text    string `json:"text"`
		}{true, f.Text})
	}
	return json.Marshal(struct {
		Company             string  `json:"company"`
		StatusLabel         string  `json:"status_label"`
		OverdueDays         int     `json:"overdue_days"`
		BusinessDaysAtStage int     `json:"business_days_at_stage"`
		IsPriority          bool    `json:"is_priority"`
		Urgency             Urgency `json:"urgency"`
		ActionHint          string  `json:"action_hint"`
		RecruiterEmail      string  `json:"recruiter_email"`
	}{f.Company, f.StatusLabel, f.OverdueDays, f.BusinessDaysAtStage, f.IsPriority, f.Urgency, f.ActionHint, f.RecruiterEmail})
}

type followUpRow struct {
	company        string
	status         model.Stage
	overdueDays    int
	businessDays   int
	isPriority     bool
	recruiterEmail string
}

// UrgencyFor ranks a due follow-up: the user's priority flag beats everything,
// then early stages, then the rest.
func UrgencyFor(status model.Stage, isPriority bool) Urgency {
	switch {
	case isPriority:
		return UrgencyCritical
	case status.IsEarly():
		return UrgencyHigh
	default:
		return UrgencyMedium
	}
}

// ActionHint suggests the next step for a job sitting in status.
func ActionHint(status model.Stage) string {
	if h, ok := actionHints[status]; ok {
		return h
	}
	return defaultActionHint
}

func buildFollowUps(rows []followUpRow) []FollowUp {
	if len(rows) == 0 {
		return []FollowUp{{Summary: true, Text: noFollowUpsText}}
	}
	out := make([]FollowUp, 0, len(rows))
	for _, r := range rows {
		out = append(out, FollowUp{
			Company:             r.company,
			StatusLabel:         r.status.Label(),
			OverdueDays:         r.overdueDays,
			BusinessDaysAtStage: r.businessDays,
			IsPriority:          r.isPriority,
			Urgency:             UrgencyFor(r.status, r.isPriority),
			ActionHint:          ActionHint(r.status),
			RecruiterEmail:      r.recruiterEmail,
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		ua, ub := out[a].Urgency.rank(), out[b].Urgency.rank()
		if ua != ub {
			return ua < ub
		}
		return out[a].OverdueDays > out[b].OverdueDays
	})
	if len(out) > MaxFollowUps {
		out = out[:MaxFollowUps]
	}
	return out
}
