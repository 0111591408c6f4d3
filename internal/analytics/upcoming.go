package analytics

import (
	"sort"
	"strings"
	"time"

	"job-tracker-api/internal/datemath"
	"job-tracker-api/internal/domain/model"
)

const scheduleDateLayout = "Jan 02, 2006"

// Interview is a scheduled next stage for an application.
type Interview struct {
	JobID        string      `json:"job_id"`
	Company      string      `json:"company_name"`
	Position     string      `json:"position"`
	Stage        model.Stage `json:"stage"`
	Status       model.Stage `json:"status"`
	ScheduleDate string      `json:"schedule_date"`
	ScheduleRaw  string      `json:"schedule_raw"`
	DaysUntil    int         `json:"days_until"`
	IsPriority   bool        `json:"is_priority"`
	Checklist    []string    `json:"checklist,omitempty"`

	date time.Time
}

// FindUpcoming lists scheduled interviews dated today or later, soonest
// first. Jobs whose schedule does not parse or lies in the past are skipped.
func FindUpcoming(jobs []*model.Job, now time.Time) []Interview {
	today := datemath.DateOf(now)
	out := make([]Interview, 0)
	for _, j := range jobs {
		if iv, ok := upcomingFor(j, today); ok {
			out = append(out, iv)
		}
	}
	sortInterviews(out)
	return out
}

func upcomingFor(j *model.Job, today time.Time) (Interview, bool) {
	raw := strings.TrimSpace(j.UpcomingSchedule)
	if j.UpcomingStage == "" || raw == "" {
		return Interview{}, false
	}
	date, ok := datemath.ParseLooseDate(raw)
	if !ok || date.Before(today) {
		return Interview{}, false
	}
	return Interview{
		JobID:        j.ID,
		Company:      j.Company,
		Position:     j.Position,
		Stage:        j.UpcomingStage,
		Status:       j.Status,
		ScheduleDate: date.Format(scheduleDateLayout),
		ScheduleRaw:  raw,
		DaysUntil:    datemath.DaysBetweenDates(today, date),
		IsPriority:   j.IsPriority,
		date:         date,
	}, true
}

func sortInterviews(ivs []Interview) {
	sort.SliceStable(ivs, func(a, b int) bool { return ivs[a].DaysUntil < ivs[b].DaysUntil })
}
