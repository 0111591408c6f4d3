package analytics

import (
	"time"

	"job-tracker-api/internal/datemath"
	"job-tracker-api/internal/domain/model"
)

// Aging thresholds. Staleness is counted in business days; follow-up
// overdue time is counted in calendar days.
const (
	CriticalBusinessDays = 20
	WarningBusinessDays  = 10
	StalledBusinessDays  = 15
)

type AgingClass string

const (
	AgingHealthy  AgingClass = "healthy"
	AgingWarning  AgingClass = "warning"
	AgingCritical AgingClass = "critical"
)

// Aging describes how long a job has been sitting since it was applied to.
type Aging struct {
	CalendarDays int
	BusinessDays int
	Class        AgingClass
	// Stalled marks early-stage jobs with no movement for StalledBusinessDays.
	Stalled bool
	// FollowUpDue is set once CalendarDays reaches the job's follow-up interval.
	FollowUpDue bool
	OverdueDays int
}

// Analyze computes the aging of j at now. Jobs without any usable date are
// treated as brand new. Terminal jobs are always healthy and never due.
func Analyze(j *model.Job, now time.Time) Aging {
	var a Aging
	if anchor, ok := j.Anchor(); ok {
		a.CalendarDays = datemath.DaysSince(anchor, now)
		a.BusinessDays = datemath.BusinessDaysBetween(anchor, now)
	}
	a.Class = AgingHealthy
	if j.Status.IsTerminal() {
		return a
	}

	switch {
	case a.BusinessDays >= CriticalBusinessDays && j.Status.IsEarly():
		a.Class = AgingCritical
	case a.BusinessDays >= WarningBusinessDays && (j.Status.IsEarly() || j.Status == model.StagePhoneScreen):
		a.Class = AgingWarning
	}
	a.Stalled = j.Status.IsEarly() && a.BusinessDays >= StalledBusinessDays

	if days := j.FollowUpAfter(); days > 0 && a.CalendarDays >= days {
		a.FollowUpDue = true
		a.OverdueDays = a.CalendarDays - days
	}
	return a
}
