//go:build !integration

package analytics

import (
	"time"

	"job-tracker-api/internal/domain/model"
)

// refNow is Wednesday 2024-03-13 12:00 UTC; its week starts Monday 03-11.
var refNow = time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)

type fixedRandom int

func (f fixedRandom) IntN(n int) int { return int(f) % n }

type jobOpt func(*model.Job)

func newJob(company string, status model.Stage, daysAgo int, opts ...jobOpt) *model.Job {
	applied := refNow.AddDate(0, 0, -daysAgo)
	j := &model.Job{
		ID:          company + "-" + string(status),
		UserID:      "user-1",
		Company:     company,
		Position:    "Engineer",
		Status:      status,
		DateApplied: &applied,
		CreatedAt:   applied,
	}
	for _, o := range opts {
		o(j)
	}
	return j
}

func priority() jobOpt { return func(j *model.Job) { j.IsPriority = true } }

func followUpAfter(days int) jobOpt { return func(j *model.Job) { j.FollowUpDays = &days } }

func upcoming(stage model.Stage, schedule string) jobOpt {
	return func(j *model.Job) {
		j.UpcomingStage = stage
		j.UpcomingSchedule = schedule
	}
}

func updated(daysAgo int) jobOpt {
	return func(j *model.Job) {
		t := refNow.AddDate(0, 0, -daysAgo)
		j.UpdatedAt = &t
	}
}

func located(city, state string) jobOpt {
	return func(j *model.Job) { j.Location = model.Location{City: city, State: state} }
}

func workMode(m string) jobOpt { return func(j *model.Job) { j.WorkMode = m } }

func typesOf(ins []Insight) []InsightType {
	out := make([]InsightType, len(ins))
	for i, in := range ins {
		out[i] = in.Type
	}
	return out
}
