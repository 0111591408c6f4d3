package analytics

import (
	"encoding/json"
	"strings"
	"time"

	"job-tracker-api/internal/domain/model"
)

// RecentWindow is the trailing window behind Stats.Last10Days.
const RecentWindow = 10 * 24 * time.Hour

var workModes = []string{"remote", "onsite", "hybrid"}

// Stats is the dashboard aggregate over one user's applications.
type Stats struct {
	Total      int
	ByStage    map[model.Stage]int
	ByLocation map[string]int
	ByWorkMode map[string]int
	ByPosition map[string]int
	Last10Days int
}

// Aggregate makes one pass over jobs. Unknown statuses and work modes count
// toward Total only.
func Aggregate(jobs []*model.Job, now time.Time) Stats {
	s := Stats{
		Total:      len(jobs),
		ByStage:    make(map[model.Stage]int, len(model.Stages())),
		ByLocation: make(map[string]int),
		ByWorkMode: make(map[string]int, len(workModes)),
		ByPosition: make(map[string]int),
	}
	for _, st := range model.Stages() {
		s.ByStage[st] = 0
	}
	for _, m := range workModes {
		s.ByWorkMode[m] = 0
	}
	recentSince := now.UTC().Add(-RecentWindow)

	for _, j := range jobs {
		if j.Status.Known() {
			s.ByStage[j.Status]++
		}
		if p := strings.TrimSpace(j.Position); p != "" {
			s.ByPosition[p]++
		}
		s.ByLocation[LocationKey(j.Location)]++
		if m := strings.ToLower(strings.TrimSpace(j.WorkMode)); m != "" {
			if _, ok := s.ByWorkMode[m]; ok {
				s.ByWorkMode[m]++
			}
		}
		if !j.CreatedAt.IsZero() && !j.CreatedAt.Before(recentSince) {
			s.Last10Days++
		}
	}
	return s
}

// MarshalJSON flattens the per-stage counts next to the other fields, which
// is the shape dashboard clients read.
func (s Stats) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.ByStage)+5)
	out["total"] = s.Total
	for st, n := range s.ByStage {
		out[string(st)] = n
	}
	out["by_location"] = nonNil(s.ByLocation)
	out["by_work_mode"] = nonNil(s.ByWorkMode)
	out["by_position"] = nonNil(s.ByPosition)
	out["last_10_days"] = s.Last10Days
	return json.Marshal(out)
}

func nonNil(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
