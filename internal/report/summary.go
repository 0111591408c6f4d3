// Package report computes weekly and monthly job-search summaries and renders
// them as the HTML stored with a report, as the plain-text email preview and
// as markdown.
package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"job-tracker-api/internal/datemath"
	"job-tracker-api/internal/domain/model"
)

const (
	weekWindow          = 7 * 24 * time.Hour
	followUpAfterDays   = 7
	topCompanyCount     = 5
	listedWindowJobs    = 10
	listedFollowUps     = 5
	lowResponseRate     = 20.0
	manyFollowUps       = 5
	rangeDateLayout     = "Jan-02-2006"
	monthYearLayout     = "Jan-2006"
	unknownBucket       = "unknown"
	unknownCompanyLabel = "Unknown"
)

var (
	workModeOrder = []string{"remote", "hybrid", "onsite"}

	recommendationLowResponse = "Consider optimizing your resume and cover letters to improve response rates."
	recommendationNoOffers    = "Practice interview skills to convert more interviews to offers."
	recommendationFollowUps   = "Many applications are awaiting response - consider sending follow-up emails."
)

// JobLine is one application mentioned in a summary.
type JobLine struct {
	Company     string
	Position    string
	StatusLabel string
	DaysAgo     int
}

// CountLine is one row of a breakdown; Bar has one block per five percent.
type CountLine struct {
	Key     string
	Label   string
	Count   int
	Percent float64
}

type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// Summary holds every number a report or email preview shows.
type Summary struct {
	Type        model.ReportType
	UserName    string
	ToEmail     string
	GeneratedAt time.Time
	WindowStart time.Time
	FromDate    string
	ToDate      string
	MonthYear   string
	Title       string
	DateRange   string

	TotalApplications  int
	WindowApplications int
	WindowJobs         []JobLine
	// StatusCounts covers the window for weekly summaries and all jobs for
	// monthly ones.
	StatusCounts    map[string]int
	StatusBreakdown []CountLine
	WorkModeCounts  map[string]int
	WorkModes       []CountLine

	SalaryJobs   int
	AvgSalaryMin float64
	AvgSalaryMax float64

	TopCompanies []CompanyCount
	FollowUps    []JobLine

	Interviewing        int
	FinalRounds         int
	Offers              int
	Rejections          int
	ActiveApplications  int
	ResponseRate        float64
	InterviewConversion float64
	OfferRate           float64
	Recommendations     []string
}

// Compose builds the summary of jobs for user at now. Jobs without a usable
// date are left out of the window and follow-up lists but still count toward
// the all-time figures.
func Compose(typ model.ReportType, user *model.User, jobs []*model.Job, now time.Time) *Summary {
	now = now.UTC()
	s := &Summary{
		Type:              typ,
		UserName:          user.DisplayName(),
		ToEmail:           user.DeliveryEmail(),
		GeneratedAt:       now,
		TotalApplications: len(jobs),
		StatusCounts:      map[string]int{},
		WorkModeCounts:    map[string]int{},
	}

	switch typ {
	case model.ReportMonthly:
		s.WindowStart = datemath.MonthStart(now)
		s.MonthYear = now.Format(monthYearLayout)
		s.Title = "Monthly Summary for " + s.MonthYear
		s.DateRange = s.MonthYear
	default:
		s.WindowStart = now.Add(-weekWindow)
		s.FromDate = s.WindowStart.Format(rangeDateLayout)
		s.ToDate = now.Format(rangeDateLayout)
		s.Title = "Weekly Summary for the week " + s.FromDate + " - " + s.ToDate
		s.DateRange = s.FromDate + " - " + s.ToDate
	}

	allStatus := map[string]int{}
	companyIdx := map[string]int{}
	var salaryMin, salaryMax float64
	responded := 0

	for _, j := range jobs {
		status := statusKey(j.Status)
		allStatus[status]++
		if j.Status != model.StageApplied {
			responded++
		}
		s.WorkModeCounts[bucket(j.WorkMode)]++

		company := strings.TrimSpace(j.Company)
		if company == "" {
			company = unknownCompanyLabel
		}
		if i, ok := companyIdx[company]; ok {
			s.TopCompanies[i].Count++
		} else {
			companyIdx[company] = len(s.TopCompanies)
			s.TopCompanies = append(s.TopCompanies, CompanyCount{Company: company, Count: 1})
		}

		if j.SalaryRange != nil {
			s.SalaryJobs++
			salaryMin += j.SalaryRange.Min
			salaryMax += j.SalaryRange.Max
		}

		anchor, ok := j.Anchor()
		if !ok {
			continue
		}
		line := JobLine{
			Company:     company,
			Position:    j.Position,
			StatusLabel: statusLabel(j.Status),
			DaysAgo:     datemath.DaysSince(anchor, now),
		}
		if !anchor.Before(s.WindowStart) && !anchor.After(now) {
			s.WindowApplications++
			s.WindowJobs = append(s.WindowJobs, line)
			if typ == model.ReportWeekly {
				s.StatusCounts[status]++
			}
		}
		if j.Status == model.StageApplied && line.DaysAgo > followUpAfterDays {
			s.FollowUps = append(s.FollowUps, line)
		}
	}
	if typ == model.ReportMonthly {
		s.StatusCounts = allStatus
	}

	if s.SalaryJobs > 0 {
		s.AvgSalaryMin = salaryMin / float64(s.SalaryJobs)
		s.AvgSalaryMax = salaryMax / float64(s.SalaryJobs)
	}

	sort.SliceStable(s.TopCompanies, func(a, b int) bool { return s.TopCompanies[a].Count > s.TopCompanies[b].Count })
	if len(s.TopCompanies) > topCompanyCount {
		s.TopCompanies = s.TopCompanies[:topCompanyCount]
	}

	for status, n := range s.StatusCounts {
		st := model.Stage(status)
		switch {
		case st.IsInterviewing():
			s.Interviewing += n
		case st == model.StageOffer:
			s.Offers += n
		case st == model.StageRejected:
			s.Rejections += n
		}
		if st == model.StageFinalRound {
			s.FinalRounds += n
		}
	}
	for status, n := range allStatus {
		if st := model.Stage(status); !st.IsTerminal() {
			s.ActiveApplications += n
		}
	}

	base := s.TotalApplications
	if typ == model.ReportWeekly {
		base = s.WindowApplications
	}
	s.StatusBreakdown = breakdown(s.StatusCounts, base)
	s.WorkModes = workModeLines(s.WorkModeCounts, s.TotalApplications)

	s.ResponseRate = percent(responded, s.TotalApplications)
	s.InterviewConversion = percent(s.Interviewing, s.TotalApplications)
	s.OfferRate = percent(s.Offers, s.TotalApplications)

	if s.ResponseRate < lowResponseRate {
		s.Recommendations = append(s.Recommendations, recommendationLowResponse)
	}
	if s.Interviewing > 0 && s.Offers == 0 {
		s.Recommendations = append(s.Recommendations, recommendationNoOffers)
	}
	if len(s.FollowUps) > manyFollowUps {
		s.Recommendations = append(s.Recommendations, recommendationFollowUps)
	}
	return s
}

// Stats is the snapshot persisted alongside a report.
func (s *Summary) Stats() map[string]any {
	stats := map[string]any{
		"status_counts":    s.StatusCounts,
		"follow_ups_count": len(s.FollowUps),
		"response_rate":    s.ResponseRate,
	}
	if s.Type == model.ReportWeekly {
		stats["weekly_applications"] = s.WindowApplications
		return stats
	}
	stats["total_applications"] = s.TotalApplications
	stats["monthly_applications"] = s.WindowApplications
	stats["work_mode_counts"] = s.WorkModeCounts
	stats["avg_salary_range"] = map[string]float64{"min": s.AvgSalaryMin, "max": s.AvgSalaryMax}
	stats["top_companies"] = s.TopCompanies
	return stats
}

func statusKey(st model.Stage) string {
	if st == "" {
		return unknownBucket
	}
	return string(st)
}

func statusLabel(st model.Stage) string { return model.TitleLabel(statusKey(st)) }

func bucket(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return unknownBucket
	}
	return v
}

// percent rounds to one decimal and is 0 for an empty denominator.
func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*1000) / 10
}

// breakdown lists known stages in pipeline order, then anything else by name.
func breakdown(counts map[string]int, total int) []CountLine {
	lines := make([]CountLine, 0, len(counts))
	seen := make(map[string]bool, len(counts))
	for _, st := range model.Stages() {
		if n, ok := counts[string(st)]; ok && n > 0 {
			lines = append(lines, CountLine{Key: string(st), Label: st.Label(), Count: n, Percent: percent(n, total)})
			seen[string(st)] = true
		}
	}
	var rest []string
	for k := range counts {
		if !seen[k] && counts[k] > 0 {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		lines = append(lines, CountLine{Key: k, Label: model.TitleLabel(k), Count: counts[k], Percent: percent(counts[k], total)})
	}
	return lines
}

func workModeLines(counts map[string]int, total int) []CountLine {
	lines := make([]CountLine, 0, len(workModeOrder))
	for _, m := range workModeOrder {
		n := counts[m]
		lines = append(lines, CountLine{Key: m, Label: model.TitleLabel(m), Count: n, Percent: percent(n, total)})
	}
	return lines
}
