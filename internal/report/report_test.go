//go:build !integration

package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"job-tracker-api/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

var user = &model.User{ID: "u1", Email: "ada@example.com", Name: "Ada", CommunicationEmail: "ada@work.io"}

func job(company string, status model.Stage, daysAgo int) *model.Job {
	applied := now.AddDate(0, 0, -daysAgo)
	return &model.Job{
		ID:          fmt.Sprintf("%s-%d", company, daysAgo),
		Company:     company,
		Position:    "Engineer",
		Status:      status,
		WorkMode:    "remote",
		DateApplied: &applied,
		CreatedAt:   applied,
	}
}

func TestComposeWeeklyVersusMonthlyWindow(t *testing.T) {
	jobs := []*model.Job{
		job("Recent", model.StageApplied, 3),
		job("Older", model.StagePhoneScreen, 10),
	}

	weekly := Compose(model.ReportWeekly, user, jobs, now)
	assert.Equal(t, map[string]int{"applied": 1}, weekly.StatusCounts)
	assert.Equal(t, 1, weekly.WindowApplications)
	assert.Equal(t, "Weekly Summary for the week Mar-13-2024 - Mar-20-2024", weekly.Title)
	assert.Equal(t, "Mar-13-2024 - Mar-20-2024", weekly.DateRange)

	monthly := Compose(model.ReportMonthly, user, jobs, now)
	assert.Equal(t, map[string]int{"applied": 1, "phone_screen": 1}, monthly.StatusCounts)
	assert.Equal(t, 2, monthly.WindowApplications)
	assert.Equal(t, "Monthly Summary for Mar-2024", monthly.Title)
	assert.Equal(t, "Mar-2024", monthly.DateRange)
}

func TestComposeResponseRate(t *testing.T) {
	var jobs []*model.Job
	for i := 0; i < 4; i++ {
		jobs = append(jobs, job(fmt.Sprintf("A%d", i), model.StageApplied, 2))
	}
	for i, st := range []model.Stage{model.StagePhoneScreen, model.StageOffer, model.StageRejected, model.StageGhosted, model.StageFinalRound, model.StageSystemDesign} {
		jobs = append(jobs, job(fmt.Sprintf("B%d", i), st, 2))
	}

	s := Compose(model.ReportMonthly, user, jobs, now)

	assert.Equal(t, 60.0, s.ResponseRate)
	assert.Equal(t, 3, s.Interviewing)
	assert.Equal(t, 1, s.Offers)
	assert.Equal(t, 30.0, s.InterviewConversion)
	assert.Equal(t, 10.0, s.OfferRate)
	assert.Equal(t, 7, s.ActiveApplications)
	assert.Empty(t, s.Recommendations)
}

func TestComposeEmptyIsSafe(t *testing.T) {
	s := Compose(model.ReportMonthly, nil, nil, now)
	assert.Zero(t, s.ResponseRate)
	assert.Zero(t, s.AvgSalaryMin)
	assert.Equal(t, "Job Seeker", s.UserName)
	assert.Equal(t, []string{recommendationLowResponse}, s.Recommendations)
	for _, l := range s.WorkModes {
		assert.Zero(t, l.Percent)
	}
}

func TestComposeFollowUpsAndRecommendations(t *testing.T) {
	var jobs []*model.Job
	for i := 0; i < 6; i++ {
		jobs = append(jobs, job(fmt.Sprintf("Stale%d", i), model.StageApplied, 8+i))
	}
	jobs = append(jobs,
		job("Fresh", model.StageApplied, 7),
		job("Loop", model.StageHiringManager, 2),
		&model.Job{Company: "Undated", Status: model.StageApplied},
	)

	s := Compose(model.ReportMonthly, user, jobs, now)

	require.Len(t, s.FollowUps, 6, "exactly seven days is not overdue and undated jobs are skipped")
	assert.Equal(t, "Stale0", s.FollowUps[0].Company)
	assert.Equal(t, 8, s.FollowUps[0].DaysAgo)
	assert.Equal(t, []string{recommendationLowResponse, recommendationNoOffers, recommendationFollowUps}, s.Recommendations)
	assert.Equal(t, 9, s.TotalApplications)
}

func TestComposeSalaryAndCompanies(t *testing.T) {
	withSalary := func(j *model.Job, min, max float64) *model.Job {
		j.SalaryRange = &model.SalaryRange{Min: min, Max: max}
		return j
	}
	jobs := []*model.Job{
		withSalary(job("A", model.StageApplied, 1), 100000, 140000),
		withSalary(job("B", model.StageApplied, 1), 120000, 160000),
		job("B", model.StageApplied, 2),
		job("C", model.StageApplied, 1),
		job("D", model.StageApplied, 1),
		job("E", model.StageApplied, 1),
		job("F", model.StageApplied, 1),
		job("F", model.StageApplied, 2),
		job("F", model.StageApplied, 3),
	}

	s := Compose(model.ReportMonthly, user, jobs, now)

	assert.Equal(t, 2, s.SalaryJobs)
	assert.Equal(t, 110000.0, s.AvgSalaryMin)
	assert.Equal(t, 150000.0, s.AvgSalaryMax)
	assert.Equal(t, []CompanyCount{{"F", 3}, {"B", 2}, {"A", 1}, {"C", 1}, {"D", 1}}, s.TopCompanies)
	assert.Equal(t, map[string]int{"remote": 9}, s.WorkModeCounts)
}

func TestStatsSnapshot(t *testing.T) {
	jobs := []*model.Job{job("A", model.StageApplied, 1)}

	weekly := Compose(model.ReportWeekly, user, jobs, now).Stats()
	assert.Equal(t, 1, weekly["weekly_applications"])
	assert.NotContains(t, weekly, "work_mode_counts")

	monthly := Compose(model.ReportMonthly, user, jobs, now).Stats()
	for _, k := range []string{"total_applications", "monthly_applications", "status_counts", "work_mode_counts", "avg_salary_range", "response_rate", "follow_ups_count", "top_companies"} {
		assert.Contains(t, monthly, k)
	}
}

func TestRenderHTML(t *testing.T) {
	jobs := []*model.Job{
		job("<script>alert(1)</script>", model.StageApplied, 1),
		job("Acme", model.StageOffer, 2),
	}
	s := Compose(model.ReportWeekly, user, jobs, now)

	html, err := RenderHTML(s)
	require.NoError(t, err)
	assert.Contains(t, html, "Weekly Job Search Summary")
	assert.Contains(t, html, "Hi Ada")
	assert.Contains(t, html, "Mar-13-2024 - Mar-20-2024")
	assert.Contains(t, html, strings.Repeat("█", 10), "each status holds half of the window")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")

	md, err := ToMarkdown(html)
	require.NoError(t, err)
	assert.Contains(t, md, "Weekly Job Search Summary")
	assert.NotContains(t, md, "<div")
}

func TestRenderMonthlyHTMLSalary(t *testing.T) {
	j := job("Acme", model.StageApplied, 1)
	j.SalaryRange = &model.SalaryRange{Min: 95000, Max: 120500}
	html, err := RenderHTML(Compose(model.ReportMonthly, user, []*model.Job{j}, now))
	require.NoError(t, err)
	assert.Contains(t, html, "$95,000 - $120,500")
	assert.Contains(t, html, "Monthly Job Search Report - Mar-2024")
}

func TestBuildEmail(t *testing.T) {
	jobs := []*model.Job{job("Acme", model.StageApplied, 9), job("Beta", model.StageFinalRound, 1)}

	weekly, err := BuildEmail(Compose(model.ReportWeekly, user, jobs, now))
	require.NoError(t, err)
	assert.Equal(t, "Weekly Summary for the week Mar-13-2024 - Mar-20-2024", weekly.Subject)
	assert.Equal(t, "ada@work.io", weekly.ToEmail)
	assert.Equal(t, "Mar-13-2024", weekly.FromDate)
	assert.Contains(t, weekly.Body, "Hi Ada,")
	assert.Contains(t, weekly.Body, "• Applications Submitted: 1")
	assert.Contains(t, weekly.Body, "• Final Rounds: 1")
	assert.Contains(t, weekly.Body, "• Acme - Engineer (9 days ago)")
	assert.Contains(t, weekly.Body, "• Response Rate: 50.0%")

	monthly, err := BuildEmail(Compose(model.ReportMonthly, user, jobs, now))
	require.NoError(t, err)
	assert.Equal(t, "Monthly Summary for Mar-2024", monthly.Subject)
	assert.Equal(t, "Mar-2024", monthly.MonthYear)
	assert.Contains(t, monthly.Body, "1. Acme (1 application)")
	assert.Contains(t, monthly.Body, "Remote")
	assert.Contains(t, monthly.Body, "• Average Min Salary: $0")
	assert.Contains(t, monthly.Body, "💡 "+recommendationNoOffers)
}

func TestBuild(t *testing.T) {
	s := Compose(model.ReportWeekly, user, []*model.Job{job("Acme", model.StageApplied, 1)}, now)
	r, err := Build(s, "rep-1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "rep-1", r.ID)
	assert.Equal(t, "u1", r.UserID)
	assert.Equal(t, model.ReportWeekly, r.Type)
	assert.Equal(t, s.Title, r.Title)
	assert.Equal(t, now, r.CreatedAt)
	assert.False(t, r.IsRead)
	assert.NotEmpty(t, r.Content)
	assert.Equal(t, 1, r.Stats["weekly_applications"])
}
