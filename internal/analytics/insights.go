package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"job-tracker-api/internal/datemath"
	"job-tracker-api/internal/domain/model"
)

const (
	MaxInsights         = 8
	MaxFollowUps        = 4
	MaxUpcomingInsights = 5

	maxCoachedCompanies  = 3
	maxTipsPerCompany    = 2
	maxTodayCompanies    = 2
	recentRejectionDays  = 14
	patternMinSuccesses  = 2
	reflectionMinJobs    = 3
	encouragementMaxJobs = 3
	successMinRank       = 3
	advancedMinRank      = 2
)

type InsightType string

const (
	InsightUrgent        InsightType = "urgent"
	InsightCelebration   InsightType = "celebration"
	InsightPattern       InsightType = "pattern"
	InsightMomentum      InsightType = "momentum"
	InsightCoaching      InsightType = "coaching"
	InsightReflection    InsightType = "reflection"
	InsightEncouragement InsightType = "encouragement"
	InsightGhosted       InsightType = "ghosted"
	InsightInfo          InsightType = "info"
)

// Rule priorities; lower sorts first, equal priorities keep emission order.
const (
	priorityToday         = 0
	priorityOffer         = 10
	priorityPattern       = 20
	priorityMomentum      = 30
	priorityStalled       = 35
	priorityCoaching      = 40
	priorityReflection    = 50
	priorityEncouragement = 60
	priorityGhosted       = 70
)

type Insight struct {
	Icon    string      `json:"icon"`
	Color   string      `json:"color"`
	Text    string      `json:"text"`
	Type    InsightType `json:"type"`
	Company string      `json:"company,omitempty"`
}

type WeeklyActivity struct {
	Applied    int `json:"applied"`
	Advanced   int `json:"advanced"`
	Interviews int `json:"interviews"`
}

// Result is the payload of one insight run.
type Result struct {
	Insights           []Insight      `json:"insights"`
	FollowUps          []FollowUp     `json:"follow_ups"`
	UpcomingInterviews []Interview    `json:"upcoming_interviews"`
	WeeklyActivity     WeeklyActivity `json:"weekly_activity"`
}

var reflectionPrompts = [...]string{
	"📝 Weekly reflection: What went well this week? What could improve in your interview approach?",
	"🤔 Reflection moment: Which company excites you most and why? Let that energy show in interviews!",
	"💭 Time to reflect: What new skill or insight did you gain from recent interviews?",
	"🎯 Weekly check-in: Are you applying to roles that align with your career goals?",
	"✨ Reflect and grow: What feedback have you received? How can you apply it?",
}

func encouragements(rejections int) [3]string {
	return [3]string{
		fmt.Sprintf("💪 %d recent rejection%s—but you're still in the game! Each 'no' refines your path to the right 'yes'.", rejections, plural(rejections)),
		"🌟 Rejection is just redirection. Your skills are valuable—the right opportunity is coming.",
		"🚀 The best candidates face rejection too. Stay focused on what you can control and keep moving forward!",
	}
}

var defaultInsight = Insight{
	Icon:  "rocket",
	Color: "#3B82F6",
	Text:  "🚀 Add applications with follow-up dates to receive strategic insights!",
	Type:  InsightInfo,
}

// Engine evaluates the insight rules. The zero value is not usable; build it
// with NewEngine.
type Engine struct {
	rnd Random
}

func NewEngine(rnd Random) *Engine {
	if rnd == nil {
		rnd = DefaultRandom()
	}
	return &Engine{rnd: rnd}
}

type companyRow struct {
	name       string
	status     model.Stage
	rank       int
	isPriority bool
	positions  []string
	tips       []string
}

type offerRow struct {
	company     string
	daysToOffer int
}

type rankedInsight struct {
	Insight
	priority int
}

// scan holds the side tables built in the single pass over the jobs.
type scan struct {
	total        int
	companies    []*companyRow
	byCompany    map[string]*companyRow
	successCount map[model.Stage]int
	upcoming     []Interview
	followUps    []followUpRow
	weekly       WeeklyActivity
	offers       []offerRow
	ghosted      int
	rejected     int
	stalled      int
	critical     int
}

// Generate runs every rule over jobs at now. Identical inputs and random
// draws always produce identical output.
func (e *Engine) Generate(jobs []*model.Job, now time.Time) Result {
	now = now.UTC()
	sc := e.scan(jobs, now)

	var ranked []rankedInsight
	add := func(p int, in Insight) { ranked = append(ranked, rankedInsight{Insight: in, priority: p}) }

	sortInterviews(sc.upcoming)

	// Today's interviews.
	var today []string
	for _, iv := range sc.upcoming {
		if iv.DaysUntil == 0 {
			today = append(today, iv.Company)
		}
	}
	if len(today) > 0 {
		shown := today
		if len(shown) > maxTodayCompanies {
			shown = shown[:maxTodayCompanies]
		}
		add(priorityToday, Insight{
			Icon:  "alert-circle",
			Color: "#EF4444",
			Text:  fmt.Sprintf("🎯 TODAY: Interview%s at %s—you've got this!", plural(len(today)), strings.Join(shown, ", ")),
			Type:  InsightUrgent,
		})
	}

	// Offers.
	if n := len(sc.offers); n > 0 {
		sum := 0
		for _, o := range sc.offers {
			sum += o.daysToOffer
		}
		add(priorityOffer, Insight{
			Icon:  "trophy",
			Color: "#22C55E",
			Text: fmt.Sprintf("🎉 %d offer%s received! Your average time-to-offer: %.0f days. Consider negotiating—73%% of employers expect it.",
				n, plural(n), float64(sum)/float64(n)),
			Type: InsightCelebration,
		})
	}

	// Strongest stage.
	if best, count := sc.strongestStage(); count >= patternMinSuccesses {
		add(priorityPattern, Insight{
			Icon:  "trending-up",
			Color: "#10B981",
			Text: fmt.Sprintf("💪 Pattern detected: %s appears to be your strongest stage with %d successful progressions. Keep leveraging this strength!",
				best.Label(), count),
			Type: InsightPattern,
		})
	}

	// Weekly momentum.
	if sc.weekly.Applied > 0 || sc.weekly.Interviews > 0 {
		var parts []string
		if n := sc.weekly.Applied; n > 0 {
			parts = append(parts, fmt.Sprintf("%d new application%s", n, plural(n)))
		}
		if n := sc.weekly.Interviews; n > 0 {
			parts = append(parts, fmt.Sprintf("%d interview%s scheduled", n, plural(n)))
		}
		add(priorityMomentum, Insight{
			Icon:  "flash",
			Color: "#8B5CF6",
			Text:  fmt.Sprintf("📈 This week's momentum: %s. Great progress!", strings.Join(parts, ", ")),
			Type:  InsightMomentum,
		})
	}

	// Stalled pipeline.
	if sc.stalled > 0 {
		text := fmt.Sprintf("⏳ %d application%s stuck in early stages for %d+ business days", sc.stalled, plural(sc.stalled), StalledBusinessDays)
		if sc.critical > 0 {
			text += fmt.Sprintf(" (%d critical at %d+)", sc.critical, CriticalBusinessDays)
		}
		add(priorityStalled, Insight{
			Icon:  "hourglass",
			Color: "#F97316",
			Text:  text + ". A short check-in can restart the conversation.",
			Type:  InsightPattern,
		})
	}

	// Coaching for priority companies.
	for _, c := range sc.coachedCompanies() {
		tips := c.tips
		if len(tips) > maxTipsPerCompany {
			tips = tips[:maxTipsPerCompany]
		}
		add(priorityCoaching, Insight{
			Icon:    "star",
			Color:   "#F59E0B",
			Text:    fmt.Sprintf("⭐ %s (%s): %s", c.name, c.status.Label(), strings.Join(tips, " • ")),
			Type:    InsightCoaching,
			Company: c.name,
		})
	}

	if sc.total >= reflectionMinJobs {
		add(priorityReflection, Insight{
			Icon:  "bulb",
			Color: "#6366F1",
			Text:  reflectionPrompts[e.rnd.IntN(len(reflectionPrompts))],
			Type:  InsightReflection,
		})
	}

	if sc.rejected >= 1 && sc.rejected <= encouragementMaxJobs {
		msgs := encouragements(sc.rejected)
		add(priorityEncouragement, Insight{
			Icon:  "heart",
			Color: "#EC4899",
			Text:  msgs[e.rnd.IntN(len(msgs))],
			Type:  InsightEncouragement,
		})
	}

	if sc.ghosted > 0 {
		add(priorityGhosted, Insight{
			Icon:  "eye-off",
			Color: "#9CA3AF",
			Text:  fmt.Sprintf("👻 %d application%s marked as ghosted. It's okay—focus your energy on active opportunities!", sc.ghosted, plural(sc.ghosted)),
			Type:  InsightGhosted,
		})
	}

	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].priority < ranked[b].priority })
	if len(ranked) > MaxInsights {
		ranked = ranked[:MaxInsights]
	}
	insights := make([]Insight, 0, len(ranked))
	for _, r := range ranked {
		insights = append(insights, r.Insight)
	}
	if len(insights) == 0 {
		insights = append(insights, defaultInsight)
	}

	upcoming := sc.upcoming
	if len(upcoming) > MaxUpcomingInsights {
		upcoming = upcoming[:MaxUpcomingInsights]
	}

	return Result{
		Insights:           insights,
		FollowUps:          buildFollowUps(sc.followUps),
		UpcomingInterviews: upcoming,
		WeeklyActivity:     sc.weekly,
	}
}

func (e *Engine) scan(jobs []*model.Job, now time.Time) *scan {
	sc := &scan{
		total:        len(jobs),
		byCompany:    make(map[string]*companyRow),
		successCount: make(map[model.Stage]int),
		upcoming:     make([]Interview, 0),
	}
	today := datemath.DateOf(now)
	weekStart := datemath.WeekStart(now)
	weekEnd := weekStart.AddDate(0, 0, 7)
	stages := model.Stages()

	for _, j := range jobs {
		aging := Analyze(j, now)
		if anchor, ok := j.Anchor(); ok && !datemath.DateOf(anchor).Before(weekStart) {
			sc.weekly.Applied++
		}

		switch j.Status {
		case model.StageGhosted:
			sc.ghosted++
			continue
		case model.StageOffer:
			sc.offers = append(sc.offers, offerRow{company: j.Company, daysToOffer: aging.CalendarDays})
			continue
		case model.StageRejected:
			if aging.CalendarDays <= recentRejectionDays {
				sc.rejected++
			}
			continue
		}

		rank := max(j.Status.Rank(), 0)
		if rank >= successMinRank {
			for _, s := range stages[:rank] {
				sc.successCount[s]++
			}
		}

		company := strings.TrimSpace(j.Company)
		if company == "" {
			company = unknownPlace
		}
		row, ok := sc.byCompany[company]
		if !ok {
			row = &companyRow{name: company, status: j.Status, rank: rank}
			sc.byCompany[company] = row
			sc.companies = append(sc.companies, row)
		}
		row.positions = append(row.positions, j.Position)
		if rank > row.rank {
			row.rank, row.status = rank, j.Status
		}
		if j.IsPriority {
			row.isPriority = true
			coachStage := j.Status
			if j.UpcomingStage != "" {
				coachStage = j.UpcomingStage
			}
			if c, ok := CoachingFor(coachStage); ok {
				row.tips = append(row.tips, c.Tip)
			}
		}

		if iv, ok := upcomingFor(j, today); ok {
			if c, ok := CoachingFor(iv.Stage); ok {
				iv.Checklist = c.Checklist
			}
			if iv.date.Before(weekEnd) {
				sc.weekly.Interviews++
			}
			sc.upcoming = append(sc.upcoming, iv)
		}

		if rank >= advancedMinRank && j.UpdatedAt != nil && !j.UpdatedAt.Before(weekStart) {
			sc.weekly.Advanced++
		}

		if aging.Stalled {
			sc.stalled++
			if aging.Class == AgingCritical {
				sc.critical++
			}
		}

		if aging.FollowUpDue {
			sc.followUps = append(sc.followUps, followUpRow{
				company:        company,
				status:         j.Status,
				overdueDays:    aging.OverdueDays,
				businessDays:   aging.BusinessDays,
				isPriority:     j.IsPriority,
				recruiterEmail: j.RecruiterEmail,
			})
		}
	}
	return sc
}

// strongestStage returns the stage most applications got past. Ties go to
// the earlier stage.
func (sc *scan) strongestStage() (model.Stage, int) {
	var best model.Stage
	bestCount := 0
	for _, s := range model.Stages() {
		if n := sc.successCount[s]; n > bestCount {
			best, bestCount = s, n
		}
	}
	return best, bestCount
}

// coachedCompanies picks priority companies with tips, furthest along first.
func (sc *scan) coachedCompanies() []*companyRow {
	var rows []*companyRow
	for _, c := range sc.companies {
		if c.isPriority && len(c.tips) > 0 {
			rows = append(rows, c)
		}
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].rank > rows[b].rank })
	if len(rows) > maxCoachedCompanies {
		rows = rows[:maxCoachedCompanies]
	}
	return rows
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
