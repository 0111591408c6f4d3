package analytics

import "job-tracker-api/internal/domain/model"

// StageCoaching is the static advice attached to an interview stage.
type StageCoaching struct {
	Tip       string
	Checklist []string
}

var stageCoaching = map[model.Stage]StageCoaching{
	model.StageRecruiterScreening: {
		Tip: "Focus on your elevator pitch and salary expectations",
		Checklist: []string{
			"Prepare 60-second career summary",
			"Research company culture and values",
			"Know your salary range expectations",
			"Prepare questions about role and team",
			"Review job description key requirements",
		},
	},
	model.StagePhoneScreen: {
		Tip: "Prepare concise answers about your background and motivation",
		Checklist: []string{
			"Review your resume highlights",
			"Prepare 'why this company' answer",
			"Research recent company news",
			"Have specific examples ready",
			"Prepare thoughtful questions",
		},
	},
	model.StageCodingRound1: {
		Tip: "Practice problem-solving approaches and think aloud",
		Checklist: []string{
			"Review common data structures (arrays, trees, graphs)",
			"Practice explaining your thought process",
			"Review Big O complexity analysis",
			"Practice on LeetCode medium problems",
			"Prepare questions about engineering culture",
		},
	},
	model.StageCodingRound2: {
		Tip: "Review advanced algorithms and optimization techniques",
		Checklist: []string{
			"Review dynamic programming patterns",
			"Practice graph algorithms (BFS, DFS, Dijkstra)",
			"Review advanced tree operations",
			"Practice time/space optimization",
			"Prepare to discuss past technical projects",
		},
	},
	model.StageSystemDesign: {
		Tip: "Practice designing scalable systems with clear trade-offs",
		Checklist: []string{
			"Review scalability patterns (sharding, caching)",
			"Study company's tech stack and architecture",
			"Practice drawing system diagrams",
			"Prepare to discuss CAP theorem trade-offs",
			"Review load balancing and database design",
		},
	},
	model.StageBehavioural: {
		Tip: "Prepare 5-7 STAR stories covering leadership and challenges",
		Checklist: []string{
			"Prepare STAR stories for leadership",
			"Prepare conflict resolution examples",
			"Research hiring manager on LinkedIn",
			"Practice stories about failures and learnings",
			"Align examples with company values",
		},
	},
	model.StageHiringManager: {
		Tip: "Research the team's recent projects and prepare questions",
		Checklist: []string{
			"Research manager's background and team",
			"Prepare questions about team dynamics",
			"Review company's recent product launches",
			"Prepare to discuss career goals",
			"Research company earnings/growth if public",
		},
	},
	model.StageFinalRound: {
		Tip: "Align your goals with company mission, discuss compensation",
		Checklist: []string{
			"Research total compensation benchmarks",
			"Prepare negotiation talking points",
			"Review company mission and values",
			"Prepare 30-60-90 day plan",
			"Have questions about growth opportunities",
		},
	},
}

// CoachingFor looks up the advice for stage. The returned checklist is a copy.
func CoachingFor(stage model.Stage) (StageCoaching, bool) {
	c, ok := stageCoaching[stage]
	if !ok {
		return StageCoaching{}, false
	}
	return StageCoaching{Tip: c.Tip, Checklist: append([]string(nil), c.Checklist...)}, true
}
