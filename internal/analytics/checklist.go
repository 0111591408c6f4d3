package analytics

import "strings"

// ChecklistItem is one entry of an interview preparation checklist.
type ChecklistItem struct {
	ID              string `json:"id"`
	Text            string `json:"text"`
	Category        string `json:"category"`
	CompanySpecific bool   `json:"company_specific,omitempty"`
}

const defaultChecklistStage = "phone_screen"

// Prep checklists are keyed by interview format rather than pipeline stage,
// so a few keys (technical_screen, onsite, behavioral) have no Stage constant.
var prepChecklists = map[string][]ChecklistItem{
	"recruiter_screening": {
		{ID: "rs1", Text: "Prepare elevator pitch (60 seconds)", Category: "pitch"},
		{ID: "rs2", Text: "Review job description key requirements", Category: "preparation"},
		{ID: "rs3", Text: "Research company mission and values", Category: "research"},
		{ID: "rs4", Text: "Prepare salary expectations response", Category: "compensation"},
		{ID: "rs5", Text: "Have questions about role and team ready", Category: "questions"},
	},
	"phone_screen": {
		{ID: "ps1", Text: "Review your resume highlights", Category: "preparation"},
		{ID: "ps2", Text: "Prepare 'why this company' answer", Category: "pitch"},
		{ID: "ps3", Text: "Research recent company news", Category: "research"},
		{ID: "ps4", Text: "Have specific examples ready", Category: "stories"},
		{ID: "ps5", Text: "Prepare thoughtful questions", Category: "questions"},
	},
	"technical_screen": {
		{ID: "ts1", Text: "Review core data structures and algorithms", Category: "technical"},
		{ID: "ts2", Text: "Practice coding problems aloud", Category: "practice"},
		{ID: "ts3", Text: "Review your past project architectures", Category: "preparation"},
		{ID: "ts4", Text: "Prepare to explain your thought process", Category: "communication"},
		{ID: "ts5", Text: "Test your screen sharing setup", Category: "preparation"},
	},
	"system_design": {
		{ID: "sd1", Text: "Review system design fundamentals", Category: "architecture"},
		{ID: "sd2", Text: "Practice drawing architecture diagrams", Category: "practice"},
		{ID: "sd3", Text: "Study scalability patterns", Category: "technical"},
		{ID: "sd4", Text: "Review database design principles", Category: "technical"},
		{ID: "sd5", Text: "Prepare capacity estimation examples", Category: "optimization"},
	},
	"behavioral": {
		{ID: "bh1", Text: "Prepare 5 STAR format stories", Category: "stories"},
		{ID: "bh2", Text: "Practice conflict resolution examples", Category: "stories"},
		{ID: "bh3", Text: "Review leadership experience stories", Category: "stories"},
		{ID: "bh4", Text: "Prepare failure and learning examples", Category: "stories"},
		{ID: "bh5", Text: "Research company culture and values", Category: "research"},
	},
	"onsite": {
		{ID: "os1", Text: "Get 8 hours of sleep the night before", Category: "wellness"},
		{ID: "os2", Text: "Review all interview formats expected", Category: "preparation"},
		{ID: "os3", Text: "Prepare questions for each interviewer", Category: "questions"},
		{ID: "os4", Text: "Plan your outfit and logistics", Category: "preparation"},
		{ID: "os5", Text: "Bring copies of resume and portfolio", Category: "preparation"},
	},
	"hiring_manager": {
		{ID: "hm1", Text: "Research hiring manager on LinkedIn", Category: "research"},
		{ID: "hm2", Text: "Prepare team collaboration examples", Category: "stories"},
		{ID: "hm3", Text: "Have 90-day plan ideas ready", Category: "preparation"},
		{ID: "hm4", Text: "Prepare questions about team dynamics", Category: "questions"},
		{ID: "hm5", Text: "Review role expectations in detail", Category: "preparation"},
	},
	"final_round": {
		{ID: "fr1", Text: "Review all previous interview feedback", Category: "preparation"},
		{ID: "fr2", Text: "Prepare executive summary of your value", Category: "pitch"},
		{ID: "fr3", Text: "Research leadership team backgrounds", Category: "research"},
		{ID: "fr4", Text: "Prepare strategic questions", Category: "questions"},
		{ID: "fr5", Text: "Be ready for offer discussion", Category: "compensation"},
	},
}

// behavioural is the pipeline spelling; the checklist table uses the US one.
var checklistAliases = map[string]string{"behavioural": "behavioral"}

// PrepChecklist returns the static five item checklist for stage, falling
// back to the phone screen list. With a company, a research item for it is
// put first and the list stays at five entries.
func PrepChecklist(stage, company string) []ChecklistItem {
	key := strings.ToLower(strings.TrimSpace(stage))
	if alias, ok := checklistAliases[key]; ok {
		key = alias
	}
	base, ok := prepChecklists[key]
	if !ok {
		base = prepChecklists[defaultChecklistStage]
	}
	company = strings.TrimSpace(company)
	if company == "" {
		return append([]ChecklistItem(nil), base...)
	}
	items := make([]ChecklistItem, 0, len(base))
	items = append(items, ChecklistItem{
		ID:              "ctx1",
		Text:            "Research " + company + "'s recent news and developments",
		Category:        "research",
		CompanySpecific: true,
	})
	return append(items, base[:len(base)-1]...)
}
