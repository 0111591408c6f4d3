package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-tracker-api/internal/analytics"
	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/domain/model"
	"job-tracker-api/internal/domain/ports/adapter"
	"job-tracker-api/internal/infra/logging"
	"job-tracker-api/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ ChecklistUseCase = (*checklistUC)(nil)

const (
	checklistSize    = 5
	checklistTimeout = 20 * time.Second
)

// Checklist is the interview preparation list returned to clients.
type Checklist struct {
	Title       string                    `json:"title"`
	Items       []analytics.ChecklistItem `json:"items"`
	Company     string                    `json:"company"`
	AIGenerated bool                      `json:"ai_generated"`
}

// ChecklistUseCase drafts a checklist with the AI provider and falls back to
// the built-in lists whenever that fails.
type ChecklistUseCase interface {
	Get(ctx context.Context, stage, company string) (*Checklist, error)
}

type checklistUC struct {
	ai    adapter.AIServiceAdapter
	model string
	log   *zerolog.Logger
}

// NewChecklistUseCase accepts a nil ai adapter; every request is then served
// from the static lists.
func NewChecklistUseCase(ai adapter.AIServiceAdapter, model string, logger *zerolog.Logger) *checklistUC {
	return &checklistUC{ai: ai, model: model, log: logger}
}

var stageContexts = map[string]string{
	"recruiter_screening": "initial recruiter call focusing on background, motivation, and basic qualifications",
	"phone_screen":        "phone interview to assess technical communication and fit",
	"technical_screen":    "technical phone interview with coding or system questions",
	"onsite":              "in-person or virtual onsite interview with multiple rounds",
	"system_design":       "system design interview focusing on architecture and scalability",
	"behavioral":          "behavioral interview using STAR method to discuss past experiences",
	"hiring_manager":      "interview with hiring manager focusing on team fit and role expectations",
	"final_round":         "final interview round, often with senior leadership",
	"offer":               "offer stage - negotiation and decision making",
}

const checklistSystemPrompt = `You are an expert career coach specializing in interview preparation.
Generate exactly 5 actionable, specific checklist items for interview preparation.
Each item should be practical and immediately actionable.
Format: Return ONLY a JSON array of 5 objects with 'id', 'text', and 'category' fields.
Categories must be one of: research, preparation, technical, stories, questions, pitch, communication, compensation, architecture, optimization, practice, wellness.
Keep each item under 60 characters. No explanations, just the JSON array.`

func (u *checklistUC) Get(ctx context.Context, stage, company string) (*Checklist, error) {
	defer logging.TraceDuration(u.log, "ChecklistUC.Get")()

	stage = strings.ToLower(strings.TrimSpace(stage))
	company = strings.TrimSpace(company)
	if stage == "" {
		return nil, fmt.Errorf("%w: stage is required", domain.ErrInvalidArgument)
	}
	title := model.TitleLabel(stage) + " Prep"

	if u.ai == nil {
		metrics.IncChecklist("static", "no_provider")
		return u.static(title, stage, company), nil
	}

	items, err := u.draft(ctx, stage, company)
	if err != nil {
		reason := "provider_error"
		if errors.Is(err, errUnparsableChecklist) {
			reason = "parse_error"
		}
		logging.With(ctx, u.log).Warn().Err(err).Str("stage", stage).Msg("ai checklist failed; using static list")
		metrics.IncChecklist("static", reason)
		return u.static(title, stage, company), nil
	}
	metrics.IncChecklist("ai", "")
	return &Checklist{Title: title, Items: items, Company: company, AIGenerated: true}, nil
}

func (u *checklistUC) static(title, stage, company string) *Checklist {
	return &Checklist{
		Title:   title,
		Items:   analytics.PrepChecklist(stage, company),
		Company: company,
	}
}

func (u *checklistUC) draft(ctx context.Context, stage, company string) ([]analytics.ChecklistItem, error) {
	ctx, cancel := context.WithTimeout(ctx, checklistTimeout)
	defer cancel()

	msgs := []adapter.Message{
		{Role: "system", Content: checklistSystemPrompt},
		{Role: "user", Content: checklistPrompt(stage, company)},
	}
	reply, usage, err := u.ai.ChatWithUsage(ctx, u.model, msgs)
	if err != nil {
		return nil, err
	}
	u.log.Debug().
		Str("provider", u.ai.Provider()).
		Int("tokens", usage.TotalTokens).
		Msg("checklist drafted")
	return ParseChecklistReply(reply, company)
}

func checklistPrompt(stage, company string) string {
	stageContext, ok := stageContexts[stage]
	if !ok {
		stageContext = strings.ReplaceAll(stage, "_", " ") + " interview"
	}
	at := ""
	if company != "" {
		at = " at " + company
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate 5 specific interview preparation checklist items for a %s%s.\n\n", stageContext, at)
	fmt.Fprintf(&b, "The candidate is preparing for a %s interview%s.\n", model.TitleLabel(stage), at)
	if company != "" {
		fmt.Fprintf(&b, "Include 1-2 items specifically about researching %s as a company.\n", company)
	}
	b.WriteString("\nReturn ONLY valid JSON array like:\n")
	b.WriteString(`[{"id":"1","text":"Research company recent news","category":"research"},{"id":"2","text":"Practice STAR stories","category":"stories"}]`)
	return b.String()
}

var errUnparsableChecklist = errors.New("unparsable checklist reply")

// ParseChecklistReply extracts the JSON array from a model reply, which may
// be wrapped in prose or a code fence. Ids get an "ai_" prefix, items naming
// company are flagged and at most five are kept.
func ParseChecklistReply(reply, company string) ([]analytics.ChecklistItem, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no json array", errUnparsableChecklist)
	}

	var raw []struct {
		ID       any    `json:"id"`
		Text     string `json:"text"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errUnparsableChecklist, err)
	}

	lc := strings.ToLower(company)
	items := make([]analytics.ChecklistItem, 0, checklistSize)
	for i, r := range raw {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		id := fmt.Sprint(i)
		if r.ID != nil {
			id = fmt.Sprint(r.ID)
		}
		items = append(items, analytics.ChecklistItem{
			ID:              "ai_" + id,
			Text:            text,
			Category:        r.Category,
			CompanySpecific: lc != "" && strings.Contains(strings.ToLower(text), lc),
		})
		if len(items) == checklistSize {
			break
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty list", errUnparsableChecklist)
	}
	return items, nil
}
