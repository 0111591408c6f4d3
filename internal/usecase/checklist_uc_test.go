//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/domain/ports/adapter"
	"job-tracker-api/internal/usecase"
)

func TestChecklistUseCase(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	t.Run("uses the AI reply when it parses", func(t *testing.T) {
		ai := &mockAI{ChatWithUsageFunc: func(ctx context.Context, model string, msgs []adapter.Message) (string, adapter.Usage, error) {
			if model != "gpt-4o-mini" {
				t.Errorf("unexpected model %q", model)
			}
			return "Sure!\n```json\n" + `[
				{"id": 1, "text": "Read Acme's engineering blog", "category": "research"},
				{"id": "2", "text": "Practice STAR stories", "category": "stories"},
				{"text": "Prepare questions", "category": "questions"},
				{"id": "4", "text": "Review system basics", "category": "technical"},
				{"id": "5", "text": "Rest well", "category": "wellness"},
				{"id": "6", "text": "One too many", "category": "practice"}
			]` + "\n```", adapter.Usage{TotalTokens: 120}, nil
		}}
		uc := usecase.NewChecklistUseCase(ai, "gpt-4o-mini", testLogger)

		cl, err := uc.Get(ctx, "Phone_Screen", "Acme")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !cl.AIGenerated || cl.Title != "Phone Screen Prep" || cl.Company != "Acme" {
			t.Errorf("unexpected header: %+v", cl)
		}
		if len(cl.Items) != 5 {
			t.Fatalf("expected 5 items, got %d", len(cl.Items))
		}
		if cl.Items[0].ID != "ai_1" || !cl.Items[0].CompanySpecific {
			t.Errorf("first item: %+v", cl.Items[0])
		}
		if cl.Items[1].CompanySpecific {
			t.Error("items not naming the company must not be flagged")
		}
		if cl.Items[2].ID != "ai_2" {
			t.Errorf("missing ids fall back to the index, got %q", cl.Items[2].ID)
		}
		prompt := ai.lastMessages[1].Content
		if !strings.Contains(prompt, "phone interview to assess") || !strings.Contains(prompt, "researching Acme") {
			t.Errorf("prompt lacks stage context or company: %s", prompt)
		}
	})

	t.Run("falls back on provider errors", func(t *testing.T) {
		ai := &mockAI{ChatWithUsageFunc: func(context.Context, string, []adapter.Message) (string, adapter.Usage, error) {
			return "", adapter.Usage{}, errors.New("upstream 500")
		}}
		cl, err := usecase.NewChecklistUseCase(ai, "m", testLogger).Get(ctx, "system_design", "Acme")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cl.AIGenerated || len(cl.Items) != 5 {
			t.Fatalf("expected a static list of 5, got %+v", cl)
		}
		if cl.Items[0].ID != "ctx1" || !cl.Items[0].CompanySpecific || cl.Items[1].ID != "sd1" {
			t.Errorf("expected the company item first, got %+v", cl.Items[:2])
		}
	})

	t.Run("falls back on unparsable replies", func(t *testing.T) {
		ai := &mockAI{ChatWithUsageFunc: func(context.Context, string, []adapter.Message) (string, adapter.Usage, error) {
			return "I cannot help with that.", adapter.Usage{}, nil
		}}
		cl, err := usecase.NewChecklistUseCase(ai, "m", testLogger).Get(ctx, "recruiter_screening", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cl.AIGenerated || cl.Items[0].ID != "rs1" {
			t.Errorf("expected the static recruiter list, got %+v", cl.Items[0])
		}
	})

	t.Run("no provider configured", func(t *testing.T) {
		cl, err := usecase.NewChecklistUseCase(nil, "", testLogger).Get(ctx, "mystery_stage", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cl.Title != "Mystery Stage Prep" || cl.Items[0].ID != "ps1" {
			t.Errorf("unknown stages fall back to the phone screen list, got %q %+v", cl.Title, cl.Items[0])
		}
	})

	t.Run("blank stage is rejected", func(t *testing.T) {
		_, err := usecase.NewChecklistUseCase(nil, "", testLogger).Get(ctx, "  ", "")
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestParseChecklistReply(t *testing.T) {
	testCases := []struct {
		name    string
		reply   string
		wantLen int
		wantErr bool
	}{
		{"bare array", `[{"id":"1","text":"a","category":"c"}]`, 1, false},
		{"no array", `{"id":"1"}`, 0, true},
		{"broken json", `[{"id":"1",]`, 0, true},
		{"blank items only", `[{"id":"1","text":"  "}]`, 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := usecase.ParseChecklistReply(tc.reply, "")
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if len(items) != tc.wantLen {
				t.Errorf("got %d items, want %d", len(items), tc.wantLen)
			}
		})
	}
}
