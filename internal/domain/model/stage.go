package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stage is the pipeline position of a job application. The declaration order
// of the stages below is the progression order; everything that asks "how far
// did this application get" goes through Rank.
type Stage string

const (
	StageApplied            Stage = "applied"
	StageRecruiterScreening Stage = "recruiter_screening"
	StagePhoneScreen        Stage = "phone_screen"
	StageCodingRound1       Stage = "coding_round_1"
	StageCodingRound2       Stage = "coding_round_2"
	StageSystemDesign       Stage = "system_design"
	StageBehavioural        Stage = "behavioural"
	StageHiringManager      Stage = "hiring_manager"
	StageFinalRound         Stage = "final_round"
	StageOffer              Stage = "offer"
	StageRejected           Stage = "rejected"
	StageGhosted            Stage = "ghosted"
)

var pipeline = [...]Stage{
	StageApplied,
	StageRecruiterScreening,
	StagePhoneScreen,
	StageCodingRound1,
	StageCodingRound2,
	StageSystemDesign,
	StageBehavioural,
	StageHiringManager,
	StageFinalRound,
	StageOffer,
	StageRejected,
	StageGhosted,
}

var stageRank = func() map[Stage]int {
	m := make(map[Stage]int, len(pipeline))
	for i, s := range pipeline {
		m[s] = i
	}
	return m
}()

// Stages returns every known stage in pipeline order.
func Stages() []Stage {
	out := make([]Stage, len(pipeline))
	copy(out, pipeline[:])
	return out
}

// ParseStage normalises free-form input. Unknown values are returned as is
// and report Known() == false.
func ParseStage(s string) Stage {
	return Stage(strings.ToLower(strings.TrimSpace(s)))
}

// Rank is the index of s in the pipeline, or -1 for unknown stages.
func (s Stage) Rank() int {
	if r, ok := stageRank[s]; ok {
		return r
	}
	return -1
}

func (s Stage) Known() bool { return s.Rank() >= 0 }

// IsTerminal reports whether the application has left the active pipeline.
func (s Stage) IsTerminal() bool {
	return s == StageOffer || s == StageRejected || s == StageGhosted
}

// IsEarly covers the stages before any real interview has happened.
func (s Stage) IsEarly() bool {
	return s == StageApplied || s == StageRecruiterScreening
}

// IsInterviewing is true for every stage strictly between applied and offer.
func (s Stage) IsInterviewing() bool {
	r := s.Rank()
	return r > StageApplied.Rank() && r < StageOffer.Rank()
}

// Label renders the stage for humans: "recruiter_screening" -> "Recruiter Screening".
func (s Stage) Label() string {
	return TitleLabel(string(s))
}

// TitleLabel turns a snake_case key into title-cased words.
func TitleLabel(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}
