package model

import (
	"strings"
	"time"

	"job-tracker-api/internal/domain"
)

type ReportType string

const (
	ReportWeekly  ReportType = "weekly"
	ReportMonthly ReportType = "monthly"
)

func ParseReportType(s string) (ReportType, error) {
	switch t := ReportType(strings.ToLower(strings.TrimSpace(s))); t {
	case ReportWeekly, ReportMonthly:
		return t, nil
	default:
		return "", domain.ErrInvalidReportType
	}
}

// Report is a generated summary document. Once stored only IsRead changes.
type Report struct {
	ID        string         `json:"report_id"`
	UserID    string         `json:"user_id"`
	Type      ReportType     `json:"report_type"`
	Title     string         `json:"title"`
	DateRange string         `json:"date_range"`
	Content   string         `json:"content"`
	Stats     map[string]any `json:"stats"`
	CreatedAt time.Time      `json:"created_at"`
	IsRead    bool           `json:"is_read"`
}

// ReportSummary is the list view of a report, without the rendered body.
type ReportSummary struct {
	ID        string     `json:"report_id"`
	Type      ReportType `json:"report_type"`
	Title     string     `json:"title"`
	DateRange string     `json:"date_range"`
	CreatedAt time.Time  `json:"created_at"`
	IsRead    bool       `json:"is_read"`
}

func (r *Report) Summary() ReportSummary {
	return ReportSummary{
		ID:        r.ID,
		Type:      r.Type,
		Title:     r.Title,
		DateRange: r.DateRange,
		CreatedAt: r.CreatedAt,
		IsRead:    r.IsRead,
	}
}
