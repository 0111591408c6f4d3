package report

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"math"
	"strings"
	texttemplate "text/template"
	"time"

	"job-tracker-api/internal/domain/model"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/dustin/go-humanize"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = map[string]any{
	"bar":    func(pct float64) string { return strings.Repeat("█", blocks(pct)) },
	"shade":  func(pct float64) string { return strings.Repeat("▓", blocks(pct)) },
	"money":  money,
	"pct":    func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"plural": func(n int) string { return plural(n) },
	"pad":    func(width int, v any) string { return fmt.Sprintf("%-*v", width, v) },
	"first":  first,
	"inc":    func(i int) int { return i + 1 },
	"stat":   func(v any, label string) statCard { return statCard{Value: v, Label: label} },
	"more": func(total, shown int) int {
		if total > shown {
			return total - shown
		}
		return 0
	},
}

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.New("report").Funcs(funcs).ParseFS(templateFS, "templates/*.html.tmpl"))
	textTemplates = texttemplate.Must(texttemplate.New("email").Funcs(funcs).ParseFS(templateFS, "templates/*.txt.tmpl"))
)

// RenderHTML produces the report body stored with a generated report.
func RenderHTML(s *Summary) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, string(s.Type)+".html.tmpl", s); err != nil {
		return "", fmt.Errorf("render %s html: %w", s.Type, err)
	}
	return buf.String(), nil
}

// RenderText produces the plain-text email body.
func RenderText(s *Summary) (string, error) {
	var buf bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&buf, string(s.Type)+".txt.tmpl", s); err != nil {
		return "", fmt.Errorf("render %s text: %w", s.Type, err)
	}
	return buf.String(), nil
}

// ToMarkdown converts a stored HTML body for clients that display markdown.
func ToMarkdown(html string) (string, error) {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert report to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// Build renders s and wraps it into a report owned by userID.
func Build(s *Summary, id, userID string) (*model.Report, error) {
	content, err := RenderHTML(s)
	if err != nil {
		return nil, err
	}
	return &model.Report{
		ID:        id,
		UserID:    userID,
		Type:      s.Type,
		Title:     s.Title,
		DateRange: s.DateRange,
		Content:   content,
		Stats:     s.Stats(),
		CreatedAt: s.GeneratedAt,
	}, nil
}

// Email is the ready-to-send preview of a summary.
type Email struct {
	Subject   string         `json:"subject"`
	Body      string         `json:"body"`
	ToEmail   string         `json:"to_email"`
	FromDate  string         `json:"from_date,omitempty"`
	ToDate    string         `json:"to_date,omitempty"`
	MonthYear string         `json:"month_year,omitempty"`
	Stats     map[string]any `json:"stats"`
	Generated time.Time      `json:"generated_at"`
}

func BuildEmail(s *Summary) (*Email, error) {
	body, err := RenderText(s)
	if err != nil {
		return nil, err
	}
	return &Email{
		Subject:   s.Title,
		Body:      body,
		ToEmail:   s.ToEmail,
		FromDate:  s.FromDate,
		ToDate:    s.ToDate,
		MonthYear: s.MonthYear,
		Stats:     s.Stats(),
		Generated: s.GeneratedAt,
	}, nil
}

type statCard struct {
	Value any
	Label string
}

func blocks(pct float64) int {
	if pct <= 0 {
		return 0
	}
	return int(pct / 5)
}

func money(v float64) string {
	return "$" + humanize.Comma(int64(math.Round(v)))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func first(n int, lines []JobLine) []JobLine {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
