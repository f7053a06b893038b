package modeltest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TestTicket is one suite entry with the expected classification.
type TestTicket struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	ExpectedCategory string `json:"expected_category"`
	ExpectedSeverity string `json:"expected_severity"`
}

// DefaultSuite returns the fixed tickets the model is evaluated against.
func DefaultSuite() []TestTicket {
	return []TestTicket{
		{
			Title:            "Cannot upload files larger than 5MB",
			Description:      "User trying to upload PDF files. Files under 5MB work fine but larger files fail with timeout error. Using Chrome browser version 120.",
			ExpectedCategory: "Technical Bug",
			ExpectedSeverity: "High",
		},
		{
			Title:            "Password reset email not received",
			Description:      "Customer requested password reset 30 minutes ago but has not received the email. Checked spam folder. Email address verified as correct.",
			ExpectedCategory: "Account Access",
			ExpectedSeverity: "High",
		},
		{
			Title:            "Charged twice for monthly subscription",
			Description:      "Customer shows two charges of $49.99 on credit card statement for the same billing period. Requesting refund for duplicate charge.",
			ExpectedCategory: "Billing Issue",
			ExpectedSeverity: "High",
		},
		{
			Title:            "Request: Add dark mode to dashboard",
			Description:      "Customer using dashboard for 6+ hours daily and experiencing eye strain. Requesting dark mode option.",
			ExpectedCategory: "Feature Request",
			ExpectedSeverity: "Low",
		},
		{
			Title:            "Dashboard loading very slowly",
			Description:      "Dashboard taking 45-60 seconds to load. Previously loaded in under 5 seconds. Started 3 days ago.",
			ExpectedCategory: "Performance Issue",
			ExpectedSeverity: "Medium",
		},
	}
}

// Result is the outcome of one suite ticket.
type Result struct {
	Test          int    `json:"test"`
	Title         string `json:"title"`
	Success       bool   `json:"success"`
	CategoryMatch bool   `json:"category_match,omitempty"`
	SeverityMatch bool   `json:"severity_match,omitempty"`
	Response      string `json:"response,omitempty"`
	StopReason    string `json:"stop_reason,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Summary aggregates suite results.
type Summary struct {
	Total           int `json:"total"`
	Successful      int `json:"successful"`
	Failed          int `json:"failed"`
	CategoryMatches int `json:"category_matches"`
	SeverityMatches int `json:"severity_matches"`
}

// CategoryRate returns the category match rate over successful invocations.
func (s Summary) CategoryRate() float64 { return rate(s.CategoryMatches, s.Successful) }

// SeverityRate returns the severity match rate over successful invocations.
func (s Summary) SeverityRate() float64 { return rate(s.SeverityMatches, s.Successful) }

func rate(matches, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(matches) / float64(total) * 100
}

// Suite runs test tickets against a model handle.
type Suite struct {
	handle InvokableModelHandle
	logf   func(format string, args ...interface{})

	// Pause between invocations, so a burst of prompts does not trip
	// runtime throttling. Tests replace it.
	Pause SleepFunc
}

// NewSuite creates a Suite reporting through logf.
func NewSuite(handle InvokableModelHandle, logf func(format string, args ...interface{})) *Suite {
	return &Suite{
		handle: handle,
		logf:   logf,
		Pause: func(ctx context.Context, d time.Duration) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d):
				return nil
			}
		},
	}
}

// classifyPrompt builds the prompt a ticket is classified with. The shape
// mirrors the classification examples the model was fine-tuned on.
func classifyPrompt(title, description string) string {
	return fmt.Sprintf(
		"Classify this support ticket:\n\nTitle: %s\nDescription: %s\n\nProvide the category, severity, and recommended team.",
		title, description)
}

// Run sends every ticket to the model. Correctness is judged by
// case-insensitive substring presence of the expected category and severity
// in the reply, deliberately loose since the model answers in prose.
// An invocation error fails that ticket, not the run.
func (s *Suite) Run(ctx context.Context, tickets []TestTicket) []Result {
	results := make([]Result, 0, len(tickets))

	for i, ticket := range tickets {
		s.logf("[test %d/%d] %s (expecting %s / %s)",
			i+1, len(tickets), ticket.Title, ticket.ExpectedCategory, ticket.ExpectedSeverity)

		result := Result{Test: i + 1, Title: ticket.Title}
		reply, err := s.handle.Invoke(ctx, classifyPrompt(ticket.Title, ticket.Description))
		if err != nil {
			result.Error = err.Error()
			s.logf("  invocation failed: %v", err)
		} else {
			result.Success = true
			result.Response = reply.Text
			result.StopReason = reply.StopReason
			lower := strings.ToLower(reply.Text)
			result.CategoryMatch = strings.Contains(lower, strings.ToLower(ticket.ExpectedCategory))
			result.SeverityMatch = strings.Contains(lower, strings.ToLower(ticket.ExpectedSeverity))
			s.logf("  category match: %v, severity match: %v", result.CategoryMatch, result.SeverityMatch)
		}
		results = append(results, result)

		if i < len(tickets)-1 {
			if err := s.Pause(ctx, time.Second); err != nil {
				break
			}
		}
	}

	return results
}

// Summarize aggregates results into a Summary.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if !r.Success {
			s.Failed++
			continue
		}
		s.Successful++
		if r.CategoryMatch {
			s.CategoryMatches++
		}
		if r.SeverityMatch {
			s.SeverityMatches++
		}
	}
	return s
}

// report is the JSON document written after a run.
type report struct {
	ModelIdentifier string    `json:"model_identifier"`
	Timestamp       time.Time `json:"timestamp"`
	Summary         Summary   `json:"summary"`
	Results         []Result  `json:"results"`
}

// WriteReport writes the suite results to a timestamped JSON file in dir
// and returns the file path.
func WriteReport(dir, modelIdentifier string, results []Result, now time.Time) (string, error) {
	doc := report{
		ModelIdentifier: modelIdentifier,
		Timestamp:       now.UTC(),
		Summary:         Summarize(results),
		Results:         results,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}

	name := fmt.Sprintf("model_test_results_%s.json", now.UTC().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
