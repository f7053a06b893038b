// Package dataset converts support-ticket records into the Nova chat JSONL
// format expected by Bedrock model customization.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SystemPrompt is the fixed instructional context of every training example.
const SystemPrompt = "You are a support ticket classification assistant. " +
	"Analyze customer support tickets and provide accurate categorization, " +
	"severity assessment, and routing recommendations."

// Ticket is the slice of a support-ticket record the dataset needs.
type Ticket struct {
	Title        string
	Description  string
	Category     string
	Severity     string
	Priority     string
	AssignedTeam string
	CustomerTier string
	Resolution   string
}

// Content is a single text block in a chat turn.
type Content struct {
	Text string `json:"text"`
}

// Message is one ordered turn of a training conversation. Turn order is
// significant and turns are never merged.
type Message struct {
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

// Record is one training example: an instructional system turn plus an
// ordered user/assistant exchange.
type Record struct {
	System   []Content `json:"system"`
	Messages []Message `json:"messages"`
}

// classificationRecord builds the category/severity/routing example for a ticket.
func classificationRecord(t Ticket) Record {
	prompt := fmt.Sprintf("Classify this support ticket:\n\nTitle: %s\n\nDescription: %s\n\n"+
		"Provide the category, severity, and recommended team.", t.Title, t.Description)
	reply := fmt.Sprintf("Category: %s\nSeverity: %s\nPriority: %s\nRecommended Team: %s\nCustomer Tier: %s",
		t.Category, t.Severity, t.Priority, t.AssignedTeam, t.CustomerTier)

	return Record{
		System: []Content{{Text: SystemPrompt}},
		Messages: []Message{
			{Role: "user", Content: []Content{{Text: prompt}}},
			{Role: "assistant", Content: []Content{{Text: reply}}},
		},
	}
}

// resolutionRecord builds the resolution-recommendation example for a ticket.
func resolutionRecord(t Ticket) Record {
	prompt := fmt.Sprintf("A support ticket was submitted:\n\nTitle: %s\nDescription: %s\nSeverity: %s\n\n"+
		"What steps would you recommend to resolve this?", t.Title, t.Description, t.Severity)
	reply := fmt.Sprintf("Recommended Resolution:\n%s\n\nThis ticket should be assigned to: %s",
		t.Resolution, t.AssignedTeam)

	return Record{
		System: []Content{{Text: SystemPrompt}},
		Messages: []Message{
			{Role: "user", Content: []Content{{Text: prompt}}},
			{Role: "assistant", Content: []Content{{Text: reply}}},
		},
	}
}

// EncodeJSONL renders records as one JSON object per line.
func EncodeJSONL(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	for i, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal record %d: %w", i, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// ValidateJSONL spot-checks the first lines of an encoded dataset: each must
// carry a system turn and a complete user/assistant exchange.
func ValidateJSONL(data []byte) error {
	lines := bytes.Split(data, []byte("\n"))
	checked := 0
	for i, line := range lines {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if checked == 3 {
			break
		}
		checked++

		var r Record
		if err := json.Unmarshal(line, &r); err != nil {
			return fmt.Errorf("line %d is not valid JSON: %w", i+1, err)
		}
		if len(r.System) == 0 {
			return fmt.Errorf("line %d is missing the system turn", i+1)
		}
		if len(r.Messages) < 2 {
			return fmt.Errorf("line %d needs at least 2 messages, has %d", i+1, len(r.Messages))
		}
	}
	return nil
}
