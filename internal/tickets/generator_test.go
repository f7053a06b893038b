package tickets

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/dataset"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestGenerateIsDeterministic(t *testing.T) {
	a := NewGenerator(42, testNow).Generate(50)
	b := NewGenerator(42, testNow).Generate(50)

	assert.Equal(t, a, b)
}

func TestGenerateProducesValidRecords(t *testing.T) {
	records := NewGenerator(42, testNow).Generate(200)
	require.Len(t, records, 200)

	for _, rec := range records {
		assert.Regexp(t, `^SUP-\d{6}$`, rec.TicketID)
		assert.NotEmpty(t, rec.Title)
		assert.NotEmpty(t, rec.Description)
		assert.Contains(t, templates, rec.Category)
		assert.Contains(t, []string{"Critical", "High", "Medium", "Low"}, rec.Severity)
		assert.Contains(t, supportTeams[rec.Category], rec.AssignedTeam)
		assert.Equal(t, "Resolved", rec.Status)
		assert.True(t, rec.ClosedAt.After(rec.OpenedAt), "resolution follows opening")
		assert.GreaterOrEqual(t, rec.SatisfactionScore, 3)
		assert.LessOrEqual(t, rec.SatisfactionScore, 5)

		assert.NotContains(t, rec.Description, "{", "all placeholders substituted")
		assert.NotContains(t, rec.Resolution, "{", "all placeholders substituted")
	}
}

func TestGenerateSeverityDistribution(t *testing.T) {
	records := NewGenerator(42, testNow).Generate(10000)

	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Severity]++
	}

	// Loose bounds around the 10/25/40/25 percent target.
	assert.InDelta(t, 1000, counts["Critical"], 300)
	assert.InDelta(t, 2500, counts["High"], 500)
	assert.InDelta(t, 4000, counts["Medium"], 600)
	assert.InDelta(t, 2500, counts["Low"], 500)
}

func TestGenerateCoversAllCategories(t *testing.T) {
	records := NewGenerator(42, testNow).Generate(1000)

	seen := make(map[string]bool)
	for _, rec := range records {
		seen[rec.Category] = true
	}
	for _, category := range categories {
		assert.True(t, seen[category], category)
	}
}

func TestWriteCSVRoundTripsThroughDatasetReader(t *testing.T) {
	records := NewGenerator(42, testNow).Generate(25)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.Equal(t, strings.Join(csvHeader, ","), header)

	tickets, err := dataset.ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, tickets, 25)

	assert.Equal(t, records[0].Title, tickets[0].Title)
	assert.Equal(t, records[0].Category, tickets[0].Category)
	assert.Equal(t, records[0].Resolution, tickets[0].Resolution)
}

func TestSummarize(t *testing.T) {
	records := []Record{
		{Category: "Technical Bug", Severity: "High", CustomerTier: "Premium"},
		{Category: "Technical Bug", Severity: "Low", CustomerTier: "Free"},
		{Category: "Billing Issue", Severity: "High", CustomerTier: "Premium"},
	}

	s := Summarize(records)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.ByCategory["Technical Bug"])
	assert.Equal(t, 2, s.BySeverity["High"])
	assert.Equal(t, 2, s.ByTier["Premium"])
}
