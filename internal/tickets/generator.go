// Package tickets generates synthetic resolved support tickets used as
// fine-tuning input. Categories, severities, and timing follow fixed
// distributions so the resulting dataset resembles a real support queue.
package tickets

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultRecords is the dataset size generated when none is requested.
const DefaultRecords = 100000

// csvHeader is the exact column set of the generated dataset.
var csvHeader = []string{
	"TICKET_ID",
	"TICKET_TITLE",
	"TICKET_DESCRIPTION",
	"TICKET_TYPE",
	"PRIORITY",
	"SEVERITY",
	"STATUS",
	"RESOLUTION_DESCRIPTION",
	"CATEGORY",
	"SUBCATEGORY",
	"OPEN_DATETIME",
	"CLOSE_DATETIME",
	"ASSIGNED_TEAM",
	"ASSIGNEE_NAME",
	"CUSTOMER_TIER",
	"CHANNEL",
	"SATISFACTION_SCORE",
}

// Record is one generated ticket row.
type Record struct {
	TicketID          string
	Title             string
	Description       string
	TicketType        string
	Priority          string
	Severity          string
	Status            string
	Resolution        string
	Category          string
	Subcategory       string
	OpenedAt          time.Time
	ClosedAt          time.Time
	AssignedTeam      string
	AssigneeName      string
	CustomerTier      string
	Channel           string
	SatisfactionScore int
}

// Generator produces synthetic tickets from a seeded source, so the same
// seed always yields the same dataset.
type Generator struct {
	rng   *rand.Rand
	now   time.Time
	start time.Time
}

// NewGenerator creates a Generator seeded for reproducibility. Tickets are
// opened within the 180 days preceding now.
func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		now:   now,
		start: now.AddDate(0, 0, -180),
	}
}

// Generate produces n ticket records.
func (g *Generator) Generate(n int) []Record {
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, g.generateOne())
	}
	return records
}

func (g *Generator) generateOne() Record {
	openedAt := g.start.Add(time.Duration(g.rng.Intn(180*24*60)) * time.Minute)
	category := g.pickCategory(openedAt)
	tmpl := templates[category]

	vars := g.fillVariables()
	title := substitute(pick(g.rng, tmpl.titles), vars)
	description := substitute(pick(g.rng, tmpl.descriptions), vars)
	resolution := substitute(pick(g.rng, tmpl.resolutions), vars)

	severity := g.pickSeverity()
	closedAt := openedAt.Add(g.resolutionTime(severity))

	return Record{
		TicketID:          fmt.Sprintf("SUP-%06d", g.rng.Intn(900000)+100000),
		Title:             title,
		Description:       description,
		TicketType:        "Support Request",
		Priority:          fmt.Sprintf("P%d", g.rng.Intn(4)+1),
		Severity:          severity,
		Status:            "Resolved",
		Resolution:        resolution,
		Category:          category,
		Subcategory:       pick(g.rng, productAreas),
		OpenedAt:          openedAt,
		ClosedAt:          closedAt,
		AssignedTeam:      pick(g.rng, supportTeams[category]),
		AssigneeName:      fmt.Sprintf("Agent%d", g.rng.Intn(50)+1),
		CustomerTier:      pick(g.rng, customerTiers),
		Channel:           pick(g.rng, channels),
		SatisfactionScore: g.rng.Intn(3) + 3,
	}
}

// pickCategory applies the weighted distribution during weekday business
// hours and a uniform one otherwise.
func (g *Generator) pickCategory(openedAt time.Time) string {
	hour := openedAt.Hour()
	weekday := openedAt.Weekday()
	if hour >= 9 && hour <= 17 && weekday >= time.Monday && weekday <= time.Friday {
		return weightedPick(g.rng, categories, businessHoursWeights)
	}
	return pick(g.rng, categories)
}

// pickSeverity draws from the fixed Critical/High/Medium/Low distribution
// of 10/25/40/25 percent.
func (g *Generator) pickSeverity() string {
	return weightedPick(g.rng,
		[]string{"Critical", "High", "Medium", "Low"},
		[]float64{0.10, 0.25, 0.40, 0.25})
}

// resolutionTime draws a time-to-close from the severity's plausible range.
func (g *Generator) resolutionTime(severity string) time.Duration {
	var lo, hi float64
	switch severity {
	case "Critical":
		lo, hi = 0.5, 4
	case "High":
		lo, hi = 2, 12
	case "Medium":
		lo, hi = 4, 48
	default:
		lo, hi = 12, 168
	}
	hours := lo + g.rng.Float64()*(hi-lo)
	return time.Duration(hours * float64(time.Hour))
}

// fillVariables draws one value per template placeholder. All placeholders
// are filled for every ticket; unused ones are simply not referenced by the
// chosen templates.
func (g *Generator) fillVariables() map[string]string {
	r := g.rng
	return map[string]string{
		"days":           strconv.Itoa(r.Intn(30) + 1),
		"hours":          strconv.Itoa(r.Intn(48) + 1),
		"minutes":        strconv.Itoa(r.Intn(116) + 5),
		"seconds":        strconv.Itoa(r.Intn(111) + 10),
		"attempts":       strconv.Itoa(r.Intn(8) + 3),
		"users":          strconv.Itoa(r.Intn(491) + 10),
		"amount":         strconv.Itoa(r.Intn(491) + 10),
		"count":          strconv.Itoa(r.Intn(9901) + 100),
		"limit":          strconv.Itoa(r.Intn(901) + 100),
		"size":           strconv.Itoa(r.Intn(46) + 5),
		"percent":        strconv.Itoa(r.Intn(81) + 10),
		"needed":         strconv.Itoa(r.Intn(4001) + 1000),
		"duplicates":     strconv.Itoa(r.Intn(4) + 2),
		"invoice_num":    strconv.Itoa(r.Intn(90000) + 10000),
		"annual_amount":  pick(r, []string{"499", "999", "1999", "2999"}),
		"monthly_amount": pick(r, []string{"49", "99", "199", "299"}),
		"version":        fmt.Sprintf("%d.0", r.Intn(21)+100),
		"old_version":    fmt.Sprintf("%d.0", r.Intn(10)+90),
		"old_time":       strconv.Itoa(r.Intn(201) + 100),
		"new_time":       strconv.Itoa(r.Intn(4001) + 1000),
		"date":           g.now.AddDate(0, 0, -(r.Intn(30) + 1)).Format("2006-01-02"),
		"time1":          fmt.Sprintf("%02d:%02d", r.Intn(24), r.Intn(60)),
		"time2":          fmt.Sprintf("%02d:%02d", r.Intn(24), r.Intn(60)),
		"start_date":     g.now.AddDate(0, 0, -60).Format("2006-01-02"),
		"end_date":       g.now.AddDate(0, 0, -30).Format("2006-01-02"),
		"missing_date":   g.now.AddDate(0, 0, -45).Format("2006-01-02"),
		"use_case":       pick(r, []string{"field operations", "remote work", "travel scenarios"}),
		"event_type":     pick(r, []string{"billing", "security", "system", "user activity"}),
		"feature1":       pick(r, []string{"advanced analytics", "API access", "custom branding"}),
		"feature2":       pick(r, []string{"priority support", "increased storage", "team collaboration"}),
		"new_count":      strconv.Itoa(r.Intn(16) + 5),
		"ticket_num":     strconv.Itoa(r.Intn(9000) + 1000),
		"quarter":        strconv.Itoa(r.Intn(3) + 2),
		"weeks":          strconv.Itoa(r.Intn(9) + 4),
		"old_minutes":    strconv.Itoa(r.Intn(11) + 10),
		"new_minutes":    strconv.Itoa(r.Intn(4) + 2),
	}
}

func pick(r *rand.Rand, options []string) string {
	return options[r.Intn(len(options))]
}

func weightedPick(r *rand.Rand, options []string, weights []float64) string {
	roll := r.Float64()
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return options[i]
		}
	}
	return options[len(options)-1]
}

func substitute(text string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

const timestampLayout = "2006-01-02T15:04:05.000Z"

// WriteCSV writes records with the full column set.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.TicketID,
			rec.Title,
			rec.Description,
			rec.TicketType,
			rec.Priority,
			rec.Severity,
			rec.Status,
			rec.Resolution,
			rec.Category,
			rec.Subcategory,
			rec.OpenedAt.UTC().Format(timestampLayout),
			rec.ClosedAt.UTC().Format(timestampLayout),
			rec.AssignedTeam,
			rec.AssigneeName,
			rec.CustomerTier,
			rec.Channel,
			strconv.Itoa(rec.SatisfactionScore),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes records to path, creating or truncating it.
func WriteCSVFile(path string, records []Record) error {
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, records); err != nil {
		return err
	}
	return f.Close()
}

// Summary counts the categorical distributions of a generated dataset.
type Summary struct {
	Total      int
	ByCategory map[string]int
	BySeverity map[string]int
	ByTier     map[string]int
}

// Summarize tallies records for the post-generation report.
func Summarize(records []Record) Summary {
	s := Summary{
		Total:      len(records),
		ByCategory: make(map[string]int),
		BySeverity: make(map[string]int),
		ByTier:     make(map[string]int),
	}
	for _, rec := range records {
		s.ByCategory[rec.Category]++
		s.BySeverity[rec.Severity]++
		s.ByTier[rec.CustomerTier]++
	}
	return s
}
