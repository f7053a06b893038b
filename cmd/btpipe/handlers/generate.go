package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/tickets"
)

// GenerateOptions carries the generate command's flags.
type GenerateOptions struct {
	Records int
	Output  string
	Seed    int64
}

// Factory function variables for generate - can be replaced in tests.
var (
	// writeTicketsCSV writes the dataset to disk.
	writeTicketsCSV = tickets.WriteCSVFile

	// nowFunc provides the generation clock.
	nowFunc = time.Now
)

// Generate produces the synthetic ticket dataset and writes it as CSV.
func Generate(opts GenerateOptions) error {
	if opts.Records <= 0 {
		return fmt.Errorf("record count must be positive, got %d", opts.Records)
	}

	log.Printf("Generating %d tickets (seed %d)", opts.Records, opts.Seed)

	records := tickets.NewGenerator(opts.Seed, nowFunc()).Generate(opts.Records)
	if err := writeTicketsCSV(opts.Output, records); err != nil {
		return err
	}

	summary := tickets.Summarize(records)
	log.Printf("Wrote %d tickets to %s", summary.Total, opts.Output)
	logDistribution("Category", summary.ByCategory)
	logDistribution("Severity", summary.BySeverity)
	logDistribution("Customer tier", summary.ByTier)

	return nil
}

func logDistribution(label string, counts map[string]int) {
	log.Printf("%s distribution:", label)
	for name, count := range counts {
		log.Printf("  %-20s %d", name, count)
	}
}
