package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Column names the reader looks up in the CSV header. Extra columns are ignored.
const (
	colTitle        = "TICKET_TITLE"
	colDescription  = "TICKET_DESCRIPTION"
	colCategory     = "CATEGORY"
	colSeverity     = "SEVERITY"
	colPriority     = "PRIORITY"
	colAssignedTeam = "ASSIGNED_TEAM"
	colCustomerTier = "CUSTOMER_TIER"
	colResolution   = "RESOLUTION_DESCRIPTION"
)

// ReadCSVFile loads tickets from a CSV file with a header row.
func ReadCSVFile(path string) ([]Ticket, error) {
	// #nosec G304
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ticket data: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV loads tickets from CSV data with a header row.
func ReadCSV(r io.Reader) ([]Ticket, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, required := range []string{colTitle, colDescription, colCategory, colSeverity} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %s", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var tickets []Ticket
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		tickets = append(tickets, Ticket{
			Title:        field(row, colTitle),
			Description:  field(row, colDescription),
			Category:     field(row, colCategory),
			Severity:     field(row, colSeverity),
			Priority:     field(row, colPriority),
			AssignedTeam: field(row, colAssignedTeam),
			CustomerTier: field(row, colCustomerTier),
			Resolution:   field(row, colResolution),
		})
	}

	return tickets, nil
}
