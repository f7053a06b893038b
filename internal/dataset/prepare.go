package dataset

import (
	"fmt"
	"math/rand"
)

// sampleSeed keeps the down-sampling of oversized datasets reproducible
// across runs, so a re-invoked pipeline trains on the same examples.
const sampleSeed = 42

// Options bounds dataset preparation.
type Options struct {
	// TrainRatio is the fraction of tickets used for training.
	TrainRatio float64
	// MaxSamples is the provider-imposed ceiling on training examples.
	MaxSamples int
	// MinSamples is the floor below which preparation fails fast,
	// before anything is uploaded.
	MinSamples int
}

// Split holds the prepared training and validation example sequences.
type Split struct {
	Training   []Record
	Validation []Record
}

// Prepare converts tickets into Nova training records, splits them, and
// enforces the provider's floor and ceiling. Tickets missing a category or
// severity label are skipped. Each training ticket yields a classification
// example and, when resolution text is present, a resolution example;
// validation tickets yield classification examples only.
func Prepare(tickets []Ticket, opts Options) (*Split, error) {
	if opts.TrainRatio <= 0 || opts.TrainRatio >= 1 {
		return nil, fmt.Errorf("train ratio must be between 0 and 1 exclusive, got %g", opts.TrainRatio)
	}

	// Two example kinds per ticket, so the ticket budget is half the sample ceiling.
	maxTickets := opts.MaxSamples / 2
	if len(tickets) > maxTickets {
		tickets = sample(tickets, maxTickets)
	}

	trainSize := int(float64(len(tickets)) * opts.TrainRatio)
	trainTickets := tickets[:trainSize]
	valTickets := tickets[trainSize:]

	var training []Record
	for _, t := range trainTickets {
		if t.Category == "" || t.Severity == "" {
			continue
		}
		training = append(training, classificationRecord(t))
		if t.Resolution != "" {
			training = append(training, resolutionRecord(t))
		}
	}

	var validation []Record
	for _, t := range valTickets {
		if t.Category == "" || t.Severity == "" {
			continue
		}
		validation = append(validation, classificationRecord(t))
	}

	if len(training) > opts.MaxSamples {
		training = training[:opts.MaxSamples]
	}
	if len(training) < opts.MinSamples {
		return nil, fmt.Errorf("not enough training examples (%d), minimum is %d",
			len(training), opts.MinSamples)
	}

	return &Split{Training: training, Validation: validation}, nil
}

// sample picks n tickets pseudo-randomly but reproducibly.
func sample(tickets []Ticket, n int) []Ticket {
	rng := rand.New(rand.NewSource(sampleSeed))
	picked := make([]Ticket, 0, n)
	for _, idx := range rng.Perm(len(tickets))[:n] {
		picked = append(picked, tickets[idx])
	}
	return picked
}
