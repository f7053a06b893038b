package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/tickets"
)

func TestGenerate_WritesRequestedRecords(t *testing.T) {
	saveAndRestoreFactories(t)

	var written []tickets.Record
	var writtenPath string
	writeTicketsCSV = func(path string, records []tickets.Record) error {
		writtenPath = path
		written = records
		return nil
	}
	nowFunc = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	err := Generate(GenerateOptions{Records: 250, Output: "out.csv", Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, "out.csv", writtenPath)
	assert.Len(t, written, 250)
}

func TestGenerate_SameSeedSameData(t *testing.T) {
	saveAndRestoreFactories(t)
	nowFunc = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	var first, second []tickets.Record
	writeTicketsCSV = func(_ string, records []tickets.Record) error {
		first = records
		return nil
	}
	require.NoError(t, Generate(GenerateOptions{Records: 50, Output: "a.csv", Seed: 7}))

	writeTicketsCSV = func(_ string, records []tickets.Record) error {
		second = records
		return nil
	}
	require.NoError(t, Generate(GenerateOptions{Records: 50, Output: "b.csv", Seed: 7}))

	assert.Equal(t, first, second)
}

func TestGenerate_RejectsNonPositiveCount(t *testing.T) {
	saveAndRestoreFactories(t)

	called := false
	writeTicketsCSV = func(string, []tickets.Record) error {
		called = true
		return nil
	}

	err := Generate(GenerateOptions{Records: 0, Output: "out.csv"})

	require.Error(t, err)
	assert.False(t, called)
}
