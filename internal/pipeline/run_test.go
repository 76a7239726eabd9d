package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contactOnly = `{"personalDetails": {"firstName": "Ada", "lastName": "Lovelace", "email": "a@b.c", "phone": "1", "links": [{"label": "LinkedIn", "url": ""}]}}`

func writeRecords(t *testing.T, docs ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(docs))
	for i, doc := range docs {
		paths[i] = filepath.Join(dir, fmt.Sprintf("resume_%02d.json", i))
		require.NoError(t, os.WriteFile(paths[i], []byte(doc), 0644))
	}
	return paths
}

func newScorer(t *testing.T) *ats.Scorer {
	t.Helper()
	s, err := ats.NewDefault()
	require.NoError(t, err)
	return s
}

func TestScoreFiles_PreservesOrder(t *testing.T) {
	var docs []string
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			docs = append(docs, `{}`)
		} else {
			docs = append(docs, contactOnly)
		}
	}
	paths := writeRecords(t, docs...)

	results, err := ScoreFiles(context.Background(), newScorer(t), paths, Options{Concurrency: 3})
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
		require.NoError(t, r.Err)
		if i%2 == 0 {
			assert.Equal(t, 0, r.Result.Score)
			assert.Empty(t, r.Name)
		} else {
			assert.Equal(t, 15, r.Result.Score)
			assert.Equal(t, "Ada Lovelace", r.Name)
		}
	}
}

func TestScoreFiles_ParseFailureDoesNotStopBatch(t *testing.T) {
	paths := writeRecords(t, contactOnly, `{"skills": null}`, contactOnly)
	paths = append(paths, filepath.Join(t.TempDir(), "missing.json"))

	results, err := ScoreFiles(context.Background(), newScorer(t), paths, Options{})
	require.NoError(t, err)

	failed := Failed(results)
	require.Len(t, failed, 2)
	assert.Equal(t, paths[1], failed[0].Path)
	assert.Equal(t, paths[3], failed[1].Path)

	var parseErr *ingestion.ParseError
	assert.ErrorAs(t, failed[0].Err, &parseErr)
	assert.Equal(t, 15, results[2].Result.Score)
}

func TestScoreFiles_ReportsProgress(t *testing.T) {
	paths := writeRecords(t, `{}`, `{}`, `{}`)

	var mu sync.Mutex
	var seen []int
	_, err := ScoreFiles(context.Background(), newScorer(t), paths, Options{
		Concurrency: 2,
		OnProgress: func(e ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, 3, e.Total)
			seen = append(seen, e.Done)
		},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3}, seen)
}

func TestScoreFiles_CancelledContext(t *testing.T) {
	paths := writeRecords(t, `{}`, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := ScoreFiles(ctx, newScorer(t), paths, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestScoreFiles_Empty(t *testing.T) {
	results, err := ScoreFiles(context.Background(), newScorer(t), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBelowThreshold(t *testing.T) {
	results := []FileResult{
		{Path: "a"},
		{Path: "b", Err: assert.AnError},
	}
	results[0].Result.Score = 40

	below := BelowThreshold(results, 50)
	require.Len(t, below, 1)
	assert.Equal(t, "a", below[0].Path)
	assert.Empty(t, BelowThreshold(results, 40))
}
