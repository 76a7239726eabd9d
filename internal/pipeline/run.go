// Package pipeline scores batches of resume record files concurrently.
package pipeline

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/types"
)

// DefaultConcurrency is used when Options.Concurrency is not positive.
const DefaultConcurrency = 4

// ProgressEvent is emitted after each file is scored or fails to parse
type ProgressEvent struct {
	Path  string `json:"path"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
	Err   error  `json:"-"`
}

// ProgressCallback is called when batch progress occurs. It may be called
// from several goroutines at once.
type ProgressCallback func(event ProgressEvent)

// Options configures ScoreFiles
type Options struct {
	Concurrency int
	Logger      *zap.Logger
	OnProgress  ProgressCallback
}

// FileResult is the outcome for one input file. Err is set when the file could
// not be read or parsed; Result is then the zero value. Name is the
// candidate's full name when the record has one.
type FileResult struct {
	Path   string            `json:"path"`
	Name   string            `json:"name,omitempty"`
	Result types.ScoreResult `json:"result"`
	Err    error             `json:"-"`
}

// ScoreFiles reads, parses and scores every path. Results are returned in input
// order. A file that fails to parse does not stop the batch; a cancelled context does.
func ScoreFiles(ctx context.Context, scorer *ats.Scorer, paths []string, opts Options) ([]FileResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]FileResult, len(paths))
	var done atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			res := FileResult{Path: path}
			rec, err := ingestion.ReadRecordFile(path)
			if err != nil {
				res.Err = err
				log.Warn("record skipped", zap.String(logger.FieldFile, path), zap.Error(err))
			} else {
				res.Name = rec.PersonalDetails.FullName()
				res.Result = scorer.Score(rec)
				log.Debug("record scored",
					zap.String(logger.FieldFile, path),
					zap.String(logger.FieldRubric, scorer.Rubric()),
					zap.Int(logger.FieldScore, res.Result.Score))
			}
			results[i] = res

			n := int(done.Add(1))
			if opts.OnProgress != nil {
				opts.OnProgress(ProgressEvent{Path: path, Done: n, Total: len(paths), Err: res.Err})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failed returns the results whose files could not be parsed.
func Failed(results []FileResult) []FileResult {
	var failed []FileResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// BelowThreshold returns the scored results whose score is under minScore.
func BelowThreshold(results []FileResult, minScore int) []FileResult {
	var below []FileResult
	for _, r := range results {
		if r.Err == nil && r.Result.Score < minScore {
			below = append(below, r)
		}
	}
	return below
}
