// Package splicer runs the read-modify-write sequence around package splice.
// The artifact is only written after the section has been located; any
// failure before that leaves it untouched.
package splicer

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/splicectl/internal/config"
	"github.com/danmuck/splicectl/internal/document"
	"github.com/danmuck/splicectl/internal/observability"
	"github.com/danmuck/splicectl/internal/splice"
)

// Result describes one completed run.
type Result struct {
	Location string
	Span     splice.Span
	Removed  int
	Inserted int
	Changed  bool
	Written  bool
	Output   string
}

type Splicer struct {
	logger zerolog.Logger
}

func New() *Splicer {
	return &Splicer{logger: log.Logger.With().Str("component", "splicer").Logger()}
}

// Apply loads the job's artifact, replaces its section and writes it back
// unless the job is a dry run or the text did not change.
func (s *Splicer) Apply(ctx context.Context, job config.Job) (Result, error) {
	started := time.Now()
	res, err := s.apply(ctx, job)
	outcome := outcomeOf(res, job, err)
	observability.RecordSplice(outcome, res.Removed, res.Inserted, time.Since(started))

	ev := s.logger.Info()
	if err != nil {
		ev = s.logger.Error().Err(err)
	}
	ev.Str("path", job.Path).
		Str("outcome", outcome).
		Int("removed", res.Removed).
		Int("inserted", res.Inserted).
		Dur("took", time.Since(started)).
		Msg("splice finished")
	return res, err
}

func (s *Splicer) apply(ctx context.Context, job config.Job) (Result, error) {
	res := Result{Location: job.Path}
	if err := job.Validate(true); err != nil {
		return res, err
	}
	store, err := document.NewStore(job.Encoding)
	if err != nil {
		return res, err
	}
	replacement := job.Replacement
	if job.ReplacementFile != "" {
		replacement, err = store.ReadText(ctx, job.ReplacementFile)
		if err != nil {
			return res, err
		}
	}

	doc, err := store.Load(ctx, job.Path)
	if err != nil {
		return res, err
	}
	s.logger.Debug().Str("path", doc.Location).Str("encoding", doc.Encoding).Int("bytes", len(doc.Text)).Msg("document loaded")

	out, span, err := splice.Replace(doc.Text, job.StartMarker, job.EndMarker, replacement)
	if err != nil {
		return res, err
	}
	res.Span = span
	res.Removed = span.Len()
	res.Inserted = len(replacement)
	res.Output = out
	res.Changed = out != doc.Text
	s.logger.Debug().Int("start", span.Start).Int("end", span.End).Msg("section located")

	if job.DryRun || !res.Changed {
		return res, nil
	}
	if err := store.Save(ctx, doc, out); err != nil {
		return res, err
	}
	res.Written = true
	return res, nil
}

// Show returns the current contents of the job's section.
func (s *Splicer) Show(ctx context.Context, job config.Job) (string, error) {
	if err := job.Validate(false); err != nil {
		return "", err
	}
	store, err := document.NewStore(job.Encoding)
	if err != nil {
		return "", err
	}
	doc, err := store.Load(ctx, job.Path)
	if err != nil {
		return "", err
	}
	span, err := splice.Locate(doc.Text, job.StartMarker, job.EndMarker)
	if err != nil {
		return "", err
	}
	if !span.Valid(len(doc.Text)) {
		return "", &splice.OrderError{Span: span}
	}
	return splice.Between(doc.Text, span), nil
}

func outcomeOf(res Result, job config.Job, err error) string {
	switch {
	case errors.Is(err, splice.ErrMarkerNotFound):
		return observability.OutcomeMarkerNotFound
	case errors.Is(err, splice.ErrMarkerOrder):
		return observability.OutcomeMarkerOrder
	case err != nil:
		return observability.OutcomeFailed
	case job.DryRun:
		return observability.OutcomeDryRun
	case !res.Changed:
		return observability.OutcomeUnchanged
	default:
		return observability.OutcomeSpliced
	}
}
