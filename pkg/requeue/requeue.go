// Copyright 2026 haussearch LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package requeue re-submits failed scrape jobs to the property job service,
// pacing requests with a fixed delay.
package requeue

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/haussearch/maintctl/pkg/log"
)

const (
	// statusFailed marks history records eligible for requeueing
	statusFailed = "failed"

	// DefaultLimit is how many history records to inspect
	DefaultLimit = 100

	// DefaultDelay is the fixed pause between scrape submissions. The job
	// service rate-limits aggressively; this mirrors the interval the
	// operators settled on. No backoff or jitter is applied on purpose.
	DefaultDelay = 6 * time.Second
)

// 🔧 Options configures a requeue run
type Options struct {
	// Client is the job service client
	Client *Client

	// Logger reports per-term progress to the user
	Logger *log.UserLogger

	// Limit is the number of history records to fetch (default 100)
	Limit int

	// Delay is the pause between consecutive submissions (default 6s)
	Delay time.Duration
}

// 📈 Summary tallies one requeue run
type Summary struct {
	Terms  int // distinct failed search terms found
	Queued int // submissions accepted with 202
	Failed int // submissions rejected or errored
}

// 🏃 Runner executes the fetch-filter-resubmit loop
type Runner struct {
	client *Client
	user   *log.UserLogger
	limit  int
	delay  time.Duration
}

// 🏭 NewRunner creates a runner with the given options
func NewRunner(opts Options) (*Runner, error) {
	if opts.Client == nil {
		return nil, errors.Errorf("client is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	return &Runner{
		client: opts.Client,
		user:   opts.Logger,
		limit:  opts.Limit,
		delay:  opts.Delay,
	}, nil
}

// 🔁 Run fetches recent history, extracts the distinct search terms of failed
// jobs, and re-submits each one. A rejected or errored submission is counted
// and reported, never fatal to the loop; only the initial history fetch can
// fail the run.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	zlog := zerolog.Ctx(ctx)

	jobs, err := r.client.History(ctx, r.limit)
	if err != nil {
		return nil, errors.Errorf("fetching job history: %w", err)
	}

	terms := distinctFailedTerms(jobs)
	zlog.Debug().Int("history", len(jobs)).Int("terms", len(terms)).Msg("extracted failed search terms")

	r.user.LogRunStart(len(terms), r.delay.String())

	summary := &Summary{Terms: len(terms)}
	for i, term := range terms {
		status, err := r.client.Enqueue(ctx, term)

		result := log.QueueResult{
			SearchTerm: term,
			Position:   i + 1,
			Total:      len(terms),
			StatusCode: status,
			Error:      err,
		}
		switch {
		case err != nil:
			result.Type = log.QueueErrored
			summary.Failed++
		case status == http.StatusAccepted:
			result.Type = log.QueueAccepted
			summary.Queued++
		default:
			result.Type = log.QueueRejected
			summary.Failed++
		}
		r.user.LogQueueResult(result)

		// Fixed pause between requests regardless of outcome
		if i < len(terms)-1 {
			if err := sleep(ctx, r.delay); err != nil {
				return summary, err
			}
		}
	}

	return summary, nil
}

// distinctFailedTerms returns the search terms of failed jobs, deduplicated,
// in first-seen order
func distinctFailedTerms(jobs []Job) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, job := range jobs {
		if job.Status != statusFailed {
			continue
		}
		if _, ok := seen[job.SearchTerm]; ok {
			continue
		}
		seen[job.SearchTerm] = struct{}{}
		terms = append(terms, job.SearchTerm)
	}
	return terms
}

// sleep pauses for d or until the context is cancelled
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return errors.Errorf("requeue cancelled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
