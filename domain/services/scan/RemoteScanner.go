/*
 *    Copyright 2023 iFood
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package scan

import (
	"context"
	"fmt"
	"github.com/uber-go/tally/v4"
	"linkguard/domain/entities"
	"linkguard/domain/ports/out"
	"linkguard/logging"
	"time"
)

const (
	DefaultMaxAttempts  = 3
	DefaultPollInterval = 4 * time.Second
)

// RemoteScanner drives the submit, poll and resolve lifecycle of an asynchronous URL analysis.
type RemoteScanner struct {
	scanner      out.AsyncScanner
	maxAttempts  int
	pollInterval time.Duration
	wait         func(ctx context.Context, d time.Duration) error
	logger       logging.Logger

	metricsScope    tally.Scope
	attemptsCounter tally.Counter
}

func NewRemoteScanner(scanner out.AsyncScanner, maxAttempts int, pollInterval time.Duration, logger logging.Logger, metricsScope tally.Scope) *RemoteScanner {
	if !scanner.IsAvailable() {
		logger.Infow("Remote scanner was not properly configured. Therefore, URLs won't be submitted for analysis.")
	}

	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	return &RemoteScanner{
		scanner:         scanner,
		maxAttempts:     maxAttempts,
		pollInterval:    pollInterval,
		wait:            sleep,
		logger:          logger,
		metricsScope:    metricsScope,
		attemptsCounter: metricsScope.Counter("poll_attempts"),
	}
}

func (r *RemoteScanner) IsAvailable() bool {
	return r.scanner.IsAvailable()
}

// Check submits the URL and resolves the resulting analysis. Submit failures are returned as errors,
// everything after a successful submit resolves to an analysis.
func (r *RemoteScanner) Check(ctx context.Context, url string) (entities.AsyncAnalysis, error) {
	if !r.scanner.IsAvailable() {
		return entities.AsyncAnalysis{}, entities.ErrSourceUnavailable
	}

	id, err := r.scanner.SubmitURL(ctx, url)
	if err != nil {
		return entities.AsyncAnalysis{}, err
	}

	r.logger.Debugw("URL submitted for analysis", "url", url, "analysisID", id)

	return r.Resolve(ctx, id)
}

// Resolve polls up to maxAttempts times, sleeping after each in progress snapshot. Completed snapshots return
// right away, unexpected statuses and transport errors are terminal. A still running analysis gets one last poll
// whose answer is returned as is.
func (r *RemoteScanner) Resolve(ctx context.Context, id string) (entities.AsyncAnalysis, error) {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		analysis, err := r.poll(ctx, id)
		if err != nil {
			r.logger.Errorw("Failed to poll analysis", "analysisID", id, "attempt", attempt, "error", err)
			return r.outcome(entities.NewPollingErrorAnalysis(id, err)), nil
		}

		switch {
		case analysis.Status == entities.AnalysisCompleted:
			return r.outcome(analysis), nil
		case analysis.Status.InProgress():
			r.logger.Debugw("Analysis not ready yet", "analysisID", id, "status", analysis.Status, "attempt", attempt)

			if err := r.wait(ctx, r.pollInterval); err != nil {
				return r.outcome(entities.NewPollingErrorAnalysis(id, err)), nil
			}
		default:
			r.logger.Warnw("Analysis returned unexpected status", "analysisID", id, "status", analysis.Status)
			return r.outcome(entities.NewUnexpectedStatusAnalysis(id, analysis.Status)), nil
		}
	}

	analysis, err := r.poll(ctx, id)
	if err != nil {
		return entities.AsyncAnalysis{}, fmt.Errorf("%w: %s", entities.ErrPolling, err)
	}

	r.logger.Infow("Poll budget exhausted", "analysisID", id, "status", analysis.Status)

	return r.outcome(analysis), nil
}

func (r *RemoteScanner) poll(ctx context.Context, id string) (entities.AsyncAnalysis, error) {
	r.attemptsCounter.Inc(1)
	return r.scanner.GetAnalysis(ctx, id)
}

func (r *RemoteScanner) outcome(analysis entities.AsyncAnalysis) entities.AsyncAnalysis {
	r.metricsScope.Tagged(map[string]string{"status": string(analysis.Status)}).Counter("poll_outcome").Inc(1)
	return analysis
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
