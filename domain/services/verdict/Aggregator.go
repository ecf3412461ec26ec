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

package verdict

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/uber-go/tally/v4"
	"linkguard/domain/entities"
	"linkguard/domain/ports/out"
	"linkguard/domain/services/audit"
	"linkguard/domain/services/scan"
	"linkguard/logging"
	"sync"
)

type Denylist interface {
	Contains(url string) bool
}

type Aggregator struct {
	denylist Denylist
	scanner  *scan.RemoteScanner
	lookup   out.ThreatLookup
	auditLog *audit.Logger
	policy   entities.AggregationPolicy

	background    Queue[entities.BackgroundCheck]
	notifications Queue[entities.Verdict]

	logger       logging.Logger
	metricsScope tally.Scope
	newID        func() string
}

func NewAggregator(denylist Denylist, scanner *scan.RemoteScanner, lookup out.ThreatLookup, auditLog *audit.Logger, policy entities.AggregationPolicy, logger logging.Logger, metricsScope tally.Scope) *Aggregator {
	if !lookup.IsAvailable() {
		logger.Infow("Threat lookup was not properly configured. Therefore, its verdicts will always be errors.")
	}

	return &Aggregator{
		denylist:     denylist,
		scanner:      scanner,
		lookup:       lookup,
		auditLog:     auditLog,
		policy:       policy,
		logger:       logger,
		metricsScope: metricsScope,
		newID:        func() string { return uuid.New().String() },
	}
}

// UseBackgroundQueue wires the queue consumed by the background stage. Its handler calls back into RunFull.
func (a *Aggregator) UseBackgroundQueue(queue Queue[entities.BackgroundCheck]) {
	a.background = queue
}

// UseNotificationQueue wires the queue every finished verdict is published to.
func (a *Aggregator) UseNotificationQueue(queue Queue[entities.Verdict]) {
	a.notifications = queue
}

func (a *Aggregator) Check(ctx context.Context, url string) (verdict entities.Verdict, err error) {
	normalized := entities.NormalizeURL(url)
	if normalized == "" {
		return entities.Verdict{}, entities.ErrValidation
	}

	defer func() {
		if r := recover(); r != nil {
			a.metricsScope.Counter("aggregator_faults").Inc(1)
			a.logger.Errorw("Panic catch during verdict aggregation", "url", url, "error", r)
			err = fmt.Errorf("%w: %v", entities.ErrAggregatorFault, r)
		}
	}()

	a.metricsScope.Counter("checks").Inc(1)
	stopwatch := a.metricsScope.Timer("check_duration").Start()
	defer stopwatch.Stop()

	verdict = entities.NewVerdict(a.newID(), url, normalized)

	if a.denylist.Contains(normalized) {
		verdict.MarkDenylisted()
		a.metricsScope.Counter("denylist_hits").Inc(1)

		if a.policy == entities.FailFast {
			verdict.UseDenylistPlaceholders()
			a.enqueueBackground(&entities.BackgroundCheck{CheckID: verdict.CheckID, URL: url, Origin: entities.OriginDenylistHit})

			return verdict, nil
		}
	}

	a.collect(ctx, &verdict)
	a.auditLog.Record(verdict)
	a.count(verdict)

	if a.notifications != nil {
		published := verdict
		a.notifications.Enqueue(&published)
	}

	return verdict, nil
}

func (a *Aggregator) Schedule(url string, origin entities.CheckOrigin) (string, error) {
	if entities.NormalizeURL(url) == "" {
		return "", entities.ErrValidation
	}

	checkID := a.newID()
	if !a.enqueueBackground(&entities.BackgroundCheck{CheckID: checkID, URL: url, Origin: origin}) {
		return "", entities.ErrQueueFull
	}

	return checkID, nil
}

// RunFull performs the complete two source check for a background request and records it.
// It ignores the policy since nobody is waiting for the answer.
func (a *Aggregator) RunFull(ctx context.Context, check entities.BackgroundCheck) entities.Verdict {
	normalized := entities.NormalizeURL(check.URL)

	verdict := entities.NewVerdict(check.CheckID, check.URL, normalized)
	if a.denylist.Contains(normalized) {
		verdict.MarkDenylisted()
	}

	a.collect(ctx, &verdict)
	a.auditLog.Record(verdict)
	a.count(verdict)

	a.logger.Debugw("Background check completed", "checkID", check.CheckID, "origin", check.Origin, "url", check.URL)

	return verdict
}

// collect runs both sources concurrently and waits for both, whatever their outcome.
func (a *Aggregator) collect(ctx context.Context, verdict *entities.Verdict) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		verdict.VirusTotal = a.checkAsync(ctx, verdict.NormalizedURL)
	}()

	go func() {
		defer wg.Done()
		verdict.GoogleSafeBrowse = a.checkLookup(ctx, verdict.NormalizedURL)
	}()

	wg.Wait()
}

func (a *Aggregator) checkAsync(ctx context.Context, url string) (outcome *entities.AsyncScanOutcome) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Errorw("Panic catch during async scan", "url", url, "error", r)
			outcome = entities.AsyncScanFailed(fmt.Errorf("%v", r))
		}
	}()

	analysis, err := a.scanner.Check(ctx, url)
	if err != nil {
		a.logger.Errorw("Async scan failed", "url", url, "error", err)
		return entities.AsyncScanFailed(err)
	}

	return entities.AsyncScanSucceeded(analysis)
}

func (a *Aggregator) checkLookup(ctx context.Context, url string) (outcome *entities.LookupOutcome) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Errorw("Panic catch during threat lookup", "url", url, "error", r)
			outcome = entities.LookupFailed(fmt.Errorf("%v", r))
		}
	}()

	if !a.lookup.IsAvailable() {
		return entities.LookupFailed(entities.ErrSourceUnavailable)
	}

	result, err := a.lookup.Lookup(ctx, url)
	if err != nil {
		a.logger.Errorw("Threat lookup failed", "url", url, "error", err)
		return entities.LookupFailed(err)
	}

	return entities.LookupSucceeded(result)
}

func (a *Aggregator) enqueueBackground(check *entities.BackgroundCheck) bool {
	if a.background == nil {
		a.logger.Errorw("No background queue configured, dropping check", "checkID", check.CheckID, "origin", check.Origin)
		return false
	}

	return a.background.Enqueue(check)
}

func (a *Aggregator) count(verdict entities.Verdict) {
	a.metricsScope.Tagged(map[string]string{"source": "virustotal", "status": string(entities.ClassifyAnalysis(verdict.VirusTotal))}).Counter("verdicts").Inc(1)
	a.metricsScope.Tagged(map[string]string{"source": "safebrowsing", "status": string(entities.ClassifyLookup(verdict.GoogleSafeBrowse))}).Counter("verdicts").Inc(1)
}
