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

package notification

import (
	"fmt"
	"linkguard/common"
	"linkguard/domain/entities"
	"linkguard/domain/ports/out"
	"linkguard/logging"
	"sort"
	"strings"
	"sync"
)

const maxListedURLs = 20

type alert struct {
	hits    int
	signals map[string]struct{}
}

// AlertService collects flagged URLs and periodically sends a summary to every available viewer.
// Only the first maxListedURLs distinct URLs of an interval are kept, later ones are only counted.
type AlertService struct {
	mu       sync.Mutex
	alerts   map[string]*alert
	overflow int
	viewers  []out.Viewer
	logger   logging.Logger
}

func NewAlertService(viewers []out.Viewer, logger logging.Logger) *AlertService {
	var available []out.Viewer
	for _, viewer := range viewers {
		if viewer.IsAvailable() {
			available = append(available, viewer)
		}
	}

	if len(available) == 0 {
		logger.Infow("No alert viewer configured, flagged URLs will only be written to the audit log")
	}

	return &AlertService{alerts: make(map[string]*alert), viewers: available, logger: logger}
}

func (a *AlertService) Update(verdict entities.Verdict) {
	if len(a.viewers) == 0 || !verdict.IsAlarming() {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	current, ok := a.alerts[verdict.NormalizedURL]
	if !ok {
		if len(a.alerts) >= maxListedURLs {
			a.overflow++
			return
		}
		current = &alert{signals: make(map[string]struct{})}
		a.alerts[verdict.NormalizedURL] = current
	}

	current.hits++
	if verdict.IsPoisonedLocally {
		current.signals["denylist"] = struct{}{}
	}
	if entities.ClassifyAnalysis(verdict.VirusTotal) == entities.Unsafe {
		current.signals["VirusTotal"] = struct{}{}
	}
	if entities.ClassifyLookup(verdict.GoogleSafeBrowse) == entities.Unsafe {
		current.signals["Google Safe Browse"] = struct{}{}
	}
}

func (a *AlertService) UpdateGlobal() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.alerts) == 0 || len(a.viewers) == 0 {
		return
	}

	message := a.summary()

	delivered := false
	for _, viewer := range a.viewers {
		if err := viewer.SendMessage(message); err != nil {
			a.logger.Errorw("Failed to deliver alert summary", "error", err)
			continue
		}
		delivered = true
	}

	// Require at least a single success to clean the results
	if delivered {
		a.alerts = make(map[string]*alert)
		a.overflow = 0
	}
}

func (a *AlertService) summary() string {
	urls := make([]string, 0, len(a.alerts))
	for url := range a.alerts {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("%s URLs were flagged as malicious, please check the audit log for more information:\n",
		common.ConvertNumberToHumanReadable(len(urls)+a.overflow)))

	for _, url := range urls {
		signals := make([]string, 0, len(a.alerts[url].signals))
		for signal := range a.alerts[url].signals {
			signals = append(signals, signal)
		}
		sort.Strings(signals)

		builder.WriteString(fmt.Sprintf("%s -> %d (%s)\n", url, a.alerts[url].hits, strings.Join(signals, ", ")))
	}

	if a.overflow > 0 {
		builder.WriteString(fmt.Sprintf("... and %d more\n", a.overflow))
	}

	return builder.String()
}
