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
	"linkguard/domain/entities"
	"linkguard/logging"
	"sync"
)

type sourceCounters map[entities.SourceStatus]int

// VerdictStatistics logs how many verdicts each source produced per status since the last flush.
type VerdictStatistics struct {
	mu           sync.Mutex
	total        int
	denylisted   int
	virusTotal   sourceCounters
	safeBrowsing sourceCounters
	logger       logging.Logger
}

func NewVerdictStatistics(logger logging.Logger) *VerdictStatistics {
	return &VerdictStatistics{virusTotal: sourceCounters{}, safeBrowsing: sourceCounters{}, logger: logger}
}

func (v *VerdictStatistics) Update(verdict entities.Verdict) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.total++
	if verdict.IsPoisonedLocally {
		v.denylisted++
	}
	v.virusTotal[entities.ClassifyAnalysis(verdict.VirusTotal)]++
	v.safeBrowsing[entities.ClassifyLookup(verdict.GoogleSafeBrowse)]++
}

func (v *VerdictStatistics) UpdateGlobal() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.total == 0 {
		return
	}

	v.logger.Infow("Verdict statistics",
		"total", v.total,
		"denylisted", v.denylisted,
		"virusTotal", map[entities.SourceStatus]int(v.virusTotal),
		"googleSafeBrowse", map[entities.SourceStatus]int(v.safeBrowsing))

	v.total = 0
	v.denylisted = 0
	v.virusTotal = sourceCounters{}
	v.safeBrowsing = sourceCounters{}
}
