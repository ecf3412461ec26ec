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

package audit

import (
	"fmt"
	"github.com/uber-go/tally/v4"
	"linkguard/domain/entities"
	"linkguard/domain/ports/out"
	"linkguard/logging"
)

type Logger struct {
	writer out.AuditWriter
	logger logging.Logger

	recordCounter tally.Counter
	failedCounter tally.Counter
}

func NewLogger(writer out.AuditWriter, logger logging.Logger, metricsScope tally.Scope) *Logger {
	return &Logger{
		writer:        writer,
		logger:        logger,
		recordCounter: metricsScope.Counter("audit_records"),
		failedCounter: metricsScope.Counter("audit_failures"),
	}
}

// Record appends the classified verdict. Failures are logged and counted, callers never see them.
func (l *Logger) Record(verdict entities.Verdict) entities.AuditEntry {
	entry := entities.NewAuditEntry(verdict)

	if err := l.writer.Append([]byte(entry.String())); err != nil {
		l.failedCounter.Inc(1)
		l.logger.Errorw("Failed to append audit record", "checkID", verdict.CheckID, "url", verdict.URL, "error", fmt.Errorf("%w: %s", entities.ErrLogWrite, err))

		return entry
	}

	l.recordCounter.Inc(1)
	l.logger.Debugw("Audit record appended", "checkID", verdict.CheckID, "url", verdict.URL, "virusTotal", entry.VTStatus, "googleSafeBrowse", entry.GSBStatus)

	return entry
}
