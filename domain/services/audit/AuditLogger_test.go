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
	"errors"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally/v4"
	"linkguard/domain/entities"
	"linkguard/logging"
	"linkguard/mocks"
	"testing"
)

func TestRecordWritesFixedBlock(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	verdict := entities.NewVerdict("id", "bad.example", "https://bad.example")
	verdict.VirusTotal = entities.AsyncScanSucceeded(entities.AsyncAnalysis{Status: entities.AnalysisCompleted, Stats: &entities.AnalysisStats{Malicious: 4}})
	verdict.GoogleSafeBrowse = entities.LookupFailed(errors.New("Google Safe Browse Network Error"))

	writer := mocks.NewMockAuditWriter(mockCtrl)
	writer.EXPECT().Append([]byte("URL: \"bad.example\"\nVirusTotal: Unsafe\nGoogle Safe Browse: Unknown\n---\n")).Return(nil).Times(1)

	entry := NewLogger(writer, logging.NewDiscardLog(), tally.NoopScope).Record(verdict)

	assert.Equal(t, entities.Unsafe, entry.VTStatus)
	assert.Equal(t, entities.Unknown, entry.GSBStatus)
}

func TestRecordSwallowsWriteErrors(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	writer := mocks.NewMockAuditWriter(mockCtrl)
	writer.EXPECT().Append(gomock.Any()).Return(errors.New("read-only file system")).Times(1)

	assert.NotPanics(t, func() {
		NewLogger(writer, logging.NewDiscardLog(), tally.NoopScope).Record(entities.NewVerdict("id", "https://a.example", "https://a.example"))
	})
}
