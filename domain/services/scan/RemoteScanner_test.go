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
	"errors"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"linkguard/domain/entities"
	"linkguard/logging"
	"linkguard/mocks"
	"testing"
	"time"
)

const analysisID = "u-analysis-1"

type pollResponse struct {
	status entities.AnalysisStatus
	stats  *entities.AnalysisStats
	err    error
}

func newTestScanner(t *testing.T, responses []pollResponse) (*RemoteScanner, *int) {
	t.Helper()

	mockCtrl := gomock.NewController(t)
	mockScanner := mocks.NewMockAsyncScanner(mockCtrl)
	mockScanner.EXPECT().IsAvailable().Return(true).AnyTimes()

	var calls []*gomock.Call
	for _, response := range responses {
		response := response
		calls = append(calls, mockScanner.EXPECT().GetAnalysis(gomock.Any(), analysisID).
			Return(entities.AsyncAnalysis{ID: analysisID, Status: response.status, Stats: response.stats}, response.err).Times(1))
	}
	gomock.InOrder(calls...)

	waits := 0
	scanner := NewRemoteScanner(mockScanner, DefaultMaxAttempts, DefaultPollInterval, logging.NewDiscardLog(), tally.NoopScope)
	scanner.wait = func(_ context.Context, d time.Duration) error {
		assert.Equal(t, DefaultPollInterval, d)
		waits++
		return nil
	}

	return scanner, &waits
}

func TestResolveTermination(t *testing.T) {
	stats := &entities.AnalysisStats{Harmless: 70, Undetected: 10}

	tests := []struct {
		name          string
		responses     []pollResponse
		expectedWaits int
		status        entities.AnalysisStatus
	}{
		{
			name:          "completed on first poll never waits",
			responses:     []pollResponse{{status: entities.AnalysisCompleted, stats: stats}},
			expectedWaits: 0,
			status:        entities.AnalysisCompleted,
		},
		{
			name: "two pending then completed",
			responses: []pollResponse{
				{status: entities.AnalysisPending},
				{status: entities.AnalysisPending},
				{status: entities.AnalysisCompleted, stats: stats},
			},
			expectedWaits: 2,
			status:        entities.AnalysisCompleted,
		},
		{
			name:          "poll error on first attempt is terminal",
			responses:     []pollResponse{{err: errors.New("connection reset")}},
			expectedWaits: 0,
			status:        entities.AnalysisPollingError,
		},
		{
			name: "unexpected status is not retried",
			responses: []pollResponse{
				{status: entities.AnalysisQueued},
				{status: "failed"},
			},
			expectedWaits: 1,
			status:        entities.AnalysisUnexpectedStatus,
		},
		{
			name: "budget exhausted issues one final poll",
			responses: []pollResponse{
				{status: entities.AnalysisQueued},
				{status: entities.AnalysisQueued},
				{status: entities.AnalysisPending},
				{status: entities.AnalysisPending},
			},
			expectedWaits: 3,
			status:        entities.AnalysisPending,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			scanner, waits := newTestScanner(t, tt.responses)

			analysis, err := scanner.Resolve(context.Background(), analysisID)

			require.NoError(t, err)
			assert.Equal(t, tt.status, analysis.Status)
			assert.Equal(t, analysisID, analysis.ID)
			assert.Equal(t, tt.expectedWaits, *waits)
		})
	}
}

func TestResolveSyntheticMessages(t *testing.T) {
	scanner, _ := newTestScanner(t, []pollResponse{{err: errors.New("HTTP 503")}})
	analysis, err := scanner.Resolve(context.Background(), analysisID)
	require.NoError(t, err)
	assert.Equal(t, "VirusTotal polling encountered an API error: HTTP 503.", analysis.Message)

	scanner, _ = newTestScanner(t, []pollResponse{{status: ""}})
	analysis, err = scanner.Resolve(context.Background(), analysisID)
	require.NoError(t, err)
	assert.Equal(t, "VirusTotal analysis returned unexpected status: \"unknown\".", analysis.Message)
}

func TestResolveFinalPollError(t *testing.T) {
	scanner, waits := newTestScanner(t, []pollResponse{
		{status: entities.AnalysisQueued},
		{status: entities.AnalysisQueued},
		{status: entities.AnalysisQueued},
		{err: errors.New("timeout")},
	})

	_, err := scanner.Resolve(context.Background(), analysisID)

	assert.ErrorIs(t, err, entities.ErrPolling)
	assert.Equal(t, 3, *waits)
}

func TestResolveIsIdempotentForReplayedResponses(t *testing.T) {
	responses := []pollResponse{
		{status: entities.AnalysisQueued},
		{status: entities.AnalysisCompleted, stats: &entities.AnalysisStats{Malicious: 3, Harmless: 50}},
	}

	first, _ := newTestScanner(t, responses)
	second, _ := newTestScanner(t, responses)

	a, errA := first.Resolve(context.Background(), analysisID)
	b, errB := second.Resolve(context.Background(), analysisID)

	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestResolveStopsWhenContextIsDone(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	mockScanner := mocks.NewMockAsyncScanner(mockCtrl)
	mockScanner.EXPECT().IsAvailable().Return(true).AnyTimes()
	mockScanner.EXPECT().GetAnalysis(gomock.Any(), analysisID).Return(entities.AsyncAnalysis{ID: analysisID, Status: entities.AnalysisQueued}, nil).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := NewRemoteScanner(mockScanner, DefaultMaxAttempts, time.Hour, logging.NewDiscardLog(), tally.NoopScope)
	analysis, err := scanner.Resolve(ctx, analysisID)

	require.NoError(t, err)
	assert.Equal(t, entities.AnalysisPollingError, analysis.Status)
}

func TestCheck(t *testing.T) {
	t.Run("submits then resolves", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		mockScanner := mocks.NewMockAsyncScanner(mockCtrl)
		mockScanner.EXPECT().IsAvailable().Return(true).AnyTimes()
		gomock.InOrder(
			mockScanner.EXPECT().SubmitURL(gomock.Any(), "https://example.com").Return(analysisID, nil).Times(1),
			mockScanner.EXPECT().GetAnalysis(gomock.Any(), analysisID).Return(entities.AsyncAnalysis{ID: analysisID, Status: entities.AnalysisCompleted}, nil).Times(1),
		)

		scanner := NewRemoteScanner(mockScanner, DefaultMaxAttempts, DefaultPollInterval, logging.NewDiscardLog(), tally.NoopScope)
		analysis, err := scanner.Check(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, entities.AnalysisCompleted, analysis.Status)
	})

	t.Run("submit error short circuits", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		mockScanner := mocks.NewMockAsyncScanner(mockCtrl)
		mockScanner.EXPECT().IsAvailable().Return(true).AnyTimes()
		mockScanner.EXPECT().SubmitURL(gomock.Any(), "https://example.com").Return("", entities.ErrSubmit).Times(1)

		scanner := NewRemoteScanner(mockScanner, DefaultMaxAttempts, DefaultPollInterval, logging.NewDiscardLog(), tally.NoopScope)
		_, err := scanner.Check(context.Background(), "https://example.com")

		assert.ErrorIs(t, err, entities.ErrSubmit)
	})

	t.Run("unavailable scanner", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		mockScanner := mocks.NewMockAsyncScanner(mockCtrl)
		mockScanner.EXPECT().IsAvailable().Return(false).AnyTimes()

		scanner := NewRemoteScanner(mockScanner, DefaultMaxAttempts, DefaultPollInterval, logging.NewDiscardLog(), tally.NoopScope)
		_, err := scanner.Check(context.Background(), "https://example.com")

		assert.ErrorIs(t, err, entities.ErrSourceUnavailable)
	})
}
