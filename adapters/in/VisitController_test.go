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

package in

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	adapterentities "linkguard/adapters/entities"
	"linkguard/common"
	"linkguard/domain/entities"
	lghttp "linkguard/http"
	"linkguard/logging"
	"linkguard/mocks"
	"testing"
)

func createVisitApp(scheduler *mocks.MockScheduler) *fiber.App {
	visitController := NewVisitController(scheduler, logging.NewDiscardLog())
	handlers := []lghttp.Handler{
		{HTTPMethod: "POST", Path: "/visits", HandlerFunc: visitController.RegisterVisit},
	}

	return common.CreateFiberAppForTest(handlers)
}

func TestRegisterVisit(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		scheduleTimes  int
		scheduleID     string
		scheduleErr    error
		expectedStatus int
		expected       interface{}
	}{
		{
			name:           "accepted",
			body:           `{"url":"https://example.com/page"}`,
			scheduleTimes:  1,
			scheduleID:     "check-1",
			expectedStatus: fiber.StatusAccepted,
			expected: adapterentities.VisitResponse{
				Message:     "URL received",
				ReceivedURL: "https://example.com/page",
				CheckID:     "check-1",
			},
		},
		{
			name:           "missing url",
			body:           `{}`,
			expectedStatus: fiber.StatusBadRequest,
			expected:       adapterentities.ErrorResponse{Error: "URL is required."},
		},
		{
			name:           "blank url",
			body:           `{"url":"  "}`,
			scheduleTimes:  1,
			scheduleErr:    entities.ErrValidation,
			expectedStatus: fiber.StatusBadRequest,
			expected:       adapterentities.ErrorResponse{Error: "URL is required."},
		},
		{
			name:           "queue full",
			body:           `{"url":"https://example.com/page"}`,
			scheduleTimes:  1,
			scheduleErr:    entities.ErrQueueFull,
			expectedStatus: fiber.StatusServiceUnavailable,
			expected:       adapterentities.ErrorResponse{Error: entities.ErrQueueFull.Error()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCtrl := gomock.NewController(t)
			defer mockCtrl.Finish()

			mockScheduler := mocks.NewMockScheduler(mockCtrl)
			mockScheduler.EXPECT().Schedule(gomock.Any(), entities.OriginPageVisit).
				Return(tt.scheduleID, tt.scheduleErr).Times(tt.scheduleTimes)

			status, body := common.SendJSON(t, createVisitApp(mockScheduler), "POST", "/api/visits", tt.body)

			assert.Equal(t, tt.expectedStatus, status)
			assert.JSONEq(t, common.GetObjectJSON(t, tt.expected), string(body))
		})
	}
}
