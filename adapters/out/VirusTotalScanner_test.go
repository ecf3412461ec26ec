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

package out

import (
	"context"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adapterentities "linkguard/adapters/entities"
	"linkguard/domain/entities"
	"net/http"
	"testing"
	"time"
)

const testAnalysisID = "u-7d0f0c7fd8f3a2f1d2c3e4b5a6978877-1718000000"

func TestSubmitURL(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", DefaultVirusTotalURL+"/urls",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "DUMMY_KEY", req.Header.Get("x-apikey"))
			assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
			assert.NoError(t, req.ParseForm())
			assert.Equal(t, "https://bad.example/path?a=1&b=2", req.PostForm.Get("url"))

			return httpmock.NewJsonResponse(http.StatusOK, mockSubmitResponse(testAnalysisID))
		})

	v := NewVirusTotalScanner("DUMMY_KEY", "", time.Second)
	id, err := v.SubmitURL(context.Background(), "https://bad.example/path?a=1&b=2")

	assert.NoError(t, err)
	assert.Equal(t, testAnalysisID, id)
}

func TestSubmitURLFailures(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
	}{
		{name: "missing analysis id", responder: httpmock.NewJsonResponderOrPanic(http.StatusOK, mockSubmitResponse(""))},
		{name: "http error", responder: httpmock.NewStringResponder(http.StatusUnauthorized, `{"error":{"code":"WrongCredentialsError"}}`)},
		{name: "invalid body", responder: httpmock.NewStringResponder(http.StatusOK, "not json")},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Activate()
			defer httpmock.DeactivateAndReset()
			httpmock.RegisterResponder("POST", DefaultVirusTotalURL+"/urls", tt.responder)

			v := NewVirusTotalScanner("DUMMY_KEY", "", time.Second)
			id, err := v.SubmitURL(context.Background(), "https://bad.example")

			assert.ErrorIs(t, err, entities.ErrSubmit)
			assert.Empty(t, id)
		})
	}
}

func TestGetAnalysis(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", DefaultVirusTotalURL+"/analyses/"+testAnalysisID,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, mockAnalysisResponse(testAnalysisID, "completed", &adapterentities.AnalysisStats{Malicious: 2, Harmless: 60, Undetected: 20})))

	v := NewVirusTotalScanner("DUMMY_KEY", "", time.Second)
	analysis, err := v.GetAnalysis(context.Background(), testAnalysisID)

	require.NoError(t, err)
	assert.Equal(t, testAnalysisID, analysis.ID)
	assert.Equal(t, entities.AnalysisCompleted, analysis.Status)
	assert.Equal(t, &entities.AnalysisStats{Malicious: 2, Harmless: 60, Undetected: 20}, analysis.Stats)
}

func TestGetAnalysisQueuedHasNoStats(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", DefaultVirusTotalURL+"/analyses/"+testAnalysisID,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, mockAnalysisResponse(testAnalysisID, "queued", nil)))

	v := NewVirusTotalScanner("DUMMY_KEY", "", time.Second)
	analysis, err := v.GetAnalysis(context.Background(), testAnalysisID)

	require.NoError(t, err)
	assert.Equal(t, entities.AnalysisQueued, analysis.Status)
	assert.Nil(t, analysis.Stats)
}

func TestHttpErrorOnAnalysis(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	httpmock.RegisterResponder("GET", "=~^"+DefaultVirusTotalURL+"/analyses/",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	v := NewVirusTotalScanner("DUMMY_KEY", "", time.Second)
	_, err := v.GetAnalysis(context.Background(), testAnalysisID)

	assert.ErrorIs(t, err, entities.ErrFetch)
}

func TestAvailability(t *testing.T) {
	assert.False(t, NewVirusTotalScanner("", "", time.Second).IsAvailable())
	assert.True(t, NewVirusTotalScanner("DUMMY_KEY", "", time.Second).IsAvailable())
}

func mockSubmitResponse(id string) adapterentities.VTScanResult {
	return adapterentities.VTScanResult{Data: adapterentities.Data{Type: "analysis", ID: id}}
}

func mockAnalysisResponse(id, status string, stats *adapterentities.AnalysisStats) adapterentities.VTScanResult {
	return adapterentities.VTScanResult{
		Data: adapterentities.Data{
			Type: "analysis",
			ID:   id,
			Attributes: adapterentities.Attributes{
				Status: status,
				Stats:  stats,
			},
		},
	}
}
