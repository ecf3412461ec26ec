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
	"encoding/json"
	"fmt"
	"io"
	adapterentities "linkguard/adapters/entities"
	"linkguard/domain/entities"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultVirusTotalURL = "https://www.virustotal.com/api/v3"
	maxErrorBodySize     = 4 * 1024
)

type VirusTotalScanner struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewVirusTotalScanner(apiKey, baseURL string, timeout time.Duration) *VirusTotalScanner {
	if baseURL == "" {
		baseURL = DefaultVirusTotalURL
	}

	return &VirusTotalScanner{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (v *VirusTotalScanner) IsAvailable() bool {
	return v.apiKey != ""
}

func (v *VirusTotalScanner) SubmitURL(ctx context.Context, target string) (string, error) {
	form := url.Values{}
	form.Set("url", target)

	req, err := http.NewRequestWithContext(ctx, "POST", v.baseURL+"/urls", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request for virustotal. %s", entities.ErrSubmit, err)
	}

	req.Header.Add("accept", "application/json")
	req.Header.Add("x-apikey", v.apiKey)
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	res, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request to virustotal failed. %s", entities.ErrSubmit, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: request to virustotal failed with status %d. %s", entities.ErrSubmit, res.StatusCode, readErrorBody(res.Body))
	}

	var result adapterentities.VTScanResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: failed to decode submit response. %s", entities.ErrSubmit, err)
	}

	if result.Data.ID == "" {
		return "", fmt.Errorf("%w: VirusTotal did not return a valid analysis ID", entities.ErrSubmit)
	}

	return result.Data.ID, nil
}

func (v *VirusTotalScanner) GetAnalysis(ctx context.Context, id string) (entities.AsyncAnalysis, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/analyses/%s", v.baseURL, url.PathEscape(id)), http.NoBody)
	if err != nil {
		return entities.AsyncAnalysis{}, fmt.Errorf("%w: failed to encode request for virustotal. %s", entities.ErrFetch, err)
	}

	req.Header.Add("accept", "application/json")
	req.Header.Add("x-apikey", v.apiKey)

	res, err := v.client.Do(req)
	if err != nil {
		return entities.AsyncAnalysis{}, fmt.Errorf("%w: request to virustotal failed. %s", entities.ErrFetch, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return entities.AsyncAnalysis{}, fmt.Errorf("%w: request to virustotal failed with status %d. %s", entities.ErrFetch, res.StatusCode, readErrorBody(res.Body))
	}

	var result adapterentities.VTScanResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return entities.AsyncAnalysis{}, fmt.Errorf("%w: failed to decode analysis response. %s", entities.ErrFetch, err)
	}

	return mapAnalysis(id, result), nil
}

func mapAnalysis(id string, result adapterentities.VTScanResult) entities.AsyncAnalysis {
	analysis := entities.AsyncAnalysis{
		ID:     result.Data.ID,
		Status: entities.AnalysisStatus(result.Data.Attributes.Status),
	}

	if analysis.ID == "" {
		analysis.ID = id
	}

	if stats := result.Data.Attributes.Stats; stats != nil {
		analysis.Stats = &entities.AnalysisStats{
			Malicious:  stats.Malicious,
			Suspicious: stats.Suspicious,
			Harmless:   stats.Harmless,
			Undetected: stats.Undetected,
		}
	}

	return analysis
}

func readErrorBody(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(data))
}
