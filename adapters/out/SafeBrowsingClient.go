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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"linkguard/domain/entities"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/safebrowsing/v4"
)

const (
	DefaultSafeBrowsingURL = "https://safebrowsing.googleapis.com/v4"
	safeBrowsingClientID   = "linkguard"
	maxLookupResponseSize  = 1024 * 1024
)

var (
	threatTypes = []string{"MALWARE", "SOCIAL_ENGINEERING", "UNWANTED_SOFTWARE", "POTENTIALLY_HARMFUL_APPLICATION", "THREAT_TYPE_UNSPECIFIED"}
	platforms   = []string{"ANY_PLATFORM"}
	entryTypes  = []string{"URL"}
)

type SafeBrowsingClient struct {
	apiKey        string
	baseURL       string
	clientVersion string
	client        *http.Client
}

func NewSafeBrowsingClient(apiKey, baseURL, clientVersion string, timeout time.Duration) *SafeBrowsingClient {
	if baseURL == "" {
		baseURL = DefaultSafeBrowsingURL
	}

	return &SafeBrowsingClient{
		apiKey:        apiKey,
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		clientVersion: clientVersion,
		client:        &http.Client{Timeout: timeout},
	}
}

func (s *SafeBrowsingClient) IsAvailable() bool {
	return s.apiKey != ""
}

func (s *SafeBrowsingClient) Lookup(ctx context.Context, target string) (entities.LookupResult, error) {
	target = entities.NormalizeURL(target)

	body, err := json.Marshal(s.buildRequest(target))
	if err != nil {
		return entities.LookupResult{}, fmt.Errorf("Google Safe Browse Request Setup Error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/threatMatches:find?key=%s", s.baseURL, url.QueryEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return entities.LookupResult{}, fmt.Errorf("Google Safe Browse Request Setup Error: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("accept", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return entities.LookupResult{}, &entities.LookupError{Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxLookupResponseSize))
	if err != nil {
		return entities.LookupResult{}, &entities.LookupError{Err: err}
	}

	if res.StatusCode != http.StatusOK {
		return entities.LookupResult{}, &entities.LookupError{StatusCode: res.StatusCode, Details: strings.TrimSpace(string(data))}
	}

	return classifyLookupResponse(target, data), nil
}

func (s *SafeBrowsingClient) buildRequest(target string) *safebrowsing.GoogleSecuritySafebrowsingV4FindThreatMatchesRequest {
	return &safebrowsing.GoogleSecuritySafebrowsingV4FindThreatMatchesRequest{
		Client: &safebrowsing.GoogleSecuritySafebrowsingV4ClientInfo{
			ClientId:      safeBrowsingClientID,
			ClientVersion: s.clientVersion,
		},
		ThreatInfo: &safebrowsing.GoogleSecuritySafebrowsingV4ThreatInfo{
			ThreatTypes:      threatTypes,
			PlatformTypes:    platforms,
			ThreatEntryTypes: entryTypes,
			ThreatEntries:    []*safebrowsing.GoogleSecuritySafebrowsingV4ThreatEntry{{Url: target}},
		},
	}
}

// An empty object or a blank body means no match. Anything else must carry a non-empty match
// list, otherwise the answer is reported as indeterminate instead of failing.
func classifyLookupResponse(target string, data []byte) entities.LookupResult {
	if len(bytes.TrimSpace(data)) == 0 {
		return entities.NewSafeLookup(target)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return entities.NewIndeterminateLookup(target)
	}

	if len(fields) == 0 {
		return entities.NewSafeLookup(target)
	}

	rawMatches, ok := fields["matches"]
	if !ok {
		return entities.NewIndeterminateLookup(target)
	}

	var matches []*entities.ThreatMatch
	if err := json.Unmarshal(rawMatches, &matches); err != nil || len(matches) == 0 {
		return entities.NewIndeterminateLookup(target)
	}

	return entities.NewUnsafeLookup(target, matches)
}
