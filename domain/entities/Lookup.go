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

package entities

import "google.golang.org/api/safebrowsing/v4"

type ThreatMatch = safebrowsing.GoogleSecuritySafebrowsingV4ThreatMatch

// LookupResult is the outcome of a single threat list lookup. IsSafe is nil
// when the upstream answer could not be interpreted.
type LookupResult struct {
	URL     string         `json:"url"`
	IsSafe  *bool          `json:"isSafe"`
	Matches []*ThreatMatch `json:"matches,omitempty"`
	Message string         `json:"message"`
}

func NewSafeLookup(url string) LookupResult {
	safe := true
	return LookupResult{URL: url, IsSafe: &safe, Message: "URL is safe (Google Safe Browse)"}
}

func NewUnsafeLookup(url string, matches []*ThreatMatch) LookupResult {
	safe := false
	return LookupResult{URL: url, IsSafe: &safe, Matches: matches, Message: "URL is not safe (Google Safe Browse)"}
}

func NewIndeterminateLookup(url string) LookupResult {
	return LookupResult{URL: url, IsSafe: nil, Message: "Google Safe Browse: Unexpected API response structure."}
}
