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

import (
	"fmt"
	"linkguard/domain/entities"
)

type BadgeState string

const (
	BadgeSafe    BadgeState = "safe"
	BadgeUnsafe  BadgeState = "unsafe"
	BadgeUnknown BadgeState = "unknown"
	BadgePending BadgeState = "pending"
	BadgeError   BadgeState = "error"
)

type Badge struct {
	Text  string     `json:"text"`
	State BadgeState `json:"state"`
}

type Badges struct {
	Local            Badge `json:"local"`
	VirusTotal       Badge `json:"virusTotal"`
	GoogleSafeBrowse Badge `json:"googleSafeBrowse"`
}

type MessageResponse struct {
	entities.Verdict
	Badges Badges `json:"badges"`
}

func MapToMessageResponse(verdict entities.Verdict) MessageResponse {
	return MessageResponse{Verdict: verdict, Badges: MapToBadges(verdict)}
}

func MapToBadges(verdict entities.Verdict) Badges {
	badges := Badges{Local: Badge{Text: "Not found in local list", State: BadgeSafe}}
	if verdict.IsPoisonedLocally {
		badges.Local = Badge{Text: verdict.LocalMessage, State: BadgeUnsafe}
	}

	if verdict.BackendError != nil {
		badges.VirusTotal = Badge{Text: "Backend Error", State: BadgeError}
		badges.GoogleSafeBrowse = Badge{Text: "Backend Error", State: BadgeError}

		return badges
	}

	badges.VirusTotal = virusTotalBadge(verdict.VirusTotal)
	badges.GoogleSafeBrowse = safeBrowseBadge(verdict.GoogleSafeBrowse)

	return badges
}

func virusTotalBadge(outcome *entities.AsyncScanOutcome) Badge {
	switch {
	case outcome == nil:
		return Badge{Text: "No data from VirusTotal", State: BadgeUnknown}
	case outcome.Error != "":
		return Badge{Text: "Error: " + outcome.Error, State: BadgeError}
	case outcome.AsyncAnalysis == nil:
		return Badge{Text: "No data from VirusTotal", State: BadgeUnknown}
	case outcome.Status.InProgress():
		return Badge{Text: "Analysing...", State: BadgePending}
	case outcome.Status != entities.AnalysisCompleted:
		return Badge{Text: "Unknown status from VirusTotal", State: BadgeUnknown}
	case outcome.Stats == nil:
		return Badge{Text: "No detailed stats from VirusTotal", State: BadgeUnknown}
	}

	switch entities.ClassifyAnalysis(outcome) {
	case entities.Unsafe:
		return Badge{Text: fmt.Sprintf("Dangerous: %d malicious, %d suspicious", outcome.Stats.Malicious, outcome.Stats.Suspicious), State: BadgeUnsafe}
	case entities.Safe:
		return Badge{Text: "Safety", State: BadgeSafe}
	default:
		return Badge{Text: "Data is not clear", State: BadgeUnknown}
	}
}

func safeBrowseBadge(outcome *entities.LookupOutcome) Badge {
	switch {
	case outcome == nil || (outcome.Error == "" && outcome.LookupResult == nil):
		return Badge{Text: "No data from Google Safe Browse", State: BadgeUnknown}
	case outcome.Error != "":
		return Badge{Text: "Error: " + outcome.Error, State: BadgeError}
	}

	switch entities.ClassifyLookup(outcome) {
	case entities.Safe:
		return Badge{Text: "Safety", State: BadgeSafe}
	case entities.Unsafe:
		return Badge{Text: "Unsafety", State: BadgeUnsafe}
	default:
		return Badge{Text: "Data is not clear", State: BadgeUnknown}
	}
}
