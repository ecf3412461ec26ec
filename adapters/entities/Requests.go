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

const ScanURLMessageType = "scanUrl"

type CheckURLRequest struct {
	URL string `json:"url" validate:"required"`
}

// MessageRequest mirrors the runtime message sent by the browser extension popup.
type MessageRequest struct {
	Type string `json:"type" validate:"required,eq=scanUrl"`
	URL  string `json:"url" validate:"required"`
}

type VisitRequest struct {
	URL string `json:"url" validate:"required"`
}

type VisitResponse struct {
	Message     string `json:"message"`
	ReceivedURL string `json:"receivedUrl"`
	CheckID     string `json:"checkId,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type ReloadResponse struct {
	Entries int    `json:"entries"`
	Error   string `json:"error,omitempty"`
}
