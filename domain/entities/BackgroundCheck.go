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

type CheckOrigin string

const (
	OriginDenylistHit CheckOrigin = "denylist-hit"
	OriginPageVisit   CheckOrigin = "page-visit"
	OriginQueue       CheckOrigin = "queue"
)

// BackgroundCheck is a full two source check whose only consumer is the audit
// log. Nobody waits for it.
type BackgroundCheck struct {
	CheckID string
	URL     string
	Origin  CheckOrigin
}
