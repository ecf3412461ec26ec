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
	"linkguard/domain/entities"
)

/*
Asynchronous URL scanning, currently backed by VirusTotal.
Assumptions:
- (i) Submitting a URL only schedules the analysis
- (ii) The analysis must be fetched later by its id, possibly more than once
- (iii) User may want to not use it (eg.: by not passing an apikey)

Therefore:
- (i) SubmitURL returns the analysis id only
- (ii) GetAnalysis returns a fresh snapshot per call, the caller owns the retry policy
- (iii) IsAvailable is checked before any call
*/
//go:generate go run -mod=mod github.com/golang/mock/mockgen -destination=../../../mocks/mock_async_scanner.go -package=mocks -source=RemoteScan.go
type AsyncScanner interface {
	IsAvailable() bool
	SubmitURL(ctx context.Context, url string) (string, error)
	GetAnalysis(ctx context.Context, id string) (entities.AsyncAnalysis, error)
}
