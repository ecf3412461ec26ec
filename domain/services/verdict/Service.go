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

package verdict

import (
	"context"
	"linkguard/domain/entities"
)

//go:generate go run -mod=mod github.com/golang/mock/mockgen -destination=../../../mocks/mock_verdict_service.go -package=mocks -source=Service.go
type Checker interface {
	// Check returns the aggregated verdict. Only validation and unexpected faults are errors,
	// per source failures are carried inside the verdict.
	Check(ctx context.Context, url string) (entities.Verdict, error)
}

type Scheduler interface {
	// Schedule queues an audit only check and returns its check id without waiting for it.
	Schedule(url string, origin entities.CheckOrigin) (string, error)
}
