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
	"fmt"
	"linkguard/domain/entities"
)

// BackgroundHandler runs audit only checks for the background stage and forwards the verdicts downstream.
type BackgroundHandler struct {
	aggregator *Aggregator
}

func NewBackgroundHandler(aggregator *Aggregator) *BackgroundHandler {
	return &BackgroundHandler{aggregator: aggregator}
}

func (b *BackgroundHandler) Handle(ctx context.Context, request *entities.BackgroundCheck, w *entities.OutputWriter[entities.Verdict]) error {
	if request == nil || request.URL == "" {
		return fmt.Errorf("%w: empty background check", entities.ErrValidation)
	}

	verdict := b.aggregator.RunFull(ctx, *request)
	w.Write(ctx, &verdict)

	return nil
}

func (b *BackgroundHandler) Name() string {
	return "Background Check Handler"
}
