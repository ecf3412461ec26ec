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

package notification

import (
	"context"
	"linkguard/domain/entities"
	"linkguard/logging"
	"reflect"
	"strings"
	"time"
)

type Handler struct {
	jobs   []Job
	logger logging.Logger
}

type Job interface {
	Update(verdict entities.Verdict)
	UpdateGlobal()
}

func NewNotificationHandler(notifiers []Job, logger logging.Logger) *Handler {
	return &Handler{jobs: notifiers, logger: logger}
}

func (n *Handler) Handle(_ context.Context, request *entities.Verdict, _ *entities.OutputWriter[entities.Empty]) error {
	for _, notifier := range n.jobs {
		n.logger.Debugw("Running job", "job", reflect.ValueOf(notifier).Type(), "checkID", request.CheckID)
		notifier.Update(*request)
	}

	return nil
}

// HandleAsync flushes every job each interval and once more when the context ends.
func (n *Handler) HandleAsync(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				n.logger.Infow("Notifying external systems before termination")
				n.flush()
				n.logger.Infow("Notifying external systems before termination completed")

				return
			case <-ticker.C:
				n.flush()
			}
		}
	}()
}

func (n *Handler) flush() {
	for _, notifier := range n.jobs {
		notifier.UpdateGlobal()
	}
}

func (n *Handler) Name() string {
	var jobs []string
	for _, job := range n.jobs {
		jobs = append(jobs, reflect.TypeOf(job).Elem().Name())
	}

	return "Notification Handler with jobs: " + strings.Join(jobs, ", ")
}
