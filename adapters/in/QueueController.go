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

package in

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/go-playground/validator/v10"
	"github.com/uber-go/tally/v4"
	adapterentities "linkguard/adapters/entities"
	"linkguard/domain/entities"
	"linkguard/domain/services/verdict"
	"linkguard/logging"
	"time"
)

const (
	consumeCount     = "consume_count"
	singleMessageInc = 1
	receiveBackoff   = 5 * time.Second
)

type queueClient interface {
	ReceiveMessages(ctx context.Context, queueURL string) ([]*sqs.Message, error)
	DeleteMessage(ctx context.Context, queueURL string, message *sqs.Message) error
}

// QueueController consumes scanUrl messages from SQS and turns them into background checks.
type QueueController struct {
	scheduler verdict.Scheduler
	validate  *validator.Validate

	sqsService queueClient
	queue      string

	logger       logging.Logger
	metricsScope tally.Scope
}

func NewQueueController(queue string, scheduler verdict.Scheduler, sqsService queueClient, metricsScope tally.Scope, logger logging.Logger) QueueController {
	return QueueController{queue: queue, scheduler: scheduler, sqsService: sqsService, validate: validator.New(), logger: logger, metricsScope: metricsScope}
}

func (q *QueueController) AsyncScan(ctx context.Context) {
	if q.queue == "" {
		q.logger.Infow("Won't attempt to read SQS queue, because none was configured")
		return
	}

	q.logger.Infow("Start of async queue processing")

	for {
		select {
		case <-ctx.Done():
			q.logger.Infow("End of async queue processing")
			return

		default:
			messages, err := q.sqsService.ReceiveMessages(ctx, q.queue)
			if err != nil {
				q.logger.Errorw("failed to obtain scan request", "error", err)
				q.backoff(ctx)

				continue
			}

			for _, m := range messages {
				q.consume(ctx, m)
			}
		}
	}
}

// consume removes the message once the check is queued or once it is known to be undecodable.
// Messages that could not be queued stay in SQS and are redelivered after the visibility timeout.
func (q *QueueController) consume(ctx context.Context, m *sqs.Message) {
	message, err := q.extractMessage(m)
	if err != nil {
		q.logger.Errorw("failed to extract scan message, deleting it", "error", err, "messageID", m.MessageId)
		q.delete(ctx, m)

		return
	}

	checkID, err := q.scheduler.Schedule(message.URL, entities.OriginQueue)
	if err != nil {
		q.logger.Errorw("failed to schedule queued URL", "error", err, "url", message.URL)
		return
	}

	q.logger.Debugw("Received new request", "url", message.URL, "checkID", checkID)
	q.metricsScope.Counter(consumeCount).Inc(singleMessageInc)
	q.delete(ctx, m)
}

func (q *QueueController) extractMessage(m *sqs.Message) (adapterentities.ScanMessage, error) {
	var message adapterentities.ScanMessage

	if m.Body == nil {
		return message, fmt.Errorf("empty message body")
	}

	var notification adapterentities.SQSNotification
	body := []byte(*m.Body)

	// Messages published through SNS carry the payload as a string field.
	if err := json.Unmarshal(body, &notification); err == nil && notification.Message != "" {
		body = []byte(notification.Message)
	}

	if err := json.Unmarshal(body, &message); err != nil {
		return message, fmt.Errorf("failed to unmarshal message. %w", err)
	}

	if err := q.validate.Struct(message); err != nil {
		return message, fmt.Errorf("invalid scan message. %w", err)
	}

	return message, nil
}

func (q *QueueController) delete(ctx context.Context, m *sqs.Message) {
	if err := q.sqsService.DeleteMessage(ctx, q.queue, m); err != nil {
		q.logger.Errorw("deleting message from sqs service failed", "error", err, "messageID", m.MessageId)
	}
}

func (q *QueueController) backoff(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(receiveBackoff):
	}
}
