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

package stages

import (
	"context"
	"fmt"
	"github.com/uber-go/tally/v4"
	"linkguard/domain/entities"
	"linkguard/logging"
	"sync"
)

// Stage runs a handler over every request pushed to its input channel using a fixed number of workers.
// Producers on the request path use Enqueue, which never blocks.
type Stage[T, V any] struct {
	handler      entities.Handler[T, V]
	inputChannel chan *T
	logger       logging.Logger
	output       chan *V
	workers      int
	wg           sync.WaitGroup

	droppedCounter tally.Counter
	failedCounter  tally.Counter
}

func NewStage[T any, V any](handler entities.Handler[T, V], inputChannel chan *T, workers int, logger logging.Logger, metricsScope tally.Scope) *Stage[T, V] {
	if workers < 1 {
		workers = 1
	}

	scope := metricsScope.Tagged(map[string]string{"stage": handler.Name()})

	return &Stage[T, V]{
		handler:        handler,
		inputChannel:   inputChannel,
		logger:         logger,
		output:         make(chan *V, cap(inputChannel)),
		workers:        workers,
		droppedCounter: scope.Counter("stage_dropped"),
		failedCounter:  scope.Counter("stage_failed"),
	}
}

func (s *Stage[T, V]) Output() chan *V {
	return s.output
}

// Enqueue hands the request to the workers. When the queue is full the request is dropped and false is returned.
func (s *Stage[T, V]) Enqueue(request *T) bool {
	select {
	case s.inputChannel <- request:
		return true
	default:
		s.droppedCounter.Inc(1)
		s.logger.Errorw("Stage queue is full, dropping request", "handler", s.handler.Name())
		return false
	}
}

func (s *Stage[T, V]) Process(ctx context.Context) {
	s.logger.Infow("Start of stage")
	s.logger.Infow("Initializing handler", "handler", s.handler.Name(), "workers", s.workers)

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.doProcess(ctx)
	}
}

// Wait blocks until every worker has returned after the context passed to Process is done.
func (s *Stage[T, V]) Wait() {
	s.wg.Wait()
}

func (s *Stage[T, V]) doProcess(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("End of stage", "handler", s.handler.Name())
			return
		case input := <-s.inputChannel:
			s.safeHandle(ctx, input)
		}
	}
}

func (s *Stage[T, V]) safeHandle(ctx context.Context, input *T) {
	defer func() {
		if r := recover(); r != nil {
			s.failedCounter.Inc(1)
			s.logger.Errorw("Panic catch during handler execution", "handler", s.handler.Name(), "err", fmt.Errorf("%v", r))
		}
	}()

	writer := entities.NewOutputWriter[V](s.output)

	if err := s.handler.Handle(ctx, input, writer); err != nil {
		s.failedCounter.Inc(1)
		s.logger.Errorw("Handler failed", "handler", s.handler.Name(), "err", err)
	}
}
