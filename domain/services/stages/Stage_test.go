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
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"linkguard/domain/entities"
	"linkguard/logging"
	"linkguard/mocks"
	"testing"
	"time"
)

func TestStageProcess(t *testing.T) {
	t.Run("handler executed for each input", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		requests := []entities.BackgroundCheck{
			{CheckID: "1", URL: "https://a.example", Origin: entities.OriginPageVisit},
			{CheckID: "2", URL: "https://b.example", Origin: entities.OriginQueue},
		}

		handler := mocks.NewSpyHandler()
		stage := NewStage[entities.BackgroundCheck, entities.BackgroundCheck](handler, make(chan *entities.BackgroundCheck, len(requests)), 2, logging.NewDiscardLog(), tally.NoopScope)

		for _, req := range requests {
			req := req
			require.True(t, stage.Enqueue(&req))
		}

		stage.Process(ctx)

		require.Eventually(t, func() bool { return handler.Count("Handle") == 2 }, 5*time.Second, 10*time.Millisecond)

		received := map[string]bool{}
		for i := 0; i < len(requests); i++ {
			select {
			case out := <-stage.Output():
				received[out.CheckID] = true
			case <-time.After(5 * time.Second):
				t.Fatal("expected handler output")
			}
		}
		assert.Equal(t, map[string]bool{"1": true, "2": true}, received)
	})

	t.Run("stage stops when context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		handler := mocks.NewSpyHandler()
		stage := NewStage[entities.BackgroundCheck, entities.BackgroundCheck](handler, make(chan *entities.BackgroundCheck, 1), 1, logging.NewDiscardLog(), tally.NoopScope)

		cancel()
		stage.Process(ctx)
		stage.Wait()
		require.True(t, stage.Enqueue(&entities.BackgroundCheck{CheckID: "1"}))

		require.Equal(t, 0, handler.Count("Handle"))
	})

	t.Run("enqueue never blocks when queue is full", func(t *testing.T) {
		handler := mocks.NewSpyHandler()
		stage := NewStage[entities.BackgroundCheck, entities.BackgroundCheck](handler, make(chan *entities.BackgroundCheck, 1), 1, logging.NewDiscardLog(), tally.NoopScope)

		done := make(chan bool)
		go func() {
			first := stage.Enqueue(&entities.BackgroundCheck{CheckID: "1"})
			second := stage.Enqueue(&entities.BackgroundCheck{CheckID: "2"})
			done <- first && !second
		}()

		select {
		case ok := <-done:
			assert.True(t, ok)
		case <-time.After(time.Second):
			t.Fatal("enqueue blocked")
		}
	})

	t.Run("worker survives handler panics and errors", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		panicking := mocks.NewSpyHandler()
		panicking.Panic = true
		stage := NewStage[entities.BackgroundCheck, entities.BackgroundCheck](panicking, make(chan *entities.BackgroundCheck, 2), 1, logging.NewDiscardLog(), tally.NoopScope)
		stage.Process(ctx)

		stage.Enqueue(&entities.BackgroundCheck{CheckID: "1"})
		stage.Enqueue(&entities.BackgroundCheck{CheckID: "2"})
		require.Eventually(t, func() bool { return panicking.Count("Handle") == 2 }, 5*time.Second, 10*time.Millisecond)

		failing := mocks.NewSpyHandler()
		failing.Fail = errors.New("upstream unavailable")
		failingStage := NewStage[entities.BackgroundCheck, entities.BackgroundCheck](failing, make(chan *entities.BackgroundCheck, 2), 1, logging.NewDiscardLog(), tally.NoopScope)
		failingStage.Process(ctx)

		failingStage.Enqueue(&entities.BackgroundCheck{CheckID: "1"})
		failingStage.Enqueue(&entities.BackgroundCheck{CheckID: "2"})
		require.Eventually(t, func() bool { return failing.Count("Handle") == 2 }, 5*time.Second, 10*time.Millisecond)
		assert.Empty(t, failingStage.Output())
	})
}
