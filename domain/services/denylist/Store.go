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

package denylist

import (
	"bytes"
	"context"
	"fmt"
	"github.com/uber-go/tally/v4"
	"linkguard/domain/entities"
	"linkguard/domain/ports/out"
	"linkguard/fileutils"
	"linkguard/logging"
	"strings"
	"sync"
	"time"
)

const maxDecompressedSize = 256 * 1024 * 1024

// Store keeps the process wide set of known bad URLs. The set is rebuilt from its source and swapped
// wholesale, so readers only contend with the swap itself.
type Store struct {
	mu      sync.RWMutex
	entries map[string]struct{}

	source out.DenylistSource
	logger logging.Logger

	sizeGauge     tally.Gauge
	reloadCounter tally.Counter
	failedCounter tally.Counter
}

func NewStore(source out.DenylistSource, logger logging.Logger, metricsScope tally.Scope) *Store {
	scope := metricsScope.Tagged(map[string]string{"source": source.Name()})

	return &Store{
		entries:       make(map[string]struct{}),
		source:        source,
		logger:        logger,
		sizeGauge:     scope.Gauge("denylist_entries"),
		reloadCounter: scope.Counter("denylist_reloads"),
		failedCounter: scope.Counter("denylist_failures"),
	}
}

// Load replaces the current set with the source content. A failed load leaves an empty set behind and the
// service keeps answering from the two remote sources only.
func (s *Store) Load(ctx context.Context) error {
	entries, err := s.fetch(ctx)
	if err != nil {
		s.failedCounter.Inc(1)
		s.logger.Errorw("Denylist could not be loaded, continuing with an empty denylist", "source", s.source.Name(), "error", err)
		entries = make(map[string]struct{})
	}

	s.swap(entries)

	return err
}

// Reload is Load for explicit callers, returning the number of entries now in use.
func (s *Store) Reload(ctx context.Context) (int, error) {
	s.reloadCounter.Inc(1)
	err := s.Load(ctx)

	return s.Size(), err
}

func (s *Store) Contains(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[url]

	return ok
}

func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Run reloads the set every interval until the context is done. A zero interval disables it.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.logger.Infow("Periodic denylist reload is disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Reload(ctx); err == nil {
					s.logger.Debugw("Denylist reloaded", "entries", s.Size())
				}
			}
		}
	}()
}

func (s *Store) swap(entries map[string]struct{}) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	s.sizeGauge.Update(float64(len(entries)))
}

func (s *Store) fetch(ctx context.Context) (map[string]struct{}, error) {
	data, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrDenylistLoad, err)
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrDenylistLoad, err)
	}

	return entries, nil
}

// Parse turns a newline delimited payload, optionally lz4 or gzip framed, into a set of trimmed non empty lines.
func Parse(data []byte) (map[string]struct{}, error) {
	entries := make(map[string]struct{})
	if len(bytes.TrimSpace(data)) == 0 {
		return entries, nil
	}

	data, err := fileutils.Decompress(data, maxDecompressedSize)
	if err != nil {
		return nil, fmt.Errorf("failed to decode denylist. %w", err)
	}

	if !fileutils.IsText(data) {
		return nil, fmt.Errorf("%w: decompressed denylist is not text", fileutils.ErrUnsupportedType)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entries[line] = struct{}{}
	}

	return entries, nil
}
