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
	"fmt"
	"linkguard/pkg/awsutils"
	"sort"
	"strings"
)

type setReader interface {
	Members(ctx context.Context, key string) ([]string, error)
	Ping(ctx context.Context) error
}

type RedisDenylistSource struct {
	cache setReader
	key   string
}

func NewRedisDenylistSource(url, password string, useTLS bool, key string) *RedisDenylistSource {
	elasticache := &awsutils.Elasticache{}
	elasticache.InitRedis(url, password, useTLS)

	return &RedisDenylistSource{cache: elasticache, key: key}
}

func (r *RedisDenylistSource) Name() string {
	return "redis"
}

// Fetch renders the set members one per line so the store parses every source the same way.
func (r *RedisDenylistSource) Fetch(ctx context.Context) ([]byte, error) {
	members, err := r.cache.Members(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read denylist set %s. %w", r.key, err)
	}

	sort.Strings(members)

	return []byte(strings.Join(members, "\n")), nil
}

// Ping reports whether the backing Redis answers, used by the readiness probe.
func (r *RedisDenylistSource) Ping(ctx context.Context) error {
	return r.cache.Ping(ctx)
}
