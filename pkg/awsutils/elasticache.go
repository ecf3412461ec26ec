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

package awsutils

import (
	"context"
	"crypto/tls"

	"github.com/go-redis/redis/v9"
)

type Elasticache struct {
	rdb *redis.Client
}

func (e *Elasticache) InitRedis(url, password string, useTLS bool) {
	options := redis.Options{
		Addr:     url,
		Password: password,
		DB:       0, // use default DB
	}

	if useTLS {
		options.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	e.rdb = redis.NewClient(&options)
}

func (e *Elasticache) Members(ctx context.Context, key string) ([]string, error) {
	return e.rdb.SMembers(ctx, key).Result()
}

func (e *Elasticache) AddMembers(ctx context.Context, key string, values []string) error {
	members := make([]interface{}, 0, len(values))
	for _, value := range values {
		members = append(members, value)
	}

	return e.rdb.SAdd(ctx, key, members...).Err()
}

func (e *Elasticache) Ping(ctx context.Context) error {
	return e.rdb.Ping(ctx).Err()
}

func (e *Elasticache) Close() error {
	return e.rdb.Close()
}
