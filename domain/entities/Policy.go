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

package entities

import "fmt"

type AggregationPolicy string

const (
	// AlwaysAggregate queries both reputation sources even for denylisted URLs and
	// reports the real results next to the local flag.
	AlwaysAggregate AggregationPolicy = "aggregate"

	// FailFast answers denylisted URLs immediately with placeholders and leaves the
	// remote check to a background task that only feeds the audit log.
	FailFast AggregationPolicy = "failfast"
)

func ParseAggregationPolicy(value string) (AggregationPolicy, error) {
	switch AggregationPolicy(value) {
	case "", AlwaysAggregate:
		return AlwaysAggregate, nil
	case FailFast:
		return FailFast, nil
	default:
		return "", fmt.Errorf("unknown aggregation policy %q", value)
	}
}
