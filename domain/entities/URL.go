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

import "strings"

const DefaultScheme = "https://"

// NormalizeURL trims the raw input and prefixes DefaultScheme when no http(s)
// scheme is present. The scheme is matched case-insensitively and kept as typed. It is the only normalization applied before the denylist
// test and before dispatching to the reputation services.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if hasPrefixFold(trimmed, "http://") || hasPrefixFold(trimmed, "https://") {
		return trimmed
	}

	return DefaultScheme + trimmed
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
