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
	"github.com/spf13/afero"
)

type FileDenylistSource struct {
	fs   afero.Fs
	path string
}

func NewFileDenylistSource(fs afero.Fs, path string) *FileDenylistSource {
	return &FileDenylistSource{fs: fs, path: path}
}

func (f *FileDenylistSource) Name() string {
	return "file"
}

func (f *FileDenylistSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read denylist file %s. %w", f.path, err)
	}

	return data, nil
}
