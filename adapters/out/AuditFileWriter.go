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
	"fmt"
	"github.com/spf13/afero"
	"os"
	"path/filepath"
)

const (
	defaultDirPermission  = 0755
	defaultFilePermission = 0644
)

type AuditFileWriter struct {
	fs   afero.Fs
	path string
}

func NewAuditFileWriter(fs afero.Fs, path string) *AuditFileWriter {
	return &AuditFileWriter{fs: fs, path: path}
}

// Append writes the record with a single call on a file opened in append mode.
// The file is never read, truncated or rotated here.
func (a *AuditFileWriter) Append(record []byte) error {
	if err := a.fs.MkdirAll(filepath.Dir(a.path), defaultDirPermission); err != nil {
		return fmt.Errorf("failed to create audit directory. %w", err)
	}

	file, err := a.fs.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, defaultFilePermission)
	if err != nil {
		return fmt.Errorf("failed to open audit file %s. %w", a.path, err)
	}

	if _, err = file.Write(record); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to append to audit file %s. %w", a.path, err)
	}

	return file.Close()
}
