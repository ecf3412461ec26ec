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

package fileutils

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pierrec/lz4/v4"
	"io"
	"sync"
)

type Filetype int8

const (
	Text Filetype = iota + 1
	Lz4file
	Gzfile
)

const mimeLZ4 = "application/x-lz4"

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("decompressed content exceeds limit")
	ErrEmptyStream     = errors.New("compressed stream yielded no content")
)

//nolint:gochecknoglobals
var once sync.Once

func prefix(preffix []byte) func([]byte, uint32) bool {
	return func(raw []byte, limit uint32) bool {
		if limit < uint32(len(preffix)) {
			return false
		}

		return bytes.Equal(raw[:len(preffix)], preffix)
	}
}

func registerAdditionalTypes() {
	// Support for LZ4
	mimetype.Extend(prefix([]byte{0x04, 0x22, 0x4D, 0x18}), mimeLZ4, ".lz4")
}

// GetType classifies a payload as plain text or one of the supported compressed framings.
func GetType(data []byte) (Filetype, error) {
	once.Do(registerAdditionalTypes)

	mtype := mimetype.Detect(data)

	switch {
	case mtype.Is(mimeLZ4):
		return Lz4file, nil
	case mtype.Is("application/gzip"):
		return Gzfile, nil
	case isText(mtype):
		return Text, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}
}

// Decompress unwraps a single lz4 or gzip layer. Plain text is returned untouched. A compressed input that
// yields nothing is rejected with ErrEmptyStream.
func Decompress(data []byte, limit int64) ([]byte, error) {
	filetype, err := GetType(data)
	if err != nil {
		return nil, err
	}

	var reader io.Reader

	switch filetype {
	case Lz4file:
		reader = lz4.NewReader(bytes.NewReader(data))
	case Gzfile:
		gzReader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream. %w", err)
		}
		defer gzReader.Close()
		reader = gzReader
	default:
		return data, nil
	}

	decompressed, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress. %w", err)
	}

	if int64(len(decompressed)) > limit {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, limit)
	}

	// a truncated lz4 frame reads as EOF without error
	if len(decompressed) == 0 {
		return nil, ErrEmptyStream
	}

	return decompressed, nil
}

// IsText accepts single column CSV and similar formats since they descend from text/plain.
func IsText(data []byte) bool {
	once.Do(registerAdditionalTypes)
	return isText(mimetype.Detect(data))
}

func isText(mtype *mimetype.MIME) bool {
	for ; mtype != nil; mtype = mtype.Parent() {
		if mtype.Is("text/plain") {
			return true
		}
	}

	return false
}
