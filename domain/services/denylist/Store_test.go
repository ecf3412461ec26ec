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
	"compress/gzip"
	"context"
	"errors"
	"github.com/golang/mock/gomock"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"linkguard/domain/entities"
	"linkguard/fileutils"
	"linkguard/logging"
	"linkguard/mocks"
	"sync"
	"testing"
)

func newMockSource(t *testing.T) *mocks.MockDenylistSource {
	t.Helper()

	mockCtrl := gomock.NewController(t)
	source := mocks.NewMockDenylistSource(mockCtrl)
	source.EXPECT().Name().Return("memory").AnyTimes()

	return source
}

func TestLoadExactMembership(t *testing.T) {
	source := newMockSource(t)
	source.EXPECT().Fetch(gomock.Any()).Return([]byte("https://bad.example\n  https://worse.example/path  \n\n\r\nhttps://bad.example\n"), nil).Times(1)

	store := NewStore(source, logging.NewDiscardLog(), tally.NoopScope)
	require.NoError(t, store.Load(context.Background()))

	assert.Equal(t, 2, store.Size())
	assert.True(t, store.Contains("https://bad.example"))
	assert.True(t, store.Contains("https://worse.example/path"))

	for _, candidate := range []string{"bad.example", "https://bad.example/", "HTTPS://BAD.EXAMPLE", "https://bad.example.evil", ""} {
		assert.False(t, store.Contains(candidate), candidate)
	}
}

func TestLoadFailureIsFailOpen(t *testing.T) {
	source := newMockSource(t)
	gomock.InOrder(
		source.EXPECT().Fetch(gomock.Any()).Return([]byte("https://bad.example\n"), nil).Times(1),
		source.EXPECT().Fetch(gomock.Any()).Return(nil, errors.New("no such file")).Times(1),
	)

	store := NewStore(source, logging.NewDiscardLog(), tally.NoopScope)
	require.NoError(t, store.Load(context.Background()))
	require.True(t, store.Contains("https://bad.example"))

	err := store.Load(context.Background())

	assert.ErrorIs(t, err, entities.ErrDenylistLoad)
	assert.Equal(t, 0, store.Size())
	assert.False(t, store.Contains("https://bad.example"))
}

func TestReloadSwapsSet(t *testing.T) {
	source := newMockSource(t)
	gomock.InOrder(
		source.EXPECT().Fetch(gomock.Any()).Return([]byte("https://a.example\n"), nil).Times(1),
		source.EXPECT().Fetch(gomock.Any()).Return([]byte("https://b.example\nhttps://c.example\n"), nil).Times(1),
	)

	store := NewStore(source, logging.NewDiscardLog(), tally.NoopScope)
	require.NoError(t, store.Load(context.Background()))

	entries, err := store.Reload(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, entries)
	assert.False(t, store.Contains("https://a.example"))
	assert.True(t, store.Contains("https://c.example"))
}

func TestReloadCorruptedPayloadFails(t *testing.T) {
	source := newMockSource(t)
	gomock.InOrder(
		source.EXPECT().Fetch(gomock.Any()).Return([]byte("https://bad.example\n"), nil).Times(1),
		source.EXPECT().Fetch(gomock.Any()).Return([]byte{0x04, 0x22, 0x4d, 0x18, 0xff, 0xff, 0xff}, nil).Times(1),
	)

	scope := tally.NewTestScope("", nil)
	store := NewStore(source, logging.NewDiscardLog(), scope)
	require.NoError(t, store.Load(context.Background()))
	require.True(t, store.Contains("https://bad.example"))

	entries, err := store.Reload(context.Background())

	assert.ErrorIs(t, err, entities.ErrDenylistLoad)
	assert.ErrorContains(t, err, fileutils.ErrEmptyStream.Error())
	assert.Equal(t, 0, entries)

	counter, ok := scope.Snapshot().Counters()["denylist_failures+source=memory"]
	require.True(t, ok)
	assert.Equal(t, int64(1), counter.Value())
}

func TestConcurrentReadsDuringReload(t *testing.T) {
	source := newMockSource(t)
	source.EXPECT().Fetch(gomock.Any()).Return([]byte("https://bad.example\n"), nil).AnyTimes()

	store := NewStore(source, logging.NewDiscardLog(), tally.NoopScope)
	require.NoError(t, store.Load(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.True(t, store.Contains("https://bad.example"))
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Reload(context.Background())
		}()
	}
	wg.Wait()
}

func TestParse(t *testing.T) {
	compressed := &bytes.Buffer{}
	writer := lz4.NewWriter(compressed)
	_, err := writer.Write([]byte("https://bad.example\nhttps://worse.example\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	gzipped := &bytes.Buffer{}
	gzWriter := gzip.NewWriter(gzipped)
	_, err = gzWriter.Write([]byte("https://bad.example\r\n  https://worse.example  \n"))
	require.NoError(t, err)
	require.NoError(t, gzWriter.Close())

	tests := []struct {
		name    string
		payload []byte
		entries []string
		wantErr bool
	}{
		{name: "plain text", payload: []byte("https://bad.example\n"), entries: []string{"https://bad.example"}},
		{name: "lz4 frame", payload: compressed.Bytes(), entries: []string{"https://bad.example", "https://worse.example"}},
		{name: "gzip stream", payload: gzipped.Bytes(), entries: []string{"https://bad.example", "https://worse.example"}},
		{name: "empty payload", payload: []byte("  \n\n"), entries: []string{}},
		{name: "binary payload", payload: []byte{0x7f, 'E', 'L', 'F', 0x02, 0x01, 0x01, 0x00, 0x00, 0x00}, wantErr: true},
		{name: "corrupted lz4 frame", payload: append([]byte{0x04, 0x22, 0x4d, 0x18}, 0xff, 0xff, 0xff), wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Parse(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, entries, len(tt.entries))
			for _, entry := range tt.entries {
				assert.Contains(t, entries, entry)
			}
		})
	}
}
