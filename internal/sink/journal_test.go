// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sink

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")
	src := time.Date(2025, 6, 1, 7, 59, 59, 5, time.UTC)

	j, err := OpenJournal(path)
	require.NoError(t, err)
	require.NoError(t, j.WriteRecord(Record{
		Kind: KindData, Time: fixedNow, Handle: 1, Node: "ns=2;i=5",
		Attribute: "Value", Type: "String", Value: "open", SourceTimestamp: &src,
	}))
	require.NoError(t, j.WriteRecord(Record{
		Kind: KindStatus, Time: fixedNow, Handle: 1, Attribute: "Value",
		Event: "disabled", Status: "BadDisconnect", StatusCode: 0x80AD0000,
	}))
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())
	assert.ErrorIs(t, j.WriteRecord(Record{}), os.ErrClosed)

	// Appending reopens the same file.
	j, err = OpenJournal(path)
	require.NoError(t, err)
	require.NoError(t, j.WriteRecord(Record{Kind: KindTimeout, Time: fixedNow, SubscriptionID: 4,
		Items: []ItemRecord{{Handle: 1, Attribute: "Value"}}}))
	require.NoError(t, j.Close())

	r, err := OpenJournalReader(path, "")
	require.NoError(t, err)
	defer r.Close()

	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "open", first.Value)
	assert.True(t, first.Time.Equal(fixedNow))
	require.NotNil(t, first.SourceTimestamp)
	assert.True(t, first.SourceTimestamp.Equal(src))

	second, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "disabled", second.Event)
	assert.Equal(t, uint32(0x80AD0000), second.StatusCode)

	third, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), third.SubscriptionID)
	assert.Len(t, third.Items, 1)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestJournalReaderKindFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")
	j, err := OpenJournal(path)
	require.NoError(t, err)
	for _, k := range []string{KindData, KindStatus, KindData} {
		require.NoError(t, j.WriteRecord(Record{Kind: k, Time: fixedNow}))
	}
	require.NoError(t, j.Close())

	r, err := OpenJournalReader(path, KindData)
	require.NoError(t, err)
	defer r.Close()

	n := 0
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, KindData, rec.Kind)
		n++
	}
	assert.Equal(t, 2, n)
}

func TestJournalReaderTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")
	require.NoError(t, os.WriteFile(path, []byte{0xa2, 0x01}, 0o644))

	r, err := OpenJournalReader(path, "")
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}
