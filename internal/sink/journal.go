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
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

var (
	journalEncMode cbor.EncMode
	journalDecMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	journalEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create journal CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:      cbor.DupMapKeyQuiet,
		IndefLength:    cbor.IndefLengthAllowed,
		DefaultMapType: reflect.TypeOf(map[string]interface{}(nil)),
	}
	journalDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create journal CBOR decoder mode: %v", err))
	}
}

// Journal appends records to a file as a stream of CBOR items. It is safe
// for concurrent use.
type Journal struct {
	mu      sync.Mutex
	file    *os.File
	encoder *cbor.Encoder
	closed  bool
}

var _ Writer = (*Journal)(nil)

// OpenJournal opens path for appending, creating it if needed.
func OpenJournal(path string) (*Journal, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Journal{
		file:    f,
		encoder: journalEncMode.NewEncoder(f),
	}, nil
}

// WriteRecord implements Writer.
func (j *Journal) WriteRecord(r Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return os.ErrClosed
	}
	return j.encoder.Encode(r)
}

// Close closes the file. Calling it again is a no-op.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.file.Close()
}

// JournalReader streams the records of a journal file.
type JournalReader struct {
	file    *os.File
	decoder *cbor.Decoder
	kind    string
}

// OpenJournalReader opens a journal. A non-empty kind restricts the reader
// to records of that kind.
func OpenJournalReader(path, kind string) (*JournalReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &JournalReader{
		file:    f,
		decoder: journalDecMode.NewDecoder(f),
		kind:    kind,
	}, nil
}

// Next returns the next record. It returns io.EOF at the end of the journal.
func (r *JournalReader) Next() (Record, error) {
	for {
		var rec Record
		if err := r.decoder.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return Record{}, io.EOF
			}
			return Record{}, fmt.Errorf("decode journal: %w", err)
		}
		if r.kind == "" || rec.Kind == r.kind {
			return rec, nil
		}
	}
}

// Close closes the file.
func (r *JournalReader) Close() error {
	return r.file.Close()
}
