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

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgeo-scada/opcua-monitor/internal/sink"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	nodeIDJSON = false
	valueType, valueAttribute, valueArray = "", "", false
	journalKind, journalJSON = "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNodeIDCommand(t *testing.T) {
	out, err := execute(t, "nodeid", "ns=2;s=Tank.Level")
	require.NoError(t, err)
	assert.Contains(t, out, "Type: String")
	assert.Contains(t, out, "Identifier: Tank.Level")
	assert.Contains(t, out, "Canonical: ns=2;s=Tank.Level")

	out, err = execute(t, "nodeid", "ns=0;i=85", "i=85")
	assert.EqualError(t, err, "1 of 2 node ids are invalid")
	assert.Contains(t, out, "Binary: 0055")
	assert.Contains(t, out, "Canonical: ns=0;i=0")
}

func TestValueCommands(t *testing.T) {
	out, err := execute(t, "value", "encode", "--type", "Int32", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "Type: Int32")
	assert.Contains(t, out, "Hex: 062a000000")

	out, err = execute(t, "value", "encode", "--attribute", "DisplayName", "Tank")
	require.NoError(t, err)
	assert.Contains(t, out, "Hex: 15020400000054616e6b")

	out, err = execute(t, "value", "encode", "--type", "Double", "1.5", "2.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Hex: 8b02000000")

	out, err = execute(t, "value", "decode", "062a000000")
	require.NoError(t, err)
	assert.Contains(t, out, "Type: Int32")
	assert.Contains(t, out, "Value: 42")

	_, err = execute(t, "value", "encode", "--type", "Structure", "1")
	assert.Error(t, err)
	_, err = execute(t, "value", "decode", "06ff")
	assert.ErrorContains(t, err, "decode failed")
}

func TestStatusCommand(t *testing.T) {
	out, err := execute(t, "status", "0x80340000")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: BadNodeIdUnknown")
	assert.Contains(t, out, "Severity: Bad")

	out, err = execute(t, "status", "read failed: 0x800A0000")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: BadTimeout")

	out, err = execute(t, "status", "connection reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: BadUnexpectedError")
}

func TestJournalCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")
	j, err := sink.OpenJournal(path)
	require.NoError(t, err)
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, j.WriteRecord(sink.Record{Kind: sink.KindData, Time: now, Node: "ns=2;i=5", Attribute: "Value", Value: "open"}))
	require.NoError(t, j.WriteRecord(sink.Record{Kind: sink.KindStatus, Time: now, Handle: 1, Attribute: "Value", Event: "disabled", Status: "BadDisconnect"}))
	require.NoError(t, j.Close())

	out, err := execute(t, "journal", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ns=2;i=5.Value = open")
	assert.Contains(t, lines[1], "monitoring disabled: BadDisconnect")

	out, err = execute(t, "journal", path, "--kind", "status", "--json")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, `"event":"disabled"`)

	_, err = execute(t, "journal", path, "--kind", "alarm")
	assert.ErrorContains(t, err, "unknown record kind")
}
