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
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleText(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	require.NoError(t, c.WriteRecord(Record{Kind: KindData, Time: fixedNow, Node: "ns=2;i=5", Attribute: "Value", Value: 21.5}))
	require.NoError(t, c.WriteRecord(Record{Kind: KindStatus, Time: fixedNow, Handle: 3, Attribute: "Value",
		Event: "enabled", Status: "Good", SubscriptionID: 7, PublishingInterval: 1000}))
	require.NoError(t, c.WriteRecord(Record{Kind: KindTimeout, Time: fixedNow, SubscriptionID: 7,
		Items: []ItemRecord{{Handle: 3, Attribute: "Value"}, {Handle: 4, Node: "ns=1;i=1", Attribute: "DisplayName"}}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "[08:00:00.000] ns=2;i=5.Value = 21.5", lines[0])
	assert.Equal(t, "[08:00:00.000] handle=3.Value monitoring enabled: Good (subscription 7, 1000ms)", lines[1])
	assert.Equal(t, "[08:00:00.000] subscription 7 timed out: handle=3.Value, ns=1;i=1.DisplayName", lines[2])
}

func TestConsoleJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsole(&buf, true).WriteRecord(Record{Kind: KindData, Time: fixedNow, Handle: 1}))

	var r Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
	assert.Equal(t, KindData, r.Kind)
	assert.Equal(t, uint64(1), r.Handle)
}
