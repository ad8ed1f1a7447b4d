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

package opcua

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNodeIDString(t *testing.T) {
	n, err := ParseNodeID("ns=2;s=Temperature")
	require.NoError(t, err)
	assert.Equal(t, uint16(2), n.Namespace())
	assert.Equal(t, NodeIDTypeString, n.Type())
	assert.Equal(t, "Temperature", n.StringID())
	assert.Equal(t, "ns=2;s=Temperature", n.String())
}

func TestNodeIDTextRoundTrip(t *testing.T) {
	for _, s := range []string{
		"ns=0;i=0",
		"ns=0;i=2258",
		"ns=65535;i=4294967295",
		"ns=2;s=Temperature",
		"ns=3;s=Line 1;Motor=2",
		"ns=1;g=72962b91-fa75-4ae6-8d28-b404dc7daf63",
		"ns=4;b=AQIDBA==",
	} {
		t.Run(s, func(t *testing.T) {
			n, err := ParseNodeID(s)
			require.NoError(t, err)
			assert.Equal(t, s, n.String())
		})
	}
}

func TestParseNodeIDInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"i=85",
		";i=85",
		"ns;i=85",
		"ns=;i=85",
		"x=1;i=85",
		"ns=-1;i=85",
		"ns=65536;i=85",
		"ns=a;i=85",
		"ns=1;",
		"ns=1;i",
		"ns=1;i=",
		"ns=1;s=",
		"ns=1;x=85",
		"ns=1;i=-4",
		"ns=1;i=4294967296",
		"ns=1;g=not-a-guid",
		"ns=1;g={72962b91-fa75-4ae6-8d28-b404dc7daf63}",
		"ns=1;b=!!!",
		"ns=1;b=",
	} {
		t.Run(s, func(t *testing.T) {
			n, err := ParseNodeID(s)
			assert.ErrorIs(t, err, ErrInvalidNodeID)
			assert.True(t, n.IsNull())
		})
	}
}

func TestNodeIDAccessors(t *testing.T) {
	g := GUID{0x72, 0x96, 0x2b, 0x91, 0xfa, 0x75, 0x4a, 0xe6, 0x8d, 0x28, 0xb4, 0x04, 0xdc, 0x7d, 0xaf, 0x63}
	n := NewGUIDNodeID(1, g)
	assert.Equal(t, g, n.GUID())
	assert.Equal(t, "ns=1;g=72962b91-fa75-4ae6-8d28-b404dc7daf63", n.String())

	raw := []byte{1, 2, 3}
	o := NewOpaqueNodeID(5, raw)
	raw[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, o.Opaque())
	assert.Nil(t, n.Opaque())

	assert.True(t, NullNodeID.IsNull())
	assert.Equal(t, "ns=0;i=0", NullNodeID.String())
	assert.True(t, NewNumericNodeID(0, 85).Equal(MustParseNodeID("ns=0;i=85")))
	assert.Panics(t, func() { MustParseNodeID("bogus") })
}
