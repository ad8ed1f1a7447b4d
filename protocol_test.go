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

func TestEncodeVariantLayout(t *testing.T) {
	data, err := EncodeVariant(NewVariant(TypeInt32, int32(-2)))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x06, 0xfe, 0xff, 0xff, 0xff}, data)

	data, err = EncodeVariant(NewArrayVariant(TypeBoolean, []interface{}{true, false}))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x02, 0x00, 0x00, 0x00, 0x01, 0x00}, data)

	data, err = EncodeVariant(Variant{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, data)
}

func TestEncodeDateTimeTicks(t *testing.T) {
	e := NewEncoder()
	e.WriteDateTime(DateTime(1))
	assert.Equal(t, []byte{0x10, 0x27, 0, 0, 0, 0, 0, 0}, e.Bytes())
}

func TestEncodeNodeIDCompactForms(t *testing.T) {
	tests := []struct {
		node NodeID
		want []byte
	}{
		{NewNumericNodeID(0, 85), []byte{0x00, 85}},
		{NewNumericNodeID(2, 1000), []byte{0x01, 0x02, 0xe8, 0x03}},
		{NewNumericNodeID(300, 1), []byte{0x02, 0x2c, 0x01, 0x01, 0x00, 0x00, 0x00}},
		{NewStringNodeID(1, "ab"), []byte{0x03, 0x01, 0x00, 0x02, 0x00, 0x00, 0x00, 'a', 'b'}},
	}
	for _, tt := range tests {
		t.Run(tt.node.String(), func(t *testing.T) {
			e := NewEncoder()
			e.WriteNodeID(tt.node)
			assert.Equal(t, tt.want, e.Bytes())

			got, err := NewDecoder(e.Bytes()).ReadNodeID()
			require.NoError(t, err)
			assert.Equal(t, tt.node, got)
		})
	}
}

func TestVariantBinaryRoundTrip(t *testing.T) {
	g := GUID{0x72, 0x96, 0x2b, 0x91, 0xfa, 0x75, 0x4a, 0xe6, 0x8d, 0x28, 0xb4, 0x04, 0xdc, 0x7d, 0xaf, 0x63}
	for _, v := range []Variant{
		NewVariant(TypeBoolean, true),
		NewVariant(TypeSByte, int8(-1)),
		NewVariant(TypeByte, uint8(255)),
		NewVariant(TypeInt16, int16(-300)),
		NewVariant(TypeUInt16, uint16(300)),
		NewVariant(TypeUInt32, uint32(7)),
		NewVariant(TypeInt64, int64(-7)),
		NewVariant(TypeUInt64, uint64(7)),
		NewVariant(TypeFloat, float32(1.25)),
		NewVariant(TypeDouble, 3.5),
		NewVariant(TypeString, "pump"),
		NewVariant(TypeDateTime, DateTime(13350000000000)),
		NewVariant(TypeGUID, g),
		NewVariant(TypeByteString, []byte{1, 2}),
		NewVariant(TypeNodeID, NewGUIDNodeID(3, g)),
		NewVariant(TypeNodeID, NewOpaqueNodeID(3, []byte{9})),
		NewVariant(TypeStatusCode, StatusBadTimeout),
		NewVariant(TypeQualifiedName, QualifiedName{NamespaceIndex: 1, Name: "x"}),
		NewVariant(TypeLocalizedText, LocalizedText{Locale: "en", Text: "x"}),
		NewArrayVariant(TypeDouble, []interface{}{1.0, 2.0}),
	} {
		t.Run(v.Type.String(), func(t *testing.T) {
			data, err := EncodeVariant(v)
			require.NoError(t, err)
			got, err := DecodeVariant(data)
			require.NoError(t, err)
			assert.Equal(t, v, got)
		})
	}
}

func TestEncodeVariantTypeMismatch(t *testing.T) {
	_, err := EncodeVariant(NewVariant(TypeInt32, "x"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = EncodeVariant(NewVariant(TypeXMLElement, XMLElement("<a/>")))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDecodeVariantErrors(t *testing.T) {
	_, err := DecodeVariant([]byte{0x06, 0x01})
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = DecodeVariant([]byte{0x01, 0x01, 0x00})
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = DecodeVariant([]byte{0x3f})
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = DecodeVariant([]byte{0x86, 0xff, 0xff, 0xff, 0x7f})
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestDataValueRoundTrip(t *testing.T) {
	v := NewVariant(TypeDouble, 21.5)
	dv := DataValue{
		Value:             &v,
		StatusCode:        StatusUncertain,
		SourceTimestamp:   DateTime(13350000000000),
		ServerTimestamp:   DateTime(13350000000123),
		ServerPicoseconds: 5,
	}
	e := NewEncoder()
	require.NoError(t, e.WriteDataValue(dv))
	assert.Equal(t, dataValueValue|dataValueStatus|dataValueSourceTimestamp|dataValueServerTimestamp|dataValueServerPicoseconds, e.Bytes()[0])

	got, err := NewDecoder(e.Bytes()).ReadDataValue()
	require.NoError(t, err)
	assert.Equal(t, dv, got)
}
