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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeWireType(t *testing.T) {
	tests := map[AttributeID]TypeID{
		AttributeNodeID:                  TypeNodeID,
		AttributeDataType:                TypeNodeID,
		AttributeBrowseName:              TypeQualifiedName,
		AttributeDisplayName:             TypeLocalizedText,
		AttributeDescription:             TypeLocalizedText,
		AttributeInverseName:             TypeLocalizedText,
		AttributeWriteMask:               TypeUInt32,
		AttributeUserWriteMask:           TypeUInt32,
		AttributeValueRank:               TypeUInt32,
		AttributeArrayDimensions:         TypeUInt32,
		AttributeIsAbstract:              TypeBoolean,
		AttributeSymmetric:               TypeBoolean,
		AttributeContainsNoLoops:         TypeBoolean,
		AttributeHistorizing:             TypeBoolean,
		AttributeExecutable:              TypeBoolean,
		AttributeUserExecutable:          TypeBoolean,
		AttributeEventNotifier:           TypeByte,
		AttributeAccessLevel:             TypeByte,
		AttributeUserAccessLevel:         TypeByte,
		AttributeMinimumSamplingInterval: TypeDouble,
		AttributeValue:                   TypeNull,
		AttributeUndefined:               TypeNull,
	}
	for attr, want := range tests {
		assert.Equal(t, want, attr.WireType(), attr.String())
	}
}

func TestParseAttributeID(t *testing.T) {
	a, err := ParseAttributeID("displayname")
	require.NoError(t, err)
	assert.Equal(t, AttributeDisplayName, a)

	a, err = ParseAttributeID("Value")
	require.NoError(t, err)
	assert.Equal(t, AttributeValue, a)

	_, err = ParseAttributeID("Undefined")
	assert.Error(t, err)
	_, err = ParseAttributeID("Colour")
	assert.Error(t, err)
}

func TestParseTypeID(t *testing.T) {
	typ, err := ParseTypeID("uint32")
	require.NoError(t, err)
	assert.Equal(t, TypeUInt32, typ)

	_, err = ParseTypeID("Structure")
	assert.Error(t, err)
	assert.Equal(t, "Unknown(99)", TypeID(99).String())
}

func TestDateTime(t *testing.T) {
	assert.True(t, DateTime(0).Time().Equal(time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)))

	now := time.Date(2025, 6, 1, 8, 0, 0, 123*int(time.Millisecond), time.UTC)
	assert.True(t, DateTimeFromTime(now).Time().Equal(now))
	assert.Equal(t, DateTime(1000), DateTimeFromTime(time.Date(1601, 1, 1, 0, 0, 1, 0, time.UTC)))
}

func TestVariantShape(t *testing.T) {
	assert.True(t, Variant{}.IsNull())
	assert.False(t, NewVariant(TypeInt32, int32(1)).IsArray())
	arr := NewArrayVariant(TypeInt32, nil)
	assert.True(t, arr.IsArray())
	assert.False(t, arr.IsNull())
}
