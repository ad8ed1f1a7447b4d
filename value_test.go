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
)

func TestValueAccessors(t *testing.T) {
	assert.Equal(t, int64(-5), Int16Value(-5).Int64())
	assert.Equal(t, uint64(255), ByteValue(255).Uint64())
	assert.Equal(t, 1.5, FloatValue(1.5).Float64())
	assert.Equal(t, int8(-1), SByteValue(-1).Any())
	assert.Equal(t, StatusBadTimeout, StatusCodeValue(StatusBadTimeout).StatusCode())
	assert.Nil(t, Value{}.Any())
	assert.True(t, Value{}.IsEmpty())

	assert.Panics(t, func() { StringValue("x").Bool() })
	assert.Panics(t, func() { ListValue(Int32Value(1)).Int64() })
	assert.Panics(t, func() { DoubleValue(1).Int64() })
}

func TestListValue(t *testing.T) {
	l := ListValue(Int32Value(1), Value{}, Int32Value(3))
	assert.True(t, l.IsList())
	assert.Equal(t, TypeInt32, l.Kind())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []interface{}{int32(1), nil, int32(3)}, l.Any())
	assert.Equal(t, "[1, <empty>, 3]", l.String())

	elems := l.List()
	elems[0] = Int32Value(9)
	assert.Equal(t, int64(1), l.Index(0).Int64())

	assert.Panics(t, func() { ListValue(Int32Value(1), StringValue("x")) })
	assert.Panics(t, func() { ListValue(ListValue()) })
}

func TestValueEqual(t *testing.T) {
	assert.True(t, ByteStringValue([]byte{1}).Equal(ByteStringValue([]byte{1})))
	assert.False(t, Int32Value(1).Equal(UInt32Value(1)))
	assert.False(t, ListValue(Int32Value(1)).Equal(Int32Value(1)))
	assert.False(t, ListValue().Equal(Value{}))
	assert.True(t, Value{}.Equal(Value{}))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "BadTimeout", StatusCodeValue(StatusBadTimeout).String())
	assert.Equal(t, "en:Pump", LocalizedTextValue(LocalizedText{Locale: "en", Text: "Pump"}).String())
	assert.Equal(t, "2:Pump", QualifiedNameValue(QualifiedName{NamespaceIndex: 2, Name: "Pump"}).String())
	assert.Equal(t, "dead", ByteStringValue([]byte{0xde, 0xad}).String())
}
