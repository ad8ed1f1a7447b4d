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
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog routes conversion diagnostics into a buffer for one test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestValueRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 15, 250*int(time.Millisecond), time.UTC)
	tests := []struct {
		typ   TypeID
		value Value
	}{
		{TypeBoolean, BoolValue(true)},
		{TypeSByte, SByteValue(-8)},
		{TypeByte, ByteValue(200)},
		{TypeInt16, Int16Value(-30000)},
		{TypeUInt16, UInt16Value(60000)},
		{TypeInt32, Int32Value(-2000000000)},
		{TypeUInt32, UInt32Value(4000000000)},
		{TypeInt64, Int64Value(-1 << 60)},
		{TypeUInt64, UInt64Value(1 << 63)},
		{TypeFloat, FloatValue(1.5)},
		{TypeDouble, DoubleValue(-2.25)},
		{TypeString, StringValue("hello")},
		{TypeDateTime, DateTimeValue(ts)},
		{TypeByteString, ByteStringValue([]byte{0xde, 0xad})},
		{TypeLocalizedText, LocalizedTextValue(LocalizedText{Locale: "en", Text: "Pump"})},
		{TypeQualifiedName, QualifiedNameValue(QualifiedName{NamespaceIndex: 2, Name: "Pump"})},
		{TypeGUID, GUIDValue(GUID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16})},
		{TypeStatusCode, StatusCodeValue(StatusBadNodeIdUnknown)},
		{TypeInt32, ListValue(Int32Value(1), Int32Value(2), Int32Value(3))},
		{TypeString, ListValue(StringValue("a"), StringValue("b"))},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			wire := ValueToVariant(tt.value, tt.typ)
			assert.Equal(t, tt.typ, wire.Type)
			back := VariantToValue(wire)
			assert.True(t, tt.value.Equal(back), "got %s, want %s", back, tt.value)
		})
	}
}

func TestNodeIDBecomesString(t *testing.T) {
	wire := ValueToVariant(StringValue("ns=2;i=10"), TypeNodeID)
	assert.Equal(t, NewNumericNodeID(2, 10), wire.Value)

	back := VariantToValue(wire)
	assert.Equal(t, TypeString, back.Kind())
	assert.Equal(t, "ns=2;i=10", back.Str())
}

func TestMalformedNodeIDBecomesNull(t *testing.T) {
	buf := captureLog(t)
	wire := ValueToVariant(StringValue("ns=x;i=10"), TypeNodeID)
	assert.Equal(t, NullNodeID, wire.Value)
	assert.Contains(t, buf.String(), "failed to parse node id")
}

func TestSingleElementArrayCollapses(t *testing.T) {
	wire := NewArrayVariant(TypeInt32, []interface{}{int32(7)})
	v := VariantToValue(wire)
	assert.False(t, v.IsList())
	assert.True(t, v.Equal(Int32Value(7)))

	assert.True(t, v.Collapse().Equal(v))
	assert.True(t, ListValue(Int32Value(7)).Collapse().Collapse().Equal(Int32Value(7)))
}

func TestEmptyArrayStaysList(t *testing.T) {
	v := VariantToValue(NewArrayVariant(TypeDouble, nil))
	assert.True(t, v.IsList())
	assert.Equal(t, 0, v.Len())
}

func TestXMLElementIsDropped(t *testing.T) {
	buf := captureLog(t)
	v := VariantToValue(Variant{Type: TypeXMLElement, Value: XMLElement("<a/>")})
	assert.True(t, v.IsEmpty())

	w := ValueToVariant(StringValue("<a/>"), TypeXMLElement)
	assert.True(t, w.IsNull())
	assert.Contains(t, buf.String(), "XmlElement")
}

func TestWrongGoTypeIsDropped(t *testing.T) {
	buf := captureLog(t)
	v := VariantToValue(Variant{Type: TypeInt32, Value: "seven"})
	assert.True(t, v.IsEmpty())
	assert.Contains(t, buf.String(), "wrong type")
}

func TestInferredWireType(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		typ   TypeID
		wire  interface{}
	}{
		{"bool", BoolValue(true), TypeBoolean, true},
		{"int16", Int16Value(-3), TypeInt32, int32(-3)},
		{"int32", Int32Value(42), TypeInt32, int32(42)},
		{"byte", ByteValue(7), TypeUInt32, uint32(7)},
		{"uint32", UInt32Value(9), TypeUInt32, uint32(9)},
		{"float", FloatValue(0.5), TypeDouble, float64(0.5)},
		{"double", DoubleValue(2.5), TypeDouble, float64(2.5)},
		{"string", StringValue("x"), TypeString, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ValueToVariant(tt.value, TypeNull)
			assert.Equal(t, tt.typ, w.Type)
			assert.Equal(t, tt.wire, w.Value)
		})
	}
}

func TestInferredWireTypeList(t *testing.T) {
	w := ValueToVariant(ListValue(BoolValue(true), BoolValue(false)), TypeNull)
	assert.Equal(t, TypeBoolean, w.Type)
	assert.Equal(t, []interface{}{true, false}, w.Value)
}

func TestInferredWireTypeUnsupported(t *testing.T) {
	buf := captureLog(t)
	for _, v := range []Value{
		Int64Value(1),
		DateTimeValue(time.Now()),
		LocalizedTextValue(LocalizedText{Text: "x"}),
	} {
		assert.True(t, ValueToVariant(v, TypeNull).IsNull())
	}
	assert.Contains(t, buf.String(), "without an explicit wire type")
}

func TestValueAttributeBoolean(t *testing.T) {
	typ := AttributeValue.WireType()
	w := ValueToVariant(BoolValue(true), typ)
	assert.Equal(t, Variant{Type: TypeBoolean, Value: true}, w)
	assert.True(t, VariantToValue(w).Bool())
}

func TestCoercion(t *testing.T) {
	assert.Equal(t, int32(42), ValueToVariant(StringValue("42"), TypeInt32).Value)
	assert.Equal(t, uint8(1), ValueToVariant(BoolValue(true), TypeByte).Value)
	assert.Equal(t, float64(3), ValueToVariant(Int32Value(3), TypeDouble).Value)
	assert.Equal(t, true, ValueToVariant(StringValue("true"), TypeBoolean).Value)
	assert.Equal(t, false, ValueToVariant(StringValue("nope"), TypeBoolean).Value)
	assert.Equal(t, "12", ValueToVariant(UInt16Value(12), TypeString).Value)
	assert.Equal(t, LocalizedText{Text: "hi"}, ValueToVariant(StringValue("hi"), TypeLocalizedText).Value)
	assert.Equal(t, StatusBadTimeout, ValueToVariant(UInt32Value(uint32(StatusBadTimeout)), TypeStatusCode).Value)
}

func TestDateTimeConversion(t *testing.T) {
	epoch := time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)

	v := VariantToValue(NewVariant(TypeDateTime, DateTime(0)))
	assert.True(t, v.Time().Equal(epoch))
	assert.Equal(t, time.Local, v.Time().Location())

	v = VariantToValue(NewVariant(TypeDateTime, DateTime(1000)))
	assert.True(t, v.Time().Equal(epoch.Add(time.Second)))

	assert.Equal(t, DateTime(0), ValueToVariant(DateTimeValue(time.Time{}), TypeDateTime).Value)
	assert.Equal(t, DateTime(1000), ValueToVariant(DateTimeValue(epoch.Add(time.Second)), TypeDateTime).Value)
}

func TestLocalizedTextFieldsKeepTheirPlace(t *testing.T) {
	lt := LocalizedText{Locale: "de-DE", Text: "Druck"}
	v := VariantToValue(NewVariant(TypeLocalizedText, lt))
	require.Equal(t, TypeLocalizedText, v.Kind())
	assert.Equal(t, "de-DE", v.LocalizedText().Locale)
	assert.Equal(t, "Druck", v.LocalizedText().Text)
}

func TestGUIDText(t *testing.T) {
	g := GUID{0x72, 0x96, 0x2b, 0x91, 0xfa, 0x75, 0x4a, 0xe6, 0x8d, 0x28, 0xb4, 0x04, 0xdc, 0x7d, 0xaf, 0x63}
	v := VariantToValue(NewVariant(TypeGUID, g))
	assert.Equal(t, "72962b91-fa75-4ae6-8d28-b404dc7daf63", v.Any())

	w := ValueToVariant(StringValue("72962b91-fa75-4ae6-8d28-b404dc7daf63"), TypeGUID)
	assert.Equal(t, g, w.Value)
}
