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
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var pkgLogger atomic.Pointer[slog.Logger]

// SetLogger sets the logger used for conversion diagnostics. A nil logger
// restores slog.Default.
func SetLogger(l *slog.Logger) {
	pkgLogger.Store(l)
}

func logger() *slog.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// VariantToValue converts a wire value to its application form. Node ids
// become their textual form. A one-element array converts to the bare
// element. XmlElement and unsupported types convert to the empty Value and
// are logged.
func VariantToValue(v Variant) Value {
	if v.Value == nil || v.Type == TypeNull {
		return Value{}
	}
	if v.Type == TypeXMLElement {
		logger().Warn("type XmlElement is not supported")
		return Value{}
	}
	if elems, ok := v.Value.([]interface{}); ok {
		out := make([]Value, len(elems))
		for i, e := range elems {
			out[i] = wireScalarToValue(v.Type, e)
		}
		return ListValue(out...).Collapse()
	}
	return wireScalarToValue(v.Type, v.Value)
}

func wireScalarToValue(t TypeID, x interface{}) Value {
	switch t {
	case TypeBoolean:
		if b, ok := x.(bool); ok {
			return BoolValue(b)
		}
	case TypeSByte:
		if n, ok := x.(int8); ok {
			return SByteValue(n)
		}
	case TypeByte:
		if n, ok := x.(uint8); ok {
			return ByteValue(n)
		}
	case TypeInt16:
		if n, ok := x.(int16); ok {
			return Int16Value(n)
		}
	case TypeUInt16:
		if n, ok := x.(uint16); ok {
			return UInt16Value(n)
		}
	case TypeInt32:
		if n, ok := x.(int32); ok {
			return Int32Value(n)
		}
	case TypeUInt32:
		if n, ok := x.(uint32); ok {
			return UInt32Value(n)
		}
	case TypeInt64:
		if n, ok := x.(int64); ok {
			return Int64Value(n)
		}
	case TypeUInt64:
		if n, ok := x.(uint64); ok {
			return UInt64Value(n)
		}
	case TypeFloat:
		if f, ok := x.(float32); ok {
			return FloatValue(f)
		}
	case TypeDouble:
		if f, ok := x.(float64); ok {
			return DoubleValue(f)
		}
	case TypeString:
		if s, ok := x.(string); ok {
			return StringValue(s)
		}
	case TypeDateTime:
		if d, ok := x.(DateTime); ok {
			return DateTimeValue(d.Time())
		}
	case TypeByteString:
		if b, ok := x.([]byte); ok {
			return ByteStringValue(b)
		}
	case TypeLocalizedText:
		if lt, ok := x.(LocalizedText); ok {
			return LocalizedTextValue(lt)
		}
	case TypeNodeID, TypeExpandedNodeID:
		if n, ok := x.(NodeID); ok {
			return StringValue(n.String())
		}
	case TypeGUID:
		if g, ok := x.(GUID); ok {
			return GUIDValue(g)
		}
	case TypeQualifiedName:
		if qn, ok := x.(QualifiedName); ok {
			return QualifiedNameValue(qn)
		}
	case TypeStatusCode:
		if sc, ok := x.(StatusCode); ok {
			return StatusCodeValue(sc)
		}
	default:
		logger().Warn("variant type is not supported", slog.String("type", t.String()))
		return Value{}
	}
	logger().Warn("variant holds a value of the wrong type",
		slog.String("type", t.String()),
		slog.Any("value", x))
	return Value{}
}

// ValueToVariant converts an application value to a wire value of type t.
// Lists convert element by element into an array. With t == TypeNull the
// wire type is inferred from the kind of v: Boolean stays Boolean, signed
// integers up to 32 bits become Int32, unsigned integers up to 32 bits
// become UInt32, floats become Double and strings stay String. Anything
// else converts to the empty Variant and is logged.
//
// Scalars are coerced to the target type where a sensible conversion
// exists. A string that is not a valid node id converts to NullNodeID.
func ValueToVariant(v Value, t TypeID) Variant {
	if t == TypeNull {
		return inferVariant(v)
	}
	if t == TypeXMLElement {
		logger().Warn("type XmlElement is not supported")
		return Variant{}
	}
	if _, ok := typeNames[t]; !ok {
		logger().Warn("variant type is not supported", slog.String("type", t.String()))
		return Variant{}
	}
	if v.IsList() {
		elems := make([]interface{}, v.Len())
		for i := range elems {
			elems[i] = valueToWireScalar(v.Index(i), t)
		}
		return NewArrayVariant(t, elems)
	}
	return NewVariant(t, valueToWireScalar(v, t))
}

func inferVariant(v Value) Variant {
	switch v.Kind() {
	case TypeBoolean:
		return ValueToVariant(v, TypeBoolean)
	case TypeSByte, TypeInt16, TypeInt32:
		return ValueToVariant(v, TypeInt32)
	case TypeByte, TypeUInt16, TypeUInt32:
		return ValueToVariant(v, TypeUInt32)
	case TypeFloat, TypeDouble:
		return ValueToVariant(v, TypeDouble)
	case TypeString:
		return ValueToVariant(v, TypeString)
	case TypeNull:
		return Variant{}
	default:
		logger().Warn("value type is not supported without an explicit wire type",
			slog.String("kind", v.Kind().String()))
		return Variant{}
	}
}

func valueToWireScalar(v Value, t TypeID) interface{} {
	switch t {
	case TypeBoolean:
		n, ok := asFloat(v)
		return ok && n != 0
	case TypeSByte:
		n, _ := asInt(v)
		return int8(n)
	case TypeByte:
		n, _ := asUint(v)
		return uint8(n)
	case TypeInt16:
		n, _ := asInt(v)
		return int16(n)
	case TypeUInt16:
		n, _ := asUint(v)
		return uint16(n)
	case TypeInt32:
		n, _ := asInt(v)
		return int32(n)
	case TypeUInt32:
		n, _ := asUint(v)
		return uint32(n)
	case TypeInt64:
		n, _ := asInt(v)
		return n
	case TypeUInt64:
		n, _ := asUint(v)
		return n
	case TypeFloat:
		f, _ := asFloat(v)
		return float32(f)
	case TypeDouble:
		f, _ := asFloat(v)
		return f
	case TypeString:
		return asString(v)
	case TypeDateTime:
		return asDateTime(v)
	case TypeByteString:
		return asBytes(v)
	case TypeLocalizedText:
		switch v.Kind() {
		case TypeLocalizedText:
			return v.LocalizedText()
		case TypeString:
			return LocalizedText{Text: v.Str()}
		}
		return LocalizedText{}
	case TypeQualifiedName:
		switch v.Kind() {
		case TypeQualifiedName:
			return v.QualifiedName()
		case TypeString:
			return QualifiedName{Name: v.Str()}
		}
		return QualifiedName{}
	case TypeNodeID, TypeExpandedNodeID:
		return asNodeID(v)
	case TypeGUID:
		return asGUID(v)
	case TypeStatusCode:
		if v.Kind() == TypeStatusCode {
			return v.StatusCode()
		}
		n, _ := asUint(v)
		return StatusCode(n)
	}
	return nil
}

func asInt(v Value) (int64, bool) {
	if v.IsList() {
		return 0, false
	}
	switch v.Kind() {
	case TypeSByte, TypeInt16, TypeInt32, TypeInt64:
		return v.Int64(), true
	case TypeByte, TypeUInt16, TypeUInt32, TypeUInt64:
		return int64(v.Uint64()), true
	case TypeBoolean:
		if v.Bool() {
			return 1, true
		}
		return 0, true
	case TypeFloat, TypeDouble:
		return int64(v.Float64()), true
	case TypeStatusCode:
		return int64(v.StatusCode()), true
	case TypeString:
		s := strings.TrimSpace(v.Str())
		if n, err := strconv.ParseInt(s, 0, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}

func asUint(v Value) (uint64, bool) {
	if v.IsList() {
		return 0, false
	}
	switch v.Kind() {
	case TypeByte, TypeUInt16, TypeUInt32, TypeUInt64:
		return v.Uint64(), true
	case TypeString:
		s := strings.TrimSpace(v.Str())
		if n, err := strconv.ParseUint(s, 0, 64); err == nil {
			return n, true
		}
	case TypeFloat, TypeDouble:
		f := v.Float64()
		if f >= 0 {
			return uint64(f), true
		}
	}
	n, ok := asInt(v)
	return uint64(n), ok
}

func asFloat(v Value) (float64, bool) {
	if v.IsList() {
		return 0, false
	}
	switch v.Kind() {
	case TypeFloat, TypeDouble:
		return v.Float64(), true
	case TypeByte, TypeUInt16, TypeUInt32, TypeUInt64:
		return float64(v.Uint64()), true
	case TypeString:
		s := strings.TrimSpace(v.Str())
		if b, err := strconv.ParseBool(s); err == nil {
			if b {
				return 1, true
			}
			return 0, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		return math.NaN(), false
	}
	n, ok := asInt(v)
	return float64(n), ok
}

func asString(v Value) string {
	switch v.Kind() {
	case TypeNull:
		return ""
	case TypeString:
		return v.Str()
	case TypeByteString:
		return string(v.Bytes())
	case TypeLocalizedText:
		return v.LocalizedText().Text
	case TypeQualifiedName:
		return v.QualifiedName().Name
	}
	return v.String()
}

// asDateTime maps the zero time to the wire value 0.
func asDateTime(v Value) DateTime {
	var t time.Time
	switch v.Kind() {
	case TypeDateTime:
		t = v.Time()
	case TypeString:
		parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v.Str()))
		if err != nil {
			logger().Warn("failed to parse date time", slog.String("value", v.Str()))
			return 0
		}
		t = parsed
	}
	if t.IsZero() {
		return 0
	}
	return DateTimeFromTime(t)
}

func asBytes(v Value) []byte {
	switch v.Kind() {
	case TypeByteString:
		return v.Bytes()
	case TypeString:
		return []byte(v.Str())
	}
	return []byte{}
}

func asNodeID(v Value) NodeID {
	if v.Kind() != TypeString {
		return NullNodeID
	}
	n, err := ParseNodeID(v.Str())
	if err != nil {
		logger().Warn("failed to parse node id", slog.Any("error", err))
		return NullNodeID
	}
	return n
}

func asGUID(v Value) GUID {
	switch v.Kind() {
	case TypeGUID:
		return v.GUID()
	case TypeString:
		u, err := uuid.Parse(strings.TrimSpace(v.Str()))
		if err != nil {
			logger().Warn("failed to parse guid", slog.String("value", v.Str()))
			return GUID{}
		}
		return GUID(u)
	}
	return GUID{}
}
