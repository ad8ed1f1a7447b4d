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
	"fmt"
	"math"
	"strings"
	"time"
)

// Value is the application-facing value of an attribute: a single scalar of
// one built-in type, or a list of scalars of one built-in type. The zero
// Value is empty and has kind TypeNull.
//
// Node ids travel as their textual form, so a Value never has kind
// TypeNodeID.
type Value struct {
	kind TypeID
	num  uint64
	any  interface{}
	list []Value
	// isList distinguishes an empty list from an empty scalar.
	isList bool
}

// BoolValue returns a Boolean value.
func BoolValue(b bool) Value {
	var n uint64
	if b {
		n = 1
	}
	return Value{kind: TypeBoolean, num: n}
}

// SByteValue returns an SByte value.
func SByteValue(v int8) Value { return Value{kind: TypeSByte, num: uint64(v)} }

// ByteValue returns a Byte value.
func ByteValue(v uint8) Value { return Value{kind: TypeByte, num: uint64(v)} }

// Int16Value returns an Int16 value.
func Int16Value(v int16) Value { return Value{kind: TypeInt16, num: uint64(v)} }

// UInt16Value returns a UInt16 value.
func UInt16Value(v uint16) Value { return Value{kind: TypeUInt16, num: uint64(v)} }

// Int32Value returns an Int32 value.
func Int32Value(v int32) Value { return Value{kind: TypeInt32, num: uint64(v)} }

// UInt32Value returns a UInt32 value.
func UInt32Value(v uint32) Value { return Value{kind: TypeUInt32, num: uint64(v)} }

// Int64Value returns an Int64 value.
func Int64Value(v int64) Value { return Value{kind: TypeInt64, num: uint64(v)} }

// UInt64Value returns a UInt64 value.
func UInt64Value(v uint64) Value { return Value{kind: TypeUInt64, num: v} }

// FloatValue returns a Float value.
func FloatValue(v float32) Value {
	return Value{kind: TypeFloat, num: uint64(math.Float32bits(v))}
}

// DoubleValue returns a Double value.
func DoubleValue(v float64) Value {
	return Value{kind: TypeDouble, num: math.Float64bits(v)}
}

// StringValue returns a String value.
func StringValue(s string) Value { return Value{kind: TypeString, any: s} }

// DateTimeValue returns a DateTime value.
func DateTimeValue(t time.Time) Value { return Value{kind: TypeDateTime, any: t} }

// ByteStringValue returns a ByteString value holding a copy of b.
func ByteStringValue(b []byte) Value {
	return Value{kind: TypeByteString, any: bytes.Clone(b)}
}

// LocalizedTextValue returns a LocalizedText value.
func LocalizedTextValue(lt LocalizedText) Value {
	return Value{kind: TypeLocalizedText, any: lt}
}

// QualifiedNameValue returns a QualifiedName value.
func QualifiedNameValue(qn QualifiedName) Value {
	return Value{kind: TypeQualifiedName, any: qn}
}

// GUIDValue returns a Guid value.
func GUIDValue(g GUID) Value { return Value{kind: TypeGUID, any: g} }

// StatusCodeValue returns a StatusCode value.
func StatusCodeValue(sc StatusCode) Value {
	return Value{kind: TypeStatusCode, num: uint64(sc)}
}

// ListValue returns a list of scalars. Empty elements are allowed anywhere;
// all other elements must share one kind, which becomes the kind of the list.
// ListValue panics on nested lists or mixed kinds.
func ListValue(vs ...Value) Value {
	kind := TypeNull
	for i, v := range vs {
		if v.isList {
			panic(fmt.Sprintf("opcua: ListValue element %d is a list", i))
		}
		if v.kind == TypeNull {
			continue
		}
		if kind == TypeNull {
			kind = v.kind
		} else if v.kind != kind {
			panic(fmt.Sprintf("opcua: ListValue element %d is %s, want %s", i, v.kind, kind))
		}
	}
	list := make([]Value, len(vs))
	copy(list, vs)
	return Value{kind: kind, list: list, isList: true}
}

// Kind returns the built-in type of the value or of its elements.
func (v Value) Kind() TypeID { return v.kind }

// IsEmpty reports whether v is the empty scalar.
func (v Value) IsEmpty() bool { return v.kind == TypeNull && !v.isList }

// IsList reports whether v is a list.
func (v Value) IsList() bool { return v.isList }

// Len returns the number of list elements, 0 for scalars.
func (v Value) Len() int { return len(v.list) }

// Index returns the i'th list element.
func (v Value) Index(i int) Value { return v.list[i] }

// List returns a copy of the list elements.
func (v Value) List() []Value {
	if !v.isList {
		return nil
	}
	out := make([]Value, len(v.list))
	copy(out, v.list)
	return out
}

// Collapse returns the only element of a one-element list and v otherwise.
// A one-element list and a scalar cannot be told apart once collapsed.
func (v Value) Collapse() Value {
	if v.isList && len(v.list) == 1 {
		return v.list[0]
	}
	return v
}

func (v Value) mustBe(k TypeID) {
	if v.isList || v.kind != k {
		panic(fmt.Sprintf("opcua: Value kind is %s, not %s", v.describe(), k))
	}
}

func (v Value) describe() string {
	if v.isList {
		return "list of " + v.kind.String()
	}
	return v.kind.String()
}

// Bool returns the value of a Boolean. It panics for other kinds.
func (v Value) Bool() bool {
	v.mustBe(TypeBoolean)
	return v.num == 1
}

// Int64 returns the value of any signed integer kind. It panics for other
// kinds.
func (v Value) Int64() int64 {
	switch v.kind {
	case TypeSByte, TypeInt16, TypeInt32, TypeInt64:
		if !v.isList {
			return int64(v.num)
		}
	}
	panic(fmt.Sprintf("opcua: Value kind is %s, not a signed integer", v.describe()))
}

// Uint64 returns the value of any unsigned integer kind. It panics for
// other kinds.
func (v Value) Uint64() uint64 {
	switch v.kind {
	case TypeByte, TypeUInt16, TypeUInt32, TypeUInt64:
		if !v.isList {
			return v.num
		}
	}
	panic(fmt.Sprintf("opcua: Value kind is %s, not an unsigned integer", v.describe()))
}

// Float64 returns the value of a Float or Double. It panics for other kinds.
func (v Value) Float64() float64 {
	if !v.isList {
		switch v.kind {
		case TypeFloat:
			return float64(math.Float32frombits(uint32(v.num)))
		case TypeDouble:
			return math.Float64frombits(v.num)
		}
	}
	panic(fmt.Sprintf("opcua: Value kind is %s, not a float", v.describe()))
}

// Str returns the value of a String. It panics for other kinds.
func (v Value) Str() string {
	v.mustBe(TypeString)
	return v.any.(string)
}

// Time returns the value of a DateTime. It panics for other kinds.
func (v Value) Time() time.Time {
	v.mustBe(TypeDateTime)
	return v.any.(time.Time)
}

// Bytes returns the value of a ByteString. It panics for other kinds.
func (v Value) Bytes() []byte {
	v.mustBe(TypeByteString)
	return v.any.([]byte)
}

// LocalizedText returns the value of a LocalizedText. It panics for other
// kinds.
func (v Value) LocalizedText() LocalizedText {
	v.mustBe(TypeLocalizedText)
	return v.any.(LocalizedText)
}

// QualifiedName returns the value of a QualifiedName. It panics for other
// kinds.
func (v Value) QualifiedName() QualifiedName {
	v.mustBe(TypeQualifiedName)
	return v.any.(QualifiedName)
}

// GUID returns the value of a Guid. It panics for other kinds.
func (v Value) GUID() GUID {
	v.mustBe(TypeGUID)
	return v.any.(GUID)
}

// StatusCode returns the value of a StatusCode. It panics for other kinds.
func (v Value) StatusCode() StatusCode {
	v.mustBe(TypeStatusCode)
	return StatusCode(v.num)
}

// Any returns the value as a plain Go value: nil when empty, []interface{}
// for lists, and the natural Go type of the kind otherwise. Guids are
// returned in their 8-4-4-4-12 text form.
func (v Value) Any() interface{} {
	if v.isList {
		out := make([]interface{}, len(v.list))
		for i, e := range v.list {
			out[i] = e.Any()
		}
		return out
	}
	switch v.kind {
	case TypeBoolean:
		return v.num == 1
	case TypeSByte:
		return int8(v.num)
	case TypeByte:
		return uint8(v.num)
	case TypeInt16:
		return int16(v.num)
	case TypeUInt16:
		return uint16(v.num)
	case TypeInt32:
		return int32(v.num)
	case TypeUInt32:
		return uint32(v.num)
	case TypeInt64:
		return int64(v.num)
	case TypeUInt64:
		return v.num
	case TypeFloat:
		return math.Float32frombits(uint32(v.num))
	case TypeDouble:
		return math.Float64frombits(v.num)
	case TypeStatusCode:
		return StatusCode(v.num)
	case TypeGUID:
		return v.any.(GUID).String()
	case TypeNull:
		return nil
	default:
		return v.any
	}
}

// Equal reports whether v and w hold the same kind, shape and contents.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind || v.isList != w.isList {
		return false
	}
	if v.isList {
		if len(v.list) != len(w.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(w.list[i]) {
				return false
			}
		}
		return true
	}
	switch v.kind {
	case TypeNull:
		return true
	case TypeDateTime:
		return v.Time().Equal(w.Time())
	case TypeByteString:
		return bytes.Equal(v.Bytes(), w.Bytes())
	case TypeString, TypeLocalizedText, TypeQualifiedName, TypeGUID:
		return v.any == w.any
	default:
		return v.num == w.num
	}
}

// String formats the value for humans.
func (v Value) String() string {
	if v.isList {
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	switch v.kind {
	case TypeNull:
		return "<empty>"
	case TypeString:
		return v.Str()
	case TypeDateTime:
		return v.Time().Format(time.RFC3339Nano)
	case TypeByteString:
		return fmt.Sprintf("%x", v.Bytes())
	case TypeLocalizedText:
		lt := v.LocalizedText()
		if lt.Locale == "" {
			return lt.Text
		}
		return lt.Locale + ":" + lt.Text
	case TypeQualifiedName:
		qn := v.QualifiedName()
		return fmt.Sprintf("%d:%s", qn.NamespaceIndex, qn.Name)
	case TypeStatusCode:
		return v.StatusCode().String()
	case TypeGUID:
		return v.GUID().String()
	default:
		return fmt.Sprint(v.Any())
	}
}
