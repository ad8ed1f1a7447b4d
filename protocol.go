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
	"encoding/binary"
	"fmt"
	"math"
)

// ticksPerMilli is the number of 100 ns wire ticks in a millisecond.
const ticksPerMilli = 10000

// Variant encoding mask bits.
const (
	variantArrayDimensions byte = 0x40
	variantArray           byte = 0x80
	variantTypeMask        byte = 0x3F
)

// DataValue encoding mask bits.
const (
	dataValueValue             byte = 0x01
	dataValueStatus            byte = 0x02
	dataValueSourceTimestamp   byte = 0x04
	dataValueServerTimestamp   byte = 0x08
	dataValueSourcePicoseconds byte = 0x10
	dataValueServerPicoseconds byte = 0x20
)

// EncodeVariant returns the OPC UA binary encoding of v.
func EncodeVariant(v Variant) ([]byte, error) {
	e := NewEncoder()
	if err := e.WriteVariant(v); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// DecodeVariant decodes a Variant from its OPC UA binary encoding.
func DecodeVariant(data []byte) (Variant, error) {
	d := NewDecoder(data)
	v, err := d.ReadVariant()
	if err != nil {
		return Variant{}, err
	}
	if d.Remaining() != 0 {
		return Variant{}, fmt.Errorf("%w: %d trailing bytes", ErrInvalidMessage, d.Remaining())
	}
	return v, nil
}

// Encoder writes OPC UA binary encoded values.
type Encoder struct {
	buf *bytes.Buffer
}

// NewEncoder creates a new encoder.
func NewEncoder() *Encoder {
	return &Encoder{buf: new(bytes.Buffer)}
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Reset resets the encoder.
func (e *Encoder) Reset() {
	e.buf.Reset()
}

// WriteBoolean writes a boolean value.
func (e *Encoder) WriteBoolean(v bool) {
	if v {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
}

// WriteByte writes a byte value.
func (e *Encoder) WriteByte(v byte) {
	e.buf.WriteByte(v)
}

// WriteSByte writes a signed byte value.
func (e *Encoder) WriteSByte(v int8) {
	e.buf.WriteByte(byte(v))
}

// WriteUInt16 writes a uint16 value.
func (e *Encoder) WriteUInt16(v uint16) {
	e.buf.Write(binary.LittleEndian.AppendUint16(nil, v))
}

// WriteInt16 writes an int16 value.
func (e *Encoder) WriteInt16(v int16) {
	e.WriteUInt16(uint16(v))
}

// WriteUInt32 writes a uint32 value.
func (e *Encoder) WriteUInt32(v uint32) {
	e.buf.Write(binary.LittleEndian.AppendUint32(nil, v))
}

// WriteInt32 writes an int32 value.
func (e *Encoder) WriteInt32(v int32) {
	e.WriteUInt32(uint32(v))
}

// WriteUInt64 writes a uint64 value.
func (e *Encoder) WriteUInt64(v uint64) {
	e.buf.Write(binary.LittleEndian.AppendUint64(nil, v))
}

// WriteInt64 writes an int64 value.
func (e *Encoder) WriteInt64(v int64) {
	e.WriteUInt64(uint64(v))
}

// WriteFloat writes a float32 value.
func (e *Encoder) WriteFloat(v float32) {
	e.WriteUInt32(math.Float32bits(v))
}

// WriteDouble writes a float64 value.
func (e *Encoder) WriteDouble(v float64) {
	e.WriteUInt64(math.Float64bits(v))
}

// WriteString writes a string value. The empty string is written as null.
func (e *Encoder) WriteString(v string) {
	if v == "" {
		e.WriteInt32(-1)
		return
	}
	e.WriteInt32(int32(len(v)))
	e.buf.WriteString(v)
}

// WriteByteString writes a byte string value.
func (e *Encoder) WriteByteString(v []byte) {
	if v == nil {
		e.WriteInt32(-1)
		return
	}
	e.WriteInt32(int32(len(v)))
	e.buf.Write(v)
}

// WriteDateTime writes a DateTime as 100 ns ticks since 1601.
func (e *Encoder) WriteDateTime(d DateTime) {
	e.WriteInt64(int64(d) * ticksPerMilli)
}

// WriteGUID writes a GUID in its mixed-endian wire layout.
func (e *Encoder) WriteGUID(v GUID) {
	e.WriteUInt32(binary.BigEndian.Uint32(v[0:4]))
	e.WriteUInt16(binary.BigEndian.Uint16(v[4:6]))
	e.WriteUInt16(binary.BigEndian.Uint16(v[6:8]))
	e.buf.Write(v[8:16])
}

// WriteNodeID writes a NodeID using the most compact encoding.
func (e *Encoder) WriteNodeID(n NodeID) {
	ns := n.Namespace()
	switch n.Type() {
	case NodeIDTypeNumeric:
		id := n.Numeric()
		switch {
		case ns == 0 && id <= 255:
			e.WriteByte(0x00)
			e.WriteByte(byte(id))
		case ns <= 255 && id <= 65535:
			e.WriteByte(0x01)
			e.WriteByte(byte(ns))
			e.WriteUInt16(uint16(id))
		default:
			e.WriteByte(0x02)
			e.WriteUInt16(ns)
			e.WriteUInt32(id)
		}
	case NodeIDTypeString:
		e.WriteByte(0x03)
		e.WriteUInt16(ns)
		e.WriteString(n.StringID())
	case NodeIDTypeGUID:
		e.WriteByte(0x04)
		e.WriteUInt16(ns)
		e.WriteGUID(n.GUID())
	case NodeIDTypeOpaque:
		e.WriteByte(0x05)
		e.WriteUInt16(ns)
		e.WriteByteString(n.Opaque())
	}
}

// WriteQualifiedName writes a QualifiedName value.
func (e *Encoder) WriteQualifiedName(q QualifiedName) {
	e.WriteUInt16(q.NamespaceIndex)
	e.WriteString(q.Name)
}

// WriteLocalizedText writes a LocalizedText value.
func (e *Encoder) WriteLocalizedText(l LocalizedText) {
	var encodingMask byte
	if l.Locale != "" {
		encodingMask |= 0x01
	}
	if l.Text != "" {
		encodingMask |= 0x02
	}
	e.WriteByte(encodingMask)
	if l.Locale != "" {
		e.WriteString(l.Locale)
	}
	if l.Text != "" {
		e.WriteString(l.Text)
	}
}

// WriteStatusCode writes a StatusCode value.
func (e *Encoder) WriteStatusCode(s StatusCode) {
	e.WriteUInt32(uint32(s))
}

// WriteVariant writes a Variant. Arrays are written without dimensions.
func (e *Encoder) WriteVariant(v Variant) error {
	if v.Value == nil {
		e.WriteByte(byte(TypeNull))
		return nil
	}
	if v.Type == TypeXMLElement || v.Type == TypeExpandedNodeID {
		return fmt.Errorf("%w: variant type %s", ErrUnsupportedType, v.Type)
	}
	if elems, ok := v.Value.([]interface{}); ok {
		e.WriteByte(byte(v.Type) | variantArray)
		e.WriteInt32(int32(len(elems)))
		for i, x := range elems {
			if err := e.writeScalar(v.Type, x); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil
	}
	e.WriteByte(byte(v.Type))
	return e.writeScalar(v.Type, v.Value)
}

func (e *Encoder) writeScalar(t TypeID, x interface{}) error {
	ok := true
	switch t {
	case TypeBoolean:
		var b bool
		b, ok = x.(bool)
		e.WriteBoolean(b)
	case TypeSByte:
		var n int8
		n, ok = x.(int8)
		e.WriteSByte(n)
	case TypeByte:
		var n uint8
		n, ok = x.(uint8)
		e.WriteByte(n)
	case TypeInt16:
		var n int16
		n, ok = x.(int16)
		e.WriteInt16(n)
	case TypeUInt16:
		var n uint16
		n, ok = x.(uint16)
		e.WriteUInt16(n)
	case TypeInt32:
		var n int32
		n, ok = x.(int32)
		e.WriteInt32(n)
	case TypeUInt32:
		var n uint32
		n, ok = x.(uint32)
		e.WriteUInt32(n)
	case TypeInt64:
		var n int64
		n, ok = x.(int64)
		e.WriteInt64(n)
	case TypeUInt64:
		var n uint64
		n, ok = x.(uint64)
		e.WriteUInt64(n)
	case TypeFloat:
		var f float32
		f, ok = x.(float32)
		e.WriteFloat(f)
	case TypeDouble:
		var f float64
		f, ok = x.(float64)
		e.WriteDouble(f)
	case TypeString:
		var s string
		s, ok = x.(string)
		e.WriteString(s)
	case TypeDateTime:
		var d DateTime
		d, ok = x.(DateTime)
		e.WriteDateTime(d)
	case TypeGUID:
		var g GUID
		g, ok = x.(GUID)
		e.WriteGUID(g)
	case TypeByteString:
		var b []byte
		b, ok = x.([]byte)
		e.WriteByteString(b)
	case TypeNodeID:
		var n NodeID
		n, ok = x.(NodeID)
		e.WriteNodeID(n)
	case TypeStatusCode:
		var sc StatusCode
		sc, ok = x.(StatusCode)
		e.WriteStatusCode(sc)
	case TypeQualifiedName:
		var q QualifiedName
		q, ok = x.(QualifiedName)
		e.WriteQualifiedName(q)
	case TypeLocalizedText:
		var l LocalizedText
		l, ok = x.(LocalizedText)
		e.WriteLocalizedText(l)
	default:
		return fmt.Errorf("%w: variant type %s", ErrUnsupportedType, t)
	}
	if !ok {
		return fmt.Errorf("%w: %T is not a %s", ErrUnsupportedType, x, t)
	}
	return nil
}

// WriteDataValue writes a DataValue. Zero timestamps and a Good status are
// omitted.
func (e *Encoder) WriteDataValue(dv DataValue) error {
	var mask byte
	if dv.Value != nil {
		mask |= dataValueValue
	}
	if dv.StatusCode != StatusGood {
		mask |= dataValueStatus
	}
	if dv.SourceTimestamp != 0 {
		mask |= dataValueSourceTimestamp
	}
	if dv.SourcePicoseconds != 0 {
		mask |= dataValueSourcePicoseconds
	}
	if dv.ServerTimestamp != 0 {
		mask |= dataValueServerTimestamp
	}
	if dv.ServerPicoseconds != 0 {
		mask |= dataValueServerPicoseconds
	}
	e.WriteByte(mask)

	if dv.Value != nil {
		if err := e.WriteVariant(*dv.Value); err != nil {
			return err
		}
	}
	if mask&dataValueStatus != 0 {
		e.WriteStatusCode(dv.StatusCode)
	}
	if mask&dataValueSourceTimestamp != 0 {
		e.WriteDateTime(dv.SourceTimestamp)
	}
	if mask&dataValueSourcePicoseconds != 0 {
		e.WriteUInt16(dv.SourcePicoseconds)
	}
	if mask&dataValueServerTimestamp != 0 {
		e.WriteDateTime(dv.ServerTimestamp)
	}
	if mask&dataValueServerPicoseconds != 0 {
		e.WriteUInt16(dv.ServerPicoseconds)
	}
	return nil
}

// Decoder reads OPC UA binary encoded values.
type Decoder struct {
	data []byte
	pos  int
}

// NewDecoder creates a new decoder.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Remaining returns the number of remaining bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

func (d *Decoder) next(n int, what string) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.data) {
		return nil, fmt.Errorf("%w: %s truncated", ErrInvalidMessage, what)
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

// ReadBoolean reads a boolean value.
func (d *Decoder) ReadBoolean() (bool, error) {
	b, err := d.ReadByte()
	return b != 0, err
}

// ReadByte reads a byte value.
func (d *Decoder) ReadByte() (byte, error) {
	b, err := d.next(1, "byte")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadSByte reads a signed byte value.
func (d *Decoder) ReadSByte() (int8, error) {
	b, err := d.ReadByte()
	return int8(b), err
}

// ReadUInt16 reads a uint16 value.
func (d *Decoder) ReadUInt16() (uint16, error) {
	b, err := d.next(2, "uint16")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadInt16 reads an int16 value.
func (d *Decoder) ReadInt16() (int16, error) {
	v, err := d.ReadUInt16()
	return int16(v), err
}

// ReadUInt32 reads a uint32 value.
func (d *Decoder) ReadUInt32() (uint32, error) {
	b, err := d.next(4, "uint32")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadInt32 reads an int32 value.
func (d *Decoder) ReadInt32() (int32, error) {
	v, err := d.ReadUInt32()
	return int32(v), err
}

// ReadUInt64 reads a uint64 value.
func (d *Decoder) ReadUInt64() (uint64, error) {
	b, err := d.next(8, "uint64")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadInt64 reads an int64 value.
func (d *Decoder) ReadInt64() (int64, error) {
	v, err := d.ReadUInt64()
	return int64(v), err
}

// ReadFloat reads a float32 value.
func (d *Decoder) ReadFloat() (float32, error) {
	v, err := d.ReadUInt32()
	return math.Float32frombits(v), err
}

// ReadDouble reads a float64 value.
func (d *Decoder) ReadDouble() (float64, error) {
	v, err := d.ReadUInt64()
	return math.Float64frombits(v), err
}

// ReadString reads a string value.
func (d *Decoder) ReadString() (string, error) {
	length, err := d.ReadInt32()
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", nil
	}
	b, err := d.next(int(length), "string")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadByteString reads a byte string value.
func (d *Decoder) ReadByteString() ([]byte, error) {
	length, err := d.ReadInt32()
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, nil
	}
	b, err := d.next(int(length), "byte string")
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}

// ReadDateTime reads a DateTime, truncating ticks to milliseconds.
func (d *Decoder) ReadDateTime() (DateTime, error) {
	ticks, err := d.ReadInt64()
	return DateTime(ticks / ticksPerMilli), err
}

// ReadGUID reads a GUID value.
func (d *Decoder) ReadGUID() (GUID, error) {
	var g GUID
	b, err := d.next(16, "GUID")
	if err != nil {
		return g, err
	}
	binary.BigEndian.PutUint32(g[0:4], binary.LittleEndian.Uint32(b[0:4]))
	binary.BigEndian.PutUint16(g[4:6], binary.LittleEndian.Uint16(b[4:6]))
	binary.BigEndian.PutUint16(g[6:8], binary.LittleEndian.Uint16(b[6:8]))
	copy(g[8:16], b[8:16])
	return g, nil
}

// ReadNodeID reads a NodeID value.
func (d *Decoder) ReadNodeID() (NodeID, error) {
	encodingByte, err := d.ReadByte()
	if err != nil {
		return NullNodeID, err
	}
	return d.readNodeIDBody(encodingByte & 0x0F)
}

// ReadExpandedNodeID reads an ExpandedNodeID, dropping the namespace URI
// and server index.
func (d *Decoder) ReadExpandedNodeID() (NodeID, error) {
	encodingByte, err := d.ReadByte()
	if err != nil {
		return NullNodeID, err
	}
	n, err := d.readNodeIDBody(encodingByte & 0x0F)
	if err != nil {
		return NullNodeID, err
	}
	if encodingByte&0x80 != 0 {
		if _, err := d.ReadString(); err != nil {
			return NullNodeID, err
		}
	}
	if encodingByte&0x40 != 0 {
		if _, err := d.ReadUInt32(); err != nil {
			return NullNodeID, err
		}
	}
	return n, nil
}

func (d *Decoder) readNodeIDBody(kind byte) (NodeID, error) {
	switch kind {
	case 0x00:
		id, err := d.ReadByte()
		if err != nil {
			return NullNodeID, err
		}
		return NewNumericNodeID(0, uint32(id)), nil
	case 0x01:
		ns, err := d.ReadByte()
		if err != nil {
			return NullNodeID, err
		}
		id, err := d.ReadUInt16()
		if err != nil {
			return NullNodeID, err
		}
		return NewNumericNodeID(uint16(ns), uint32(id)), nil
	}

	ns, err := d.ReadUInt16()
	if err != nil {
		return NullNodeID, err
	}
	switch kind {
	case 0x02:
		id, err := d.ReadUInt32()
		if err != nil {
			return NullNodeID, err
		}
		return NewNumericNodeID(ns, id), nil
	case 0x03:
		s, err := d.ReadString()
		if err != nil {
			return NullNodeID, err
		}
		return NewStringNodeID(ns, s), nil
	case 0x04:
		g, err := d.ReadGUID()
		if err != nil {
			return NullNodeID, err
		}
		return NewGUIDNodeID(ns, g), nil
	case 0x05:
		b, err := d.ReadByteString()
		if err != nil {
			return NullNodeID, err
		}
		return NewOpaqueNodeID(ns, b), nil
	default:
		return NullNodeID, fmt.Errorf("%w: unknown NodeID encoding %d", ErrInvalidMessage, kind)
	}
}

// ReadQualifiedName reads a QualifiedName value.
func (d *Decoder) ReadQualifiedName() (QualifiedName, error) {
	ns, err := d.ReadUInt16()
	if err != nil {
		return QualifiedName{}, err
	}
	name, err := d.ReadString()
	if err != nil {
		return QualifiedName{}, err
	}
	return QualifiedName{NamespaceIndex: ns, Name: name}, nil
}

// ReadLocalizedText reads a LocalizedText value.
func (d *Decoder) ReadLocalizedText() (LocalizedText, error) {
	encodingMask, err := d.ReadByte()
	if err != nil {
		return LocalizedText{}, err
	}

	var lt LocalizedText
	if encodingMask&0x01 != 0 {
		lt.Locale, err = d.ReadString()
		if err != nil {
			return LocalizedText{}, err
		}
	}
	if encodingMask&0x02 != 0 {
		lt.Text, err = d.ReadString()
		if err != nil {
			return LocalizedText{}, err
		}
	}
	return lt, nil
}

// ReadStatusCode reads a StatusCode value.
func (d *Decoder) ReadStatusCode() (StatusCode, error) {
	v, err := d.ReadUInt32()
	return StatusCode(v), err
}

// ReadDataValue reads a DataValue value.
func (d *Decoder) ReadDataValue() (DataValue, error) {
	mask, err := d.ReadByte()
	if err != nil {
		return DataValue{}, err
	}

	var dv DataValue
	if mask&dataValueValue != 0 {
		v, err := d.ReadVariant()
		if err != nil {
			return DataValue{}, err
		}
		dv.Value = &v
	}
	if mask&dataValueStatus != 0 {
		if dv.StatusCode, err = d.ReadStatusCode(); err != nil {
			return DataValue{}, err
		}
	}
	if mask&dataValueSourceTimestamp != 0 {
		if dv.SourceTimestamp, err = d.ReadDateTime(); err != nil {
			return DataValue{}, err
		}
	}
	if mask&dataValueSourcePicoseconds != 0 {
		if dv.SourcePicoseconds, err = d.ReadUInt16(); err != nil {
			return DataValue{}, err
		}
	}
	if mask&dataValueServerTimestamp != 0 {
		if dv.ServerTimestamp, err = d.ReadDateTime(); err != nil {
			return DataValue{}, err
		}
	}
	if mask&dataValueServerPicoseconds != 0 {
		if dv.ServerPicoseconds, err = d.ReadUInt16(); err != nil {
			return DataValue{}, err
		}
	}
	return dv, nil
}

// ReadVariant reads a Variant value. Array dimensions are skipped.
func (d *Decoder) ReadVariant() (Variant, error) {
	mask, err := d.ReadByte()
	if err != nil {
		return Variant{}, err
	}

	typeID := TypeID(mask & variantTypeMask)
	if mask&variantArray == 0 {
		x, err := d.readScalar(typeID)
		if err != nil {
			return Variant{}, err
		}
		return Variant{Type: typeID, Value: x}, nil
	}

	length, err := d.ReadInt32()
	if err != nil {
		return Variant{}, err
	}
	if length < 0 {
		return Variant{Type: typeID}, nil
	}
	if int(length) > d.Remaining() {
		return Variant{}, fmt.Errorf("%w: array length %d exceeds data", ErrInvalidMessage, length)
	}
	values := make([]interface{}, length)
	for i := range values {
		if values[i], err = d.readScalar(typeID); err != nil {
			return Variant{}, err
		}
	}

	if mask&variantArrayDimensions != 0 {
		dims, err := d.ReadInt32()
		if err != nil {
			return Variant{}, err
		}
		for i := int32(0); i < dims; i++ {
			if _, err := d.ReadInt32(); err != nil {
				return Variant{}, err
			}
		}
	}
	return Variant{Type: typeID, Value: values}, nil
}

func (d *Decoder) readScalar(typeID TypeID) (interface{}, error) {
	switch typeID {
	case TypeNull:
		return nil, nil
	case TypeBoolean:
		return d.ReadBoolean()
	case TypeSByte:
		return d.ReadSByte()
	case TypeByte:
		return d.ReadByte()
	case TypeInt16:
		return d.ReadInt16()
	case TypeUInt16:
		return d.ReadUInt16()
	case TypeInt32:
		return d.ReadInt32()
	case TypeUInt32:
		return d.ReadUInt32()
	case TypeInt64:
		return d.ReadInt64()
	case TypeUInt64:
		return d.ReadUInt64()
	case TypeFloat:
		return d.ReadFloat()
	case TypeDouble:
		return d.ReadDouble()
	case TypeString:
		return d.ReadString()
	case TypeDateTime:
		return d.ReadDateTime()
	case TypeGUID:
		return d.ReadGUID()
	case TypeByteString:
		return d.ReadByteString()
	case TypeNodeID:
		return d.ReadNodeID()
	case TypeExpandedNodeID:
		return d.ReadExpandedNodeID()
	case TypeStatusCode:
		return d.ReadStatusCode()
	case TypeQualifiedName:
		return d.ReadQualifiedName()
	case TypeLocalizedText:
		return d.ReadLocalizedText()
	default:
		return nil, fmt.Errorf("%w: unsupported variant type %d", ErrInvalidMessage, typeID)
	}
}
