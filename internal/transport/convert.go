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

package transport

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/gopcua/opcua/ua"

	opcua "github.com/edgeo-scada/opcua-monitor"
)

// toUANodeID converts a node id to its gopcua form.
func toUANodeID(n opcua.NodeID) *ua.NodeID {
	switch n.Type() {
	case opcua.NodeIDTypeString:
		return ua.NewStringNodeID(n.Namespace(), n.StringID())
	case opcua.NodeIDTypeGUID:
		return ua.NewGUIDNodeID(n.Namespace(), n.GUID().String())
	case opcua.NodeIDTypeOpaque:
		return ua.NewByteStringNodeID(n.Namespace(), n.Opaque())
	default:
		return ua.NewNumericNodeID(n.Namespace(), n.Numeric())
	}
}

// fromUANodeID converts a gopcua node id. A nil or malformed id converts to
// the null node id.
func fromUANodeID(n *ua.NodeID) opcua.NodeID {
	if n == nil {
		return opcua.NullNodeID
	}
	switch n.Type() {
	case ua.NodeIDTypeString:
		return opcua.NewStringNodeID(n.Namespace(), n.StringID())
	case ua.NodeIDTypeGUID:
		u, err := uuid.Parse(n.StringID())
		if err != nil {
			return opcua.NullNodeID
		}
		return opcua.NewGUIDNodeID(n.Namespace(), opcua.GUID(u))
	case ua.NodeIDTypeByteString:
		b, err := base64.StdEncoding.DecodeString(n.StringID())
		if err != nil {
			return opcua.NullNodeID
		}
		return opcua.NewOpaqueNodeID(n.Namespace(), b)
	default:
		return opcua.NewNumericNodeID(n.Namespace(), n.IntID())
	}
}

// fromUAVariant converts a gopcua variant. Arrays become []interface{}
// holding converted scalars.
func fromUAVariant(v *ua.Variant) opcua.Variant {
	if v == nil || v.Value() == nil {
		return opcua.Variant{}
	}
	t := opcua.TypeID(v.Type())
	x := v.Value()

	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Slice && !isByteString(t, rv) {
		elems := make([]interface{}, rv.Len())
		for i := range elems {
			elems[i] = fromUAScalar(rv.Index(i).Interface())
		}
		return opcua.NewArrayVariant(t, elems)
	}
	return opcua.NewVariant(t, fromUAScalar(x))
}

func isByteString(t opcua.TypeID, rv reflect.Value) bool {
	return t == opcua.TypeByteString && rv.Type().Elem().Kind() == reflect.Uint8
}

func fromUAScalar(x interface{}) interface{} {
	switch v := x.(type) {
	case time.Time:
		return dateTime(v)
	case *ua.GUID:
		if v == nil {
			return opcua.GUID{}
		}
		u, err := uuid.Parse(v.String())
		if err != nil {
			return opcua.GUID{}
		}
		return opcua.GUID(u)
	case *ua.NodeID:
		return fromUANodeID(v)
	case *ua.ExpandedNodeID:
		if v == nil {
			return opcua.NullNodeID
		}
		return fromUANodeID(v.NodeID)
	case ua.StatusCode:
		return opcua.StatusCode(v)
	case *ua.QualifiedName:
		if v == nil {
			return opcua.QualifiedName{}
		}
		return opcua.QualifiedName{NamespaceIndex: v.NamespaceIndex, Name: v.Name}
	case *ua.LocalizedText:
		if v == nil {
			return opcua.LocalizedText{}
		}
		return opcua.LocalizedText{Locale: v.Locale, Text: v.Text}
	case ua.XMLElement:
		return opcua.XMLElement(v)
	default:
		return x
	}
}

// fromUADataValue converts a gopcua data value.
func fromUADataValue(dv *ua.DataValue) opcua.DataValue {
	if dv == nil {
		return opcua.DataValue{}
	}
	out := opcua.DataValue{
		StatusCode:        opcua.StatusCode(dv.Status),
		SourceTimestamp:   dateTime(dv.SourceTimestamp),
		ServerTimestamp:   dateTime(dv.ServerTimestamp),
		SourcePicoseconds: dv.SourcePicoseconds,
		ServerPicoseconds: dv.ServerPicoseconds,
	}
	if dv.Value != nil {
		v := fromUAVariant(dv.Value)
		out.Value = &v
	}
	return out
}

// dateTime converts a timestamp; the zero time is the wire value 0.
func dateTime(t time.Time) opcua.DateTime {
	if t.IsZero() {
		return 0
	}
	return opcua.DateTimeFromTime(t)
}

func typeName(x interface{}) string {
	return fmt.Sprintf("%T", x)
}
