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

// Package opcua provides the value model of an OPC UA attribute monitoring
// client: wire types, node identifiers, status codes and the conversion
// between loosely typed application values and strictly typed wire values.
package opcua

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ServiceID represents an OPC UA service identifier.
type ServiceID uint32

// OPC UA Service IDs used by attribute monitoring.
const (
	ServiceRead                 ServiceID = 631
	ServiceCreateMonitoredItems ServiceID = 751
	ServiceModifyMonitoredItems ServiceID = 763
	ServiceDeleteMonitoredItems ServiceID = 781
	ServiceCreateSubscription   ServiceID = 787
	ServiceModifySubscription   ServiceID = 793
	ServicePublish              ServiceID = 826
	ServiceDeleteSubscriptions  ServiceID = 847
)

// String returns the string representation of a ServiceID.
func (s ServiceID) String() string {
	switch s {
	case ServiceRead:
		return "Read"
	case ServiceCreateMonitoredItems:
		return "CreateMonitoredItems"
	case ServiceModifyMonitoredItems:
		return "ModifyMonitoredItems"
	case ServiceDeleteMonitoredItems:
		return "DeleteMonitoredItems"
	case ServiceCreateSubscription:
		return "CreateSubscription"
	case ServiceModifySubscription:
		return "ModifySubscription"
	case ServicePublish:
		return "Publish"
	case ServiceDeleteSubscriptions:
		return "DeleteSubscriptions"
	default:
		return "Unknown"
	}
}

// AttributeID represents an OPC UA attribute identifier.
type AttributeID uint32

// OPC UA Attribute IDs. AttributeUndefined is the sentinel for an attribute
// that could not be resolved.
const (
	AttributeUndefined               AttributeID = 0
	AttributeNodeID                  AttributeID = 1
	AttributeNodeClass               AttributeID = 2
	AttributeBrowseName              AttributeID = 3
	AttributeDisplayName             AttributeID = 4
	AttributeDescription             AttributeID = 5
	AttributeWriteMask               AttributeID = 6
	AttributeUserWriteMask           AttributeID = 7
	AttributeIsAbstract              AttributeID = 8
	AttributeSymmetric               AttributeID = 9
	AttributeInverseName             AttributeID = 10
	AttributeContainsNoLoops         AttributeID = 11
	AttributeEventNotifier           AttributeID = 12
	AttributeValue                   AttributeID = 13
	AttributeDataType                AttributeID = 14
	AttributeValueRank               AttributeID = 15
	AttributeArrayDimensions         AttributeID = 16
	AttributeAccessLevel             AttributeID = 17
	AttributeUserAccessLevel         AttributeID = 18
	AttributeMinimumSamplingInterval AttributeID = 19
	AttributeHistorizing             AttributeID = 20
	AttributeExecutable              AttributeID = 21
	AttributeUserExecutable          AttributeID = 22
)

var attributeNames = map[AttributeID]string{
	AttributeUndefined:               "Undefined",
	AttributeNodeID:                  "NodeId",
	AttributeNodeClass:               "NodeClass",
	AttributeBrowseName:              "BrowseName",
	AttributeDisplayName:             "DisplayName",
	AttributeDescription:             "Description",
	AttributeWriteMask:               "WriteMask",
	AttributeUserWriteMask:           "UserWriteMask",
	AttributeIsAbstract:              "IsAbstract",
	AttributeSymmetric:               "Symmetric",
	AttributeInverseName:             "InverseName",
	AttributeContainsNoLoops:         "ContainsNoLoops",
	AttributeEventNotifier:           "EventNotifier",
	AttributeValue:                   "Value",
	AttributeDataType:                "DataType",
	AttributeValueRank:               "ValueRank",
	AttributeArrayDimensions:         "ArrayDimensions",
	AttributeAccessLevel:             "AccessLevel",
	AttributeUserAccessLevel:         "UserAccessLevel",
	AttributeMinimumSamplingInterval: "MinimumSamplingInterval",
	AttributeHistorizing:             "Historizing",
	AttributeExecutable:              "Executable",
	AttributeUserExecutable:          "UserExecutable",
}

// attributeWireTypes is the fixed wire type of every attribute except Value.
// NodeClass has no entry until the NodeClass enumeration is supported as a
// wire type.
var attributeWireTypes = map[AttributeID]TypeID{
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
}

// String returns the string representation of an AttributeID.
func (a AttributeID) String() string {
	if name, ok := attributeNames[a]; ok {
		return name
	}
	return "Unknown"
}

// WireType returns the fixed wire type of the attribute. Value and
// attributes without a fixed type return TypeNull, meaning the caller has
// to supply the type.
func (a AttributeID) WireType() TypeID {
	return attributeWireTypes[a]
}

// ParseAttributeID resolves an attribute by its case-insensitive name.
func ParseAttributeID(name string) (AttributeID, error) {
	for id, n := range attributeNames {
		if id != AttributeUndefined && strings.EqualFold(n, name) {
			return id, nil
		}
	}
	return AttributeUndefined, fmt.Errorf("opcua: unknown attribute %q", name)
}

// TypeID represents an OPC UA built-in type.
type TypeID uint8

// OPC UA Built-in Types.
const (
	TypeNull           TypeID = 0
	TypeBoolean        TypeID = 1
	TypeSByte          TypeID = 2
	TypeByte           TypeID = 3
	TypeInt16          TypeID = 4
	TypeUInt16         TypeID = 5
	TypeInt32          TypeID = 6
	TypeUInt32         TypeID = 7
	TypeInt64          TypeID = 8
	TypeUInt64         TypeID = 9
	TypeFloat          TypeID = 10
	TypeDouble         TypeID = 11
	TypeString         TypeID = 12
	TypeDateTime       TypeID = 13
	TypeGUID           TypeID = 14
	TypeByteString     TypeID = 15
	TypeXMLElement     TypeID = 16
	TypeNodeID         TypeID = 17
	TypeExpandedNodeID TypeID = 18
	TypeStatusCode     TypeID = 19
	TypeQualifiedName  TypeID = 20
	TypeLocalizedText  TypeID = 21
)

var typeNames = map[TypeID]string{
	TypeNull:           "Null",
	TypeBoolean:        "Boolean",
	TypeSByte:          "SByte",
	TypeByte:           "Byte",
	TypeInt16:          "Int16",
	TypeUInt16:         "UInt16",
	TypeInt32:          "Int32",
	TypeUInt32:         "UInt32",
	TypeInt64:          "Int64",
	TypeUInt64:         "UInt64",
	TypeFloat:          "Float",
	TypeDouble:         "Double",
	TypeString:         "String",
	TypeDateTime:       "DateTime",
	TypeGUID:           "Guid",
	TypeByteString:     "ByteString",
	TypeXMLElement:     "XmlElement",
	TypeNodeID:         "NodeId",
	TypeExpandedNodeID: "ExpandedNodeId",
	TypeStatusCode:     "StatusCode",
	TypeQualifiedName:  "QualifiedName",
	TypeLocalizedText:  "LocalizedText",
}

// String returns the OPC UA name of the type.
func (t TypeID) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint8(t))
}

// ParseTypeID resolves a built-in type by its case-insensitive name.
func ParseTypeID(name string) (TypeID, error) {
	for id, n := range typeNames {
		if strings.EqualFold(n, name) {
			return id, nil
		}
	}
	return TypeNull, fmt.Errorf("opcua: unknown type %q", name)
}

// StatusCode represents an OPC UA StatusCode.
type StatusCode uint32

// DateTime is an OPC UA timestamp in milliseconds since
// 1601-01-01T00:00:00 UTC.
type DateTime int64

// epochUnixMillis is 1601-01-01T00:00:00Z in Unix milliseconds.
const epochUnixMillis int64 = -11644473600000

// DateTimeFromTime converts t to wire form. Sub-millisecond precision is
// dropped.
func DateTimeFromTime(t time.Time) DateTime {
	return DateTime(t.UnixMilli() - epochUnixMillis)
}

// Time returns the instant in the local time zone.
func (d DateTime) Time() time.Time {
	return time.UnixMilli(int64(d) + epochUnixMillis).Local()
}

// GUID is a 128-bit identifier stored in RFC 4122 byte order.
type GUID [16]byte

// String returns the 8-4-4-4-12 hex form without braces.
func (g GUID) String() string {
	return uuid.UUID(g).String()
}

// XMLElement is an OPC UA XmlElement. It is carried on the wire but not
// converted.
type XMLElement string

// QualifiedName represents an OPC UA QualifiedName.
type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

// LocalizedText represents an OPC UA LocalizedText.
type LocalizedText struct {
	Locale string
	Text   string
}

// Variant represents an OPC UA Variant. Scalars hold the Go type of their
// TypeID; arrays hold a []interface{} of such scalars.
type Variant struct {
	Type  TypeID
	Value interface{}
}

// NewVariant returns a scalar variant.
func NewVariant(t TypeID, v interface{}) Variant {
	return Variant{Type: t, Value: v}
}

// NewArrayVariant returns an array variant of type t.
func NewArrayVariant(t TypeID, values []interface{}) Variant {
	if values == nil {
		values = []interface{}{}
	}
	return Variant{Type: t, Value: values}
}

// IsNull reports whether the variant carries no value.
func (v Variant) IsNull() bool {
	return v.Type == TypeNull || v.Value == nil
}

// IsArray reports whether the variant holds an array.
func (v Variant) IsArray() bool {
	_, ok := v.Value.([]interface{})
	return ok
}

// DataValue represents an OPC UA DataValue.
type DataValue struct {
	Value             *Variant
	StatusCode        StatusCode
	SourceTimestamp   DateTime
	ServerTimestamp   DateTime
	SourcePicoseconds uint16
	ServerPicoseconds uint16
}

// ReadValueID represents a node attribute to read or monitor.
type ReadValueID struct {
	NodeID       NodeID
	AttributeID  AttributeID
	IndexRange   string
	DataEncoding QualifiedName
}
