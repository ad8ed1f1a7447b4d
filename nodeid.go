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
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NodeIDType represents the identifier variant of a NodeID.
type NodeIDType uint8

// NodeID identifier variants.
const (
	NodeIDTypeNumeric NodeIDType = iota
	NodeIDTypeString
	NodeIDTypeGUID
	NodeIDTypeOpaque
)

// String returns the type tag used in the textual form.
func (t NodeIDType) String() string {
	switch t {
	case NodeIDTypeNumeric:
		return "i"
	case NodeIDTypeString:
		return "s"
	case NodeIDTypeGUID:
		return "g"
	case NodeIDTypeOpaque:
		return "b"
	default:
		return "?"
	}
}

// NodeID is a namespace index plus one identifier. The zero value is the
// null node id ns=0;i=0. NodeIDs are immutable.
type NodeID struct {
	ns      uint16
	typ     NodeIDType
	numeric uint32
	str     string
	guid    GUID
	opaque  string
}

// NullNodeID is the node id returned for anything that fails to parse.
var NullNodeID = NodeID{}

// NewNumericNodeID creates a numeric NodeID.
func NewNumericNodeID(ns uint16, id uint32) NodeID {
	return NodeID{ns: ns, typ: NodeIDTypeNumeric, numeric: id}
}

// NewStringNodeID creates a string NodeID.
func NewStringNodeID(ns uint16, id string) NodeID {
	return NodeID{ns: ns, typ: NodeIDTypeString, str: id}
}

// NewGUIDNodeID creates a GUID NodeID.
func NewGUIDNodeID(ns uint16, id GUID) NodeID {
	return NodeID{ns: ns, typ: NodeIDTypeGUID, guid: id}
}

// NewOpaqueNodeID creates an opaque NodeID. The bytes are copied.
func NewOpaqueNodeID(ns uint16, id []byte) NodeID {
	return NodeID{ns: ns, typ: NodeIDTypeOpaque, opaque: string(id)}
}

// Namespace returns the namespace index.
func (n NodeID) Namespace() uint16 { return n.ns }

// Type returns the identifier variant.
func (n NodeID) Type() NodeIDType { return n.typ }

// Numeric returns the numeric identifier, 0 for other variants.
func (n NodeID) Numeric() uint32 { return n.numeric }

// StringID returns the string identifier, "" for other variants.
func (n NodeID) StringID() string { return n.str }

// GUID returns the GUID identifier, zero for other variants.
func (n NodeID) GUID() GUID { return n.guid }

// Opaque returns a copy of the opaque identifier.
func (n NodeID) Opaque() []byte {
	if n.typ != NodeIDTypeOpaque {
		return nil
	}
	return []byte(n.opaque)
}

// IsNull reports whether n is the null node id.
func (n NodeID) IsNull() bool {
	return n == NullNodeID
}

// Equal reports whether two node ids address the same node.
func (n NodeID) Equal(o NodeID) bool {
	return n == o
}

// String returns the canonical textual form ns=<index>;<tag>=<identifier>.
func (n NodeID) String() string {
	var id string
	switch n.typ {
	case NodeIDTypeNumeric:
		id = strconv.FormatUint(uint64(n.numeric), 10)
	case NodeIDTypeString:
		id = n.str
	case NodeIDTypeGUID:
		id = n.guid.String()
	case NodeIDTypeOpaque:
		id = base64.StdEncoding.EncodeToString([]byte(n.opaque))
	}
	return fmt.Sprintf("ns=%d;%s=%s", n.ns, n.typ, id)
}

// ParseNodeID parses the textual form ns=<uint16>;<i|s|g|b>=<identifier>.
// On failure it returns NullNodeID and an error wrapping ErrInvalidNodeID.
func ParseNodeID(s string) (NodeID, error) {
	semi := strings.IndexByte(s, ';')
	if semi <= 0 {
		return NullNodeID, invalidNodeID(s, "missing namespace separator")
	}
	nsPart, idPart := s[:semi], s[semi+1:]

	if len(nsPart) <= 3 || !strings.HasPrefix(nsPart, "ns=") {
		return NullNodeID, invalidNodeID(s, "namespace must be ns=<index>")
	}
	ns, err := strconv.ParseUint(nsPart[3:], 10, 16)
	if err != nil {
		return NullNodeID, invalidNodeID(s, "namespace index is not a 16-bit unsigned integer")
	}

	if len(idPart) <= 2 || idPart[1] != '=' {
		return NullNodeID, invalidNodeID(s, "missing identifier")
	}
	tag, payload := idPart[0], idPart[2:]

	switch tag {
	case 'i':
		v, err := strconv.ParseUint(payload, 10, 32)
		if err != nil {
			return NullNodeID, invalidNodeID(s, "numeric identifier is not a 32-bit unsigned integer")
		}
		return NewNumericNodeID(uint16(ns), uint32(v)), nil
	case 's':
		return NewStringNodeID(uint16(ns), payload), nil
	case 'g':
		if len(payload) != 36 {
			return NullNodeID, invalidNodeID(s, "guid must be in 8-4-4-4-12 form")
		}
		u, err := uuid.Parse(payload)
		if err != nil {
			return NullNodeID, invalidNodeID(s, "malformed guid")
		}
		return NewGUIDNodeID(uint16(ns), GUID(u)), nil
	case 'b':
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil || len(b) == 0 {
			return NullNodeID, invalidNodeID(s, "malformed base64 identifier")
		}
		return NewOpaqueNodeID(uint16(ns), b), nil
	default:
		return NullNodeID, invalidNodeID(s, fmt.Sprintf("unknown identifier type %q", tag))
	}
}

// MustParseNodeID is like ParseNodeID but panics on error.
func MustParseNodeID(s string) NodeID {
	n, err := ParseNodeID(s)
	if err != nil {
		panic(err)
	}
	return n
}

func invalidNodeID(s, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidNodeID, s, reason)
}
