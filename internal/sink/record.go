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

// Package sink delivers subscription events to consumers outside the
// process: NATS, a CBOR journal, websocket clients and the console.
package sink

import (
	"log/slog"
	"time"

	opcua "github.com/edgeo-scada/opcua-monitor"
	"github.com/edgeo-scada/opcua-monitor/subscription"
)

// Record kinds.
const (
	KindData    = "data"
	KindStatus  = "status"
	KindTimeout = "timeout"
)

// Record is the flat, serializable form of a subscription event.
type Record struct {
	Kind      string    `json:"kind" cbor:"1,keyasint"`
	Time      time.Time `json:"time" cbor:"2,keyasint"`
	Handle    uint64    `json:"handle" cbor:"3,keyasint"`
	Node      string    `json:"node,omitempty" cbor:"4,keyasint,omitempty"`
	Attribute string    `json:"attribute,omitempty" cbor:"5,keyasint,omitempty"`

	// Data records.
	Type            string      `json:"type,omitempty" cbor:"6,keyasint,omitempty"`
	Value           interface{} `json:"value,omitempty" cbor:"7,keyasint,omitempty"`
	SourceTimestamp *time.Time  `json:"source_timestamp,omitempty" cbor:"8,keyasint,omitempty"`
	ServerTimestamp *time.Time  `json:"server_timestamp,omitempty" cbor:"9,keyasint,omitempty"`

	// Status records.
	Event              string  `json:"event,omitempty" cbor:"10,keyasint,omitempty"`
	Parameter          string  `json:"parameter,omitempty" cbor:"11,keyasint,omitempty"`
	Status             string  `json:"status,omitempty" cbor:"12,keyasint,omitempty"`
	StatusCode         uint32  `json:"status_code,omitempty" cbor:"13,keyasint,omitempty"`
	SubscriptionID     uint32  `json:"subscription_id,omitempty" cbor:"14,keyasint,omitempty"`
	PublishingInterval float64 `json:"publishing_interval_ms,omitempty" cbor:"15,keyasint,omitempty"`
	MaxKeepAliveCount  uint32  `json:"max_keep_alive_count,omitempty" cbor:"16,keyasint,omitempty"`
	LifetimeCount      uint32  `json:"lifetime_count,omitempty" cbor:"17,keyasint,omitempty"`

	// Timeout records.
	Items []ItemRecord `json:"items,omitempty" cbor:"18,keyasint,omitempty"`
}

// ItemRecord names a monitored attribute in a timeout record.
type ItemRecord struct {
	Handle    uint64 `json:"handle" cbor:"1,keyasint"`
	Node      string `json:"node,omitempty" cbor:"2,keyasint,omitempty"`
	Attribute string `json:"attribute" cbor:"3,keyasint"`
}

// Writer consumes records.
type Writer interface {
	WriteRecord(r Record) error
}

// Adapter converts subscription events to records and hands them to its
// writers in order. Write failures are logged. It implements
// subscription.Sink.
type Adapter struct {
	nodes   map[uint64]string
	writers []Writer
	logger  *slog.Logger
	now     func() time.Time
}

var _ subscription.Sink = (*Adapter)(nil)

// NewAdapter creates an adapter. nodes maps client handles to the textual
// node id recorded with each event; it is not modified.
func NewAdapter(nodes map[uint64]string, logger *slog.Logger, writers ...Writer) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		nodes:   nodes,
		writers: writers,
		logger:  logger,
		now:     time.Now,
	}
}

// Publish implements subscription.Sink.
func (a *Adapter) Publish(e subscription.Event) {
	r, ok := a.record(e)
	if !ok {
		return
	}
	for _, w := range a.writers {
		if err := w.WriteRecord(r); err != nil {
			a.logger.Warn("failed to write record",
				slog.String("kind", r.Kind),
				slog.Uint64("handle", r.Handle),
				slog.Any("error", err))
		}
	}
}

func (a *Adapter) record(e subscription.Event) (Record, bool) {
	r := Record{Time: a.now()}
	switch ev := e.(type) {
	case subscription.AttributeUpdate:
		r.Kind = KindData
		r.Handle = ev.Handle
		r.Node = a.nodes[ev.Handle]
		r.Attribute = ev.Attribute.String()
		if !ev.Value.IsEmpty() {
			r.Type = ev.Value.Kind().String()
			r.Value = ev.Value.Any()
		}
		r.SourceTimestamp = timestamp(ev.SourceTimestamp)
		r.ServerTimestamp = timestamp(ev.ServerTimestamp)
	case subscription.MonitoringStatus:
		r.Kind = KindStatus
		r.Handle = ev.Handle
		r.Node = a.nodes[ev.Handle]
		r.Attribute = ev.Attribute.String()
		r.Event = ev.Kind.String()
		if ev.Parameter != subscription.ParameterNone {
			r.Parameter = ev.Parameter.String()
		}
		r.Status = ev.Status().String()
		r.StatusCode = uint32(ev.Status())
		r.SubscriptionID = ev.Params.SubscriptionID
		r.PublishingInterval = float64(ev.Params.PublishingInterval) / float64(time.Millisecond)
		r.MaxKeepAliveCount = ev.Params.MaxKeepAliveCount
		r.LifetimeCount = ev.Params.LifetimeCount
	case subscription.Timeout:
		r.Kind = KindTimeout
		r.Status = opcua.StatusBadTimeout.String()
		r.StatusCode = uint32(opcua.StatusBadTimeout)
		r.SubscriptionID = ev.SubscriptionID
		r.Items = make([]ItemRecord, len(ev.Items))
		for i, it := range ev.Items {
			r.Items[i] = ItemRecord{
				Handle:    it.Handle,
				Node:      a.nodes[it.Handle],
				Attribute: it.Attribute.String(),
			}
		}
	default:
		a.logger.Warn("unknown event", slog.Any("event", e))
		return Record{}, false
	}
	return r, true
}

// timestamp drops the 1601 epoch, which stands for "not reported".
func timestamp(t time.Time) *time.Time {
	if t.IsZero() || opcua.DateTimeFromTime(t) == 0 {
		return nil
	}
	t = t.UTC()
	return &t
}
