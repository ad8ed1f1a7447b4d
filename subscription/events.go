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

package subscription

import (
	"fmt"
	"sync"
	"time"

	opcua "github.com/edgeo-scada/opcua-monitor"
)

// Event is a notification delivered upward to the owner of the monitored
// nodes. It is one of AttributeUpdate, MonitoringStatus or Timeout.
type Event interface {
	isEvent()
}

// AttributeUpdate carries a new value of a monitored attribute.
type AttributeUpdate struct {
	Handle          uint64
	Attribute       opcua.AttributeID
	Value           opcua.Value
	SourceTimestamp time.Time
	ServerTimestamp time.Time
}

// StatusKind tells what a MonitoringStatus event reports on.
type StatusKind uint8

const (
	// MonitoringEnabled answers a request to start monitoring.
	MonitoringEnabled StatusKind = iota
	// MonitoringDisabled reports that monitoring stopped, on request or
	// because the subscription went away.
	MonitoringDisabled
	// MonitoringModified answers a request to change a parameter.
	MonitoringModified
)

// String returns the string representation of the kind.
func (k StatusKind) String() string {
	switch k {
	case MonitoringEnabled:
		return "enabled"
	case MonitoringDisabled:
		return "disabled"
	case MonitoringModified:
		return "modified"
	default:
		return fmt.Sprintf("StatusKind(%d)", k)
	}
}

// MonitoringStatus reports the outcome of a monitoring request. The status
// is Params.StatusCode.
type MonitoringStatus struct {
	Handle    uint64
	Attribute opcua.AttributeID
	Kind      StatusKind
	Parameter Parameter
	Params    MonitoringParameters
}

// Status returns the reported status code.
func (e MonitoringStatus) Status() opcua.StatusCode { return e.Params.StatusCode }

// ItemRef names a monitored attribute.
type ItemRef struct {
	Handle    uint64
	Attribute opcua.AttributeID
}

// Timeout reports that a subscription timed out on the server, listing every
// item it was monitoring.
type Timeout struct {
	SubscriptionID uint32
	Items          []ItemRef
}

func (AttributeUpdate) isEvent()  {}
func (MonitoringStatus) isEvent() {}
func (Timeout) isEvent()          {}

// Sink consumes events. Publish must not call back into the subscription
// that produced the event.
type Sink interface {
	Publish(e Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(e Event)

// Publish calls f(e).
func (f SinkFunc) Publish(e Event) { f(e) }

// MultiSink delivers every event to each sink in order.
type MultiSink []Sink

// Publish implements Sink.
func (m MultiSink) Publish(e Event) {
	for _, s := range m {
		s.Publish(e)
	}
}

// Dispatcher decouples producers from a slow sink. Publish queues the event
// and returns immediately; a single goroutine delivers events to the sink in
// the order they were published. Nothing is dropped.
type Dispatcher struct {
	sink Sink

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Event
	closed  bool
	stopped chan struct{}
}

// NewDispatcher starts a dispatcher delivering to sink.
func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:    sink,
		stopped: make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	go d.run()
	return d
}

// Publish implements Sink. Events published after Close are discarded.
func (d *Dispatcher) Publish(e Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.queue = append(d.queue, e)
	d.cond.Signal()
}

// Pending returns the number of queued events.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Close delivers the queued events and stops the dispatcher.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.cond.Signal()
	d.mu.Unlock()
	<-d.stopped
}

func (d *Dispatcher) run() {
	defer close(d.stopped)
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		batch := d.queue
		d.queue = nil
		d.mu.Unlock()

		for _, e := range batch {
			d.sink.Publish(e)
		}
	}
}
