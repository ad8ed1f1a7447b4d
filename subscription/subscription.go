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

// Package subscription tracks the attributes monitored through server-side
// OPC UA subscriptions and reports their values and status upward as events.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	opcua "github.com/edgeo-scada/opcua-monitor"
)

// State is the lifecycle state of a Subscription.
type State uint8

const (
	StateUncreated State = iota
	StateActive
	StateTornDown
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateUncreated:
		return "Uncreated"
	case StateActive:
		return "Active"
	case StateTornDown:
		return "TornDown"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Subscription is the client side of one server subscription. It owns the
// monitored items created through it.
//
// A Subscription is not safe for concurrent use. All calls, including the
// DataChange and StatusChange notifications, must be serialized by the
// caller; Worker does this for a whole connection.
type Subscription struct {
	conn     Connection
	sink     Sink
	notifier Notifier
	opts     *options

	interval time.Duration
	shared   SubscriptionType
	server   ServerSubscription
	state    State
	timedOut bool
	items    *itemTable

	// onTimeout is invoked after the timeout event has been published.
	onTimeout func(*Subscription)
	// onEvict is invoked when an item is dropped because the server handed
	// its id to another item.
	onEvict func(s *Subscription, handle uint64, attr opcua.AttributeID)
}

// New returns an uncreated subscription requesting the given publishing
// interval. Events are published to sink.
func New(conn Connection, interval time.Duration, shared SubscriptionType, sink Sink, opts ...Option) *Subscription {
	s := newSubscription(conn, interval, shared, sink, applyOptions(opts))
	s.notifier = s
	return s
}

func newSubscription(conn Connection, interval time.Duration, shared SubscriptionType, sink Sink, o *options) *Subscription {
	return &Subscription{
		conn:     conn,
		sink:     sink,
		opts:     o,
		interval: interval,
		shared:   shared,
		items:    newItemTable(),
	}
}

func (s *Subscription) logger() *slog.Logger { return s.opts.logger }

func (s *Subscription) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.requestTimeout > 0 {
		return context.WithTimeout(ctx, s.opts.requestTimeout)
	}
	return context.WithCancel(ctx)
}

// CreateOnServer creates the subscription on the server and returns its id.
// An active subscription is left untouched: its id is returned together
// with ErrSubscriptionExists. A failed request leaves the subscription
// uncreated so that it may be retried.
func (s *Subscription) CreateOnServer(ctx context.Context) (uint32, error) {
	switch s.state {
	case StateActive:
		return s.server.ID(), opcua.ErrSubscriptionExists
	case StateTornDown:
		return 0, opcua.ErrClosed
	}

	requested := RevisePublishingInterval(s.interval, s.opts.minimum)
	rctx, cancel := s.requestContext(ctx)
	defer cancel()

	start := time.Now()
	server, err := s.conn.CreateSubscription(rctx, requested, s.notifier)
	s.opts.metrics.observe(start, err)
	if err != nil {
		s.logger().Warn("failed to create subscription",
			slog.Duration("interval", requested),
			slog.Any("error", err))
		return 0, fmt.Errorf("create subscription: %w", err)
	}

	s.server = server
	s.state = StateActive
	s.interval = requested
	if revised := server.RevisedPublishingInterval(); revised > 0 {
		s.interval = RevisePublishingInterval(revised, s.opts.minimum)
	}
	s.opts.metrics.ActiveSubscriptions.Inc()

	s.logger().Debug("subscription created",
		slog.Uint64("subscription_id", uint64(server.ID())),
		slog.Duration("interval", s.interval))
	return server.ID(), nil
}

// RemoveOnServer deletes the subscription and all of its monitored items.
// Every item still registered gets a MonitoringDisabled event with
// BadTimeout if a timeout was reported, BadDisconnect otherwise. A server
// side failure is logged and does not stop the teardown. Calling it again
// is a no-op.
func (s *Subscription) RemoveOnServer(ctx context.Context) bool {
	if s.state == StateTornDown {
		return true
	}

	if s.state == StateActive {
		rctx, cancel := s.requestContext(ctx)
		start := time.Now()
		err := s.server.Delete(rctx)
		cancel()
		s.opts.metrics.observe(start, err)
		if err != nil {
			s.logger().Warn("failed to delete subscription",
				slog.Uint64("subscription_id", uint64(s.server.ID())),
				slog.Any("error", err))
		}
		s.opts.metrics.ActiveSubscriptions.Dec()
	}

	status := opcua.StatusBadDisconnect
	if s.timedOut {
		status = opcua.StatusBadTimeout
	}
	for _, it := range s.items.all() {
		s.sink.Publish(MonitoringStatus{
			Handle:    it.handle,
			Attribute: it.attr,
			Kind:      MonitoringDisabled,
			Params:    MonitoringParameters{StatusCode: status},
		})
	}
	s.opts.metrics.MonitoredItems.Add(-int64(s.items.len()))
	s.items.clear()
	s.state = StateTornDown
	return true
}

// AddAttributeMonitoredItem starts monitoring attribute attr of node for the
// client handle. The outcome is reported with a MonitoringEnabled event and
// the return value tells whether the item was created.
func (s *Subscription) AddAttributeMonitoredItem(ctx context.Context, handle uint64, attr opcua.AttributeID, node opcua.NodeID, params MonitoringParameters) bool {
	if s.state != StateActive {
		s.publishStatus(handle, attr, MonitoringEnabled, ParameterNone,
			MonitoringParameters{StatusCode: opcua.StatusBadSubscriptionIdInvalid})
		return false
	}

	req := opcua.ReadValueID{
		NodeID:      node,
		AttributeID: attr,
		IndexRange:  params.IndexRange,
	}
	rctx, cancel := s.requestContext(ctx)
	start := time.Now()
	id, err := s.server.SubscribeDataChange(rctx, req)
	cancel()
	s.opts.metrics.observe(start, err)
	if err != nil {
		status := opcua.StatusFromError(err)
		s.logger().Warn("failed to create monitored item",
			slog.Uint64("handle", handle),
			slog.String("attribute", attr.String()),
			slog.String("node", node.String()),
			slog.String("status", status.String()),
			slog.Any("error", err))
		s.publishStatus(handle, attr, MonitoringEnabled, ParameterNone,
			MonitoringParameters{StatusCode: status})
		return false
	}

	for _, old := range s.items.insert(handle, attr, id) {
		s.opts.metrics.MonitoredItems.Dec()
		switch {
		case old.handle != handle || old.attr != attr:
			// The server reused an id still held by another item. That
			// item is no longer reachable, so it is reported as gone
			// without touching the id now owned by the new item.
			s.logger().Warn("monitored item id reused by server",
				slog.Uint64("handle", old.handle),
				slog.String("attribute", old.attr.String()),
				slog.Uint64("item_id", uint64(id)))
			s.publishStatus(old.handle, old.attr, MonitoringDisabled, ParameterNone,
				MonitoringParameters{StatusCode: opcua.StatusBadMonitoredItemIdInvalid})
			if s.onEvict != nil {
				s.onEvict(s, old.handle, old.attr)
			}
		case old.id != id:
			s.logger().Warn("replacing monitored item",
				slog.Uint64("handle", handle),
				slog.String("attribute", attr.String()),
				slog.Uint64("item_id", uint64(old.id)))
			s.unsubscribe(ctx, old.id)
		}
	}
	s.opts.metrics.MonitoredItems.Inc()

	s.publishStatus(handle, attr, MonitoringEnabled, ParameterNone, MonitoringParameters{
		StatusCode:         opcua.StatusGood,
		SubscriptionID:     s.server.ID(),
		PublishingInterval: s.interval,
		SamplingInterval:   s.interval,
		MaxKeepAliveCount:  s.server.RevisedMaxKeepAliveCount(),
		LifetimeCount:      s.server.RevisedLifetimeCount(),
		Shared:             s.shared,
		IndexRange:         params.IndexRange,
	})
	return true
}

// RemoveAttributeMonitoredItem stops monitoring attribute attr for the
// client handle and reports the outcome with a MonitoringDisabled event.
// The item is forgotten even when the server rejects the request.
func (s *Subscription) RemoveAttributeMonitoredItem(ctx context.Context, handle uint64, attr opcua.AttributeID) bool {
	it, ok := s.items.lookupKey(handle, attr)
	if !ok {
		s.publishStatus(handle, attr, MonitoringDisabled, ParameterNone,
			MonitoringParameters{StatusCode: opcua.StatusBadMonitoredItemIdInvalid})
		return false
	}

	status := s.unsubscribe(ctx, it.id)
	s.items.removeKey(it.key())
	s.opts.metrics.MonitoredItems.Dec()

	s.publishStatus(handle, attr, MonitoringDisabled, ParameterNone,
		MonitoringParameters{StatusCode: status})
	return true
}

func (s *Subscription) unsubscribe(ctx context.Context, id uint32) opcua.StatusCode {
	rctx, cancel := s.requestContext(ctx)
	defer cancel()

	start := time.Now()
	err := s.server.Unsubscribe(rctx, id)
	s.opts.metrics.observe(start, err)
	if err != nil {
		status := opcua.StatusFromError(err)
		s.logger().Warn("failed to delete monitored item",
			slog.Uint64("item_id", uint64(id)),
			slog.String("status", status.String()),
			slog.Any("error", err))
		return status
	}
	return opcua.StatusGood
}

// ModifyMonitoring answers a request to change a monitoring parameter with
// a MonitoringModified event. No parameter can be changed after the item was
// created, so an existing item is answered with BadNotImplemented.
func (s *Subscription) ModifyMonitoring(handle uint64, attr opcua.AttributeID, param Parameter, value interface{}) {
	status := opcua.StatusBadNotImplemented
	if _, ok := s.items.lookupKey(handle, attr); !ok {
		status = opcua.StatusBadAttributeIdInvalid
	}
	s.logger().Warn("monitoring parameter cannot be modified",
		slog.Uint64("handle", handle),
		slog.String("attribute", attr.String()),
		slog.String("parameter", param.String()),
		slog.Any("value", value),
		slog.String("status", status.String()))
	s.publishStatus(handle, attr, MonitoringModified, param, MonitoringParameters{StatusCode: status})
}

// DataChange delivers a value notification for a server item. Notifications
// for unknown items are dropped.
func (s *Subscription) DataChange(itemID uint32, dv opcua.DataValue) {
	it, ok := s.items.lookupID(itemID)
	if !ok {
		s.opts.metrics.DroppedDataChanges.Add(1)
		return
	}
	s.opts.metrics.DataChanges.Add(1)

	var value opcua.Value
	if dv.Value != nil {
		value = opcua.VariantToValue(*dv.Value)
	}
	s.sink.Publish(AttributeUpdate{
		Handle:          it.handle,
		Attribute:       it.attr,
		Value:           value,
		SourceTimestamp: dv.SourceTimestamp.Time(),
		ServerTimestamp: dv.ServerTimestamp.Time(),
	})
}

// StatusChange delivers a subscription status notification. Only BadTimeout
// is acted on: the subscription is marked timed out and a Timeout event
// listing every monitored item is published.
func (s *Subscription) StatusChange(status opcua.StatusCode) {
	if s.state != StateActive {
		return
	}
	s.opts.metrics.StatusChanges.Add(1)
	if status != opcua.StatusBadTimeout {
		s.logger().Debug("ignoring subscription status change",
			slog.String("status", status.String()))
		return
	}

	items := s.items.all()
	refs := make([]ItemRef, len(items))
	for i, it := range items {
		refs[i] = ItemRef{Handle: it.handle, Attribute: it.attr}
	}
	s.timedOut = true
	s.opts.metrics.Timeouts.Add(1)
	s.logger().Warn("subscription timed out",
		slog.Uint64("subscription_id", uint64(s.ID())),
		slog.Int("items", len(refs)))

	s.sink.Publish(Timeout{SubscriptionID: s.ID(), Items: refs})
	if s.onTimeout != nil {
		s.onTimeout(s)
	}
}

func (s *Subscription) publishStatus(handle uint64, attr opcua.AttributeID, kind StatusKind, param Parameter, params MonitoringParameters) {
	s.sink.Publish(MonitoringStatus{
		Handle:    handle,
		Attribute: attr,
		Kind:      kind,
		Parameter: param,
		Params:    params,
	})
}

// Interval returns the publishing interval in effect.
func (s *Subscription) Interval() time.Duration { return s.interval }

// Shared returns the sharing mode.
func (s *Subscription) Shared() SubscriptionType { return s.shared }

// ID returns the server subscription id, or 0 before creation.
func (s *Subscription) ID() uint32 {
	if s.server == nil {
		return 0
	}
	return s.server.ID()
}

// MonitoredItemsCount returns the number of monitored items.
func (s *Subscription) MonitoredItemsCount() int { return s.items.len() }

// State returns the lifecycle state.
func (s *Subscription) State() State { return s.state }

// TimedOut reports whether the server reported a timeout.
func (s *Subscription) TimedOut() bool { return s.timedOut }

// MonitoredItemID returns the server id of the item monitoring attr of
// handle.
func (s *Subscription) MonitoredItemID(handle uint64, attr opcua.AttributeID) (uint32, error) {
	if s.state != StateActive {
		return 0, opcua.ErrSubscriptionNotCreated
	}
	it, ok := s.items.lookupKey(handle, attr)
	if !ok {
		return 0, opcua.ErrMonitoredItemNotFound
	}
	return it.id, nil
}
