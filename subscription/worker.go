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
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	opcua "github.com/edgeo-scada/opcua-monitor"
)

// Info describes a subscription owned by a Worker.
type Info struct {
	ID       uint32           `json:"id"`
	Interval time.Duration    `json:"interval"`
	Shared   SubscriptionType `json:"shared"`
	Items    int              `json:"items"`
}

// Worker serializes every monitoring request and server notification of one
// connection on a single goroutine. It groups monitored attributes into
// subscriptions by publishing interval and publishes events through a
// Dispatcher so that a slow sink never stalls the connection.
type Worker struct {
	conn       Connection
	opts       *options
	dispatcher *Dispatcher

	tasks     chan func()
	quit      chan struct{}
	done      chan struct{}
	started   atomic.Bool
	closeOnce sync.Once
	ctx       context.Context
	cancel    context.CancelFunc

	// Owned by the worker goroutine.
	subs   map[*Subscription]*queuedNotifier
	shared map[time.Duration]*Subscription
	owners map[itemKey]*Subscription
}

// NewWorker creates a worker for conn publishing events to sink. Call Start
// to begin processing.
func NewWorker(conn Connection, sink Sink, opts ...Option) *Worker {
	o := applyOptions(opts)
	return &Worker{
		conn:       conn,
		opts:       o,
		dispatcher: NewDispatcher(sink),
		tasks:      make(chan func(), o.queueCapacity),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		subs:       make(map[*Subscription]*queuedNotifier),
		shared:     make(map[time.Duration]*Subscription),
		owners:     make(map[itemKey]*Subscription),
	}
}

// Start reads the server's minimum publishing interval, unless one was
// configured, and starts the worker goroutine. Server requests issued by
// the worker are bound to ctx.
func (w *Worker) Start(ctx context.Context) error {
	select {
	case <-w.quit:
		return opcua.ErrClosed
	default:
	}
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("subscription: worker already started")
	}

	if !w.opts.minimumSet {
		minimum, err := w.conn.MinimumPublishingInterval(ctx)
		if err != nil {
			w.opts.logger.Warn("failed to read minimum publishing interval",
				slog.Any("error", err))
		} else {
			w.opts.minimum = minimum
		}
	}

	w.ctx, w.cancel = context.WithCancel(ctx)
	go w.run()
	w.opts.logger.Debug("subscription worker started",
		slog.Duration("minimum_interval", w.opts.minimum))
	return nil
}

func (w *Worker) run() {
	defer close(w.done)
	for {
		select {
		case fn := <-w.tasks:
			fn()
		case <-w.quit:
			return
		}
	}
}

// post queues fn for the worker goroutine.
func (w *Worker) post(ctx context.Context, fn func()) error {
	select {
	case <-w.quit:
		return opcua.ErrClosed
	default:
	}
	select {
	case w.tasks <- fn:
		return nil
	case <-w.quit:
		return opcua.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// call runs fn on the worker goroutine and waits for it to finish.
func (w *Worker) call(ctx context.Context, fn func()) error {
	if !w.started.Load() {
		return errors.New("subscription: worker not started")
	}
	finished := make(chan struct{})
	if err := w.post(ctx, func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// enqueue queues a notification. Notifications arriving after Close, or
// after stop was closed, are dropped.
func (w *Worker) enqueue(stop <-chan struct{}, fn func()) {
	select {
	case <-stop:
		return
	default:
	}
	select {
	case w.tasks <- fn:
	case <-w.quit:
	case <-stop:
	}
}

// EnableMonitoring asks for attribute attr of node to be monitored for the
// client handle. The outcome is published as a MonitoringEnabled event.
func (w *Worker) EnableMonitoring(ctx context.Context, handle uint64, attr opcua.AttributeID, node opcua.NodeID, params MonitoringParameters) error {
	return w.post(ctx, func() { w.enable(handle, attr, node, params) })
}

// DisableMonitoring stops monitoring attribute attr for the client handle.
// The outcome is published as a MonitoringDisabled event.
func (w *Worker) DisableMonitoring(ctx context.Context, handle uint64, attr opcua.AttributeID) error {
	return w.post(ctx, func() { w.disable(handle, attr) })
}

// ModifyMonitoring asks for a monitoring parameter to change. The outcome
// is published as a MonitoringModified event.
func (w *Worker) ModifyMonitoring(ctx context.Context, handle uint64, attr opcua.AttributeID, param Parameter, value interface{}) error {
	return w.post(ctx, func() { w.modify(handle, attr, param, value) })
}

// Subscriptions returns a snapshot of the live subscriptions ordered by id.
func (w *Worker) Subscriptions(ctx context.Context) ([]Info, error) {
	result := make(chan []Info, 1)
	err := w.call(ctx, func() {
		out := make([]Info, 0, len(w.subs))
		for sub := range w.subs {
			out = append(out, Info{
				ID:       sub.ID(),
				Interval: sub.Interval(),
				Shared:   sub.Shared(),
				Items:    sub.MonitoredItemsCount(),
			})
		}
		result <- out
	})
	if err != nil {
		return nil, err
	}
	out := <-result
	slices.SortFunc(out, func(a, b Info) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// Metrics returns the metrics shared by the worker's subscriptions.
func (w *Worker) Metrics() *Metrics { return w.opts.metrics }

// Close tears down every subscription, reporting BadDisconnect for each
// monitored item, stops the worker and delivers the pending events. When
// ctx expires before the worker gets to the teardown, it runs once the
// worker goroutine has stopped.
func (w *Worker) Close(ctx context.Context) error {
	var err error
	w.closeOnce.Do(func() {
		if w.started.Load() {
			err = w.call(ctx, w.releaseAll)
			close(w.quit)
			<-w.done
			// The worker goroutine is gone, so the maps are ours now.
			w.releaseAll()
			w.cancel()
		} else {
			close(w.quit)
		}
		w.dispatcher.Close()
	})
	return err
}

func (w *Worker) enable(handle uint64, attr opcua.AttributeID, node opcua.NodeID, params MonitoringParameters) {
	key := itemKey{handle, attr}
	if owner, ok := w.owners[key]; ok {
		w.opts.logger.Warn("attribute is already monitored",
			slog.Uint64("handle", handle),
			slog.String("attribute", attr.String()),
			slog.Uint64("subscription_id", uint64(owner.ID())))
		w.dispatcher.Publish(MonitoringStatus{
			Handle:    handle,
			Attribute: attr,
			Kind:      MonitoringEnabled,
			Params:    MonitoringParameters{StatusCode: opcua.StatusBadInvalidState},
		})
		return
	}

	sub := w.subscriptionFor(params)
	if sub.State() == StateUncreated {
		// A failed create leaves sub uncreated and the add below reports
		// BadSubscriptionIdInvalid.
		_, _ = sub.CreateOnServer(w.ctx)
	}
	if sub.AddAttributeMonitoredItem(w.ctx, handle, attr, node, params) {
		w.owners[key] = sub
		return
	}
	if sub.MonitoredItemsCount() == 0 {
		w.release(sub)
	}
}

func (w *Worker) disable(handle uint64, attr opcua.AttributeID) {
	key := itemKey{handle, attr}
	sub, ok := w.owners[key]
	if !ok {
		w.dispatcher.Publish(MonitoringStatus{
			Handle:    handle,
			Attribute: attr,
			Kind:      MonitoringDisabled,
			Params:    MonitoringParameters{StatusCode: opcua.StatusBadMonitoredItemIdInvalid},
		})
		return
	}
	sub.RemoveAttributeMonitoredItem(w.ctx, handle, attr)
	delete(w.owners, key)
	if sub.MonitoredItemsCount() == 0 {
		w.release(sub)
	}
}

func (w *Worker) modify(handle uint64, attr opcua.AttributeID, param Parameter, value interface{}) {
	sub, ok := w.owners[itemKey{handle, attr}]
	if !ok {
		w.dispatcher.Publish(MonitoringStatus{
			Handle:    handle,
			Attribute: attr,
			Kind:      MonitoringModified,
			Parameter: param,
			Params:    MonitoringParameters{StatusCode: opcua.StatusBadAttributeIdInvalid},
		})
		return
	}
	sub.ModifyMonitoring(handle, attr, param, value)
}

// subscriptionFor returns the subscription a new item requesting params
// goes to, creating one when no shared subscription fits.
func (w *Worker) subscriptionFor(params MonitoringParameters) *Subscription {
	requested := params.PublishingInterval
	if requested <= 0 {
		requested = DefaultPublishingInterval
	}
	interval := RevisePublishingInterval(requested, w.opts.minimum)
	if params.Shared == Shared {
		if sub, ok := w.shared[interval]; ok {
			return sub
		}
	}

	sub := newSubscription(w.conn, interval, params.Shared, w.dispatcher, w.opts)
	n := &queuedNotifier{w: w, sub: sub, stop: make(chan struct{})}
	sub.notifier = n
	sub.onTimeout = w.timedOut
	sub.onEvict = w.evicted
	w.subs[sub] = n
	if params.Shared == Shared {
		w.shared[interval] = sub
	}
	return sub
}

// timedOut forgets a subscription the server reported as timed out and
// tears it down.
func (w *Worker) timedOut(sub *Subscription) {
	for key, owner := range w.owners {
		if owner == sub {
			delete(w.owners, key)
		}
	}
	w.release(sub)
}

// evicted forgets an item the subscription dropped on its own.
func (w *Worker) evicted(sub *Subscription, handle uint64, attr opcua.AttributeID) {
	key := itemKey{handle, attr}
	if w.owners[key] == sub {
		delete(w.owners, key)
	}
}

// release tears sub down. Its notifications stop being queued first: the
// server side may wait for its notification source to drain while the
// worker goroutine is busy here.
func (w *Worker) release(sub *Subscription) {
	if n, ok := w.subs[sub]; ok {
		close(n.stop)
		delete(w.subs, sub)
	}
	for interval, s := range w.shared {
		if s == sub {
			delete(w.shared, interval)
		}
	}
	sub.RemoveOnServer(w.ctx)
}

func (w *Worker) releaseAll() {
	for sub := range w.subs {
		w.release(sub)
	}
	clear(w.owners)
}

// queuedNotifier moves server notifications onto the worker goroutine
// until the subscription is released.
type queuedNotifier struct {
	w    *Worker
	sub  *Subscription
	stop chan struct{}
}

func (n *queuedNotifier) DataChange(itemID uint32, value opcua.DataValue) {
	n.w.enqueue(n.stop, func() { n.sub.DataChange(itemID, value) })
}

func (n *queuedNotifier) StatusChange(status opcua.StatusCode) {
	n.w.enqueue(n.stop, func() { n.sub.StatusChange(status) })
}
