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
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	gopcua "github.com/gopcua/opcua"
	"github.com/gopcua/opcua/ua"

	opcua "github.com/edgeo-scada/opcua-monitor"
	"github.com/edgeo-scada/opcua-monitor/subscription"
)

// serverSubscription wraps a gopcua subscription. A pump goroutine moves its
// notifications to the subscription manager, translating the client
// handles gopcua reports into server item ids.
type serverSubscription struct {
	conn     *Connection
	sub      *gopcua.Subscription
	notify   chan *gopcua.PublishNotificationData
	notifier subscription.Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	items   map[uint32]uint32 // client handle -> monitored item id
	handles map[uint32]uint32 // monitored item id -> client handle

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

var _ subscription.ServerSubscription = (*serverSubscription)(nil)

func newServerSubscription(c *Connection, sub *gopcua.Subscription, notify chan *gopcua.PublishNotificationData, n subscription.Notifier) *serverSubscription {
	s := &serverSubscription{
		conn:     c,
		sub:      sub,
		notify:   notify,
		notifier: n,
		items:    make(map[uint32]uint32),
		handles:  make(map[uint32]uint32),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	s.logger = c.opts.logger
	if sub != nil {
		s.logger = s.logger.With(slog.Uint64("subscription_id", uint64(sub.SubscriptionID)))
	}
	return s
}

func (s *serverSubscription) ID() uint32 { return s.sub.SubscriptionID }

func (s *serverSubscription) RevisedPublishingInterval() time.Duration {
	return s.sub.RevisedPublishingInterval
}

func (s *serverSubscription) RevisedMaxKeepAliveCount() uint32 { return s.sub.RevisedMaxKeepAliveCount }

func (s *serverSubscription) RevisedLifetimeCount() uint32 { return s.sub.RevisedLifetimeCount }

// SubscribeDataChange creates one monitored item reporting both timestamps.
func (s *serverSubscription) SubscribeDataChange(ctx context.Context, item opcua.ReadValueID) (uint32, error) {
	handle := s.conn.nextHandle.Add(1)
	req := gopcua.NewMonitoredItemCreateRequestWithDefaults(toUANodeID(item.NodeID), ua.AttributeID(item.AttributeID), handle)
	req.ItemToMonitor.IndexRange = item.IndexRange

	res, err := s.sub.Monitor(ctx, ua.TimestampsToReturnBoth, req)
	if err != nil {
		return 0, statusError(err)
	}
	if len(res.Results) == 0 || res.Results[0] == nil {
		return 0, nil
	}
	result := res.Results[0]
	if result.StatusCode != ua.StatusOK {
		return 0, opcua.NewOPCUAError(opcua.ServiceCreateMonitoredItems, opcua.StatusCode(result.StatusCode), item.NodeID.String())
	}
	s.track(handle, result.MonitoredItemID)
	return result.MonitoredItemID, nil
}

func (s *serverSubscription) Unsubscribe(ctx context.Context, itemID uint32) error {
	s.untrack(itemID)
	res, err := s.sub.Unmonitor(ctx, itemID)
	if err != nil {
		return statusError(err)
	}
	if len(res.Results) > 0 && res.Results[0] != ua.StatusOK {
		return opcua.NewOPCUAError(opcua.ServiceDeleteMonitoredItems, opcua.StatusCode(res.Results[0]), "")
	}
	return nil
}

// Delete cancels the subscription on the server and stops the pump.
func (s *serverSubscription) Delete(ctx context.Context) error {
	defer s.conn.forget(s)
	// The pump may be blocked handing a notification to a caller that is
	// itself waiting on Delete, so it is only told to stop here.
	defer s.signalStop()
	if err := s.sub.Cancel(ctx); err != nil {
		return statusError(err)
	}
	return nil
}

func (s *serverSubscription) track(handle, itemID uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[handle] = itemID
	s.handles[itemID] = handle
}

func (s *serverSubscription) untrack(itemID uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if handle, ok := s.handles[itemID]; ok {
		delete(s.items, handle)
		delete(s.handles, itemID)
	}
}

func (s *serverSubscription) itemID(handle uint32) (uint32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.items[handle]
	return id, ok
}

func (s *serverSubscription) signalStop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// stopPump stops the pump and waits for it to return.
func (s *serverSubscription) stopPump() {
	s.signalStop()
	<-s.done
}

// pump runs until stopPump. The notify channel is never closed since the
// client stack may still hold it.
func (s *serverSubscription) pump() {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			return
		case msg := <-s.notify:
			s.dispatch(msg)
		}
	}
}

func (s *serverSubscription) dispatch(msg *gopcua.PublishNotificationData) {
	if msg == nil {
		return
	}
	if msg.Error != nil {
		status := statusOf(msg.Error)
		s.logger.Warn("subscription error",
			slog.String("status", status.String()),
			slog.Any("error", msg.Error))
		s.notifier.StatusChange(status)
		return
	}

	switch v := msg.Value.(type) {
	case *ua.DataChangeNotification:
		for _, item := range v.MonitoredItems {
			if item == nil {
				continue
			}
			id, ok := s.itemID(item.ClientHandle)
			if !ok {
				continue
			}
			s.notifier.DataChange(id, fromUADataValue(item.Value))
		}
	case *ua.StatusChangeNotification:
		s.notifier.StatusChange(opcua.StatusCode(v.Status))
	default:
		s.logger.Debug("ignoring notification", slog.String("type", typeName(msg.Value)))
	}
}

// statusError makes the status code carried by a gopcua error visible to
// errors.As as an opcua.StatusCode.
func statusError(err error) error {
	var sc ua.StatusCode
	if errors.As(err, &sc) {
		return &statusErr{err: err, status: opcua.StatusCode(sc)}
	}
	return err
}

type statusErr struct {
	err    error
	status opcua.StatusCode
}

func (e *statusErr) Error() string   { return e.err.Error() }
func (e *statusErr) Unwrap() []error { return []error{e.err, e.status} }

func statusOf(err error) opcua.StatusCode {
	return opcua.StatusFromError(statusError(err))
}
