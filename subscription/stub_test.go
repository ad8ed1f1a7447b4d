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
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	opcua "github.com/edgeo-scada/opcua-monitor"
)

type stubConnection struct {
	mock.Mock
}

func (c *stubConnection) CreateSubscription(ctx context.Context, interval time.Duration, n Notifier) (ServerSubscription, error) {
	ret := c.Called(ctx, interval, n)
	sub, _ := ret.Get(0).(ServerSubscription)
	return sub, ret.Error(1)
}

func (c *stubConnection) MinimumPublishingInterval(ctx context.Context) (time.Duration, error) {
	ret := c.Called(ctx)
	return ret.Get(0).(time.Duration), ret.Error(1)
}

type stubServerSubscription struct {
	mock.Mock
	id       uint32
	interval time.Duration
}

func newStubServerSubscription(id uint32, interval time.Duration) *stubServerSubscription {
	return &stubServerSubscription{id: id, interval: interval}
}

func (s *stubServerSubscription) ID() uint32                               { return s.id }
func (s *stubServerSubscription) RevisedPublishingInterval() time.Duration { return s.interval }
func (s *stubServerSubscription) RevisedMaxKeepAliveCount() uint32         { return 10 }
func (s *stubServerSubscription) RevisedLifetimeCount() uint32             { return 10000 }

func (s *stubServerSubscription) SubscribeDataChange(ctx context.Context, item opcua.ReadValueID) (uint32, error) {
	ret := s.Called(ctx, item)
	return ret.Get(0).(uint32), ret.Error(1)
}

func (s *stubServerSubscription) Unsubscribe(ctx context.Context, itemID uint32) error {
	return s.Called(ctx, itemID).Error(0)
}

func (s *stubServerSubscription) Delete(ctx context.Context) error {
	return s.Called(ctx).Error(0)
}

// recorder is a Sink remembering every event.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *recorder) statuses() []MonitoringStatus {
	var out []MonitoringStatus
	for _, e := range r.all() {
		if ms, ok := e.(MonitoringStatus); ok {
			out = append(out, ms)
		}
	}
	return out
}

func (r *recorder) last() Event {
	events := r.all()
	if len(events) == 0 {
		return nil
	}
	return events[len(events)-1]
}

// waitEvents blocks until the recorder holds at least n events.
func waitEvents(t *testing.T, r *recorder, n int) []Event {
	t.Helper()
	require.Eventually(t, func() bool { return len(r.all()) >= n }, time.Second, time.Millisecond)
	return r.all()
}
