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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	opcua "github.com/edgeo-scada/opcua-monitor"
)

func TestDispatcherPreservesOrder(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec)
	for i := 0; i < 1000; i++ {
		d.Publish(AttributeUpdate{Handle: uint64(i)})
	}
	d.Close()

	events := rec.all()
	require.Len(t, events, 1000)
	for i, e := range events {
		assert.Equal(t, uint64(i), e.(AttributeUpdate).Handle)
	}
}

func TestDispatcherDoesNotBlockOnSlowSink(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	var got int
	d := NewDispatcher(SinkFunc(func(Event) {
		<-release
		mu.Lock()
		got++
		mu.Unlock()
	}))

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			d.Publish(Timeout{})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow sink")
	}

	close(release)
	d.Close()
	assert.Equal(t, 100, got)
	assert.Equal(t, 0, d.Pending())
}

func TestDispatcherDropsAfterClose(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec)
	d.Close()
	d.Publish(Timeout{})
	d.Close()
	assert.Empty(t, rec.all())
}

func TestMultiSink(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	MultiSink{a, b}.Publish(MonitoringStatus{Handle: 1, Params: MonitoringParameters{StatusCode: opcua.StatusGood}})
	assert.Len(t, a.all(), 1)
	assert.Len(t, b.all(), 1)
}

func TestStatusKindString(t *testing.T) {
	assert.Equal(t, "enabled", MonitoringEnabled.String())
	assert.Equal(t, "disabled", MonitoringDisabled.String())
	assert.Equal(t, "modified", MonitoringModified.String())
}

func TestParameterNames(t *testing.T) {
	p, err := ParseParameter("samplinginterval")
	require.NoError(t, err)
	assert.Equal(t, ParameterSamplingInterval, p)
	assert.Equal(t, "QueueSize", ParameterQueueSize.String())

	_, err = ParseParameter("None")
	assert.Error(t, err)
}

func TestRevisePublishingInterval(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, RevisePublishingInterval(100*time.Millisecond, 500*time.Millisecond))
	assert.Equal(t, time.Second, RevisePublishingInterval(time.Second, 500*time.Millisecond))
}
