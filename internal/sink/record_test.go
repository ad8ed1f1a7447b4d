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

package sink

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	opcua "github.com/edgeo-scada/opcua-monitor"
	"github.com/edgeo-scada/opcua-monitor/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	records []Record
	err     error
}

func (m *memWriter) WriteRecord(r Record) error {
	m.records = append(m.records, r)
	return m.err
}

var fixedNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func newTestAdapter(writers ...Writer) *Adapter {
	a := NewAdapter(map[uint64]string{1: "ns=2;s=Tank.Level"}, slog.Default(), writers...)
	a.now = func() time.Time { return fixedNow }
	return a
}

func TestAdapterDataRecord(t *testing.T) {
	w := &memWriter{}
	a := newTestAdapter(w)

	src := time.Date(2025, 6, 1, 7, 59, 59, 0, time.UTC)
	a.Publish(subscription.AttributeUpdate{
		Handle:          1,
		Attribute:       opcua.AttributeValue,
		Value:           opcua.DoubleValue(21.5),
		SourceTimestamp: src.In(time.Local),
		ServerTimestamp: opcua.DateTime(0).Time(),
	})

	require.Len(t, w.records, 1)
	r := w.records[0]
	assert.Equal(t, KindData, r.Kind)
	assert.Equal(t, fixedNow, r.Time)
	assert.Equal(t, "ns=2;s=Tank.Level", r.Node)
	assert.Equal(t, "Value", r.Attribute)
	assert.Equal(t, "Double", r.Type)
	assert.Equal(t, 21.5, r.Value)
	require.NotNil(t, r.SourceTimestamp)
	assert.Equal(t, src, *r.SourceTimestamp)
	assert.Nil(t, r.ServerTimestamp)
}

func TestAdapterEmptyValue(t *testing.T) {
	w := &memWriter{}
	newTestAdapter(w).Publish(subscription.AttributeUpdate{Handle: 9, Attribute: opcua.AttributeValue})

	require.Len(t, w.records, 1)
	assert.Empty(t, w.records[0].Node)
	assert.Empty(t, w.records[0].Type)
	assert.Nil(t, w.records[0].Value)
}

func TestAdapterStatusRecord(t *testing.T) {
	w := &memWriter{}
	a := newTestAdapter(w)

	params := subscription.DefaultMonitoringParameters()
	params.StatusCode = opcua.StatusGood
	params.SubscriptionID = 7
	params.PublishingInterval = 250 * time.Millisecond
	params.MaxKeepAliveCount = 10
	params.LifetimeCount = 10000
	a.Publish(subscription.MonitoringStatus{
		Handle:    1,
		Attribute: opcua.AttributeValue,
		Kind:      subscription.MonitoringEnabled,
		Params:    params,
	})
	a.Publish(subscription.MonitoringStatus{
		Handle:    1,
		Attribute: opcua.AttributeValue,
		Kind:      subscription.MonitoringModified,
		Parameter: subscription.ParameterSamplingInterval,
		Params:    subscription.MonitoringParameters{StatusCode: opcua.StatusBadNotImplemented},
	})

	require.Len(t, w.records, 2)
	r := w.records[0]
	assert.Equal(t, KindStatus, r.Kind)
	assert.Equal(t, "enabled", r.Event)
	assert.Empty(t, r.Parameter)
	assert.Equal(t, "Good", r.Status)
	assert.Equal(t, uint32(7), r.SubscriptionID)
	assert.Equal(t, 250.0, r.PublishingInterval)
	assert.Equal(t, uint32(10000), r.LifetimeCount)

	r = w.records[1]
	assert.Equal(t, "modified", r.Event)
	assert.Equal(t, "SamplingInterval", r.Parameter)
	assert.Equal(t, "BadNotImplemented", r.Status)
	assert.Equal(t, uint32(opcua.StatusBadNotImplemented), r.StatusCode)
}

func TestAdapterTimeoutRecord(t *testing.T) {
	w := &memWriter{}
	newTestAdapter(w).Publish(subscription.Timeout{
		SubscriptionID: 3,
		Items: []subscription.ItemRef{
			{Handle: 1, Attribute: opcua.AttributeValue},
			{Handle: 2, Attribute: opcua.AttributeDisplayName},
		},
	})

	require.Len(t, w.records, 1)
	r := w.records[0]
	assert.Equal(t, KindTimeout, r.Kind)
	assert.Equal(t, "BadTimeout", r.Status)
	assert.Equal(t, []ItemRecord{
		{Handle: 1, Node: "ns=2;s=Tank.Level", Attribute: "Value"},
		{Handle: 2, Attribute: "DisplayName"},
	}, r.Items)
}

func TestAdapterKeepsWritingAfterError(t *testing.T) {
	failing := &memWriter{err: errors.New("disk full")}
	ok := &memWriter{}
	newTestAdapter(failing, ok).Publish(subscription.AttributeUpdate{Handle: 1})

	assert.Len(t, failing.records, 1)
	assert.Len(t, ok.records, 1)
}
