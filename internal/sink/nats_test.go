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
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(subject string, data []byte) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

func TestNATSSubject(t *testing.T) {
	n := NewNATS(&mockPublisher{}, "")
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"node", Record{Kind: KindData, Node: "ns=2;s=Tank.Level", Attribute: "Value"}, "opcua.data.ns_2_s_Tank_Level.Value"},
		{"handle", Record{Kind: KindStatus, Handle: 42, Attribute: "DisplayName"}, "opcua.status.42.DisplayName"},
		{"timeout", Record{Kind: KindTimeout, SubscriptionID: 3}, "opcua.timeout.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Subject(tt.rec))
		})
	}
	assert.Equal(t, "plant.data.1.Value", NewNATS(nil, "plant").Subject(Record{Kind: KindData, Handle: 1, Attribute: "Value"}))
}

func TestNATSWriteRecord(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", "opcua.data.ns_2_i_5.Value", mock.MatchedBy(func(data []byte) bool {
		var r Record
		return json.Unmarshal(data, &r) == nil && r.Value == "open"
	})).Return(nil).Once()

	n := NewNATS(pub, "opcua")
	require.NoError(t, n.WriteRecord(Record{Kind: KindData, Node: "ns=2;i=5", Attribute: "Value", Value: "open"}))
	pub.AssertExpectations(t)
}

func TestNATSWriteRecordError(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("nats: connection closed"))

	err := NewNATS(pub, "opcua").WriteRecord(Record{Kind: KindData, Handle: 1})
	assert.EqualError(t, err, "nats: connection closed")
}
