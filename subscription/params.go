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
	"strings"
	"time"

	opcua "github.com/edgeo-scada/opcua-monitor"
)

// Default subscription settings.
const (
	DefaultPublishingInterval = time.Second
	DefaultRequestTimeout     = 10 * time.Second
	DefaultQueueCapacity      = 256
)

// SubscriptionType selects whether a subscription may be reused by items
// requesting the same publishing interval.
type SubscriptionType uint8

const (
	Shared SubscriptionType = iota
	Exclusive
)

// String returns the string representation of the subscription type.
func (t SubscriptionType) String() string {
	switch t {
	case Shared:
		return "Shared"
	case Exclusive:
		return "Exclusive"
	default:
		return fmt.Sprintf("SubscriptionType(%d)", t)
	}
}

// Parameter names a monitoring setting that a client may ask to change.
type Parameter uint32

const (
	ParameterNone                       Parameter = 0
	ParameterPublishingEnabled          Parameter = 1 << 0
	ParameterPublishingInterval         Parameter = 1 << 1
	ParameterLifetimeCount              Parameter = 1 << 2
	ParameterMaxKeepAliveCount          Parameter = 1 << 3
	ParameterMaxNotificationsPerPublish Parameter = 1 << 4
	ParameterPriority                   Parameter = 1 << 5
	ParameterSamplingInterval           Parameter = 1 << 6
	ParameterFilter                     Parameter = 1 << 7
	ParameterQueueSize                  Parameter = 1 << 8
	ParameterDiscardOldest              Parameter = 1 << 9
	ParameterMonitoringMode             Parameter = 1 << 10
)

var parameterNames = map[Parameter]string{
	ParameterNone:                       "None",
	ParameterPublishingEnabled:          "PublishingEnabled",
	ParameterPublishingInterval:         "PublishingInterval",
	ParameterLifetimeCount:              "LifetimeCount",
	ParameterMaxKeepAliveCount:          "MaxKeepAliveCount",
	ParameterMaxNotificationsPerPublish: "MaxNotificationsPerPublish",
	ParameterPriority:                   "Priority",
	ParameterSamplingInterval:           "SamplingInterval",
	ParameterFilter:                     "Filter",
	ParameterQueueSize:                  "QueueSize",
	ParameterDiscardOldest:              "DiscardOldest",
	ParameterMonitoringMode:             "MonitoringMode",
}

// String returns the string representation of the parameter.
func (p Parameter) String() string {
	if name, ok := parameterNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Parameter(0x%X)", uint32(p))
}

// ParseParameter returns the parameter with the given name, ignoring case.
func ParseParameter(name string) (Parameter, error) {
	for p, n := range parameterNames {
		if p != ParameterNone && strings.EqualFold(n, name) {
			return p, nil
		}
	}
	return ParameterNone, fmt.Errorf("unknown monitoring parameter %q", name)
}

// MonitoringParameters describes how an attribute is monitored. Callers fill
// in the requested PublishingInterval, Shared and IndexRange; the fields
// reported back in status events carry the values in effect on the server.
type MonitoringParameters struct {
	StatusCode         opcua.StatusCode
	SubscriptionID     uint32
	PublishingInterval time.Duration
	SamplingInterval   time.Duration
	MaxKeepAliveCount  uint32
	LifetimeCount      uint32
	Shared             SubscriptionType
	IndexRange         string
}

// DefaultMonitoringParameters returns a one second shared request.
func DefaultMonitoringParameters() MonitoringParameters {
	return MonitoringParameters{
		PublishingInterval: DefaultPublishingInterval,
		Shared:             Shared,
	}
}

// RevisePublishingInterval returns the interval actually requested from the
// server: the larger of the requested interval and the server minimum.
func RevisePublishingInterval(requested, minimum time.Duration) time.Duration {
	if requested < minimum {
		return minimum
	}
	return requested
}
