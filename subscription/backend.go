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
	"time"

	opcua "github.com/edgeo-scada/opcua-monitor"
)

// Connection is the server session a subscription manager runs on.
type Connection interface {
	// CreateSubscription creates a subscription publishing at interval.
	// Notifications for it are delivered to n until it is deleted.
	CreateSubscription(ctx context.Context, interval time.Duration, n Notifier) (ServerSubscription, error)

	// MinimumPublishingInterval returns the fastest rate the server supports.
	MinimumPublishingInterval(ctx context.Context) (time.Duration, error)
}

// ServerSubscription is a subscription created on the server.
type ServerSubscription interface {
	ID() uint32
	RevisedPublishingInterval() time.Duration
	RevisedMaxKeepAliveCount() uint32
	RevisedLifetimeCount() uint32

	// SubscribeDataChange creates a monitored item and returns its
	// server-assigned id.
	SubscribeDataChange(ctx context.Context, item opcua.ReadValueID) (uint32, error)
	Unsubscribe(ctx context.Context, itemID uint32) error
	Delete(ctx context.Context) error
}

// Notifier receives the notifications of one server subscription. The
// connection may call it from any goroutine.
type Notifier interface {
	DataChange(itemID uint32, value opcua.DataValue)
	StatusChange(status opcua.StatusCode)
}
