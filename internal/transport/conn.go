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

// Package transport connects the subscription manager to an OPC UA server
// through the gopcua client stack.
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	gopcua "github.com/gopcua/opcua"
	"github.com/gopcua/opcua/id"
	"github.com/gopcua/opcua/ua"

	opcua "github.com/edgeo-scada/opcua-monitor"
	"github.com/edgeo-scada/opcua-monitor/subscription"
)

// Default connection settings.
const (
	DefaultTimeout           = 10 * time.Second
	DefaultNotifyQueue       = 64
	DefaultLifetimeCount     = 10000
	DefaultMaxKeepAliveCount = 10
)

// Option is a functional option for the connection.
type Option func(*connOptions)

type connOptions struct {
	timeout       time.Duration
	username      string
	password      string
	autoReconnect bool
	notifyQueue   int
	logger        *slog.Logger
}

func defaultOptions() *connOptions {
	return &connOptions{
		timeout:       DefaultTimeout,
		autoReconnect: true,
		notifyQueue:   DefaultNotifyQueue,
		logger:        slog.Default(),
	}
}

// WithTimeout sets the request timeout of the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(o *connOptions) {
		o.timeout = d
	}
}

// WithCredentials authenticates with a user name and password instead of
// anonymously.
func WithCredentials(username, password string) Option {
	return func(o *connOptions) {
		o.username = username
		o.password = password
	}
}

// WithAutoReconnect enables or disables reconnection by the client stack.
func WithAutoReconnect(enabled bool) Option {
	return func(o *connOptions) {
		o.autoReconnect = enabled
	}
}

// WithNotifyQueue sets the notification buffer of each subscription.
func WithNotifyQueue(n int) Option {
	return func(o *connOptions) {
		if n > 0 {
			o.notifyQueue = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *connOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Connection is a session with one OPC UA server. It implements
// subscription.Connection.
type Connection struct {
	endpoint string
	opts     *connOptions
	client   *gopcua.Client

	mu        sync.Mutex
	connected bool
	subs      map[*serverSubscription]struct{}

	nextHandle atomic.Uint32
}

var _ subscription.Connection = (*Connection)(nil)

// NewConnection creates a connection to endpoint. Security negotiation is
// not supported: the session uses security policy None.
func NewConnection(endpoint string, opts ...Option) (*Connection, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	clientOpts := []gopcua.Option{
		gopcua.SecurityMode(ua.MessageSecurityModeNone),
		gopcua.SecurityPolicy(ua.SecurityPolicyURINone),
		gopcua.AutoReconnect(o.autoReconnect),
		gopcua.RequestTimeout(o.timeout),
	}
	if o.username != "" {
		clientOpts = append(clientOpts, gopcua.AuthUsername(o.username, o.password))
	} else {
		clientOpts = append(clientOpts, gopcua.AuthAnonymous())
	}

	client, err := gopcua.NewClient(endpoint, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &Connection{
		endpoint: endpoint,
		opts:     o,
		client:   client,
		subs:     make(map[*serverSubscription]struct{}),
	}, nil
}

// Connect opens the secure channel and session.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}
	if err := c.client.Connect(ctx); err != nil {
		return fmt.Errorf("connect %s: %w", c.endpoint, statusError(err))
	}
	c.connected = true
	c.opts.logger.Info("connected", slog.String("endpoint", c.endpoint))
	return nil
}

// Close stops the notification pumps and closes the session.
func (c *Connection) Close(ctx context.Context) error {
	c.mu.Lock()
	subs := make([]*serverSubscription, 0, len(c.subs))
	for s := range c.subs {
		subs = append(subs, s)
	}
	clear(c.subs)
	wasConnected := c.connected
	c.connected = false
	c.mu.Unlock()

	for _, s := range subs {
		s.stopPump()
	}
	if !wasConnected {
		return nil
	}
	if err := c.client.Close(ctx); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	c.opts.logger.Info("disconnected", slog.String("endpoint", c.endpoint))
	return nil
}

// CreateSubscription implements subscription.Connection.
func (c *Connection) CreateSubscription(ctx context.Context, interval time.Duration, n subscription.Notifier) (subscription.ServerSubscription, error) {
	c.mu.Lock()
	connected := c.connected
	c.mu.Unlock()
	if !connected {
		return nil, opcua.NewOPCUAError(opcua.ServiceCreateSubscription, opcua.StatusBadServerNotConnected, c.endpoint)
	}

	notify := make(chan *gopcua.PublishNotificationData, c.opts.notifyQueue)
	sub, err := c.client.Subscribe(ctx, &gopcua.SubscriptionParameters{
		Interval:          interval,
		LifetimeCount:     DefaultLifetimeCount,
		MaxKeepAliveCount: DefaultMaxKeepAliveCount,
	}, notify)
	if err != nil {
		return nil, statusError(err)
	}

	s := newServerSubscription(c, sub, notify, n)
	c.mu.Lock()
	c.subs[s] = struct{}{}
	c.mu.Unlock()
	go s.pump()
	return s, nil
}

// MinimumPublishingInterval reads the server's MinSupportedSampleRate.
func (c *Connection) MinimumPublishingInterval(ctx context.Context) (time.Duration, error) {
	resp, err := c.client.Read(ctx, &ua.ReadRequest{
		NodesToRead: []*ua.ReadValueID{{
			NodeID:      ua.NewNumericNodeID(0, id.Server_ServerCapabilities_MinSupportedSampleRate),
			AttributeID: ua.AttributeIDValue,
		}},
		TimestampsToReturn: ua.TimestampsToReturnNeither,
	})
	if err != nil {
		return 0, statusError(err)
	}
	if len(resp.Results) == 0 || resp.Results[0] == nil {
		return 0, errors.New("empty read response")
	}
	dv := resp.Results[0]
	if dv.Status != ua.StatusOK {
		return 0, opcua.NewOPCUAError(opcua.ServiceRead, opcua.StatusCode(dv.Status), "MinSupportedSampleRate")
	}
	if dv.Value == nil {
		return 0, nil
	}
	ms, ok := dv.Value.Value().(float64)
	if !ok {
		return 0, fmt.Errorf("MinSupportedSampleRate has type %T", dv.Value.Value())
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

func (c *Connection) forget(s *serverSubscription) {
	c.mu.Lock()
	delete(c.subs, s)
	c.mu.Unlock()
}
