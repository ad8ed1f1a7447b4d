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
	"log/slog"
	"time"
)

// Option is a functional option for subscriptions and workers.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	metrics        *Metrics
	minimum        time.Duration
	minimumSet     bool
	requestTimeout time.Duration
	queueCapacity  int
}

func defaultOptions() *options {
	return &options{
		logger:         slog.Default(),
		requestTimeout: DefaultRequestTimeout,
		queueCapacity:  DefaultQueueCapacity,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = NewMetrics()
	}
	return o
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector. Subscriptions of one worker share it.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithMinimumPublishingInterval overrides the minimum publishing interval
// otherwise read from the server when a worker starts.
func WithMinimumPublishingInterval(d time.Duration) Option {
	return func(o *options) {
		o.minimum = d
		o.minimumSet = true
	}
}

// WithRequestTimeout bounds every server round trip. Zero disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) {
		o.requestTimeout = d
	}
}

// WithQueueCapacityHint sizes the worker task queue.
func WithQueueCapacityHint(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueCapacity = n
		}
	}
}
