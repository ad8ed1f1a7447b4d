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

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/spf13/viper"

	opcua "github.com/edgeo-scada/opcua-monitor"
	"github.com/edgeo-scada/opcua-monitor/internal/transport"
	"github.com/edgeo-scada/opcua-monitor/subscription"
)

// newLogger creates the process logger. Verbose output enables debug
// records.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	opcua.SetLogger(logger)
	return logger
}

// requestTimeout returns the --timeout flag, or OPCUA_TIMEOUT, as a duration.
func requestTimeout() time.Duration {
	return time.Duration(viper.GetInt("timeout")) * time.Millisecond
}

// buildConnectionOptions creates transport options from CLI flags and the
// configuration.
func buildConnectionOptions(timeout time.Duration, user, pass string, logger *slog.Logger) []transport.Option {
	opts := []transport.Option{
		transport.WithTimeout(timeout),
		transport.WithAutoReconnect(true),
		transport.WithLogger(logger),
	}
	if user != "" {
		opts = append(opts, transport.WithCredentials(user, pass))
	}
	return opts
}

// printMetrics writes the collected metrics in a stable order.
func printMetrics(w io.Writer, m *subscription.Metrics) {
	values := m.Collect()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(w, "Metrics:")
	for _, k := range keys {
		fmt.Fprintf(w, "  %-22s %v\n", k+":", values[k])
	}
}

// printSubscriptions lists the active subscriptions.
func printSubscriptions(w io.Writer, subs []subscription.Info) {
	if len(subs) == 0 {
		fmt.Fprintln(w, "No active subscriptions")
		return
	}
	fmt.Fprintf(w, "%d active subscriptions:\n", len(subs))
	for _, s := range subs {
		fmt.Fprintf(w, "  [%d] interval=%s %s items=%d\n", s.ID, s.Interval, s.Shared, s.Items)
	}
}
