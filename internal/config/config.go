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

// Package config loads the YAML description of what the monitor command
// watches and where it sends the events.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	opcua "github.com/edgeo-scada/opcua-monitor"
	"github.com/edgeo-scada/opcua-monitor/subscription"
)

// Defaults applied by Parse.
const (
	DefaultEndpoint  = "opc.tcp://localhost:4840"
	DefaultTimeout   = 10 * time.Second
	DefaultAttribute = "Value"
)

// Config is the monitor configuration.
type Config struct {
	Endpoint           string        `yaml:"endpoint"`
	Username           string        `yaml:"username"`
	Password           string        `yaml:"password"`
	Timeout            time.Duration `yaml:"timeout"`
	PublishingInterval time.Duration `yaml:"publishing_interval"`
	Shared             *bool         `yaml:"shared"`
	Items              []Item        `yaml:"items"`
	Sinks              Sinks         `yaml:"sinks"`
}

// Item is one monitored attribute. Zero fields inherit the top-level
// settings; a zero handle becomes the item's position, starting at 1.
type Item struct {
	Node       string        `yaml:"node"`
	Attribute  string        `yaml:"attribute"`
	Handle     uint64        `yaml:"handle"`
	Interval   time.Duration `yaml:"interval"`
	Shared     *bool         `yaml:"shared"`
	IndexRange string        `yaml:"index_range"`
}

// Sinks selects the event outputs. Empty sections are disabled.
type Sinks struct {
	NATS      NATSSink      `yaml:"nats"`
	Journal   JournalSink   `yaml:"journal"`
	Websocket WebsocketSink `yaml:"websocket"`
}

// NATSSink publishes events to a NATS server.
type NATSSink struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// JournalSink appends events to a CBOR file.
type JournalSink struct {
	Path string `yaml:"path"`
}

// WebsocketSink serves events to websocket clients.
type WebsocketSink struct {
	Listen string `yaml:"listen"`
}

// Monitor is a validated item ready for subscription.Worker.EnableMonitoring.
type Monitor struct {
	Handle    uint64
	Node      opcua.NodeID
	Attribute opcua.AttributeID
	Params    subscription.MonitoringParameters
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills in every unset field.
func (c *Config) SetDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.PublishingInterval == 0 {
		c.PublishingInterval = subscription.DefaultPublishingInterval
	}
	if c.Shared == nil {
		shared := true
		c.Shared = &shared
	}
	for i := range c.Items {
		it := &c.Items[i]
		if it.Attribute == "" {
			it.Attribute = DefaultAttribute
		}
		if it.Handle == 0 {
			it.Handle = uint64(i + 1)
		}
		if it.Interval == 0 {
			it.Interval = c.PublishingInterval
		}
		if it.Shared == nil {
			it.Shared = c.Shared
		}
	}
}

// Validate reports every problem found in the configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative"))
	}
	if c.PublishingInterval <= 0 {
		errs = append(errs, fmt.Errorf("publishing_interval must be positive"))
	}
	if len(c.Items) == 0 {
		errs = append(errs, fmt.Errorf("no items configured"))
	}

	seen := make(map[string]int)
	for i, it := range c.Items {
		if _, err := opcua.ParseNodeID(it.Node); err != nil {
			errs = append(errs, fmt.Errorf("items[%d]: node %q: %w", i, it.Node, err))
		}
		attr, err := opcua.ParseAttributeID(it.Attribute)
		if err != nil {
			errs = append(errs, fmt.Errorf("items[%d]: %w", i, err))
		}
		if it.Interval <= 0 {
			errs = append(errs, fmt.Errorf("items[%d]: interval must be positive", i))
		}
		key := fmt.Sprintf("%d/%d", it.Handle, attr)
		if j, dup := seen[key]; dup && err == nil {
			errs = append(errs, fmt.Errorf("items[%d]: handle %d attribute %s already used by items[%d]", i, it.Handle, attr, j))
		}
		seen[key] = i
	}
	return errors.Join(errs...)
}

// Monitors resolves the items of a validated configuration.
func (c *Config) Monitors() []Monitor {
	out := make([]Monitor, 0, len(c.Items))
	for _, it := range c.Items {
		node, _ := opcua.ParseNodeID(it.Node)
		attr, _ := opcua.ParseAttributeID(it.Attribute)

		params := subscription.DefaultMonitoringParameters()
		params.PublishingInterval = it.Interval
		params.IndexRange = it.IndexRange
		params.Shared = subscription.Exclusive
		if it.Shared == nil || *it.Shared {
			params.Shared = subscription.Shared
		}
		out = append(out, Monitor{
			Handle:    it.Handle,
			Node:      node,
			Attribute: attr,
			Params:    params,
		})
	}
	return out
}

// Nodes maps each handle to the textual node id it monitors.
func (c *Config) Nodes() map[uint64]string {
	nodes := make(map[uint64]string, len(c.Items))
	for _, it := range c.Items {
		nodes[it.Handle] = it.Node
	}
	return nodes
}
