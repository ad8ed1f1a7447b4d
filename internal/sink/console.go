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
	"fmt"
	"io"
	"strings"
	"sync"
)

// Console prints records as single text lines, or as JSON lines when
// JSON is set.
type Console struct {
	mu   sync.Mutex
	out  io.Writer
	JSON bool
}

var _ Writer = (*Console)(nil)

// NewConsole creates a console writer on out.
func NewConsole(out io.Writer, asJSON bool) *Console {
	return &Console{out: out, JSON: asJSON}
}

// WriteRecord implements Writer.
func (c *Console) WriteRecord(r Record) error {
	var line string
	if c.JSON {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		line = string(data)
	} else {
		line = FormatRecord(r)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.out, line)
	return err
}

// FormatRecord renders a record the way the console prints it.
func FormatRecord(r Record) string {
	ts := r.Time.Format("15:04:05.000")
	name := r.Node
	if name == "" {
		name = fmt.Sprintf("handle=%d", r.Handle)
	}

	switch r.Kind {
	case KindData:
		value := "<empty>"
		if r.Value != nil {
			value = fmt.Sprintf("%v", r.Value)
		}
		return fmt.Sprintf("[%s] %s.%s = %s", ts, name, r.Attribute, value)
	case KindStatus:
		s := fmt.Sprintf("[%s] %s.%s monitoring %s: %s", ts, name, r.Attribute, r.Event, r.Status)
		if r.SubscriptionID != 0 {
			s += fmt.Sprintf(" (subscription %d, %.0fms)", r.SubscriptionID, r.PublishingInterval)
		}
		return s
	case KindTimeout:
		items := make([]string, len(r.Items))
		for i, it := range r.Items {
			n := it.Node
			if n == "" {
				n = fmt.Sprintf("handle=%d", it.Handle)
			}
			items[i] = n + "." + it.Attribute
		}
		return fmt.Sprintf("[%s] subscription %d timed out: %s", ts, r.SubscriptionID, strings.Join(items, ", "))
	default:
		return fmt.Sprintf("[%s] %s %s", ts, r.Kind, name)
	}
}
