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
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher is the part of *nats.Conn the NATS writer uses.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATS publishes records as JSON on <prefix>.<kind>.<node or handle>.
type NATS struct {
	pub    Publisher
	prefix string
}

var _ Writer = (*NATS)(nil)

// NewNATS creates a NATS writer. The prefix defaults to "opcua".
func NewNATS(pub Publisher, prefix string) *NATS {
	if prefix == "" {
		prefix = "opcua"
	}
	return &NATS{pub: pub, prefix: prefix}
}

// WriteRecord implements Writer.
func (n *NATS) WriteRecord(r Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return n.pub.Publish(n.Subject(r), data)
}

// Subject returns the subject a record is published on.
func (n *NATS) Subject(r Record) string {
	if r.Kind == KindTimeout {
		return fmt.Sprintf("%s.%s.%d", n.prefix, r.Kind, r.SubscriptionID)
	}
	token := fmt.Sprintf("%d", r.Handle)
	if r.Node != "" {
		token = subjectToken(r.Node)
	}
	return fmt.Sprintf("%s.%s.%s.%s", n.prefix, r.Kind, token, r.Attribute)
}

// subjectToken turns a textual node id into a single subject token:
// "ns=2;s=Tank.Level" becomes "ns_2_s_Tank_Level".
func subjectToken(node string) string {
	r := strings.NewReplacer(".", "_", ";", "_", "=", "_", " ", "_", "*", "_", ">", "_")
	return r.Replace(node)
}

// ConnectNATS connects to the servers, reconnecting forever once connected.
func ConnectNATS(servers string, logger *slog.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = slog.Default()
	}
	nc, err := nats.Connect(servers,
		nats.Name("edgeo-opcua"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(5*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", slog.Any("error", err))
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect NATS %s: %w", servers, err)
	}
	return nc, nil
}
