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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	opcua "github.com/edgeo-scada/opcua-monitor"
)

var nodeIDCmd = &cobra.Command{
	Use:   "nodeid <node-id>...",
	Short: "Parse and normalize node ids",
	Long: `Parse node ids in the ns=<index>;<i|s|g|b>=<identifier> form and print
their parts, canonical text and binary encoding.

Examples:
  edgeo-opcua nodeid "ns=2;s=Tank.Level"
  edgeo-opcua nodeid "ns=0;i=2258" "ns=1;g=72962b91-fa75-4ae6-8d28-b404dc7daf63" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNodeID,
}

var nodeIDJSON bool

func init() {
	nodeIDCmd.Flags().BoolVar(&nodeIDJSON, "json", false, "Print results as JSON")
}

type nodeIDInfo struct {
	Input      string `json:"input"`
	Valid      bool   `json:"valid"`
	Error      string `json:"error,omitempty"`
	Namespace  uint16 `json:"namespace"`
	Type       string `json:"type,omitempty"`
	Identifier string `json:"identifier,omitempty"`
	Canonical  string `json:"canonical"`
	Binary     string `json:"binary"`
}

var nodeIDTypeNames = map[opcua.NodeIDType]string{
	opcua.NodeIDTypeNumeric: "Numeric",
	opcua.NodeIDTypeString:  "String",
	opcua.NodeIDTypeGUID:    "Guid",
	opcua.NodeIDTypeOpaque:  "Opaque",
}

func describeNodeID(s string) nodeIDInfo {
	n, err := opcua.ParseNodeID(s)
	info := nodeIDInfo{Input: s, Valid: err == nil, Canonical: n.String()}
	if err != nil {
		info.Error = err.Error()
	} else {
		info.Namespace = n.Namespace()
		info.Type = nodeIDTypeNames[n.Type()]
		info.Identifier = strings.SplitN(n.String(), "=", 3)[2]
	}
	e := opcua.NewEncoder()
	e.WriteNodeID(n)
	info.Binary = hex.EncodeToString(e.Bytes())
	return info
}

func runNodeID(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	infos := make([]nodeIDInfo, len(args))
	invalid := 0
	for i, a := range args {
		infos[i] = describeNodeID(a)
		if !infos[i].Valid {
			invalid++
		}
	}

	if nodeIDJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return err
		}
	} else {
		for _, info := range infos {
			fmt.Fprintf(out, "%s\n", info.Input)
			if !info.Valid {
				fmt.Fprintf(out, "  Error: %s\n", info.Error)
			} else {
				fmt.Fprintf(out, "  Namespace: %d\n", info.Namespace)
				fmt.Fprintf(out, "  Type: %s\n", info.Type)
				fmt.Fprintf(out, "  Identifier: %s\n", info.Identifier)
			}
			fmt.Fprintf(out, "  Canonical: %s\n", info.Canonical)
			fmt.Fprintf(out, "  Binary: %s\n", info.Binary)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d node ids are invalid", invalid, len(args))
	}
	return nil
}
