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
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edgeo-scada/opcua-monitor/internal/sink"
)

var journalCmd = &cobra.Command{
	Use:   "journal <file>",
	Short: "Print the events recorded in a CBOR journal",
	Long: `Print the events a monitor wrote with --journal.

Examples:
  edgeo-opcua journal events.cbor
  edgeo-opcua journal events.cbor --kind status --json`,
	Args: cobra.ExactArgs(1),
	RunE: runJournal,
}

var (
	journalKind string
	journalJSON bool
)

func init() {
	journalCmd.Flags().StringVar(&journalKind, "kind", "", "Only print records of this kind (data, status, timeout)")
	journalCmd.Flags().BoolVar(&journalJSON, "json", false, "Print records as JSON lines")
}

func runJournal(cmd *cobra.Command, args []string) error {
	switch journalKind {
	case "", sink.KindData, sink.KindStatus, sink.KindTimeout:
	default:
		return fmt.Errorf("unknown record kind %q", journalKind)
	}

	r, err := sink.OpenJournalReader(args[0], journalKind)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer r.Close()

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	count := 0
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("record %d: %w", count+1, err)
		}
		count++
		if journalJSON {
			if err := enc.Encode(rec); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(out, sink.FormatRecord(rec))
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d records\n", count)
	}
	return nil
}
