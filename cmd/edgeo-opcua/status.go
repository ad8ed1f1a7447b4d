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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	opcua "github.com/edgeo-scada/opcua-monitor"
)

var statusCmd = &cobra.Command{
	Use:   "status <code|message>",
	Short: "Translate a status code or error message",
	Long: `Print the name and description of a status code. The argument is either
a numeric code or an error message containing 0x followed by eight hex
digits, as reported by servers and client libraries.

Examples:
  edgeo-opcua status 0x80340000
  edgeo-opcua status "read failed: status 0x800A0000"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	var code opcua.StatusCode
	if n, err := strconv.ParseUint(text, 0, 32); err == nil {
		code = opcua.StatusCode(n)
	} else {
		code = opcua.StatusFromError(errors.New(text))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Code: 0x%08X\n", uint32(code))
	fmt.Fprintf(out, "Name: %s\n", code.String())
	fmt.Fprintf(out, "Description: %s\n", code.Description())
	switch {
	case code.IsGood():
		fmt.Fprintln(out, "Severity: Good")
	case code.IsUncertain():
		fmt.Fprintln(out, "Severity: Uncertain")
	default:
		fmt.Fprintln(out, "Severity: Bad")
	}
	return nil
}
