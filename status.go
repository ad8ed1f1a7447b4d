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

package opcua

import (
	"errors"
	"regexp"
	"strconv"
)

var statusPattern = regexp.MustCompile(`0[xX][0-9A-Fa-f]{8}`)

// StatusFromError maps a failure to a status code.
//
// A StatusCode anywhere in the error chain is returned as is. Otherwise the
// message text is searched for a hex literal such as "0x80340000" and the
// last one is used if it names a known status. This text search is best effort:
// errors that carry no status fall back to StatusBadUnexpectedError.
func StatusFromError(err error) StatusCode {
	if err == nil {
		return StatusGood
	}
	var sc StatusCode
	if errors.As(err, &sc) {
		return sc
	}
	return statusFromText(err.Error())
}

func statusFromText(msg string) StatusCode {
	matches := statusPattern.FindAllString(msg, -1)
	if len(matches) == 0 {
		return StatusBadUnexpectedError
	}
	v, err := strconv.ParseUint(matches[len(matches)-1][2:], 16, 32)
	if err != nil {
		return StatusBadUnexpectedError
	}
	if sc := StatusCode(v); sc.Known() {
		return sc
	}
	return StatusBadUnexpectedError
}
