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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	info := GetVersion()
	assert.Equal(t, Version, info.Version)
	assert.True(t, strings.HasPrefix(info.String(), Version+" (go"))

	info = VersionInfo{Version: "1.2.3", GoVersion: "go1.23.4", Revision: "0123456789abcdef", Modified: true}
	assert.Equal(t, "1.2.3 (go1.23.4) 0123456789ab-dirty", info.String())
}
