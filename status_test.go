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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want StatusCode
	}{
		{"nil", nil, StatusGood},
		{"status code", StatusBadNodeIdUnknown, StatusBadNodeIdUnknown},
		{"wrapped status code", fmt.Errorf("monitor: %w", StatusBadTooManyMonitoredItems), StatusBadTooManyMonitoredItems},
		{"service error", NewOPCUAError(ServiceCreateMonitoredItems, StatusBadAttributeIdInvalid, ""), StatusBadAttributeIdInvalid},
		{"text lower case", errors.New("server said 0x80340000"), StatusBadNodeIdUnknown},
		{"text upper case", errors.New("status=0X800A0000 during publish"), StatusBadTimeout},
		{"last code wins", errors.New("0x80340000 then 0x80AD0000"), StatusBadDisconnect},
		{"last code unknown", errors.New("0x800A0000 then 0x8FFF0000"), StatusBadUnexpectedError},
		{"data lost", errors.New("server returned 0x809D0000"), StatusBadDataLost},
		{"certificate invalid", errors.New("handshake failed: 0x80120000"), StatusBadCertificateInvalid},
		{"continuation point", errors.New("browse next 0x804A0000"), StatusBadContinuationPointInvalid},
		{"unknown code only", errors.New("code 0x8FFF0000"), StatusBadUnexpectedError},
		{"too short", errors.New("0x8034000"), StatusBadUnexpectedError},
		{"no code", errors.New("connection reset by peer"), StatusBadUnexpectedError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestStatusCodeSeverity(t *testing.T) {
	assert.True(t, StatusGood.IsGood())
	assert.True(t, StatusUncertain.IsUncertain())
	assert.True(t, StatusBadTimeout.IsBad())
	assert.Equal(t, "BadTimeout", StatusBadTimeout.String())
	assert.Equal(t, "StatusCode(0x8FFF0000)", StatusCode(0x8FFF0000).String())
	assert.Equal(t, "The operation failed", StatusCode(0x8FFF0000).Description())
	assert.False(t, StatusCode(0x8FFF0000).Known())
}

func TestStatusCodeTable(t *testing.T) {
	for _, sc := range []StatusCode{
		StatusBadDataLost,
		StatusBadCertificateInvalid,
		StatusBadContinuationPointInvalid,
		StatusUncertainLastUsableValue,
		StatusGoodMoreData,
	} {
		assert.True(t, sc.Known(), "0x%08X", uint32(sc))
	}
	assert.Equal(t, "BadDataLost", StatusBadDataLost.String())
	assert.Equal(t, "UncertainLastUsableValue", StatusUncertainLastUsableValue.String())
}

func TestOPCUAErrorMatching(t *testing.T) {
	err := fmt.Errorf("create: %w", NewOPCUAError(ServiceCreateSubscription, StatusBadTooManySubscriptions, "limit"))
	assert.ErrorIs(t, err, StatusBadTooManySubscriptions)
	assert.ErrorIs(t, err, &OPCUAError{StatusCode: StatusBadTooManySubscriptions})
	assert.True(t, IsStatusCode(err, StatusBadTooManySubscriptions))
	assert.False(t, IsTimeout(err))
	assert.True(t, IsTimeout(StatusBadRequestTimeout))
	assert.Contains(t, err.Error(), "CreateSubscription")
}
