package audit

//
//Copyright 2019 Telenor Digital AS
//
//Licensed under the Apache License, Version 2.0 (the "License");
//you may not use this file except in compliance with the License.
//You may obtain a copy of the License at
//
//http://www.apache.org/licenses/LICENSE-2.0
//
//Unless required by applicable law or agreed to in writing, software
//distributed under the License is distributed on an "AS IS" BASIS,
//WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//See the License for the specific language governing permissions and
//limitations under the License.
//

// The audit log is a trail of every message the receiver has accepted or
// rejected. It's written to the regular log at info level when enabled.

import (
	"sync/atomic"

	"github.com/ExploratoryEngineering/logging"
	"github.com/eesrc/iridium/pkg/sbd"
)

// Enable enables audit logging
func Enable() {
	atomic.StoreInt32(enabled, 1)
}

// Disable disables audit logging
func Disable() {
	atomic.StoreInt32(enabled, 0)
}

// Enabled returns true if audit logging is turned on
func Enabled() bool {
	return atomic.LoadInt32(enabled) != 0
}

var enabled *int32

func init() {
	enabled = new(int32)
	atomic.StoreInt32(enabled, 0)
}

// Log writes an entry to the audit log
func Log(message string, args ...interface{}) {
	if Enabled() {
		logging.Info("AUDIT: "+message, args...)
	}
}

// Received logs a received message and where it was stored
func Received(remote string, msg sbd.Message, location string, duplicate bool) {
	if !Enabled() {
		return
	}
	state := "new"
	if duplicate {
		state = "duplicate"
	}
	logging.Info("AUDIT: %s message from %s IMEI=%s CDR=%d MOMSN=%d status=%s payload=%d bytes stored in %s",
		state, remote, msg.IMEI, msg.CDRReference, msg.MOMSN, msg.SessionStatus, len(msg.Payload), location)
}

// Rejected logs a rejected connection
func Rejected(remote string, reason error) {
	if Enabled() {
		logging.Info("AUDIT: rejected connection from %s: %v", remote, reason)
	}
}
