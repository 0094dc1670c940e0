package sbd

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
import "fmt"

// SessionStatus is the status of the SBD session that carried the message.
// The descriptions are from the DirectIP documentation. Codes that aren't
// listed are kept as is and reported as unknown.
type SessionStatus uint8

const (
	// SessionOK is a session that completed successfully.
	SessionOK = SessionStatus(0)
	// SessionOKMTTooLarge means the MO transfer was successful but the
	// queued MT message was too large to be transferred in the same session.
	SessionOKMTTooLarge = SessionStatus(1)
	// SessionOKLocationUnacceptable means the MO transfer was successful but
	// the reported location was of unacceptable quality.
	SessionOKLocationUnacceptable = SessionStatus(2)
	// SessionTimeout means the session timed out before completion.
	SessionTimeout = SessionStatus(10)
	// SessionMOTooLarge means the MO message was too large to be transferred
	// in a single session.
	SessionMOTooLarge = SessionStatus(12)
	// SessionRFLinkLoss means the RF link was lost during the session.
	SessionRFLinkLoss = SessionStatus(13)
	// SessionIMEIProtocolAnomaly means the modem misbehaved during the session.
	SessionIMEIProtocolAnomaly = SessionStatus(14)
	// SessionProhibited means the IMEI isn't allowed to access the gateway.
	SessionProhibited = SessionStatus(15)
)

var sessionStatusNames = map[SessionStatus]string{
	SessionOK:                     "ok",
	SessionOKMTTooLarge:           "ok-mt-too-large",
	SessionOKLocationUnacceptable: "ok-location-unacceptable",
	SessionTimeout:                "timeout",
	SessionMOTooLarge:             "mo-too-large",
	SessionRFLinkLoss:             "rf-link-loss",
	SessionIMEIProtocolAnomaly:    "imei-protocol-anomaly",
	SessionProhibited:             "prohibited",
}

// Known returns true if the status code is one of the documented codes
func (s SessionStatus) Known() bool {
	_, ok := sessionStatusNames[s]
	return ok
}

// Success returns true if the MO part of the session succeeded
func (s SessionStatus) Success() bool {
	return s == SessionOK || s == SessionOKMTTooLarge || s == SessionOKLocationUnacceptable
}

// String returns the name of the status
func (s SessionStatus) String() string {
	if name, ok := sessionStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}
