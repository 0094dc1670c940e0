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
import (
	"fmt"
	"time"
)

// Message is a decoded Mobile Originated message. The CDR reference, IMEI
// and MOMSN identify a message.
type Message struct {
	CDRReference  uint32
	IMEI          string
	SessionStatus SessionStatus
	MOMSN         uint16
	MTMSN         uint16
	TimeOfSession time.Time
	// Payload is nil when the message has no payload or an empty one
	Payload  []byte
	Location *Location
	// UnknownElements holds the identifiers of elements that were skipped
	// while decoding. They are not encoded.
	UnknownElements []uint8
}

// ValidIMEI returns true if the IMEI is 15 ASCII digits
func (m Message) ValidIMEI() bool {
	if len(m.IMEI) != imeiLength {
		return false
	}
	for i := 0; i < len(m.IMEI); i++ {
		if m.IMEI[i] < '0' || m.IMEI[i] > '9' {
			return false
		}
	}
	return true
}

// HasUnknownElements returns true if the decoder skipped one or more elements
func (m Message) HasUnknownElements() bool {
	return len(m.UnknownElements) > 0
}

// MarshalBinary encodes the message. See Encode.
func (m Message) MarshalBinary() ([]byte, error) {
	return Encode(m)
}

// UnmarshalBinary decodes the message with the lenient decoder
func (m *Message) UnmarshalBinary(buf []byte) error {
	msg, err := Decode(buf)
	if err != nil {
		return err
	}
	*m = msg
	return nil
}

func (m Message) String() string {
	return fmt.Sprintf("IMEI=%s CDR=%d MOMSN=%d MTMSN=%d status=%s time=%s payload=%d bytes",
		m.IMEI, m.CDRReference, m.MOMSN, m.MTMSN, m.SessionStatus,
		m.TimeOfSession.Format(time.RFC3339), len(m.Payload))
}

// ByTimeOfSession sorts messages by time of session, oldest first. Ties are
// broken on IMEI and MOMSN to keep the order stable.
type ByTimeOfSession []Message

func (b ByTimeOfSession) Len() int      { return len(b) }
func (b ByTimeOfSession) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b ByTimeOfSession) Less(i, j int) bool {
	if !b[i].TimeOfSession.Equal(b[j].TimeOfSession) {
		return b[i].TimeOfSession.Before(b[j].TimeOfSession)
	}
	if b[i].IMEI != b[j].IMEI {
		return b[i].IMEI < b[j].IMEI
	}
	return b[i].MOMSN < b[j].MOMSN
}
