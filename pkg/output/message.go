package output

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
	"time"

	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/storage"
)

// Location is the JSON representation of a message location
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	CEPRadius uint32  `json:"cepRadius"`
}

// Message is the JSON representation of a stored message. The outputs and
// the REST API use the same format.
type Message struct {
	Key               string    `json:"key"`
	IMEI              string    `json:"imei"`
	CDRReference      uint32    `json:"cdrReference"`
	SessionStatus     string    `json:"sessionStatus"`
	SessionStatusCode uint8     `json:"sessionStatusCode"`
	MOMSN             uint16    `json:"momsn"`
	MTMSN             uint16    `json:"mtmsn"`
	TimeOfSession     time.Time `json:"timeOfSession"`
	Payload           []byte    `json:"payload"`
	Location          *Location `json:"location,omitempty"`
}

// NewMessage converts a message into its JSON representation
func NewMessage(msg sbd.Message) Message {
	ret := Message{
		Key:               storage.KeyFor(msg).String(),
		IMEI:              msg.IMEI,
		CDRReference:      msg.CDRReference,
		SessionStatus:     msg.SessionStatus.String(),
		SessionStatusCode: uint8(msg.SessionStatus),
		MOMSN:             msg.MOMSN,
		MTMSN:             msg.MTMSN,
		TimeOfSession:     msg.TimeOfSession.UTC(),
		Payload:           msg.Payload,
	}
	if msg.Location != nil {
		ret.Location = &Location{
			Latitude:  msg.Location.Latitude(),
			Longitude: msg.Location.Longitude(),
			CEPRadius: msg.Location.CEPRadius,
		}
	}
	if ret.Payload == nil {
		ret.Payload = []byte{}
	}
	return ret
}
