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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParameterDefinitions(t *testing.T) {
	assert := require.New(t)

	assert.Len(Parameters{}.Definitions(), 0)

	p := Parameters{
		MQTT:    MQTTParameters{Endpoint: "tcp://broker.example.io:1883", ClientID: "c", Topic: "t", QoS: 1},
		Webhook: WebhookParameters{URL: "https://hooks.example.io/sbd"},
		UDP:     UDPParameters{Host: "udp.example.io", Port: 4711},
	}
	defs := p.Definitions()
	assert.Len(defs, 3)
	assert.Equal("mqtt", defs[0].Type)
	assert.Equal(float64(1), defs[0].Config["qos"])
	assert.Equal("webhook", defs[1].Type)
	assert.Equal("https://hooks.example.io/sbd", defs[1].Config["url"])
	assert.Equal("udp", defs[2].Type)
	assert.Equal(float64(4711), defs[2].Config["port"])
}

func TestNewMessage(t *testing.T) {
	assert := require.New(t)

	msg := testMessage("300234010753370", 3)
	msg.Payload = nil
	m := NewMessage(msg)
	assert.Equal("300234010753370-0000001000-00003", m.Key)
	assert.Equal("ok", m.SessionStatus)
	assert.NotNil(m.Payload)
	assert.Nil(m.Location)
}
