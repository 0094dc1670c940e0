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
	"time"

	"github.com/stretchr/testify/require"
)

func TestMQTTConfig(t *testing.T) {
	assert := require.New(t)

	c := newMQTTConfig(Config{
		"endpoint":  "tcp://mqtt.example.io:1883",
		"clientId":  "client",
		"topicName": "iridium",
		"qos":       float64(2),
	})
	assert.Equal("client", c.clientID)
	assert.Equal(byte(2), c.qos)
	assert.Equal("iridium/300234010753370", c.topic("300234010753370"))

	// QoS defaults to 1
	assert.Equal(byte(1), newMQTTConfig(Config{}).qos)
}

func TestMQTTValidate(t *testing.T) {
	assert := require.New(t)
	op := newMQTT()

	errs, err := op.Validate(Config{})
	assert.Equal(ErrInvalidConfig, err)
	assert.Len(errs, 3)

	errs, err = op.Validate(Config{
		"endpoint":  "http://broker",
		"clientId":  "client",
		"topicName": "iridium",
		"qos":       float64(3),
	})
	assert.Error(err)
	assert.Contains(errs, "endpoint")
	assert.Contains(errs, "qos")

	// Invalid configs won't start and Stop is a no-op
	op.Start(Config{}, make(chan interface{}))
	op.Stop(10 * time.Millisecond)
	assert.Equal(0, op.Status().Received)
	assert.NotEmpty(op.Logs())
}
