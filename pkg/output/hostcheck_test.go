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

func TestEndpointChecker(t *testing.T) {
	assert := require.New(t)

	e := newEndpointChecker("@@https::\\\\foo?foo?foo")
	assert.False(e.IsValidHost())
	assert.False(e.IsValidHTTPURL())
	assert.False(e.IsValidMQTTEndpoint())
	assert.False(e.IsSSLScheme())

	e = newEndpointChecker("tcp://broker.example.io:1883")
	assert.True(e.IsValidMQTTEndpoint())
	assert.False(e.IsValidHTTPURL())
	assert.False(e.IsSSLScheme())
	assert.Equal("broker.example.io", e.Host())

	e = newEndpointChecker("ssl://broker.example.io:8883")
	assert.True(e.IsValidMQTTEndpoint())
	assert.True(e.IsSSLScheme())

	for _, ep := range []string{"ssl://broker.example.io", "ssl://", "tcp://broker:1883/", "tcp://broker:1883/foo"} {
		e = newEndpointChecker(ep)
		assert.False(e.IsValidMQTTEndpoint(), ep)
	}

	e = newEndpointChecker("http://")
	assert.False(e.IsValidHTTPURL())
	e = newEndpointChecker("http://localhost")
	assert.True(e.IsValidHTTPURL())
	assert.False(e.IsValidMQTTEndpoint())
	assert.Equal("localhost", e.Host())
}

func TestReservedHosts(t *testing.T) {
	assert := require.New(t)

	for _, ep := range []string{
		"http://example.com/",
		"http://www.example.org/",
		"http://foo.test/",
		"http://foo.invalid/",
		"http://a.localhost/",
		"tcp://127.0.0.1:1883",
		"http://10.0.0.1/",
		"http://192.168.1.1/",
		"http://[::1]:80/",
	} {
		e := newEndpointChecker(ep)
		assert.False(e.IsValidHost(), ep)
	}

	AllowLocalEndpoints(true)
	defer AllowLocalEndpoints(false)
	e := newEndpointChecker("tcp://127.0.0.1:1883")
	assert.True(e.IsValidHost())
	// Reserved domains are never valid
	e = newEndpointChecker("http://example.com/")
	assert.False(e.IsValidHost())
}
