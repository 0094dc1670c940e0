package metrics

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
	"io/ioutil"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDirectIPCounters(t *testing.T) {
	// Registration happens once per process so the defaults are used
	c := DefaultDirectIPCounters
	c.Start()
	c.Connections.Inc()
	c.Active.Inc()
	c.Active.Dec()
	c.Stored.Inc()
	c.Duplicates.Inc()
	c.Bytes.Add(31)
	c.Reject(RejectFormat)
	c.Reject(RejectIO)
	c.Reject("something else")
}

func TestStoreCounters(t *testing.T) {
	c := DefaultStoreCounters
	c.Start()
	c.Stored.Inc()
	c.Duplicates.Inc()
	c.Corrupt.Inc()
	c.Errors.Inc()
}

func TestOutputCounters(t *testing.T) {
	c := DefaultOutputCounters
	c.Start()
	c.Forwarded("mqtt")
	c.Failed("webhook")
}

func TestHTTPCounters(t *testing.T) {
	c := DefaultHTTPCounters
	c.Start()
	c.AddHTTPStatus(200)
	c.AddHTTPResponseTime("GET", 15*time.Millisecond)
}

func TestMonitoringServer(t *testing.T) {
	assert := require.New(t)

	DefaultDirectIPCounters.Start()
	DefaultDirectIPCounters.Stored.Inc()

	m, err := NewMonitoringServer("127.0.0.1:0")
	assert.NoError(err)
	assert.NoError(m.Start())
	defer m.Shutdown()

	resp, err := http.Get(m.ServerURL() + "/metrics")
	assert.NoError(err)
	defer resp.Body.Close()
	assert.Equal(http.StatusOK, resp.StatusCode)
	body, err := ioutil.ReadAll(resp.Body)
	assert.NoError(err)
	assert.Contains(string(body), "directip_messages_stored")

	resp, err = http.Get(m.ServerURL() + "/health")
	assert.NoError(err)
	resp.Body.Close()
	assert.Equal(http.StatusOK, resp.StatusCode)
}

func TestMonitoringServerNotStarted(t *testing.T) {
	assert := require.New(t)
	m, err := NewMonitoringServer("127.0.0.1:0")
	assert.NoError(err)
	assert.NoError(m.Shutdown())
}
