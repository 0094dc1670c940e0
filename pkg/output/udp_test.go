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
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUDPOutput(t *testing.T) {
	assert := require.New(t)
	AllowLocalEndpoints(true)
	defer AllowLocalEndpoints(false)

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	assert.NoError(err)
	defer pc.Close()
	host, port, err := net.SplitHostPort(pc.LocalAddr().String())
	assert.NoError(err)
	p, _ := strconv.ParseInt(port, 10, 32)
	config := Config{
		"host": host,
		"port": float64(p),
	}

	op := newUDP()
	errs, err := op.Validate(config)
	assert.NoError(err, "errors: %+v", errs)

	ch := make(chan interface{}, 2)
	op.Start(config, ch)
	ch <- testMessage("300234010753370", 1)
	ch <- "not a message"

	buf := make([]byte, 1024)
	assert.NoError(pc.SetReadDeadline(time.Now().Add(time.Second)))
	n, _, err := pc.ReadFrom(buf)
	assert.NoError(err)
	assert.Equal("hello", string(buf[:n]))

	close(ch)
	op.Stop(time.Second)
	status := op.Status()
	assert.Equal(2, status.Received)
	assert.Equal(1, status.Forwarded)
	assert.Equal(1, status.ErrorCount)
}

func TestUDPValidate(t *testing.T) {
	assert := require.New(t)
	op := newUDP()

	_, err := op.Validate(Config{"host": "127.0.0.1"})
	assert.Error(err)
	_, err = op.Validate(Config{"host": "127.0.0.1", "port": "1234"})
	assert.Error(err)
	_, err = op.Validate(Config{"host": "127.0.0.1", "port": float64(70000)})
	assert.Error(err)
	// Loopback is rejected unless local endpoints are allowed
	errs, err := op.Validate(Config{"host": "127.0.0.1", "port": float64(1234)})
	assert.Error(err)
	assert.Contains(errs, "host")

	// Invalid configs don't start
	op.Start(Config{}, make(chan interface{}))
	assert.NotEmpty(op.Logs())
	op.Stop(10 * time.Millisecond)
}
