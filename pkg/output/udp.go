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
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/ExploratoryEngineering/logging"
	"github.com/eesrc/iridium/pkg/metrics"
	"github.com/eesrc/iridium/pkg/output/outputconfig"
	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/utils/audit"
)

// udp sends the raw payload of each message as a single datagram.
type udp struct {
	status Status
	logs   Logger
	mutex  *sync.Mutex
	done   chan struct{}
}

func newUDP() Output {
	return &udp{
		mutex: &sync.Mutex{},
		logs:  NewLogger(),
	}
}

func init() {
	registerOutput("udp", newUDP)
}

func (u *udp) countError() {
	u.mutex.Lock()
	u.status.ErrorCount++
	u.mutex.Unlock()
	metrics.DefaultOutputCounters.Failed("udp")
}

func (u *udp) udpSender(messages <-chan interface{}, config Config) {
	defer close(u.done)
	host := configString(config, outputconfig.UDPHost)
	port := configInt(config, outputconfig.UDPPort, 0)

	remoteAddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, fmt.Sprintf("%d", port)))
	if err != nil {
		u.logs.Append("Could not resolve address")
		return
	}
	output, err := net.DialUDP("udp", nil, remoteAddr)
	if err != nil {
		u.logs.Append("Unable to dial UDP")
		return
	}
	defer output.Close()

	for m := range messages {
		u.mutex.Lock()
		u.status.Received++
		u.mutex.Unlock()

		msg, ok := m.(sbd.Message)
		if !ok {
			logging.Warning("Not a sbd.Message on channel: %T", m)
			u.countError()
			continue
		}
		if len(msg.Payload) == 0 {
			logging.Debug("Message from %s has no payload. Not sending it.", msg.IMEI)
			continue
		}
		n, err := output.Write(msg.Payload)
		if err != nil {
			u.logs.Append("Error sending payload")
			logging.Warning("Got error sending payload: %v", err)
			u.countError()
			continue
		}
		if n != len(msg.Payload) {
			logging.Warning("Sent %d bytes, expected %d", n, len(msg.Payload))
		}
		u.mutex.Lock()
		u.status.Forwarded++
		u.mutex.Unlock()
		metrics.DefaultOutputCounters.Forwarded("udp")
		audit.Log("UDP: Sent %d bytes from IMEI %s to %s", len(msg.Payload), msg.IMEI, remoteAddr.String())
	}
}

func (u *udp) Validate(config Config) (ErrorMessage, error) {
	errs := validateConfig(config, []fieldSpec{
		stringField(outputconfig.UDPHost, true),
		numberField(outputconfig.UDPPort, true, 1, 65535),
	})
	if len(errs) > 0 {
		return errs, ErrInvalidConfig
	}
	host := configString(config, outputconfig.UDPHost)
	port := configInt(config, outputconfig.UDPPort, 0)
	check := newEndpointChecker(fmt.Sprintf("udp://%s", net.JoinHostPort(host, fmt.Sprintf("%d", port))))
	if !check.IsValidHost() {
		errs[outputconfig.UDPHost] = "Invalid host name"
		return errs, ErrInvalidConfig
	}
	return errs, nil
}

func (u *udp) Start(config Config, messages <-chan interface{}) {
	if errs, err := u.Validate(config); err != nil {
		u.logs.Append("Invalid config. Output isn't started.")
		logging.Warning("Invalid config for UDP output: %+v. Won't start", errs)
		return
	}
	u.mutex.Lock()
	u.done = make(chan struct{})
	u.mutex.Unlock()
	go u.udpSender(messages, config)
}

// Stop waits for the sender to drain. It stops when the channel is closed.
func (u *udp) Stop(timeout time.Duration) {
	u.mutex.Lock()
	done := u.done
	u.mutex.Unlock()
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-time.After(timeout):
	}
}

func (u *udp) Logs() []LogEntry {
	return u.logs.Entries()
}

func (u *udp) Status() Status {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	ret := u.status
	return ret
}
