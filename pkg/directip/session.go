package directip

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
	"errors"
	"io"
	"net"
	"time"

	"github.com/ExploratoryEngineering/logging"
	"github.com/eesrc/iridium/pkg/metrics"
	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/utils/audit"
)

// sessionState is the state of a single DirectIP connection
type sessionState int

const (
	awaitingHeader sessionState = iota // waiting for revision and length
	awaitingBody                       // waiting for the remaining bytes
	decoding                           // the message is complete
	stored                             // the message is in the store
	rejected                           // I/O, decode or store failure
	closed                             // done
)

var stateNames = map[sessionState]string{
	awaitingHeader: "awaiting-header",
	awaitingBody:   "awaiting-body",
	decoding:       "decoding",
	stored:         "stored",
	rejected:       "rejected",
	closed:         "closed",
}

func (s sessionState) String() string {
	return stateNames[s]
}

// session holds the state for one connection
type session struct {
	remote    string
	state     sessionState
	buf       []byte
	remaining int
	msg       sbd.Message
	location  string
	duplicate bool
	// set when the session is rejected
	reason     string
	failedIn   sessionState
	err        error
	bytesTotal int
}

func (c *session) reject(reason string, err error) {
	c.reason = reason
	c.failedIn = c.state
	c.err = err
	c.state = rejected
}

// receive runs the state machine for one connection until it's closed. No
// more than the declared length is read from r.
func (s *directIPServer) receive(remote string, r io.Reader) *session {
	c := &session{remote: remote, state: awaitingHeader}
	for c.state != closed {
		switch c.state {
		case awaitingHeader:
			s.readPreamble(c, r)
		case awaitingBody:
			s.readBody(c, r)
		case decoding:
			s.decodeAndStore(c)
		case stored, rejected:
			s.finish(c)
		}
	}
	return c
}

func (s *directIPServer) readPreamble(c *session, r io.Reader) {
	c.buf = make([]byte, sbd.PreambleLength)
	n, err := io.ReadFull(r, c.buf)
	c.bytesTotal += n
	if err != nil {
		c.reject(metrics.RejectIO, err)
		return
	}
	length, err := sbd.BodyLength(c.buf)
	if err != nil {
		c.reject(metrics.RejectFormat, err)
		return
	}
	c.buf = append(c.buf, make([]byte, length)...)
	c.remaining = length
	c.state = awaitingBody
}

func (s *directIPServer) readBody(c *session, r io.Reader) {
	if c.remaining == 0 {
		c.state = decoding
		return
	}
	n, err := r.Read(c.buf[len(c.buf)-c.remaining:])
	c.remaining -= n
	c.bytesTotal += n
	if c.remaining == 0 {
		c.state = decoding
		return
	}
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		c.reject(metrics.RejectIO, err)
	}
}

func (s *directIPServer) decodeAndStore(c *session) {
	msg, err := s.decoder.Decode(c.buf)
	if err != nil {
		c.reject(metrics.RejectFormat, err)
		return
	}
	if !msg.ValidIMEI() {
		logging.Warning("DirectIP: message from %s has invalid IMEI %q", c.remote, msg.IMEI)
	}
	if msg.HasUnknownElements() {
		logging.Debug("DirectIP: message from %s has unknown elements %v", c.remote, msg.UnknownElements)
	}
	location, exists, err := s.store.Put(msg)
	if err != nil {
		c.reject(metrics.RejectStore, err)
		return
	}
	c.msg = msg
	c.location = location
	c.duplicate = exists
	c.state = stored
}

func (s *directIPServer) finish(c *session) {
	s.counters.Bytes.Add(float64(c.bytesTotal))
	defer func() { c.state = closed }()

	if c.state == rejected {
		s.counters.Reject(c.reason)
		audit.Rejected(c.remote, c.err)
		if isTimeout(c.err) {
			logging.Warning("DirectIP: connection from %s timed out in state %s after %d bytes", c.remote, c.failedIn, c.bytesTotal)
			return
		}
		logging.Warning("DirectIP: rejected connection from %s (%s in state %s): %v", c.remote, c.reason, c.failedIn, c.err)
		return
	}

	audit.Received(c.remote, c.msg, c.location, c.duplicate)
	if c.duplicate {
		s.counters.Duplicates.Inc()
		logging.Info("DirectIP: duplicate message from %s IMEI=%s CDR=%d MOMSN=%d already stored in %s",
			c.remote, c.msg.IMEI, c.msg.CDRReference, c.msg.MOMSN, c.location)
		return
	}
	s.counters.Stored.Inc()
	logging.Debug("DirectIP: stored message from %s: %s", c.remote, c.msg)
	if s.publisher != nil {
		s.publisher.Publish(c.msg)
	}
}

// isTimeout returns true for deadline errors
func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// deadline returns the connection deadline
func (s *directIPServer) deadline() time.Time {
	return time.Now().Add(s.config.ReadTimeout)
}
