package restapi

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
	"net/http"
	"time"

	"github.com/ExploratoryEngineering/logging"
	"github.com/eesrc/iridium/pkg/output"
	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/gorilla/websocket"
)

const handshakeTimeout = 60 * time.Second

const keepAliveInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:    4096,
	WriteBufferSize:   4096,
	EnableCompression: true,
	HandshakeTimeout:  handshakeTimeout,

	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// liveMessage is sent on the live feed. Keepalive messages have no message.
type liveMessage struct {
	Type    string          `json:"type"`
	Message *output.Message `json:"message,omitempty"`
}

// liveHandler streams new messages to a websocket client. The imei query
// parameter limits the feed to a single modem.
func (s *restServer) liveHandler(w http.ResponseWriter, r *http.Request) {
	if s.mgr == nil {
		reportError(w, http.StatusServiceUnavailable, "No live feed available")
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already responded to the client
		logging.Warning("Error upgrading web socket: %v", err)
		return
	}
	defer conn.Close()

	ch := s.mgr.Subscribe(r.URL.Query().Get("imei"))
	defer s.mgr.Unsubscribe(ch)

	// The reader detects when the client goes away
	closed := make(chan bool)
	go func(c *websocket.Conn) {
		defer close(closed)
		for {
			if _, _, err := c.NextReader(); err != nil {
				return
			}
		}
	}(conn)

	write := func(m liveMessage) bool {
		conn.SetWriteDeadline(time.Now().Add(s.keepAlive))
		if err := conn.WriteJSON(m); err != nil {
			logging.Info("Error writing websocket message. Exiting loop: %v", err)
			return false
		}
		return true
	}

	for {
		select {
		case <-closed:
			return
		case <-s.quit:
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(time.Second))
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			msg, ok := m.(sbd.Message)
			if !ok {
				logging.Warning("Not a sbd.Message on live feed: %T", m)
				continue
			}
			out := output.NewMessage(msg)
			if !write(liveMessage{Type: "data", Message: &out}) {
				return
			}
		case <-time.After(s.keepAlive):
			if !write(liveMessage{Type: "keepalive"}) {
				return
			}
		}
	}
}
