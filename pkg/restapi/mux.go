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
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ExploratoryEngineering/logging"
	"github.com/eesrc/iridium/pkg/output"
	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/storage"
)

const messagesPath = "/api/messages"

// messageList is the response for the list resource. Corrupt is the number
// of stored messages that couldn't be read.
type messageList struct {
	Messages []output.Message `json:"messages"`
	Corrupt  int              `json:"corrupt"`
}

// routeRequest dispatches requests:
//  - /
//  - /api/messages
//  - /api/messages/live
//  - /api/messages/{key}
//  - /api/messages/{key}/payload
func (s *restServer) routeRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		reportError(w, http.StatusMethodNotAllowed, "Only GET is supported")
		return
	}
	if r.URL.Path == "/" {
		s.rootHandler(w, r)
		return
	}
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == messagesPath {
		s.listHandler(w, r)
		return
	}
	if !strings.HasPrefix(path, messagesPath+"/") {
		reportError(w, http.StatusNotFound, "Unknown resource")
		return
	}
	parts := strings.Split(strings.TrimPrefix(path, messagesPath+"/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "live":
		s.liveHandler(w, r)
	case len(parts) == 1:
		s.messageHandler(parts[0], false, w, r)
	case len(parts) == 2 && parts[1] == "payload":
		s.messageHandler(parts[0], true, w, r)
	default:
		reportError(w, http.StatusNotFound, "Unknown resource")
	}
}

func (s *restServer) listHandler(w http.ResponseWriter, r *http.Request) {
	imei := r.URL.Query().Get("imei")
	limit := s.params.MaxListLength
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			reportError(w, http.StatusBadRequest, "Invalid limit %q", v)
			return
		}
		if n < limit {
			limit = n
		}
	}
	var since time.Time
	if v := r.URL.Query().Get("since"); v != "" {
		var err error
		if since, err = time.Parse(time.RFC3339, v); err != nil {
			reportError(w, http.StatusBadRequest, "Invalid since parameter %q. Use RFC3339 format", v)
			return
		}
	}

	entries, err := s.store.List(r.Context())
	if err != nil {
		logging.Warning("Unable to list messages: %v", err)
		reportError(w, http.StatusInternalServerError, "Unable to list messages")
		return
	}
	var msgs []sbd.Message
	ret := messageList{Messages: make([]output.Message, 0)}
	for e := range entries {
		if e.Err != nil {
			logging.Warning("Skipping stored message %s: %v", e.Location, e.Err)
			ret.Corrupt++
			continue
		}
		if imei != "" && e.Message.IMEI != imei {
			continue
		}
		if e.Message.TimeOfSession.Before(since) {
			continue
		}
		msgs = append(msgs, e.Message)
	}
	if r.Context().Err() != nil {
		return
	}
	// Newest first
	sort.Sort(sort.Reverse(sbd.ByTimeOfSession(msgs)))
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	for _, m := range msgs {
		ret.Messages = append(ret.Messages, output.NewMessage(m))
	}
	writeJSON(w, ret)
}

func (s *restServer) messageHandler(id string, payloadOnly bool, w http.ResponseWriter, r *http.Request) {
	key, err := storage.ParseKey(id)
	if err != nil {
		reportError(w, http.StatusBadRequest, "Invalid message key %q", id)
		return
	}
	msg, err := s.store.Get(key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			reportError(w, http.StatusNotFound, "No message with key %s", key)
			return
		}
		logging.Warning("Unable to read message %s: %v", key, err)
		reportError(w, http.StatusInternalServerError, "Unable to read message")
		return
	}
	if payloadOnly {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(msg.Payload)
		return
	}
	writeJSON(w, output.NewMessage(msg))
}
