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
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eesrc/iridium/pkg/output"
	"github.com/eesrc/iridium/pkg/storage"
	"github.com/eesrc/iridium/pkg/storage/memstore"
	"github.com/eesrc/iridium/pkg/storage/storetest"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

var testParams = ServerParameters{
	Endpoint:         "127.0.0.1:0",
	InlineRequestlog: true,
	MaxListLength:    100,
}

func newTestServer(t *testing.T, params ServerParameters, count int) (*restServer, *memstore.Store) {
	store := memstore.New()
	for i := 0; i < count; i++ {
		_, _, err := store.Put(storetest.NewMessage(i))
		require.NoError(t, err)
	}
	return NewServer(params, store, output.NewLocalManager()).(*restServer), store
}

func get(s *restServer, url string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func TestRootHandler(t *testing.T) {
	assert := require.New(t)
	s, _ := newTestServer(t, testParams, 0)

	rec := get(s, "/")
	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), "/api/messages")
}

func TestListMessages(t *testing.T) {
	assert := require.New(t)
	s, store := newTestServer(t, testParams, 14)

	rec := get(s, "/api/messages")
	assert.Equal(http.StatusOK, rec.Code)
	var list messageList
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(list.Messages, 14)
	assert.Equal(0, list.Corrupt)
	// Newest first
	for i := 1; i < len(list.Messages); i++ {
		assert.False(list.Messages[i].TimeOfSession.After(list.Messages[i-1].TimeOfSession))
	}
	assert.Equal(uint16(13), list.Messages[0].MOMSN)

	// Index 0 and 7 share IMEI
	imei := storetest.NewMessage(0).IMEI
	rec = get(s, "/api/messages?imei="+imei)
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(list.Messages, 2)

	// The newest are kept when truncating
	rec = get(s, "/api/messages?limit=3")
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(list.Messages, 3)
	assert.Equal(uint16(13), list.Messages[0].MOMSN)
	assert.Equal(uint16(11), list.Messages[2].MOMSN)

	since := storetest.NewMessage(10).TimeOfSession.Format(time.RFC3339)
	rec = get(s, "/api/messages?since="+since)
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(list.Messages, 4)

	assert.Equal(http.StatusBadRequest, get(s, "/api/messages?limit=zero").Code)
	assert.Equal(http.StatusBadRequest, get(s, "/api/messages?since=yesterday").Code)

	// Corrupt messages are counted and skipped
	store.Overwrite(storage.KeyFor(storetest.NewMessage(1)), []byte{1, 0, 0})
	rec = get(s, "/api/messages")
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(list.Messages, 13)
	assert.Equal(1, list.Corrupt)
}

func TestGetMessage(t *testing.T) {
	assert := require.New(t)
	s, _ := newTestServer(t, testParams, 3)

	msg := storetest.NewMessage(2)
	key := storage.KeyFor(msg).String()

	rec := get(s, "/api/messages/"+key)
	assert.Equal(http.StatusOK, rec.Code)
	var m output.Message
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(msg.IMEI, m.IMEI)
	assert.Equal(key, m.Key)
	assert.NotNil(m.Location)
	assert.InDelta(63.4305, m.Location.Latitude, 0.0001)

	rec = get(s, "/api/messages/"+key+"/payload")
	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal("application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(msg.Payload, rec.Body.Bytes())

	missing := storage.Key{IMEI: msg.IMEI, CDRReference: 1, MOMSN: 1}
	assert.Equal(http.StatusNotFound, get(s, "/api/messages/"+missing.String()).Code)
	assert.Equal(http.StatusBadRequest, get(s, "/api/messages/not-a-key").Code)
	assert.Equal(http.StatusNotFound, get(s, "/api/messages/"+key+"/other").Code)
	assert.Equal(http.StatusNotFound, get(s, "/api/other").Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/messages/"+key, nil)
	rec = httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	assert.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func TestAPIToken(t *testing.T) {
	assert := require.New(t)
	params := testParams
	params.APIToken = "sesame"
	s, _ := newTestServer(t, params, 1)

	assert.Equal(http.StatusUnauthorized, get(s, "/api/messages").Code)
	assert.Equal(http.StatusUnauthorized, get(s, "/api/messages", tokenHeader, "wrong").Code)
	assert.Equal(http.StatusOK, get(s, "/api/messages", tokenHeader, "sesame").Code)
}

func TestServerLiveFeed(t *testing.T) {
	assert := require.New(t)
	store := memstore.New()
	mgr := output.NewLocalManager()
	defer mgr.Shutdown()
	s := NewServer(testParams, store, mgr)
	s.(*restServer).keepAlive = 200 * time.Millisecond
	assert.NoError(s.Start())
	defer s.Stop()

	// Plain request through the network
	resp, err := http.Get(fmt.Sprintf("http://%s/api/messages", s.Address()))
	assert.NoError(err)
	body, err := ioutil.ReadAll(resp.Body)
	resp.Body.Close()
	assert.NoError(err)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Contains(string(body), `"messages":[]`)

	msg := storetest.NewMessage(5)
	conn, _, err := websocket.DefaultDialer.Dial(
		fmt.Sprintf("ws://%s/api/messages/live?imei=%s", s.Address(), msg.IMEI), nil)
	assert.NoError(err)
	defer conn.Close()

	// Wait for the subscription to be in place
	var live liveMessage
	assert.NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	assert.NoError(conn.ReadJSON(&live))
	assert.Equal("keepalive", live.Type)

	mgr.Publish(storetest.NewMessage(6))
	mgr.Publish(msg)
	for {
		live = liveMessage{}
		assert.NoError(conn.ReadJSON(&live))
		if live.Type == "data" {
			break
		}
	}
	assert.NotNil(live.Message)
	assert.Equal(msg.IMEI, live.Message.IMEI)
	assert.Equal(msg.MOMSN, live.Message.MOMSN)
}
