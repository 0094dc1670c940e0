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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWebhookOutput(t *testing.T) {
	assert := require.New(t)
	AllowLocalEndpoints(true)
	defer AllowLocalEndpoints(false)

	received := make(chan webhookBody, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "secret" || r.Header.Get("X-Token") != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body webhookBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		received <- body
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	config := Config{
		"url":               srv.URL,
		"basicAuthUser":     "user",
		"basicAuthPass":     "secret",
		"customHeaderName":  "X-Token",
		"customHeaderValue": "abc",
	}
	op := newWebhook()
	errs, err := op.Validate(config)
	assert.NoError(err, "errors: %+v", errs)

	ch := make(chan interface{})
	op.Start(config, ch)
	ch <- testMessage("300234010753370", 42)

	select {
	case body := <-received:
		assert.Len(body.Messages, 1)
		assert.Equal("300234010753370", body.Messages[0].IMEI)
		assert.Equal(uint16(42), body.Messages[0].MOMSN)
		assert.Equal([]byte("hello"), body.Messages[0].Payload)
	case <-time.After(time.Second):
		assert.Fail("no webhook request")
	}

	close(ch)
	op.Stop(time.Second)
	assert.Equal(1, op.Status().Forwarded)
}

func TestWebhookBackOff(t *testing.T) {
	assert := require.New(t)
	AllowLocalEndpoints(true)
	defer AllowLocalEndpoints(false)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	op := newWebhook().(*webhook)
	config := Config{"url": srv.URL}
	op.config = config

	body := webhookBody{Messages: []Message{NewMessage(testMessage("300234010753370", 1))}}
	assert.False(op.sendMessages(body))
	assert.Equal(2*time.Second, op.backOffTime)
	// Still backing off so nothing is sent
	assert.False(op.sendMessages(body))
	assert.Equal(1, op.Status().ErrorCount)
	assert.Len(op.Logs(), 1)
}

func TestWebhookValidate(t *testing.T) {
	assert := require.New(t)
	op := newWebhook()

	_, err := op.Validate(Config{})
	assert.Error(err)
	errs, err := op.Validate(Config{"url": "ftp://example.org/"})
	assert.Error(err)
	assert.Equal("Invalid HTTP URL", errs["url"])
	errs, err = op.Validate(Config{"url": "https://www.example.org/hook"})
	assert.Error(err)
	assert.Equal("Invalid host name", errs["url"])
}
