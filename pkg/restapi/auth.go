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
	"crypto/subtle"
	"net/http"

	"github.com/ExploratoryEngineering/logging"
	"github.com/gorilla/websocket"
)

const tokenHeader = "X-API-Token"
const tokenParam = "api_token"

// newAuthHandler checks the API token before passing the request on. Web
// socket clients can't set headers so they may use a query parameter. An
// empty token turns off the check.
func (s *restServer) newAuthHandler(h http.HandlerFunc) http.HandlerFunc {
	if s.params.APIToken == "" {
		logging.Warning("No API token set. The REST API is open.")
		return h
	}
	expected := []byte(s.params.APIToken)
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(tokenHeader)
		if token == "" && websocket.IsWebSocketUpgrade(r) {
			token = r.URL.Query().Get(tokenParam)
		}
		if subtle.ConstantTimeCompare([]byte(token), expected) != 1 {
			reportError(w, http.StatusUnauthorized, "Missing or invalid API token")
			return
		}
		h(w, r)
	}
}
