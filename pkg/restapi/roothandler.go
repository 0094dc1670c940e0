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
)

func (s *restServer) rootHandler(w http.ResponseWriter, r *http.Request) {
	ret := struct {
		MessagesURL      string `json:"messages"`
		MessageDetailURL string `json:"message-detail"`
		PayloadURL       string `json:"message-payload"`
		LiveURL          string `json:"live"`
	}{
		"/api/messages",
		"/api/messages/{key}",
		"/api/messages/{key}/payload",
		"/api/messages/live",
	}
	writeJSON(w, ret)
}
