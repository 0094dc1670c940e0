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
import "time"

// ServerParameters contains the configuration parameters for the HTTP server
type ServerParameters struct {
	Endpoint         string `param:"desc=Listen address for HTTP server;default=localhost:8080"`
	TLSKeyFile       string `param:"desc=TLS key file;file"`
	TLSCertFile      string `param:"desc=TLS certificate file;file"`
	APIToken         string `param:"desc=API token required in the X-API-Token header. Empty turns off authentication;default="`
	RequestLog       string `param:"desc=Request log file name;default=requestlog.log"`
	InlineRequestlog bool   `param:"desc=Include request log in application log;default=false"`
	MaxListLength    int    `param:"desc=Maximum number of messages returned when listing;default=1000;min=1"`
	KeepAliveSeconds int    `param:"desc=Interval between keepalive messages on the live feed;default=30;min=1"`
}

// UseTLS returns true if both the key and the certificate are set
func (p ServerParameters) UseTLS() bool {
	return p.TLSKeyFile != "" && p.TLSCertFile != ""
}

func (p ServerParameters) keepAlive() time.Duration {
	if p.KeepAliveSeconds < 1 {
		return keepAliveInterval
	}
	return time.Duration(p.KeepAliveSeconds) * time.Second
}
