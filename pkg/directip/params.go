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
import "time"

// ServerParameters holds the configuration for the DirectIP server
type ServerParameters struct {
	Endpoint        string        `param:"desc=DirectIP listen endpoint;default=0.0.0.0:10800"`
	ReadTimeout     time.Duration `param:"desc=Timeout for reading a message from a connection;default=30s"`
	ShutdownTimeout time.Duration `param:"desc=Time to wait for active connections when stopping;default=5s"`
	MaxConnections  int           `param:"desc=Maximum number of connections handled concurrently;default=64;min=1"`
	StrictIMEI      bool          `param:"desc=Reject messages where the IMEI isn't all digits;default=false"`
	AuditLog        bool          `param:"desc=Audit log of received messages;default=false"`
}
