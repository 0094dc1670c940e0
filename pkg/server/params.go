package server

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
	"github.com/eesrc/iridium/pkg/directip"
	"github.com/eesrc/iridium/pkg/output"
	"github.com/eesrc/iridium/pkg/restapi"
	"github.com/eesrc/iridium/pkg/storage/sqlstore"
	"github.com/eesrc/iridium/pkg/utils"
)

// StoreParameters selects and configures the message store
type StoreParameters struct {
	Type string `param:"desc=Message store type (fs, sql, bolt, memory);options=fs,sql,bolt,memory;default=fs"`
	Path string `param:"desc=Root directory for fs stores and file name for bolt stores;default=messages"`
	SQL  sqlstore.Parameters
}

// iridiumParameters holds the service parameters.
type iridiumParameters struct {
	Log                utils.LogParameters
	Store              StoreParameters
	DirectIP           directip.ServerParameters
	HTTP               restapi.ServerParameters
	EnableHTTP         bool `param:"desc=Launch the REST API;default=true"`
	Outputs            output.Parameters
	MonitoringEndpoint string `param:"desc=Monitoring (metrics and health) endpoint;default=127.0.0.1:0"`
	ShowSchema         bool   `param:"desc=Print database schema to stdout;default=false"`
	ExitAfterCreate    bool   `param:"desc=Exit after the store has been created;default=false"`
	Version            bool   `param:"desc=Show version;default=false"`
}
