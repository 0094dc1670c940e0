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
	"fmt"

	"github.com/ExploratoryEngineering/logging"
	"github.com/ExploratoryEngineering/params"
	"github.com/eesrc/iridium/pkg/storage/sqlstore"
	"github.com/eesrc/iridium/pkg/utils"
	"github.com/eesrc/iridium/pkg/version"
)

// LaunchIridium launches the service using the supplied command line
// arguments. It returns when the process receives a signal.
func LaunchIridium(args []string) {
	config := iridiumParameters{}
	if err := params.NewEnvFlag(&config, args); err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	if config.Version {
		fmt.Println(version.Release())
		return
	}
	if config.ShowSchema {
		schema := sqlstore.NewSchema(config.Store.SQL.Type, sqlstore.DBSchema)
		for _, v := range schema.DDL() {
			fmt.Println(v)
		}
		return
	}

	utils.InitLogs("iridiumd", config.Log)
	logging.Info("Iridium service launching. Version is %s", version.Release())

	if config.ExitAfterCreate {
		store, err := OpenStore(config.Store)
		if err != nil {
			logging.Error("Unable to create store: %v", err)
			return
		}
		store.Close()
		logging.Info("Store created. Exiting.")
		return
	}
	server, err := newServer(config)
	if err != nil {
		logging.Error("Unable to create service: %v", err)
		return
	}
	defer func() {
		server.Stop()
		logging.Info("Iridium service is stopped")
	}()
	if err := server.Start(config.Outputs.Definitions()); err != nil {
		logging.Error("Unable to launch service: %v", err)
		return
	}

	logging.Debug("Ready. Waiting for server to terminate")
	utils.WaitForSignal()
}
