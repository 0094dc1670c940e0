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
	"github.com/ExploratoryEngineering/logging"
	"github.com/eesrc/iridium/pkg/directip"
	"github.com/eesrc/iridium/pkg/metrics"
	"github.com/eesrc/iridium/pkg/output"
	"github.com/eesrc/iridium/pkg/restapi"
	"github.com/eesrc/iridium/pkg/storage"
)

// iridiumServer holds the running components of the service
type iridiumServer struct {
	store      storage.Store
	mgr        output.Manager
	receiver   directip.Server
	restAPI    restapi.Server
	monitoring *metrics.MonitoringServer
}

func newServer(config iridiumParameters) (*iridiumServer, error) {
	store, err := OpenStore(config.Store)
	if err != nil {
		return nil, err
	}
	ret := &iridiumServer{store: store, mgr: output.NewLocalManager()}
	output.AllowLocalEndpoints(config.Outputs.AllowLocal)

	ret.receiver = directip.NewServer(config.DirectIP, store, ret.mgr)
	if config.EnableHTTP {
		ret.restAPI = restapi.NewServer(config.HTTP, store, ret.mgr)
	}
	ret.monitoring, err = metrics.NewMonitoringServer(config.MonitoringEndpoint)
	if err != nil {
		store.Close()
		return nil, err
	}
	return ret, nil
}

// Start launches the outputs, the REST API, the monitoring endpoint and
// finally the DirectIP receiver.
func (s *iridiumServer) Start(outputs []output.Definition) error {
	metrics.DefaultDirectIPCounters.Start()
	metrics.DefaultStoreCounters.Start()
	metrics.DefaultOutputCounters.Start()
	metrics.DefaultHTTPCounters.Start()

	for _, def := range outputs {
		if errs, err := s.mgr.Verify(def); err != nil {
			logging.Error("Invalid configuration for %s output: %v", def.ID, errs)
			return err
		}
	}
	s.mgr.Refresh(outputs)

	if err := s.monitoring.Start(); err != nil {
		logging.Error("Unable to start monitoring server: %v", err)
		return err
	}
	logging.Info("Monitoring endpoint runs on %s", s.monitoring.ServerURL())

	if s.restAPI != nil {
		if err := s.restAPI.Start(); err != nil {
			logging.Error("Unable to start REST API: %v", err)
			return err
		}
	}
	if err := s.receiver.Start(); err != nil {
		logging.Error("Unable to start DirectIP receiver: %v", err)
		return err
	}
	logging.Info("DirectIP receiver runs on %s", s.receiver.Address())
	return nil
}

// Stop stops the components in reverse order. The receiver stops first so
// no new messages are accepted while the rest shuts down.
func (s *iridiumServer) Stop() {
	if err := s.receiver.Stop(); err != nil {
		logging.Warning("Error stopping DirectIP receiver: %v", err)
	}
	if s.restAPI != nil {
		if err := s.restAPI.Stop(); err != nil {
			logging.Warning("Error stopping REST API: %v", err)
		}
	}
	s.mgr.Shutdown()
	s.monitoring.Shutdown()
	if err := s.store.Close(); err != nil {
		logging.Warning("Error closing store: %v", err)
	}
}
