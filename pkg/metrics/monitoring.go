package metrics

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
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ExploratoryEngineering/logging"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MonitoringServer serves the prometheus counters on /metrics
type MonitoringServer struct {
	listener net.Listener
	server   *http.Server
	done     chan bool
	started  bool
}

// NewMonitoringServer creates a monitoring server. The listener is created
// immediately so the endpoint can use port 0.
func NewMonitoringServer(endpoint string) (*MonitoringServer, error) {
	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return &MonitoringServer{
		listener: listener,
		server:   &http.Server{Handler: handlers.CompressHandler(mux)},
		done:     make(chan bool, 1),
	}, nil
}

// Start launches the server
func (m *MonitoringServer) Start() error {
	m.started = true
	result := make(chan error, 1)
	go func() {
		if err := m.server.Serve(m.listener); err != http.ErrServerClosed {
			result <- err
		}
		m.done <- true
	}()
	select {
	case err := <-result:
		return err
	case <-time.After(100 * time.Millisecond):
	}
	logging.Info("Monitoring server runs on %s", m.ServerURL())
	return nil
}

// ServerURL returns the base URL of the server
func (m *MonitoringServer) ServerURL() string {
	return fmt.Sprintf("http://%s", m.listener.Addr().String())
}

// Shutdown stops the server
func (m *MonitoringServer) Shutdown() error {
	if !m.started {
		return m.listener.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	if err := m.server.Shutdown(ctx); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-m.done:
	}
	return nil
}
