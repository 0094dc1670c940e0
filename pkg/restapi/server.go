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
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/ExploratoryEngineering/logging"
	"github.com/ExploratoryEngineering/rest"
	"github.com/eesrc/iridium/pkg/output"
	"github.com/eesrc/iridium/pkg/storage"
	"github.com/gorilla/handlers"
)

// Server is the server interface for the REST API server
type Server interface {
	// Start launches the server
	Start() error
	// Stop stops the servers
	Stop() error
	// Address returns the address the server listens on
	Address() string
}

// restServer serves the read-only REST API for the message store.
type restServer struct {
	params    ServerParameters
	mux       *http.ServeMux
	server    *http.Server
	listener  net.Listener
	store     storage.Store
	mgr       output.Manager
	done      chan bool
	quit      chan struct{}
	stopOnce  sync.Once
	keepAlive time.Duration
}

// NewServer creates a new REST API server. The manager is used for the live
// feed and may be nil.
func NewServer(params ServerParameters, store storage.Store, mgr output.Manager) Server {
	if params.MaxListLength < 1 {
		params.MaxListLength = 1000
	}
	ret := &restServer{
		params:    params,
		store:     store,
		mgr:       mgr,
		done:      make(chan bool, 1),
		quit:      make(chan struct{}),
		keepAlive: params.keepAlive(),
	}
	ret.mux = http.NewServeMux()
	ret.mux.HandleFunc("/", ret.perfCounterHandler(rest.AddCORSHeaders(ret.newAuthHandler(ret.routeRequest)).ServeHTTP))
	ret.server = &http.Server{
		Handler: handlers.CompressHandler(ret.addRequestLogging(params.InlineRequestlog, ret.mux)),
	}
	return ret
}

func (s *restServer) startServer(result chan error, tls bool) {
	defer func() {
		s.done <- true
	}()

	var err error
	if tls {
		logging.Info("REST API runs on %s (TLS)", s.listener.Addr().String())
		err = s.server.ServeTLS(s.listener, s.params.TLSCertFile, s.params.TLSKeyFile)
	} else {
		logging.Info("REST API runs on %s", s.listener.Addr().String())
		err = s.server.Serve(s.listener)
	}
	if err != http.ErrServerClosed {
		result <- err
	}
}

func (s *restServer) Start() error {
	var err error
	s.listener, err = net.Listen("tcp", s.params.Endpoint)
	if err != nil {
		return err
	}
	result := make(chan error, 1)
	useTLS := s.params.UseTLS()
	if useTLS {
		logging.Info("Using TLS configuration in %s/%s", s.params.TLSCertFile, s.params.TLSKeyFile)
	}
	go s.startServer(result, useTLS)
	select {
	case err := <-result:
		return err
	case <-time.After(100 * time.Millisecond):
		break
	}
	return nil
}

func (s *restServer) Address() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *restServer) Stop() error {
	s.stopOnce.Do(func() { close(s.quit) })
	ctx, cancelFunc := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancelFunc()
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-s.done:
	}
	return nil
}

// requestLogWriter writes request logs to the default logger
type requestLogWriter struct {
}

func (r *requestLogWriter) Write(p []byte) (int, error) {
	logging.Info("REQUESTLOG: %s", string(p))
	return len(p), nil
}

// addRequestLogging logs requests to the application log or a file
func (s *restServer) addRequestLogging(inline bool, h http.Handler) http.Handler {
	if inline || s.params.RequestLog == "" {
		return handlers.LoggingHandler(&requestLogWriter{}, h)
	}
	var f io.Writer
	f, err := os.OpenFile(s.params.RequestLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logging.Warning("Unable to open request log in %s", s.params.RequestLog)
		f = &requestLogWriter{}
	}
	return handlers.LoggingHandler(f, h)
}
