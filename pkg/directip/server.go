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
import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/ExploratoryEngineering/logging"
	"github.com/eesrc/iridium/pkg/metrics"
	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/storage"
	"github.com/eesrc/iridium/pkg/utils/audit"
)

// Publisher gets every new message after it has been stored. Publish must
// not block for long since it's called from the connection handler.
type Publisher interface {
	Publish(msg sbd.Message)
}

// Server is the DirectIP server
type Server interface {
	// Start launches the server
	Start() error
	// Stop stops the server. Connections in progress get ShutdownTimeout to
	// complete before they are closed.
	Stop() error
	// Address is the local address of the server
	Address() string
}

type directIPServer struct {
	config    ServerParameters
	store     storage.Store
	publisher Publisher
	decoder   sbd.Decoder
	counters  *metrics.DirectIPCounters
	listener  net.Listener
	slots     chan struct{}
	quit      chan struct{}
	done      chan bool
	handlers  *sync.WaitGroup
	mutex     *sync.Mutex
	conns     map[net.Conn]bool
	stopOnce  sync.Once
	acceptErr error
}

// NewServer creates a new DirectIP server. The publisher is optional.
func NewServer(config ServerParameters, store storage.Store, publisher Publisher) Server {
	if config.MaxConnections < 1 {
		config.MaxConnections = 1
	}
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = 30 * time.Second
	}
	return &directIPServer{
		config:    config,
		store:     store,
		publisher: publisher,
		decoder:   sbd.Decoder{StrictIMEI: config.StrictIMEI},
		counters:  metrics.DefaultDirectIPCounters,
		slots:     make(chan struct{}, config.MaxConnections),
		quit:      make(chan struct{}),
		done:      make(chan bool),
		handlers:  &sync.WaitGroup{},
		mutex:     &sync.Mutex{},
		conns:     make(map[net.Conn]bool),
	}
}

func (s *directIPServer) Start() error {
	if s.config.AuditLog {
		audit.Enable()
	}
	listener, err := net.Listen("tcp", s.config.Endpoint)
	if err != nil {
		return err
	}
	s.listener = listener
	logging.Info("DirectIP server is listening on %s", s.Address())

	result := make(chan error, 1)
	go s.acceptLoop(result)

	select {
	case err := <-result:
		return err
	case <-time.After(100 * time.Millisecond):
		break
	}
	return nil
}

// acceptLoop accepts connections until the listener is closed. A slot is
// reserved before each Accept so no more than MaxConnections are handled at
// once. Extra connections wait in the listen backlog.
func (s *directIPServer) acceptLoop(result chan error) {
	defer close(s.done)
	for {
		select {
		case s.slots <- struct{}{}:
		case <-s.quit:
			return
		}
		conn, err := s.listener.Accept()
		if err != nil {
			<-s.slots
			select {
			case <-s.quit:
				return
			default:
			}
			if ne, ok := err.(net.Error); ok && ne.Temporary() {
				logging.Warning("DirectIP: temporary error accepting connection: %v", err)
				time.Sleep(10 * time.Millisecond)
				continue
			}
			logging.Error("DirectIP: error accepting connection: %v. The receiver has stopped.", err)
			s.mutex.Lock()
			s.acceptErr = err
			s.mutex.Unlock()
			result <- err
			return
		}
		s.track(conn)
		s.handlers.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *directIPServer) track(conn net.Conn) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.conns[conn] = true
}

func (s *directIPServer) untrack(conn net.Conn) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.conns, conn)
}

func (s *directIPServer) closeAll() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for conn := range s.conns {
		conn.Close()
	}
}

func (s *directIPServer) handleConnection(conn net.Conn) {
	defer func() {
		conn.Close()
		s.untrack(conn)
		s.counters.Active.Dec()
		<-s.slots
		s.handlers.Done()
	}()
	s.counters.Connections.Inc()
	s.counters.Active.Inc()

	if err := conn.SetDeadline(s.deadline()); err != nil {
		logging.Warning("DirectIP: unable to set deadline for %s: %v", conn.RemoteAddr(), err)
	}
	s.receive(conn.RemoteAddr().String(), conn)
}

// Stop only acts on the first call. An error that stopped the accept loop
// is returned if there is one.
func (s *directIPServer) Stop() error {
	if s.listener == nil {
		return nil
	}
	var err error
	s.stopOnce.Do(func() {
		err = s.shutdown()
	})
	return err
}

func (s *directIPServer) shutdown() error {
	logging.Info("Shutting down DirectIP server")
	close(s.quit)
	err := s.listener.Close()
	<-s.done

	s.mutex.Lock()
	if s.acceptErr != nil {
		err = s.acceptErr
	}
	s.mutex.Unlock()

	finished := make(chan bool)
	go func() {
		s.handlers.Wait()
		close(finished)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	select {
	case <-finished:
		return err
	case <-ctx.Done():
	}
	logging.Warning("DirectIP: closing connections still in progress")
	s.closeAll()
	<-finished
	return err
}

func (s *directIPServer) Address() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
