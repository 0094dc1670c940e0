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
	"bufio"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ExploratoryEngineering/logging"
	"github.com/eesrc/iridium/pkg/metrics"
)

// slowRequest is the response time where requests are logged
const slowRequest = 2 * time.Second

// responseRecorder keeps track of the status code and the number of bytes
// written for a response.
type responseRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.written += n
	return n, err
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack is needed for the websocket upgrade of the live feed
func (r *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("%T can't be hijacked", r.ResponseWriter)
	}
	r.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// perfCounterHandler updates the HTTP counters for each request. Live feed
// connections are only counted once they terminate.
func (s *restServer) perfCounterHandler(f http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		f(rec, r)
		elapsed := time.Since(start)

		metrics.DefaultHTTPCounters.AddHTTPStatus(rec.status)
		if rec.status == http.StatusSwitchingProtocols {
			return
		}
		metrics.DefaultHTTPCounters.AddHTTPResponseTime(r.Method, elapsed)
		if elapsed > slowRequest {
			logging.Info("Slow request: %s %s took %v (%d bytes)", r.Method, r.URL.Path, elapsed, rec.written)
		}
	}
}
