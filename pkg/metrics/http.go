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
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPCounters holds the counters for the REST API
type HTTPCounters struct {
	status       *prometheus.CounterVec
	responseTime *prometheus.HistogramVec
}

// NewHTTPCounters creates REST API counters
func NewHTTPCounters() *HTTPCounters {
	return &HTTPCounters{
		status: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_responses",
			Help: "HTTP responses by status code",
		}, []string{"code"}),
		responseTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_response_seconds",
			Help:    "HTTP response time",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

var httpInitCounters sync.Once

// Start registers the counters in prometheus
func (h *HTTPCounters) Start() {
	httpInitCounters.Do(func() {
		prometheus.MustRegister(h.status)
		prometheus.MustRegister(h.responseTime)
	})
}

// AddHTTPStatus counts a response
func (h *HTTPCounters) AddHTTPStatus(code int) {
	h.status.WithLabelValues(strconv.Itoa(code)).Inc()
}

// AddHTTPResponseTime records the time spent on a request
func (h *HTTPCounters) AddHTTPResponseTime(method string, d time.Duration) {
	h.responseTime.WithLabelValues(method).Observe(d.Seconds())
}
