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
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// OutputCounters holds the counters for the outputs. Both counters are
// labelled with the output type.
type OutputCounters struct {
	forwarded *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

// NewOutputCounters creates output counters
func NewOutputCounters() *OutputCounters {
	return &OutputCounters{
		forwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "output_messages_forwarded",
			Help: "Number of messages forwarded by outputs",
		}, []string{"type"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "output_errors",
			Help: "Number of messages outputs failed to forward",
		}, []string{"type"}),
	}
}

var outputInitCounters sync.Once

// Start registers the counters in prometheus
func (o *OutputCounters) Start() {
	outputInitCounters.Do(func() {
		prometheus.MustRegister(o.forwarded)
		prometheus.MustRegister(o.failed)
	})
}

// Forwarded counts a forwarded message
func (o *OutputCounters) Forwarded(outputType string) {
	o.forwarded.WithLabelValues(outputType).Inc()
}

// Failed counts a message that couldn't be forwarded
func (o *OutputCounters) Failed(outputType string) {
	o.failed.WithLabelValues(outputType).Inc()
}
