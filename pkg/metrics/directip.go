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

// Reject reasons for the DirectIP counters
const (
	RejectIO     = "io"
	RejectFormat = "format"
	RejectStore  = "store"
)

// DirectIPCounters holds the counters for the DirectIP receiver
type DirectIPCounters struct {
	Connections prometheus.Counter     // Accepted connections
	Active      prometheus.Gauge       // Connections being handled right now
	Stored      prometheus.Counter     // New messages stored
	Duplicates  prometheus.Counter     // Messages that were already stored
	Rejected    *prometheus.CounterVec // Rejected connections by reason
	Bytes       prometheus.Counter     // Bytes read from peers
}

// NewDirectIPCounters creates a new set of DirectIP counters
func NewDirectIPCounters() *DirectIPCounters {
	return &DirectIPCounters{
		Connections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "directip_connections",
			Help: "Number of accepted DirectIP connections",
		}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "directip_active_connections",
			Help: "Number of DirectIP connections in progress",
		}),
		Stored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "directip_messages_stored",
			Help: "Number of new MO messages stored",
		}),
		Duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "directip_messages_duplicate",
			Help: "Number of MO messages received more than once",
		}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "directip_rejected",
			Help: "Rejected DirectIP connections",
		}, []string{"reason"}),
		Bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "directip_bytes_received",
			Help: "Number of bytes received on DirectIP connections",
		}),
	}
}

var directIPInitCounters sync.Once

// Start registers the counters
func (d *DirectIPCounters) Start() {
	directIPInitCounters.Do(func() {
		prometheus.MustRegister(d.Connections)
		prometheus.MustRegister(d.Active)
		prometheus.MustRegister(d.Stored)
		prometheus.MustRegister(d.Duplicates)
		prometheus.MustRegister(d.Rejected)
		prometheus.MustRegister(d.Bytes)
	})
	d.Connections.Add(0)
	d.Stored.Add(0)
	d.Duplicates.Add(0)
	d.Bytes.Add(0)
	for _, reason := range []string{RejectIO, RejectFormat, RejectStore} {
		d.Rejected.With(prometheus.Labels{"reason": reason}).Add(0)
	}
}

// Reject increments the reject counter for the reason
func (d *DirectIPCounters) Reject(reason string) {
	d.Rejected.With(prometheus.Labels{"reason": reason}).Inc()
}
