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

// StoreCounters holds the counters for the message store. Duplicates are
// retransmitted messages that were already stored.
type StoreCounters struct {
	Stored     prometheus.Counter
	Duplicates prometheus.Counter
	Corrupt    prometheus.Counter
	Errors     prometheus.Counter
}

func storeCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "iridium",
		Subsystem: "store",
		Name:      name,
		Help:      help,
	})
}

// NewStoreCounters creates message store counters
func NewStoreCounters() *StoreCounters {
	return &StoreCounters{
		Stored:     storeCounter("messages_stored", "Number of messages written to the message store"),
		Duplicates: storeCounter("messages_duplicate", "Number of messages that were already stored"),
		Corrupt:    storeCounter("messages_corrupt", "Number of stored messages that couldn't be decoded"),
		Errors:     storeCounter("errors", "Number of store errors"),
	}
}

var storeInitCounters sync.Once

// Start registers the counters in prometheus
func (s *StoreCounters) Start() {
	storeInitCounters.Do(func() {
		prometheus.MustRegister(s.Stored, s.Duplicates, s.Corrupt, s.Errors)
	})
}
