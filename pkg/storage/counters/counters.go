package counters

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

	"github.com/eesrc/iridium/pkg/metrics"
	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/storage"
)

type counterWrapStore struct {
	store    storage.Store
	counters *metrics.StoreCounters
}

// NewCounterWrapperStore creates a wrapper for an existing storage.Store
// that updates the store performance counters.
func NewCounterWrapperStore(s storage.Store) storage.Store {
	return &counterWrapStore{store: s, counters: metrics.DefaultStoreCounters}
}

func (c *counterWrapStore) Put(msg sbd.Message) (string, bool, error) {
	location, exists, err := c.store.Put(msg)
	if err != nil {
		c.counters.Errors.Inc()
		return location, exists, err
	}
	if exists {
		c.counters.Duplicates.Inc()
		return location, exists, nil
	}
	c.counters.Stored.Inc()
	return location, exists, nil
}

func (c *counterWrapStore) Get(key storage.Key) (sbd.Message, error) {
	msg, err := c.store.Get(key)
	if err != nil && !storage.IsNotFound(err) {
		c.counters.Errors.Inc()
	}
	return msg, err
}

func (c *counterWrapStore) List(ctx context.Context) (<-chan storage.Entry, error) {
	ch, err := c.store.List(ctx)
	if err != nil {
		c.counters.Errors.Inc()
		return nil, err
	}
	ret := make(chan storage.Entry)
	go func() {
		defer close(ret)
		for e := range ch {
			if e.Err != nil {
				c.counters.Corrupt.Inc()
			}
			select {
			case ret <- e:
			case <-ctx.Done():
				// Drain the source so its goroutine terminates
				for range ch {
				}
				return
			}
		}
	}()
	return ret, nil
}

func (c *counterWrapStore) Close() error {
	return c.store.Close()
}
