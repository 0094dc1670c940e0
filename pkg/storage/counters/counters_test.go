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
	"errors"
	"testing"

	"github.com/eesrc/iridium/pkg/metrics"
	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/storage"
	"github.com/eesrc/iridium/pkg/storage/memstore"
	"github.com/eesrc/iridium/pkg/storage/storetest"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCounterWrapper(t *testing.T) {
	storetest.StoreTest(t, NewCounterWrapperStore(memstore.New()), nil)
}

type brokenStore struct {
	storage.Store
}

func (b *brokenStore) Put(msg sbd.Message) (string, bool, error) {
	return "", false, storage.NewError("put", storage.KeyFor(msg), storage.ErrUnavailable, errors.New("disk on fire"))
}

type corruptStore struct {
	storage.Store
}

func (s *corruptStore) List(ctx context.Context) (<-chan storage.Entry, error) {
	ch := make(chan storage.Entry, 2)
	ch <- storage.Entry{Location: "a", Err: storage.ErrCorrupt}
	ch <- storage.Entry{Location: "b", Message: storetest.NewMessage(1)}
	close(ch)
	return ch, nil
}

func TestCorruptCount(t *testing.T) {
	assert := require.New(t)
	c := &counterWrapStore{store: &corruptStore{}, counters: metrics.NewStoreCounters()}
	ch, err := c.List(context.Background())
	assert.NoError(err)
	n := 0
	for range ch {
		n++
	}
	assert.Equal(2, n)
	assert.Equal(float64(1), testutil.ToFloat64(c.counters.Corrupt))
}

func TestCounterUpdates(t *testing.T) {
	assert := require.New(t)
	c := &counterWrapStore{store: memstore.New(), counters: metrics.NewStoreCounters()}

	msg := storetest.NewMessage(1)
	_, exists, err := c.Put(msg)
	assert.NoError(err)
	assert.False(exists)
	_, exists, err = c.Put(msg)
	assert.NoError(err)
	assert.True(exists)
	assert.Equal(float64(1), testutil.ToFloat64(c.counters.Stored))
	assert.Equal(float64(1), testutil.ToFloat64(c.counters.Duplicates))

	_, err = c.Get(storage.Key{IMEI: "x"})
	assert.True(storage.IsNotFound(err))
	assert.Equal(float64(0), testutil.ToFloat64(c.counters.Errors))

	c.store = &brokenStore{c.store}
	_, _, err = c.Put(msg)
	assert.True(errors.Is(err, storage.ErrUnavailable))
	assert.Equal(float64(1), testutil.ToFloat64(c.counters.Errors))
	assert.NoError(c.Close())
}
