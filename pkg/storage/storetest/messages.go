package storetest

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
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/storage"
	"github.com/stretchr/testify/require"
)

// CorruptFunc overwrites the stored bytes for a key with something that
// won't decode. Each backing has its own way of doing that.
type CorruptFunc func(t *testing.T, key storage.Key)

// NewMessage creates a test message. The IMEI and MOMSN are derived from
// the index.
func NewMessage(index int) sbd.Message {
	loc, _ := sbd.NewLocation(63.4305, 10.3951, uint32(index%10))
	return sbd.Message{
		CDRReference:  uint32(1000 + index),
		IMEI:          fmt.Sprintf("3002340107%05d", index%7),
		SessionStatus: sbd.SessionOK,
		MOMSN:         uint16(index),
		MTMSN:         0,
		TimeOfSession: time.Unix(1590000000+int64(index), 0).UTC(),
		Payload:       []byte(fmt.Sprintf("payload %d", index)),
		Location:      &loc,
	}
}

// StoreTest runs the tests every Store implementation must pass. The store
// must be empty. If corrupt is nil the corrupt entry tests are skipped.
func StoreTest(t *testing.T, s storage.Store, corrupt CorruptFunc) {
	testPutGet(t, s)
	testConcurrentPut(t, s)
	testList(t, s)
	testListCancel(t, s)
	testPutInvalid(t, s)
	if corrupt != nil {
		testCorrupt(t, s, corrupt)
	}
}

func testPutInvalid(t *testing.T, s storage.Store) {
	assert := require.New(t)

	msg := NewMessage(2)
	msg.IMEI = "123"
	_, _, err := s.Put(msg)
	assert.Error(err)
	var storeErr *storage.Error
	assert.True(errors.As(err, &storeErr), "expected *storage.Error, got %T", err)
	assert.Equal("put", storeErr.Op)
	assert.True(errors.Is(err, storage.ErrInvalidMessage))
	assert.True(errors.Is(err, sbd.ErrIMEILength))

	_, err = s.Get(storage.KeyFor(msg))
	assert.True(errors.Is(err, storage.ErrNotFound))
}

func testPutGet(t *testing.T, s storage.Store) {
	assert := require.New(t)

	msg := NewMessage(1)
	key := storage.KeyFor(msg)

	_, err := s.Get(key)
	assert.True(errors.Is(err, storage.ErrNotFound), "expected not found, got %v", err)

	loc, exists, err := s.Put(msg)
	assert.NoError(err)
	assert.False(exists)
	assert.NotEmpty(loc)

	stored, err := s.Get(key)
	assert.NoError(err)
	assert.Equal(msg, stored)

	// Storing it again doesn't overwrite the first message
	changed := msg
	changed.Payload = []byte("something else")
	loc2, exists, err := s.Put(changed)
	assert.NoError(err)
	assert.True(exists)
	assert.Equal(loc, loc2)

	stored, err = s.Get(key)
	assert.NoError(err)
	assert.Equal(msg, stored)

	// Same IMEI and CDR but different MOMSN is a different message
	other := msg
	other.MOMSN++
	_, exists, err = s.Put(other)
	assert.NoError(err)
	assert.False(exists)

	_, err = s.Get(storage.Key{IMEI: msg.IMEI, CDRReference: msg.CDRReference, MOMSN: msg.MOMSN + 2})
	assert.True(errors.Is(err, storage.ErrNotFound))
}

func testConcurrentPut(t *testing.T, s storage.Store) {
	assert := require.New(t)

	const writers = 8
	msg := NewMessage(500)
	created := make(chan bool, writers)
	wg := &sync.WaitGroup{}
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, exists, err := s.Put(msg)
			if err != nil {
				t.Errorf("Put failed: %v", err)
				return
			}
			created <- !exists
		}()
	}
	wg.Wait()
	close(created)

	n := 0
	for c := range created {
		if c {
			n++
		}
	}
	assert.Equal(1, n, "exactly one Put should create the message")
}

func collect(t *testing.T, s storage.Store) []storage.Entry {
	ch, err := s.List(context.Background())
	require.NoError(t, err)
	var ret []storage.Entry
	for e := range ch {
		ret = append(ret, e)
	}
	return ret
}

func testList(t *testing.T, s storage.Store) {
	assert := require.New(t)

	before := len(collect(t, s))

	const count = 25
	want := make(map[storage.Key]sbd.Message)
	for i := 0; i < count; i++ {
		msg := NewMessage(100 + i)
		_, exists, err := s.Put(msg)
		assert.NoError(err)
		assert.False(exists)
		want[storage.KeyFor(msg)] = msg
	}

	entries := collect(t, s)
	assert.Len(entries, before+count)
	found := 0
	for _, e := range entries {
		assert.NoError(e.Err)
		assert.NotEmpty(e.Location)
		if msg, ok := want[e.Key]; ok {
			assert.Equal(msg, e.Message)
			found++
		}
	}
	assert.Equal(count, found)
}

func testListCancel(t *testing.T, s storage.Store) {
	assert := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := s.List(ctx)
	assert.NoError(err)
	<-ch
	cancel()

	// The channel must be closed shortly after the context is cancelled
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-timeout:
			assert.Fail("List channel not closed after cancel")
			return
		}
	}
}

func testCorrupt(t *testing.T, s storage.Store, corrupt CorruptFunc) {
	assert := require.New(t)

	msg := NewMessage(900)
	_, _, err := s.Put(msg)
	assert.NoError(err)

	key := storage.KeyFor(msg)
	corrupt(t, key)

	_, err = s.Get(key)
	assert.True(errors.Is(err, storage.ErrCorrupt), "expected corrupt, got %v", err)

	corruptEntries := 0
	good := 0
	for _, e := range collect(t, s) {
		if e.Err != nil {
			assert.True(errors.Is(e.Err, storage.ErrCorrupt))
			corruptEntries++
			continue
		}
		good++
	}
	assert.Equal(1, corruptEntries)
	assert.NotZero(good, "the scan continues past a corrupt entry")
}
