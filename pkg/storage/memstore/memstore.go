package memstore

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
	"sync"

	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/storage"
)

// New creates a new memory-backed store. Messages are kept in their encoded
// form so the store behaves like the persistent ones.
func New() *Store {
	return &Store{
		mutex:    &sync.RWMutex{},
		messages: make(map[storage.Key][]byte),
	}
}

// Store is a storage.Store that keeps everything in memory
type Store struct {
	mutex    *sync.RWMutex
	messages map[storage.Key][]byte
}

func location(key storage.Key) string {
	return "memory:" + key.String()
}

// Put stores a message
func (s *Store) Put(msg sbd.Message) (string, bool, error) {
	key := storage.KeyFor(msg)
	buf, err := sbd.Encode(msg)
	if err != nil {
		return "", false, storage.NewError("put", storage.KeyFor(msg), storage.ErrInvalidMessage, err)
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, exists := s.messages[key]; exists {
		return location(key), true, nil
	}
	s.messages[key] = buf
	return location(key), false, nil
}

// Get returns a stored message
func (s *Store) Get(key storage.Key) (sbd.Message, error) {
	s.mutex.RLock()
	buf, ok := s.messages[key]
	s.mutex.RUnlock()
	if !ok {
		return sbd.Message{}, storage.NewError("get", key, storage.ErrNotFound, nil)
	}
	return storage.DecodeMessage(key, buf)
}

// List returns all stored messages. The list is a snapshot taken when List
// is called.
func (s *Store) List(ctx context.Context) (<-chan storage.Entry, error) {
	s.mutex.RLock()
	snapshot := make(map[storage.Key][]byte, len(s.messages))
	for k, v := range s.messages {
		snapshot[k] = v
	}
	s.mutex.RUnlock()

	ch := make(chan storage.Entry)
	go func() {
		defer close(ch)
		for k, v := range snapshot {
			select {
			case ch <- storage.DecodeEntry(k, location(k), v):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

// Close is a no-op for the memory store
func (s *Store) Close() error {
	return nil
}

// Overwrite replaces the stored bytes for a key. It's used by tests to
// simulate corrupted entries.
func (s *Store) Overwrite(key storage.Key, buf []byte) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.messages[key] = buf
}
