package boltstore

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
	"fmt"
	"time"

	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/storage"
	"go.etcd.io/bbolt"
)

var messageBucket = []byte("messages")

// Store is a storage.Store backed by a bbolt database file
type Store struct {
	db   *bbolt.DB
	path string
}

// New opens (or creates) the database file
func New(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %v", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(messageBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %v", err)
	}
	return &Store{db: db, path: path}, nil
}

// DB returns the underlying database
func (s *Store) DB() *bbolt.DB {
	return s.db
}

func (s *Store) location(key storage.Key) string {
	return fmt.Sprintf("%s#%s", s.path, key.String())
}

// Put stores the message unless it's already stored. The check and the
// insert run in the same write transaction.
func (s *Store) Put(msg sbd.Message) (string, bool, error) {
	key := storage.KeyFor(msg)
	buf, err := sbd.Encode(msg)
	if err != nil {
		return "", false, storage.NewError("put", storage.KeyFor(msg), storage.ErrInvalidMessage, err)
	}
	exists := false
	err = s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(messageBucket)
		k := []byte(key.String())
		if b.Get(k) != nil {
			exists = true
			return nil
		}
		return b.Put(k, buf)
	})
	if err != nil {
		return "", false, storage.NewError("put", key, storage.ErrUnavailable, err)
	}
	return s.location(key), exists, nil
}

// Get returns a stored message
func (s *Store) Get(key storage.Key) (sbd.Message, error) {
	var buf []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		// The value is only valid inside the transaction
		if v := tx.Bucket(messageBucket).Get([]byte(key.String())); v != nil {
			buf = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return sbd.Message{}, storage.NewError("get", key, storage.ErrUnavailable, err)
	}
	if buf == nil {
		return sbd.Message{}, storage.NewError("get", key, storage.ErrNotFound, nil)
	}
	return storage.DecodeMessage(key, buf)
}

// List copies the entries out of a read transaction and decodes them lazily
func (s *Store) List(ctx context.Context) (<-chan storage.Entry, error) {
	type rawEntry struct {
		key string
		buf []byte
	}
	var entries []rawEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(messageBucket).ForEach(func(k, v []byte) error {
			entries = append(entries, rawEntry{key: string(k), buf: append([]byte{}, v...)})
			return nil
		})
	})
	if err != nil {
		return nil, storage.NewError("list", storage.Key{}, storage.ErrUnavailable, err)
	}

	ch := make(chan storage.Entry)
	go func() {
		defer close(ch)
		for _, e := range entries {
			var entry storage.Entry
			key, err := storage.ParseKey(e.key)
			if err != nil {
				entry = storage.Entry{Location: s.path + "#" + e.key, Err: storage.NewError("list", storage.Key{}, storage.ErrCorrupt, err)}
			} else {
				entry = storage.DecodeEntry(key, s.location(key), e.buf)
			}
			select {
			case ch <- entry:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
