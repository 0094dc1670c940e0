package sqlstore

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

// NewSQLMutexStore wraps a SQL store instance in mutexes, particularly SQLLite3 needs this
func NewSQLMutexStore(driver, connectionString string, create bool) (storage.Store, error) {
	s, err := NewSQLStore(driver, connectionString, create)
	if err != nil {
		return nil, err
	}
	return &mutexWrapper{src: s, m: &sync.Mutex{}}, nil
}

type mutexWrapper struct {
	src storage.Store
	m   *sync.Mutex
}

func (m *mutexWrapper) Put(msg sbd.Message) (string, bool, error) {
	m.m.Lock()
	defer m.m.Unlock()
	return m.src.Put(msg)
}

func (m *mutexWrapper) Get(key storage.Key) (sbd.Message, error) {
	m.m.Lock()
	defer m.m.Unlock()
	return m.src.Get(key)
}

// The rows are read before List returns so the lock isn't held while the
// channel is drained.
func (m *mutexWrapper) List(ctx context.Context) (<-chan storage.Entry, error) {
	m.m.Lock()
	defer m.m.Unlock()
	return m.src.List(ctx)
}

func (m *mutexWrapper) Close() error {
	m.m.Lock()
	defer m.m.Unlock()
	return m.src.Close()
}
