package server

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
	"fmt"

	"github.com/ExploratoryEngineering/logging"
	"github.com/eesrc/iridium/pkg/storage"
	"github.com/eesrc/iridium/pkg/storage/boltstore"
	"github.com/eesrc/iridium/pkg/storage/counters"
	"github.com/eesrc/iridium/pkg/storage/fsstore"
	"github.com/eesrc/iridium/pkg/storage/memstore"
)

// OpenStore creates the message store. The store is wrapped so it updates
// the store metrics.
func OpenStore(p StoreParameters) (storage.Store, error) {
	var store storage.Store
	var err error
	switch p.Type {
	case "fs":
		logging.Info("Using file system store in %s", p.Path)
		store, err = fsstore.New(p.Path, true)
	case "sql":
		logging.Info("Using %s store", p.SQL.Type)
		store, err = p.SQL.Open()
	case "bolt":
		logging.Info("Using bolt store in %s", p.Path)
		store, err = boltstore.New(p.Path)
	case "memory":
		logging.Warning("Using memory store. Messages are lost when the service stops.")
		store = memstore.New()
	default:
		return nil, fmt.Errorf("unknown store type: %s", p.Type)
	}
	if err != nil {
		return nil, err
	}
	return counters.NewCounterWrapperStore(store), nil
}
