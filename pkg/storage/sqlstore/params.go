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
	"strings"

	"github.com/eesrc/iridium/pkg/storage"
)

// Parameters is the configuration for the SQL store
type Parameters struct {
	Type             string `param:"desc=Database driver (sqlite3 or postgres);options=sqlite3,postgres;default=sqlite3"`
	ConnectionString string `param:"desc=Database connection string;default=file:iridium.db?_journal_mode=WAL"`
	CreateSchema     bool   `param:"desc=Create the database schema if it doesn't exist;default=true"`
}

// Open opens the store. SQLite3 files are accessed through a mutex.
func (p Parameters) Open() (storage.Store, error) {
	if p.Type == "sqlite3" && !strings.HasPrefix(p.ConnectionString, ":memory:") {
		return NewSQLMutexStore(p.Type, p.ConnectionString, p.CreateSchema)
	}
	return NewSQLStore(p.Type, p.ConnectionString, p.CreateSchema)
}
