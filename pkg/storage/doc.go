// Package storage defines the message store used by the DirectIP receiver
// and the tools. The backings live in the sub-packages: fsstore keeps one
// file per message, sqlstore uses SQLite3 or PostgreSQL, boltstore uses an
// embedded bbolt database and memstore keeps everything in memory.
package storage

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
