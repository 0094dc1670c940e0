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

// This is the default counters in the package. It introduces package-level
// state but there's a lot less clutter for the code.
//
// It works similarly to the http.DefaultClient construct in the standard
// library.

// DefaultDirectIPCounters is the default DirectIP receiver counters
var DefaultDirectIPCounters *DirectIPCounters

// DefaultStoreCounters is the default message store counters
var DefaultStoreCounters *StoreCounters

// DefaultOutputCounters is the default output counters
var DefaultOutputCounters *OutputCounters

// DefaultHTTPCounters is the default REST API counters
var DefaultHTTPCounters *HTTPCounters

func init() {
	DefaultDirectIPCounters = NewDirectIPCounters()
	DefaultStoreCounters = NewStoreCounters()
	DefaultOutputCounters = NewOutputCounters()
	DefaultHTTPCounters = NewHTTPCounters()
}
