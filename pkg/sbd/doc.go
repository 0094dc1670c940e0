// Package sbd decodes and encodes Iridium Short Burst Data (SBD) Mobile
// Originated messages.
//
// A message is a protocol revision byte, a two byte overall length and a
// sequence of information elements (IEs). Each IE is a one byte identifier,
// a two byte length and the data. All integers are big endian. The MO header
// IE is mandatory, the payload and location IEs are optional. Unknown IEs are
// skipped on decode and are not written back out by Encode so a
// decode/encode round trip drops them.
package sbd

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
