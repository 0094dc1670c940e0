// Package fsstore is a message store that keeps one file per message. The
// files are laid out as <root>/<imei>/<key>.sbd and hold the encoded
// message. New files are written to a temporary file in the same directory
// and published with a rename that never replaces an existing file, so a
// reader never sees a partial message and concurrent writers of the same
// message can't clobber each other.
package fsstore

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
