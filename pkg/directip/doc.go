// Package directip implements the receiving end of Iridium DirectIP for
// Mobile Originated messages. The gateway opens one TCP connection per
// message, writes the message and closes the connection. Each message is
// decoded, written to the message store and, if it's new, handed to a
// publisher.
package directip

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
