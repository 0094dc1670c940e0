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
import (
	"context"

	"github.com/eesrc/iridium/pkg/sbd"
)

// Entry is a single message returned by Store.List. Location is where the
// store keeps the message (a path, a table row or a bucket key). If the
// stored message couldn't be read or decoded Err is set and Message is the
// zero value.
type Entry struct {
	Key      Key
	Location string
	Message  sbd.Message
	Err      error
}

// Store is a durable message store. Messages are keyed on IMEI, CDR
// reference and MOMSN. All methods are safe for concurrent use.
type Store interface {
	// Put stores the message unless a message with the same key already
	// exists. The location of the message is returned. If the message was
	// already stored exists is true and nothing is written.
	Put(msg sbd.Message) (location string, exists bool, err error)

	// Get returns a stored message. ErrNotFound is returned if there's no
	// message with the key.
	Get(key Key) (sbd.Message, error)

	// List returns all stored messages in no particular order. The channel is
	// closed when all messages are delivered or when the context is
	// cancelled.
	List(ctx context.Context) (<-chan Entry, error)

	// Close releases the resources held by the store
	Close() error
}

// DecodeEntry decodes a stored message and turns decode errors into a
// corrupt entry.
func DecodeEntry(key Key, location string, buf []byte) Entry {
	msg, err := sbd.Decode(buf)
	if err != nil {
		return Entry{Key: key, Location: location, Err: NewError("list", key, ErrCorrupt, err)}
	}
	return Entry{Key: KeyFor(msg), Location: location, Message: msg}
}

// DecodeMessage decodes a stored message for Get
func DecodeMessage(key Key, buf []byte) (sbd.Message, error) {
	msg, err := sbd.Decode(buf)
	if err != nil {
		return sbd.Message{}, NewError("get", key, ErrCorrupt, err)
	}
	return msg, nil
}
