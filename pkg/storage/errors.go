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
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a message isn't found by the storage layer.
	ErrNotFound = errors.New("message not found")
	// ErrCorrupt is returned when a stored message can't be decoded.
	ErrCorrupt = errors.New("stored message is corrupt")
	// ErrUnavailable is returned when the storage medium can't be reached or
	// access is denied.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrInvalidMessage is returned by Put when the message can't be encoded.
	ErrInvalidMessage = errors.New("message can't be encoded")
)

// Error is the error type returned by the stores. Kind is one of the
// sentinel errors above and Err is the underlying error, if any.
type Error struct {
	Op   string
	Key  Key
	Kind error
	Err  error
}

// NewError creates a new storage error
func NewError(op string, key Key, kind error, err error) *Error {
	return &Error{Op: op, Key: key, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	s := "storage: " + e.Op
	if e.Key != (Key{}) {
		s += " " + e.Key.String()
	}
	s += ": " + e.Kind.Error()
	if e.Err != nil {
		s += fmt.Sprintf(" (%v)", e.Err)
	}
	return s
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error kind
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// IsNotFound returns true if the error is ErrNotFound or wraps it
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
