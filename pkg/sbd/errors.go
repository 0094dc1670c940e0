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
import (
	"errors"
	"fmt"
)

// Decode errors. Decode always returns a *FormatError wrapping one of these
// so the kind can be checked with errors.Is.
var (
	// ErrTruncated is returned when the buffer ends before the declared
	// length or before an element header is complete.
	ErrTruncated = errors.New("message is truncated")
	// ErrOversized is returned when the buffer holds more bytes than the
	// declared overall message length.
	ErrOversized = errors.New("message is oversized")
	// ErrProtocolRevision is returned when the revision byte isn't 1.
	ErrProtocolRevision = errors.New("unsupported protocol revision")
	// ErrElementOverrun is returned when an element length runs past the end
	// of the message.
	ErrElementOverrun = errors.New("information element overruns message")
	// ErrMissingHeader is returned when there's no MO header element.
	ErrMissingHeader = errors.New("missing MO header")
	// ErrDuplicateElement is returned when the header, payload or location
	// element occurs more than once.
	ErrDuplicateElement = errors.New("duplicate information element")
	// ErrHeaderLength is returned when the MO header element isn't 28 bytes.
	ErrHeaderLength = errors.New("invalid MO header length")
	// ErrLocationLength is returned when the location element isn't 11 bytes.
	ErrLocationLength = errors.New("invalid MO location length")
	// ErrInvalidLocation is returned for reserved bits or coordinates out
	// of range.
	ErrInvalidLocation = errors.New("invalid MO location")
	// ErrInvalidIMEI is returned by a strict decoder when the IMEI contains
	// anything but ASCII digits.
	ErrInvalidIMEI = errors.New("invalid IMEI")
)

// Encode errors.
var (
	// ErrIMEILength is returned when the IMEI isn't exactly 15 bytes.
	ErrIMEILength = errors.New("IMEI must be 15 bytes")
	// ErrTimeOfSession is returned when the time of session can't be
	// represented as an unsigned 32-bit epoch timestamp.
	ErrTimeOfSession = errors.New("time of session out of range")
	// ErrPayloadLength is returned when the payload won't fit in an element.
	ErrPayloadLength = errors.New("payload too long")
	// ErrMessageLength is returned when the overall length exceeds 65535.
	ErrMessageLength = errors.New("message too long")
)

// FormatError is a decode failure. Offset is the position in the buffer
// where the problem was detected and IEI is the element identifier when the
// error relates to a single element.
type FormatError struct {
	Err    error
	Offset int
	IEI    uint8
	Detail string
}

func (e *FormatError) Error() string {
	s := fmt.Sprintf("sbd: %v at offset %d", e.Err, e.Offset)
	if e.IEI != 0 {
		s += fmt.Sprintf(" (IEI 0x%02x)", e.IEI)
	}
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	return s
}

// Unwrap returns the error kind
func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError returns true if the error is a decode failure
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

func formatError(kind error, offset int, iei uint8, format string, args ...interface{}) error {
	return &FormatError{
		Err:    kind,
		Offset: offset,
		IEI:    iei,
		Detail: fmt.Sprintf(format, args...),
	}
}
