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
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// ProtocolRevision is the only supported protocol revision
const ProtocolRevision = uint8(1)

// PreambleLength is the size of the revision byte and the overall length
const PreambleLength = 3

// MaxMessageLength is the largest possible encoded message
const MaxMessageLength = PreambleLength + 0xFFFF

// BodyLength validates the preamble and returns the number of bytes that
// follow it.
func BodyLength(preamble []byte) (int, error) {
	if len(preamble) < PreambleLength {
		return 0, formatError(ErrTruncated, len(preamble), 0, "preamble is %d bytes", len(preamble))
	}
	if preamble[0] != ProtocolRevision {
		return 0, formatError(ErrProtocolRevision, 0, 0, "revision is %d", preamble[0])
	}
	return int(binary.BigEndian.Uint16(preamble[1:])), nil
}

// Decoder decodes MO messages. The zero value is a lenient decoder that
// accepts any bytes in the IMEI field.
type Decoder struct {
	// StrictIMEI rejects messages with IMEIs that aren't all ASCII digits
	StrictIMEI bool
}

// Decode decodes a single MO message with the default (lenient) decoder.
// The buffer must hold exactly one message.
func Decode(buf []byte) (Message, error) {
	return Decoder{}.Decode(buf)
}

// Decode decodes a single MO message. The buffer must hold exactly one
// message. The returned message doesn't reference the buffer.
func (d Decoder) Decode(buf []byte) (Message, error) {
	length, err := BodyLength(buf)
	if err != nil {
		return Message{}, err
	}
	end := PreambleLength + length
	if len(buf) < end {
		return Message{}, formatError(ErrTruncated, len(buf), 0, "overall length is %d but only %d bytes follow", length, len(buf)-PreambleLength)
	}
	if len(buf) > end {
		return Message{}, formatError(ErrOversized, end, 0, "%d bytes after end of message", len(buf)-end)
	}

	var b messageBuilder
	offset := PreambleLength
	for offset < end {
		if end-offset < elementHeaderLength {
			return Message{}, formatError(ErrTruncated, offset, 0, "incomplete element header")
		}
		iei := buf[offset]
		n := int(binary.BigEndian.Uint16(buf[offset+1:]))
		start := offset + elementHeaderLength
		if start+n > end {
			return Message{}, formatError(ErrElementOverrun, offset, iei, "length %d exceeds remaining %d bytes", n, end-start)
		}
		data := buf[start : start+n]

		var e element
		switch iei {
		case ieiHeader:
			e, err = parseHeader(data, offset)
		case ieiPayload:
			e = moPayload(data)
		case ieiLocation:
			e, err = parseLocation(data, offset)
		default:
			e = unknownElement(iei)
		}
		if err != nil {
			return Message{}, err
		}
		if err := b.add(e, offset); err != nil {
			return Message{}, err
		}
		offset = start + n
	}
	return b.build(d.StrictIMEI, end)
}

// ReadFrom reads exactly one message from the reader and decodes it. The raw
// bytes are returned along with the message. Nothing past the declared
// length is read.
func (d Decoder) ReadFrom(r io.Reader) (Message, []byte, error) {
	buf := make([]byte, PreambleLength, MaxMessageLength)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Message{}, nil, err
	}
	length, err := BodyLength(buf)
	if err != nil {
		return Message{}, nil, err
	}
	buf = buf[:PreambleLength+length]
	if _, err := io.ReadFull(r, buf[PreambleLength:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Message{}, nil, err
	}
	msg, err := d.Decode(buf)
	if err != nil {
		return Message{}, nil, err
	}
	return msg, buf, nil
}

// ReadFrom reads one message with the lenient decoder
func ReadFrom(r io.Reader) (Message, []byte, error) {
	return Decoder{}.ReadFrom(r)
}

// Encode encodes the message in the MO wire format. The header comes first,
// then the payload element (always written, even when empty) and then the
// location element if there is one. Unknown elements are not written.
func Encode(m Message) ([]byte, error) {
	if len(m.IMEI) != imeiLength {
		return nil, fmt.Errorf("sbd: IMEI %q is %d bytes: %w", m.IMEI, len(m.IMEI), ErrIMEILength)
	}
	ts := m.TimeOfSession.Unix()
	if ts < 0 || ts > math.MaxUint32 {
		return nil, fmt.Errorf("sbd: %v: %w", m.TimeOfSession, ErrTimeOfSession)
	}
	if len(m.Payload) > maxElementLength {
		return nil, fmt.Errorf("sbd: payload is %d bytes: %w", len(m.Payload), ErrPayloadLength)
	}

	elements := []element{
		moHeader{
			cdrReference:  m.CDRReference,
			imei:          m.IMEI,
			sessionStatus: m.SessionStatus,
			momsn:         m.MOMSN,
			mtmsn:         m.MTMSN,
			timeOfSession: uint32(ts),
		},
		moPayload(m.Payload),
	}
	if m.Location != nil {
		if err := m.Location.Validate(); err != nil {
			return nil, fmt.Errorf("sbd: %w", err)
		}
		elements = append(elements, moLocation(*m.Location))
	}

	length := 0
	for _, e := range elements {
		length += elementHeaderLength + e.dataLength()
	}
	if length > maxElementLength {
		return nil, fmt.Errorf("sbd: overall length %d: %w", length, ErrMessageLength)
	}

	buf := make([]byte, PreambleLength+length)
	buf[0] = ProtocolRevision
	binary.BigEndian.PutUint16(buf[1:], uint16(length))
	offset := PreambleLength
	for _, e := range elements {
		n := e.dataLength()
		buf[offset] = e.iei()
		binary.BigEndian.PutUint16(buf[offset+1:], uint16(n))
		e.marshalData(buf[offset+elementHeaderLength : offset+elementHeaderLength+n])
		offset += elementHeaderLength + n
	}
	return buf, nil
}
