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
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Header only message: revision 1, length 31, one 28 byte MO header
const headerOnly = "01001f" +
	"01001c" +
	"00000001" +
	"333030303334303130313233343530" +
	"00" +
	"0001" +
	"0000" +
	"5e000000"

func mustHex(t *testing.T, s string) []byte {
	buf, err := hex.DecodeString(s)
	require.NoError(t, err)
	return buf
}

func TestDecodeHeaderOnly(t *testing.T) {
	assert := require.New(t)

	msg, err := Decode(mustHex(t, headerOnly))
	assert.NoError(err)
	assert.Equal(uint32(1), msg.CDRReference)
	assert.Equal("300034010123450", msg.IMEI)
	assert.Equal(SessionOK, msg.SessionStatus)
	assert.Equal(uint16(1), msg.MOMSN)
	assert.Equal(uint16(0), msg.MTMSN)
	assert.Equal(time.Unix(0x5e000000, 0).UTC(), msg.TimeOfSession)
	assert.Empty(msg.Payload)
	assert.Nil(msg.Location)
	assert.True(msg.ValidIMEI())
	assert.False(msg.HasUnknownElements())
}

func TestDecodePayload(t *testing.T) {
	assert := require.New(t)

	buf := mustHex(t, "010025"+headerOnly[6:]+"020003414243")
	msg, err := Decode(buf)
	assert.NoError(err)
	assert.Equal(uint32(1), msg.CDRReference)
	assert.Equal("300034010123450", msg.IMEI)
	assert.Equal(uint16(1), msg.MOMSN)
	assert.Equal([]byte("ABC"), msg.Payload)

	// The message must not reference the input buffer
	buf[len(buf)-1] = 'X'
	assert.Equal([]byte("ABC"), msg.Payload)
}

func TestDecodeElementOrder(t *testing.T) {
	assert := require.New(t)

	// Payload before header is fine
	buf := mustHex(t, "010025"+"020003414243"+headerOnly[6:])
	msg, err := Decode(buf)
	assert.NoError(err)
	assert.Equal([]byte("ABC"), msg.Payload)
	assert.Equal(uint32(1), msg.CDRReference)
}

func TestDecodeErrors(t *testing.T) {
	header := headerOnly[6:]
	tests := []struct {
		name string
		buf  string
		kind error
	}{
		{"empty", "", ErrTruncated},
		{"one byte", "01", ErrTruncated},
		{"two bytes", "0100", ErrTruncated},
		{"bad revision", "02001f" + header, ErrProtocolRevision},
		{"bad revision short", "000000", ErrProtocolRevision},
		{"declared length too long", "010020" + header, ErrTruncated},
		{"trailing bytes", headerOnly + "00", ErrOversized},
		{"overall length one short", "010024" + header + "020003414243", ErrOversized},
		{"no elements", "010000", ErrMissingHeader},
		{"payload only", "010006020003414243", ErrMissingHeader},
		{"element header cut", "010021" + header + "0200", ErrTruncated},
		{"element overrun", "010022" + header + "020004", ErrElementOverrun},
		{"short header", "01001e01001b" + header[6:len(header)-2], ErrHeaderLength},
		{"duplicate header", "01003e" + header + header, ErrDuplicateElement},
		{"duplicate payload", "010025" + header + "020000" + "020000", ErrDuplicateElement},
		{"short location", "01002c" + header + "03000a00000000000000000000", ErrLocationLength},
		{"reserved location bits", "01002d" + header + "03000b0400000000000000000000", ErrInvalidLocation},
		{"latitude out of range", "01002d" + header + "03000b005b000000000000000000", ErrInvalidLocation},
		{"latitude minutes out of range", "01002d" + header + "03000b0000ea6000000000000000", ErrInvalidLocation},
		{"longitude out of range", "01002d" + header + "03000b00000000b5000000000000", ErrInvalidLocation},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert := require.New(t)
			_, err := Decode(mustHex(t, test.buf))
			assert.Error(err)
			assert.True(errors.Is(err, test.kind), "expected %v, got %v", test.kind, err)
			assert.True(IsFormatError(err))
		})
	}
}

func TestDecodeUnknownElement(t *testing.T) {
	assert := require.New(t)

	buf := mustHex(t, "010027"+headerOnly[6:]+"0a0002ffff"+"050000")
	msg, err := Decode(buf)
	assert.NoError(err)
	assert.True(msg.HasUnknownElements())
	assert.Equal([]uint8{0x0a, 0x05}, msg.UnknownElements)

	// Unknown elements are dropped when the message is encoded again
	out, err := Encode(msg)
	assert.NoError(err)
	again, err := Decode(out)
	assert.NoError(err)
	assert.False(again.HasUnknownElements())
	assert.Equal(msg.CDRReference, again.CDRReference)
}

func TestDecodeIMEI(t *testing.T) {
	assert := require.New(t)

	buf := mustHex(t, headerOnly)
	copy(buf[10:], "30003401012345X")

	msg, err := Decode(buf)
	assert.NoError(err)
	assert.False(msg.ValidIMEI())

	_, err = Decoder{StrictIMEI: true}.Decode(buf)
	assert.True(errors.Is(err, ErrInvalidIMEI))

	_, err = Decoder{StrictIMEI: true}.Decode(mustHex(t, headerOnly))
	assert.NoError(err)
}

func testMessage() Message {
	return Message{
		CDRReference:  4711,
		IMEI:          "300234010753370",
		SessionStatus: SessionOKLocationUnacceptable,
		MOMSN:         65535,
		MTMSN:         12,
		TimeOfSession: time.Date(2020, 6, 1, 12, 30, 15, 0, time.UTC),
		Payload:       []byte("hello world"),
		Location: &Location{
			South:            true,
			West:             false,
			LatitudeDegrees:  63,
			LatitudeMinutes:  25497,
			LongitudeDegrees: 10,
			LongitudeMinutes: 23950,
			CEPRadius:        3,
		},
	}
}

func TestRoundTrip(t *testing.T) {
	assert := require.New(t)

	msg := testMessage()
	buf, err := Encode(msg)
	assert.NoError(err)
	assert.Equal(ProtocolRevision, buf[0])
	assert.Equal(len(buf)-PreambleLength, int(buf[1])<<8|int(buf[2]))

	decoded, err := Decode(buf)
	assert.NoError(err)
	assert.Equal(msg, decoded)

	again, err := Encode(decoded)
	assert.NoError(err)
	assert.Equal(buf, again)

	// Without payload and location
	msg.Payload = nil
	msg.Location = nil
	buf, err = msg.MarshalBinary()
	assert.NoError(err)
	var m2 Message
	assert.NoError(m2.UnmarshalBinary(buf))
	assert.Equal(msg, m2)
}

func TestEncodeEmptyPayload(t *testing.T) {
	assert := require.New(t)

	msg, err := Decode(mustHex(t, headerOnly))
	assert.NoError(err)

	buf, err := Encode(msg)
	assert.NoError(err)
	// The payload element is written even when empty
	assert.Equal(mustHex(t, "010022"+headerOnly[6:]+"020000"), buf)
}

func TestEncodeErrors(t *testing.T) {
	assert := require.New(t)

	msg := testMessage()
	msg.IMEI = "1234"
	_, err := Encode(msg)
	assert.True(errors.Is(err, ErrIMEILength))

	msg = testMessage()
	msg.TimeOfSession = time.Unix(-1, 0)
	_, err = Encode(msg)
	assert.True(errors.Is(err, ErrTimeOfSession))

	msg = testMessage()
	msg.TimeOfSession = time.Unix(1<<32, 0)
	_, err = Encode(msg)
	assert.True(errors.Is(err, ErrTimeOfSession))

	msg = testMessage()
	msg.Payload = make([]byte, 0x10000)
	_, err = Encode(msg)
	assert.True(errors.Is(err, ErrPayloadLength))

	msg = testMessage()
	msg.Payload = make([]byte, 0xFFFF)
	_, err = Encode(msg)
	assert.True(errors.Is(err, ErrMessageLength))

	msg = testMessage()
	msg.Location.LongitudeDegrees = 181
	_, err = Encode(msg)
	assert.True(errors.Is(err, ErrInvalidLocation))
}

func TestReadFrom(t *testing.T) {
	assert := require.New(t)

	msg := testMessage()
	buf, err := Encode(msg)
	assert.NoError(err)

	r := bytes.NewReader(append(append([]byte{}, buf...), 0xde, 0xad))
	decoded, raw, err := ReadFrom(r)
	assert.NoError(err)
	assert.Equal(msg, decoded)
	assert.Equal(buf, raw)
	// Bytes past the message are left in the reader
	assert.Equal(2, r.Len())

	_, _, err = ReadFrom(bytes.NewReader(buf[:10]))
	assert.Equal(io.ErrUnexpectedEOF, err)

	_, _, err = ReadFrom(bytes.NewReader(nil))
	assert.Equal(io.EOF, err)

	_, _, err = ReadFrom(bytes.NewReader([]byte{2, 0, 0}))
	assert.True(errors.Is(err, ErrProtocolRevision))
}

func TestBodyLength(t *testing.T) {
	assert := require.New(t)

	n, err := BodyLength([]byte{1, 0x01, 0x02})
	assert.NoError(err)
	assert.Equal(0x102, n)

	_, err = BodyLength([]byte{1})
	assert.True(errors.Is(err, ErrTruncated))
}

func TestFormatErrorString(t *testing.T) {
	assert := require.New(t)

	_, err := Decode(mustHex(t, "010022"+headerOnly[6:]+"020004"))
	assert.Error(err)
	assert.Contains(err.Error(), "offset 34")
	assert.Contains(err.Error(), "IEI 0x02")

	var fe *FormatError
	assert.True(errors.As(err, &fe))
	assert.Equal(34, fe.Offset)
	assert.Equal(uint8(2), fe.IEI)
}
