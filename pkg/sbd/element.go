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
	"time"
)

// Information element identifiers
const (
	ieiHeader   = uint8(0x01)
	ieiPayload  = uint8(0x02)
	ieiLocation = uint8(0x03)
)

const (
	elementHeaderLength = 3
	moHeaderLength      = 28
	moLocationLength    = 11
	imeiLength          = 15
	maxElementLength    = 0xFFFF
)

// element is one information element in the message body
type element interface {
	iei() uint8
	dataLength() int
	marshalData(buf []byte)
}

type moHeader struct {
	cdrReference  uint32
	imei          string
	sessionStatus SessionStatus
	momsn         uint16
	mtmsn         uint16
	timeOfSession uint32
}

func (h moHeader) iei() uint8      { return ieiHeader }
func (h moHeader) dataLength() int { return moHeaderLength }

func (h moHeader) marshalData(buf []byte) {
	binary.BigEndian.PutUint32(buf[0:], h.cdrReference)
	copy(buf[4:19], h.imei)
	buf[19] = uint8(h.sessionStatus)
	binary.BigEndian.PutUint16(buf[20:], h.momsn)
	binary.BigEndian.PutUint16(buf[22:], h.mtmsn)
	binary.BigEndian.PutUint32(buf[24:], h.timeOfSession)
}

func parseHeader(data []byte, offset int) (moHeader, error) {
	if len(data) != moHeaderLength {
		return moHeader{}, formatError(ErrHeaderLength, offset, ieiHeader, "length is %d, expected %d", len(data), moHeaderLength)
	}
	return moHeader{
		cdrReference:  binary.BigEndian.Uint32(data[0:]),
		imei:          string(data[4:19]),
		sessionStatus: SessionStatus(data[19]),
		momsn:         binary.BigEndian.Uint16(data[20:]),
		mtmsn:         binary.BigEndian.Uint16(data[22:]),
		timeOfSession: binary.BigEndian.Uint32(data[24:]),
	}, nil
}

type moPayload []byte

func (p moPayload) iei() uint8      { return ieiPayload }
func (p moPayload) dataLength() int { return len(p) }

func (p moPayload) marshalData(buf []byte) {
	copy(buf, p)
}

type moLocation Location

func (l moLocation) iei() uint8      { return ieiLocation }
func (l moLocation) dataLength() int { return moLocationLength }

func (l moLocation) marshalData(buf []byte) {
	buf[0] = Location(l).flags()
	buf[1] = l.LatitudeDegrees
	binary.BigEndian.PutUint16(buf[2:], l.LatitudeMinutes)
	buf[4] = l.LongitudeDegrees
	binary.BigEndian.PutUint16(buf[5:], l.LongitudeMinutes)
	binary.BigEndian.PutUint32(buf[7:], l.CEPRadius)
}

func parseLocation(data []byte, offset int) (moLocation, error) {
	if len(data) != moLocationLength {
		return moLocation{}, formatError(ErrLocationLength, offset, ieiLocation, "length is %d, expected %d", len(data), moLocationLength)
	}
	if data[0]&locationReserved != 0 {
		return moLocation{}, formatError(ErrInvalidLocation, offset, ieiLocation, "reserved flag bits set (0x%02x)", data[0])
	}
	loc := Location{
		South:            data[0]&locationFlagSouth != 0,
		West:             data[0]&locationFlagWest != 0,
		LatitudeDegrees:  data[1],
		LatitudeMinutes:  binary.BigEndian.Uint16(data[2:]),
		LongitudeDegrees: data[4],
		LongitudeMinutes: binary.BigEndian.Uint16(data[5:]),
		CEPRadius:        binary.BigEndian.Uint32(data[7:]),
	}
	if err := loc.Validate(); err != nil {
		return moLocation{}, formatError(ErrInvalidLocation, offset, ieiLocation, "%v", err)
	}
	return moLocation(loc), nil
}

// unknownElement is an element this package doesn't know about. Only the
// identifier is kept.
type unknownElement uint8

func (u unknownElement) iei() uint8        { return uint8(u) }
func (u unknownElement) dataLength() int   { return 0 }
func (u unknownElement) marshalData([]byte) {}

// messageBuilder collects elements while decoding
type messageBuilder struct {
	header       *moHeader
	headerOffset int
	payload      moPayload
	seenPayload  bool
	location     *moLocation
	unknown      []uint8
}

func (b *messageBuilder) add(e element, offset int) error {
	switch v := e.(type) {
	case moHeader:
		if b.header != nil {
			return formatError(ErrDuplicateElement, offset, ieiHeader, "second MO header")
		}
		b.header = &v
		b.headerOffset = offset
	case moPayload:
		if b.seenPayload {
			return formatError(ErrDuplicateElement, offset, ieiPayload, "second MO payload")
		}
		b.seenPayload = true
		if len(v) > 0 {
			b.payload = append(moPayload(nil), v...)
		}
	case moLocation:
		if b.location != nil {
			return formatError(ErrDuplicateElement, offset, ieiLocation, "second MO location")
		}
		b.location = &v
	case unknownElement:
		b.unknown = append(b.unknown, uint8(v))
	}
	return nil
}

func (b *messageBuilder) build(strictIMEI bool, end int) (Message, error) {
	if b.header == nil {
		return Message{}, formatError(ErrMissingHeader, end, 0, "no MO header element")
	}
	ret := Message{
		CDRReference:    b.header.cdrReference,
		IMEI:            b.header.imei,
		SessionStatus:   b.header.sessionStatus,
		MOMSN:           b.header.momsn,
		MTMSN:           b.header.mtmsn,
		TimeOfSession:   time.Unix(int64(b.header.timeOfSession), 0).UTC(),
		Payload:         []byte(b.payload),
		UnknownElements: b.unknown,
	}
	if b.location != nil {
		loc := Location(*b.location)
		ret.Location = &loc
	}
	if strictIMEI && !ret.ValidIMEI() {
		return Message{}, formatError(ErrInvalidIMEI, b.headerOffset+elementHeaderLength+4, ieiHeader, "IMEI %q contains non-digits", ret.IMEI)
	}
	return ret, nil
}
