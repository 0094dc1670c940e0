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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	assert := require.New(t)

	loc, err := NewLocation(63.42495, -10.39917, 5)
	assert.NoError(err)
	assert.False(loc.South)
	assert.True(loc.West)
	assert.Equal(uint8(63), loc.LatitudeDegrees)
	assert.Equal(uint16(25497), loc.LatitudeMinutes)
	assert.Equal(uint8(10), loc.LongitudeDegrees)
	assert.Equal(uint16(23950), loc.LongitudeMinutes)
	assert.Equal(uint32(5), loc.CEPRadius)
	assert.InDelta(63.42495, loc.Latitude(), 0.00002)
	assert.InDelta(-10.39917, loc.Longitude(), 0.00002)

	// Minutes that round up to a full degree carry over
	loc, err = NewLocation(-10.9999999, 179.9999999, 0)
	assert.NoError(err)
	assert.True(loc.South)
	assert.Equal(uint8(11), loc.LatitudeDegrees)
	assert.Equal(uint16(0), loc.LatitudeMinutes)
	assert.Equal(uint8(180), loc.LongitudeDegrees)
	assert.Equal(uint16(0), loc.LongitudeMinutes)

	_, err = NewLocation(90.5, 0, 0)
	assert.True(errors.Is(err, ErrInvalidLocation))
	_, err = NewLocation(0, -181, 0)
	assert.True(errors.Is(err, ErrInvalidLocation))
}

func TestLocationRoundTrip(t *testing.T) {
	assert := require.New(t)

	loc := Location{South: true, West: true, LatitudeDegrees: 90, LatitudeMinutes: 0, LongitudeDegrees: 180, LongitudeMinutes: 59999, CEPRadius: 0xFFFFFFFF}
	buf := make([]byte, moLocationLength)
	moLocation(loc).marshalData(buf)
	assert.Equal(uint8(0x03), buf[0])

	parsed, err := parseLocation(buf, 0)
	assert.NoError(err)
	assert.Equal(loc, Location(parsed))
}

func TestSessionStatus(t *testing.T) {
	assert := require.New(t)

	assert.Equal("ok", SessionOK.String())
	assert.Equal("prohibited", SessionProhibited.String())
	assert.True(SessionRFLinkLoss.Known())
	assert.False(SessionRFLinkLoss.Success())
	assert.True(SessionOKMTTooLarge.Success())

	unknown := SessionStatus(11)
	assert.False(unknown.Known())
	assert.Equal("unknown(11)", unknown.String())
}
