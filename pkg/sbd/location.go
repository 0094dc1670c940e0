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
	"fmt"
	"math"
)

const (
	locationFlagSouth = 0x01
	locationFlagWest  = 0x02
	locationReserved  = ^uint8(locationFlagSouth | locationFlagWest)

	maxLatitudeDegrees  = 90
	maxLongitudeDegrees = 180
	maxMinutes          = 59999
)

// Location is the approximate position of the modem as reported by the
// gateway. Latitude and longitude are stored the way they are on the wire,
// whole degrees plus thousandths of a minute, with separate hemisphere
// flags. CEPRadius is the radius of the circular error probable in km.
type Location struct {
	South            bool
	West             bool
	LatitudeDegrees  uint8
	LatitudeMinutes  uint16
	LongitudeDegrees uint8
	LongitudeMinutes uint16
	CEPRadius        uint32
}

// NewLocation converts a position in signed decimal degrees into a Location.
// Minutes are rounded to the nearest thousandth.
func NewLocation(latitude, longitude float64, cepRadius uint32) (Location, error) {
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return Location{}, fmt.Errorf("latitude %f out of range: %w", latitude, ErrInvalidLocation)
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return Location{}, fmt.Errorf("longitude %f out of range: %w", longitude, ErrInvalidLocation)
	}
	ret := Location{
		South:     latitude < 0,
		West:      longitude < 0,
		CEPRadius: cepRadius,
	}
	ret.LatitudeDegrees, ret.LatitudeMinutes = splitDegrees(math.Abs(latitude))
	ret.LongitudeDegrees, ret.LongitudeMinutes = splitDegrees(math.Abs(longitude))
	if err := ret.Validate(); err != nil {
		return Location{}, err
	}
	return ret, nil
}

func splitDegrees(v float64) (uint8, uint16) {
	deg := math.Floor(v)
	thousandths := math.Round((v - deg) * 60000)
	if thousandths >= 60000 {
		deg++
		thousandths = 0
	}
	return uint8(deg), uint16(thousandths)
}

// Latitude returns the latitude in signed decimal degrees. South is negative.
func (l Location) Latitude() float64 {
	v := float64(l.LatitudeDegrees) + float64(l.LatitudeMinutes)/60000
	if l.South {
		return -v
	}
	return v
}

// Longitude returns the longitude in signed decimal degrees. West is negative.
func (l Location) Longitude() float64 {
	v := float64(l.LongitudeDegrees) + float64(l.LongitudeMinutes)/60000
	if l.West {
		return -v
	}
	return v
}

// Validate checks that degrees and minutes are within range. The error
// matches ErrInvalidLocation.
func (l Location) Validate() error {
	switch {
	case l.LatitudeDegrees > maxLatitudeDegrees:
		return fmt.Errorf("latitude degrees %d > %d: %w", l.LatitudeDegrees, maxLatitudeDegrees, ErrInvalidLocation)
	case l.LatitudeMinutes > maxMinutes:
		return fmt.Errorf("latitude minutes %d > %d: %w", l.LatitudeMinutes, maxMinutes, ErrInvalidLocation)
	case l.LongitudeDegrees > maxLongitudeDegrees:
		return fmt.Errorf("longitude degrees %d > %d: %w", l.LongitudeDegrees, maxLongitudeDegrees, ErrInvalidLocation)
	case l.LongitudeMinutes > maxMinutes:
		return fmt.Errorf("longitude minutes %d > %d: %w", l.LongitudeMinutes, maxMinutes, ErrInvalidLocation)
	}
	return nil
}

func (l Location) String() string {
	return fmt.Sprintf("%.5f,%.5f (cep %d km)", l.Latitude(), l.Longitude(), l.CEPRadius)
}

func (l Location) flags() uint8 {
	var f uint8
	if l.South {
		f |= locationFlagSouth
	}
	if l.West {
		f |= locationFlagWest
	}
	return f
}
