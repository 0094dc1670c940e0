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
	"strconv"
	"strings"

	"github.com/eesrc/iridium/pkg/sbd"
)

// Key identifies a stored message
type Key struct {
	IMEI         string
	CDRReference uint32
	MOMSN        uint16
}

// KeyFor returns the key for a message
func KeyFor(msg sbd.Message) Key {
	return Key{IMEI: msg.IMEI, CDRReference: msg.CDRReference, MOMSN: msg.MOMSN}
}

// String returns the key as <imei>-<cdr reference>-<momsn> with the numbers
// zero padded. IMEI bytes that aren't letters or digits are escaped as %XX
// so the string is safe to use as a file name.
func (k Key) String() string {
	return fmt.Sprintf("%s-%010d-%05d", EscapeIMEI(k.IMEI), k.CDRReference, k.MOMSN)
}

// EscapeIMEI escapes every byte in the IMEI that isn't an ASCII letter or
// digit.
func EscapeIMEI(imei string) string {
	var sb strings.Builder
	for i := 0; i < len(imei); i++ {
		c := imei[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			sb.WriteByte(c)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", c)
	}
	return sb.String()
}

func unescapeIMEI(s string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			sb.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", errors.New("truncated escape sequence")
		}
		v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte(v))
		i += 2
	}
	return sb.String(), nil
}

// ParseKey parses a string created by Key.String
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("invalid key %q", s)
	}
	imei, err := unescapeIMEI(parts[0])
	if err != nil {
		return Key{}, fmt.Errorf("invalid IMEI in key %q: %v", s, err)
	}
	cdr, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return Key{}, fmt.Errorf("invalid CDR reference in key %q: %v", s, err)
	}
	momsn, err := strconv.ParseUint(parts[2], 10, 16)
	if err != nil {
		return Key{}, fmt.Errorf("invalid MOMSN in key %q: %v", s, err)
	}
	return Key{IMEI: imei, CDRReference: uint32(cdr), MOMSN: uint16(momsn)}, nil
}
