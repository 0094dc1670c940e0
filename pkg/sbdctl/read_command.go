package sbdctl

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
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/eesrc/iridium/pkg/sbd"
)

// dumpConfig prints the struct fields rather than the String() summary
var dumpConfig = spew.ConfigState{Indent: "  ", DisableMethods: true}

// ReadCommand decodes message files
type ReadCommand struct {
	Files      []string `kong:"arg,help='Message files'"`
	Payload    bool     `kong:"help='Write the payload only'"`
	Dump       bool     `kong:"help='Dump the decoded message structure'"`
	StrictIMEI bool     `kong:"help='Reject messages where the IMEI isn't all digits'"`
}

// Run decodes each file and prints the message. All files are read even
// if some of them fail.
func (r *ReadCommand) Run(c *Command) error {
	decoder := sbd.Decoder{StrictIMEI: r.StrictIMEI}
	var failed bool
	for _, name := range r.Files {
		msg, err := readFile(decoder, name)
		if err != nil {
			c.printf("*** %s: %v\n", name, err)
			failed = true
			continue
		}
		switch {
		case r.Payload:
			c.output().Write(msg.Payload)
		case r.Dump:
			dumpConfig.Fdump(c.output(), msg)
		default:
			c.printf("%s: %s\n", name, msg.String())
			if msg.Location != nil {
				c.printf("  location: %s\n", msg.Location.String())
			}
			if !msg.ValidIMEI() {
				c.printf("  warning: invalid IMEI %q\n", msg.IMEI)
			}
			if msg.HasUnknownElements() {
				c.printf("  unknown elements: %v\n", msg.UnknownElements)
			}
		}
	}
	if failed {
		return errStd
	}
	return nil
}

// readFile reads a single message from the start of a file
func readFile(decoder sbd.Decoder, name string) (sbd.Message, error) {
	f, err := os.Open(name)
	if err != nil {
		return sbd.Message{}, err
	}
	defer f.Close()
	msg, _, err := decoder.ReadFrom(f)
	return msg, err
}
