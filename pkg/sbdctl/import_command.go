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
	"github.com/eesrc/iridium/pkg/sbd"
)

// ImportCommand stores message files
type ImportCommand struct {
	Files []string `kong:"arg,help='Message files'"`
}

// Run imports the files. Messages that are already stored are skipped.
func (i *ImportCommand) Run(c *Command) error {
	store, err := c.openStore(true)
	if err != nil {
		c.printf("*** Unable to open store: %v\n", err)
		return errStd
	}
	defer store.Close()

	var failed bool
	imported := 0
	for _, name := range i.Files {
		msg, err := readFile(sbd.Decoder{}, name)
		if err != nil {
			c.printf("*** %s: %v\n", name, err)
			failed = true
			continue
		}
		location, exists, err := store.Put(msg)
		if err != nil {
			c.printf("*** %s: %v\n", name, err)
			failed = true
			continue
		}
		if exists {
			c.printf("%s: already stored in %s\n", name, location)
			continue
		}
		imported++
		c.printf("%s: stored in %s\n", name, location)
	}
	c.printf("%d messages imported\n", imported)
	if failed {
		return errStd
	}
	return nil
}
