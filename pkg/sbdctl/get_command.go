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
	"encoding/json"

	"github.com/eesrc/iridium/pkg/output"
	"github.com/eesrc/iridium/pkg/storage"
)

// GetCommand shows a single stored message
type GetCommand struct {
	Keys    []string `kong:"arg,help='Message keys as shown by list'"`
	Payload bool     `kong:"help='Write the payload only'"`
	JSON    bool     `kong:"help='Show the message as JSON'"`
}

// Run prints the messages
func (g *GetCommand) Run(c *Command) error {
	store, err := c.openStore(false)
	if err != nil {
		c.printf("*** Unable to open store: %v\n", err)
		return errStd
	}
	defer store.Close()

	var failed bool
	for _, k := range g.Keys {
		key, err := storage.ParseKey(k)
		if err != nil {
			c.printf("*** %v\n", err)
			failed = true
			continue
		}
		msg, err := store.Get(key)
		if err != nil {
			c.printf("*** %s: %v\n", k, err)
			failed = true
			continue
		}
		switch {
		case g.Payload:
			c.output().Write(msg.Payload)
		case g.JSON:
			enc := json.NewEncoder(c.output())
			enc.SetIndent("", "  ")
			enc.Encode(output.NewMessage(msg))
		default:
			c.printf("%s: %s\n", k, msg.String())
		}
	}
	if failed {
		return errStd
	}
	return nil
}
