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
	"context"
	"sort"
	"time"

	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/storage"
)

// ListCommand lists the stored messages
type ListCommand struct {
	IMEI string `kong:"help='Only list messages from this IMEI'"`
	Sort bool   `kong:"help='Sort by time of session'"`
}

// Run lists the messages. Corrupt messages are reported and the listing
// continues.
func (l *ListCommand) Run(c *Command) error {
	store, err := c.openStore(false)
	if err != nil {
		c.printf("*** Unable to open store: %v\n", err)
		return errStd
	}
	defer store.Close()

	entries, err := store.List(context.Background())
	if err != nil {
		c.printf("*** Unable to list messages: %v\n", err)
		return errStd
	}
	var msgs sbd.ByTimeOfSession
	corrupt := 0
	for e := range entries {
		if e.Err != nil {
			c.printf("*** %s: %v\n", e.Location, e.Err)
			corrupt++
			continue
		}
		if l.IMEI != "" && e.Message.IMEI != l.IMEI {
			continue
		}
		msgs = append(msgs, e.Message)
	}
	if l.Sort {
		sort.Sort(msgs)
	}
	for _, m := range msgs {
		c.printf("%-32s %s %-8s %4d bytes", storage.KeyFor(m).String(),
			m.TimeOfSession.UTC().Format(time.RFC3339), m.SessionStatus.String(), len(m.Payload))
		if m.Location != nil {
			c.printf(" %s", m.Location.String())
		}
		c.printf("\n")
	}
	c.printf("%d messages, %d corrupt\n", len(msgs), corrupt)
	return nil
}
