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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/eesrc/iridium/pkg/server"
	"github.com/eesrc/iridium/pkg/storage"
	"github.com/eesrc/iridium/pkg/storage/sqlstore"
)

// Command is the configuration for the operator tool. It is bound to the
// Run methods of the commands. The store flags are used by the list, get
// and import commands.
type Command struct {
	StoreType     string `kong:"help='Message store type (fs, sql, bolt)',default='fs'"`
	StorePath     string `kong:"help='Root directory for fs stores and file name for bolt stores',default='messages'"`
	SQLDriver     string `kong:"help='SQL driver (sqlite3, postgres)',default='sqlite3'"`
	SQLConnection string `kong:"help='SQL connection string',default='file:iridium.db?_journal_mode=WAL'"`

	Read    ReadCommand    `kong:"cmd,help='Decode messages in files'"`
	List    ListCommand    `kong:"cmd,help='List stored messages'"`
	Get     GetCommand     `kong:"cmd,help='Show stored messages'"`
	Import  ImportCommand  `kong:"cmd,help='Import message files into the store'"`
	Send    SendCommand    `kong:"cmd,help='Send message files to a DirectIP endpoint'"`
	Version VersionCommand `kong:"cmd,help='Show version'"`

	out io.Writer
}

// SetOutput sets the writer for command output. The default is stdout.
func (c *Command) SetOutput(w io.Writer) {
	c.out = w
}

func (c *Command) output() io.Writer {
	if c.out == nil {
		return os.Stdout
	}
	return c.out
}

func (c *Command) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.output(), format, args...)
}

// openStore opens the message store. The SQL schema is created if create
// is set. The memory store isn't available since it would always be empty.
func (c *Command) openStore(create bool) (storage.Store, error) {
	if c.StoreType == "memory" {
		return nil, fmt.Errorf("the memory store can't be used from the command line")
	}
	return server.OpenStore(server.StoreParameters{
		Type: c.StoreType,
		Path: c.StorePath,
		SQL: sqlstore.Parameters{
			Type:             c.SQLDriver,
			ConnectionString: c.SQLConnection,
			CreateSchema:     create,
		},
	})
}

// this is a generic error returned by the commands since the standard output
// is used for more informative error messages
var errStd = errors.New("error")
