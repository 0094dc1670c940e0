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
	"io/ioutil"
	"net"
	"time"
)

// SendCommand sends message files to a DirectIP receiver. The files are
// sent as is so malformed messages can be tested.
type SendCommand struct {
	Endpoint string        `kong:"required,help='DirectIP endpoint',default='localhost:10800'"`
	Timeout  time.Duration `kong:"help='Connection timeout',default='5s'"`
	Files    []string      `kong:"arg,help='Message files'"`
}

// Run sends one file per connection
func (s *SendCommand) Run(c *Command) error {
	var failed bool
	for _, name := range s.Files {
		buf, err := ioutil.ReadFile(name)
		if err != nil {
			c.printf("*** %s: %v\n", name, err)
			failed = true
			continue
		}
		if err := s.send(buf); err != nil {
			c.printf("*** %s: %v\n", name, err)
			failed = true
			continue
		}
		c.printf("%s: sent %d bytes to %s\n", name, len(buf), s.Endpoint)
	}
	if failed {
		return errStd
	}
	return nil
}

func (s *SendCommand) send(buf []byte) error {
	conn, err := net.DialTimeout("tcp", s.Endpoint, s.Timeout)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := conn.SetWriteDeadline(time.Now().Add(s.Timeout)); err != nil {
		return err
	}
	_, err = conn.Write(buf)
	return err
}
