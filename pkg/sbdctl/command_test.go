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
	"bytes"
	"io/ioutil"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/storage"
	"github.com/stretchr/testify/require"
)

func testMessage(momsn uint16) sbd.Message {
	return sbd.Message{
		CDRReference:  1234567,
		IMEI:          "300234010753370",
		SessionStatus: sbd.SessionOK,
		MOMSN:         momsn,
		TimeOfSession: time.Date(2020, 6, 1, 12, 0, int(momsn), 0, time.UTC),
		Payload:       []byte("hello"),
	}
}

func writeMessage(t *testing.T, dir string, msg sbd.Message) string {
	buf, err := sbd.Encode(msg)
	require.NoError(t, err)
	name := filepath.Join(dir, storage.KeyFor(msg).String()+".sbd")
	require.NoError(t, ioutil.WriteFile(name, buf, 0644))
	return name
}

func newCommand(t *testing.T, dir string) (*Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	c := &Command{StoreType: "fs", StorePath: filepath.Join(dir, "store")}
	c.SetOutput(buf)
	return c, buf
}

func TestReadCommand(t *testing.T) {
	assert := require.New(t)
	dir, err := ioutil.TempDir("", "sbdctl")
	assert.NoError(err)
	defer os.RemoveAll(dir)

	name := writeMessage(t, dir, testMessage(1))
	c, out := newCommand(t, dir)

	r := ReadCommand{Files: []string{name}}
	assert.NoError(r.Run(c))
	assert.Contains(out.String(), "IMEI=300234010753370")

	out.Reset()
	r.Payload = true
	assert.NoError(r.Run(c))
	assert.Equal("hello", out.String())

	out.Reset()
	r.Payload = false
	r.Dump = true
	assert.NoError(r.Run(c))
	assert.Contains(out.String(), "CDRReference")
	assert.Contains(out.String(), "UnknownElements")
	assert.NotContains(out.String(), "IMEI=300234010753370")

	bad := filepath.Join(dir, "bad.sbd")
	assert.NoError(ioutil.WriteFile(bad, []byte{2, 0, 0}, 0644))
	out.Reset()
	r.Dump = false
	r.Files = []string{bad, name}
	assert.Error(r.Run(c))
	assert.Contains(out.String(), "***")
	assert.Contains(out.String(), "IMEI=300234010753370")
}

func TestImportListGet(t *testing.T) {
	assert := require.New(t)
	dir, err := ioutil.TempDir("", "sbdctl")
	assert.NoError(err)
	defer os.RemoveAll(dir)

	files := []string{
		writeMessage(t, dir, testMessage(2)),
		writeMessage(t, dir, testMessage(1)),
	}
	c, out := newCommand(t, dir)

	imp := ImportCommand{Files: files}
	assert.NoError(imp.Run(c))
	assert.Contains(out.String(), "2 messages imported")

	out.Reset()
	assert.NoError(imp.Run(c))
	assert.Contains(out.String(), "already stored")
	assert.Contains(out.String(), "0 messages imported")

	out.Reset()
	list := ListCommand{Sort: true}
	assert.NoError(list.Run(c))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(lines, 3)
	assert.True(strings.HasPrefix(lines[0], storage.KeyFor(testMessage(1)).String()))
	assert.True(strings.HasPrefix(lines[1], storage.KeyFor(testMessage(2)).String()))
	assert.Equal("2 messages, 0 corrupt", lines[2])

	out.Reset()
	list = ListCommand{IMEI: "000000000000000"}
	assert.NoError(list.Run(c))
	assert.Contains(out.String(), "0 messages")

	out.Reset()
	get := GetCommand{Keys: []string{storage.KeyFor(testMessage(1)).String()}, Payload: true}
	assert.NoError(get.Run(c))
	assert.Equal("hello", out.String())

	out.Reset()
	get = GetCommand{Keys: []string{storage.KeyFor(testMessage(2)).String()}, JSON: true}
	assert.NoError(get.Run(c))
	assert.Contains(out.String(), `"imei": "300234010753370"`)

	out.Reset()
	get = GetCommand{Keys: []string{storage.KeyFor(testMessage(3)).String()}}
	assert.Error(get.Run(c))

	get = GetCommand{Keys: []string{"not-a-key"}}
	assert.Error(get.Run(c))
}

func TestMemoryStoreIsRejected(t *testing.T) {
	assert := require.New(t)
	c := &Command{StoreType: "memory"}
	c.SetOutput(&bytes.Buffer{})
	list := ListCommand{}
	assert.Error(list.Run(c))
}

func TestSendCommand(t *testing.T) {
	assert := require.New(t)
	dir, err := ioutil.TempDir("", "sbdctl")
	assert.NoError(err)
	defer os.RemoveAll(dir)

	msg := testMessage(1)
	name := writeMessage(t, dir, msg)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(err)
	defer listener.Close()

	received := make(chan sbd.Message, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		m, _, err := sbd.ReadFrom(conn)
		if err == nil {
			received <- m
		}
	}()

	c, out := newCommand(t, dir)
	send := SendCommand{Endpoint: listener.Addr().String(), Timeout: time.Second, Files: []string{name}}
	assert.NoError(send.Run(c))
	assert.Contains(out.String(), "sent")

	select {
	case m := <-received:
		assert.Equal(msg.IMEI, m.IMEI)
		assert.Equal(msg.Payload, m.Payload)
	case <-time.After(2 * time.Second):
		assert.Fail("message not received")
	}

	send.Endpoint = "127.0.0.1:1"
	assert.Error(send.Run(c))
}

func TestVersionCommand(t *testing.T) {
	assert := require.New(t)
	c := &Command{}
	buf := &bytes.Buffer{}
	c.SetOutput(buf)
	v := VersionCommand{}
	assert.NoError(v.Run(c))
	assert.Contains(buf.String(), "sbdctl")
}
