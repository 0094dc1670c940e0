package output

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

// Definition describes an output to launch. An empty IMEI makes the output
// receive messages from every modem.
type Definition struct {
	ID     string
	Type   string
	IMEI   string
	Config Config
}

// Manager keeps track of the running outputs and distributes new messages
// to them.
type Manager interface {
	// Verify checks the output's configuration without launching it
	Verify(Definition) (ErrorMessage, error)

	// Refresh launches the outputs that aren't up and running yet. Refresh
	// might be called multiple times.
	Refresh([]Definition)

	// Update launches an output or restarts it with a new configuration.
	Update(Definition) error

	// Stop stops a single output.
	Stop(id string) error

	// Shutdown shuts down all of the running outputs.
	Shutdown()

	// Get returns a running output.
	Get(id string) (Output, error)

	// Publish publishes a message to the outputs and subscribers. Messages
	// nobody subscribes to are discarded.
	Publish(msg sbd.Message)

	// Subscribe subscribes to messages from a single modem. An empty IMEI
	// subscribes to all messages.
	Subscribe(imei string) <-chan interface{}

	// Unsubscribe removes a subscription
	Unsubscribe(ch <-chan interface{})
}
