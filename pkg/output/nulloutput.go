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
	"sync/atomic"
	"time"
)

// nullOutput counts and discards messages. It is used for testing and to
// keep a subscription open without forwarding anything.
type nullOutput struct {
	started  int32
	received int64
	done     chan struct{}
	logs     Logger
}

func newNullOutput() Output {
	return &nullOutput{done: make(chan struct{}), logs: NewLogger()}
}

func init() {
	registerOutput("null", newNullOutput)
}

func (n *nullOutput) Validate(config Config) (ErrorMessage, error) {
	return ErrorMessage{}, nil
}

func (n *nullOutput) Start(config Config, messages <-chan interface{}) {
	if !atomic.CompareAndSwapInt32(&n.started, 0, 1) {
		return
	}
	n.logs.Append("Started")
	go func() {
		defer close(n.done)
		for range messages {
			atomic.AddInt64(&n.received, 1)
		}
	}()
}

func (n *nullOutput) Stop(timeout time.Duration) {
	if atomic.LoadInt32(&n.started) == 0 {
		return
	}
	select {
	case <-n.done:
		n.logs.Append("Stopped")
	case <-time.After(timeout):
		n.logs.Append("Timed out waiting for the message channel to close")
	}
}

func (n *nullOutput) Logs() []LogEntry {
	return n.logs.Entries()
}

func (n *nullOutput) Status() Status {
	r := int(atomic.LoadInt64(&n.received))
	return Status{Received: r, Forwarded: r}
}
