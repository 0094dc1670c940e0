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
	"errors"
	"sync"
	"time"

	"github.com/ExploratoryEngineering/logging"
	"github.com/ExploratoryEngineering/pubsub"
	"github.com/eesrc/iridium/pkg/sbd"
)

// queueLength is the length of the event router's queue
const queueLength = 100

const stopTimeout = 3 * time.Second

var errUnknownOutput = errors.New("unknown output")

// allTopic is the topic for subscribers that get every message
type allTopic struct{}

type imeiTopic string

type outputEntry struct {
	ch     <-chan interface{}
	output Output
}

// localManager runs the outputs in the local process.
type localManager struct {
	running   map[string]outputEntry
	publisher pubsub.EventRouter
	mutex     *sync.Mutex
}

// NewLocalManager creates a new manager running locally
func NewLocalManager() Manager {
	logging.Debug("Output types: %v", Types())
	return &localManager{
		running:   make(map[string]outputEntry),
		publisher: pubsub.NewEventRouter(queueLength),
		mutex:     &sync.Mutex{},
	}
}

func (l *localManager) Verify(def Definition) (ErrorMessage, error) {
	op, err := NewOutput(def.Type)
	if err != nil {
		return ErrorMessage{"type": err.Error()}, err
	}
	return op.Validate(def.Config)
}

func (l *localManager) launch(def Definition) error {
	op, err := NewOutput(def.Type)
	if err != nil {
		return err
	}
	ch := l.Subscribe(def.IMEI)
	op.Start(def.Config, ch)
	l.running[def.ID] = outputEntry{ch: ch, output: op}
	logging.Info("Launched %s output %s", def.Type, def.ID)
	return nil
}

func (l *localManager) Refresh(defs []Definition) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	for _, v := range defs {
		if _, exists := l.running[v.ID]; exists {
			continue
		}
		if err := l.launch(v); err != nil {
			logging.Warning("Unable to launch output with ID %s: %v. Ignoring", v.ID, err)
		}
	}
}

func (l *localManager) Update(def Definition) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if v, exists := l.running[def.ID]; exists {
		l.Unsubscribe(v.ch)
		v.output.Stop(stopTimeout)
		delete(l.running, def.ID)
	}
	if err := l.launch(def); err != nil {
		logging.Warning("Couldn't create new output: %v", err)
		return err
	}
	return nil
}

func (l *localManager) Stop(id string) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	v, exists := l.running[id]
	if !exists {
		return errUnknownOutput
	}
	delete(l.running, id)
	l.Unsubscribe(v.ch)
	v.output.Stop(stopTimeout)
	return nil
}

func (l *localManager) Shutdown() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	for k, v := range l.running {
		l.Unsubscribe(v.ch)
		v.output.Stop(stopTimeout)
		delete(l.running, k)
	}
}

func (l *localManager) Get(id string) (Output, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	ret, exists := l.running[id]
	if !exists {
		return nil, errUnknownOutput
	}
	return ret.output, nil
}

func (l *localManager) Publish(msg sbd.Message) {
	l.publisher.Publish(allTopic{}, msg)
	l.publisher.Publish(imeiTopic(msg.IMEI), msg)
}

func (l *localManager) Subscribe(imei string) <-chan interface{} {
	if imei == "" {
		return l.publisher.Subscribe(allTopic{})
	}
	return l.publisher.Subscribe(imeiTopic(imei))
}

func (l *localManager) Unsubscribe(ch <-chan interface{}) {
	l.publisher.Unsubscribe(ch)
}
