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
	"sync"
	"time"
)

// Logger is the in-memory logger used by the outputs. It keeps the latest
// log entries in a ring buffer.
type Logger struct {
	mutex   *sync.Mutex
	entries []LogEntry
	count   int
}

const maxEntries = 10

// NewLogger creates a new logger
func NewLogger() Logger {
	return Logger{&sync.Mutex{}, make([]LogEntry, maxEntries), 0}
}

// Append appends a new log entry. Repeats of the last message bumps the
// repeat counter.
func (l *Logger) Append(msg string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	prevIndex := (l.count - 1) % maxEntries

	if l.count > 0 && l.entries[prevIndex].Message == msg {
		l.entries[prevIndex].Repeated++
		l.entries[prevIndex].Time = time.Now()
		return
	}
	l.entries[l.count%maxEntries] = LogEntry{Message: msg, Repeated: 0, Time: time.Now()}
	l.count++
}

// Messages returns the number of logged messages
func (l *Logger) Messages() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.count
}

// Entries returns the log entries, oldest first
func (l *Logger) Entries() []LogEntry {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.count < maxEntries {
		ret := make([]LogEntry, l.count)
		copy(ret, l.entries[0:l.count])
		return ret
	}
	ret := make([]LogEntry, maxEntries)
	start := (l.count - maxEntries) % maxEntries
	for i := 0; i < maxEntries; i++ {
		ret[i] = l.entries[(start+i)%maxEntries]
	}
	return ret
}
