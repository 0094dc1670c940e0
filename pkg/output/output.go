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
	"reflect"
	"time"
)

var (
	// ErrUnknownOutputType is returned when the output type is
	// unknown or incorrect-
	ErrUnknownOutputType = errors.New("unknown output type")
	// ErrInvalidConfig is returned when one or more of the output's
	// configuration parameters are invalid.
	ErrInvalidConfig = errors.New("invalid output config")
)

// Config is the configuration for a single output. Numbers are float64
// since the configuration might come from JSON.
type Config map[string]interface{}

// HasParameterOfType checks if the parameter exists and if type type is correct
func (c Config) HasParameterOfType(name string, expectedType reflect.Kind) (bool, bool) {
	v, exists := c[name]
	if !exists || v == nil {
		return false, false
	}
	return true, reflect.TypeOf(v).Kind() == expectedType
}

// ErrorMessage maps configuration fields to error messages
type ErrorMessage map[string]string

// LogEntry is a log entry from an output. Repeated messages increase the
// Repeated field.
type LogEntry struct {
	Message  string
	Time     time.Time
	Repeated int
}

// Status is the forwarding status for an output
type Status struct {
	Received    int
	Forwarded   int
	ErrorCount  int
	Retransmits int
}

// Output forwards stored messages to external servers. Outputs can be
// stateless (webhooks) or keep a connection (MQTT) but they behave the same.
type Output interface {
	// Validate verifies the configuraton for the output. Error messages
	// for the operator is returned as the first parameter. On success the
	// error return value is nil.
	Validate(config Config) (ErrorMessage, error)
	// Start launches the output. This is non blocking. The output will stop
	// when the message channel is closed.
	Start(config Config, messages <-chan interface{})
	// Stop halts the output. Buffered messages that can't be sent during
	// the timeout are discarded.
	Stop(timeout time.Duration)
	// Logs returns the latest log entries for the output.
	Logs() []LogEntry
	// Status reports the internal status of the output.
	Status() Status
}

// NewOutput creates a new output of the given type.
func NewOutput(outputType string) (Output, error) {
	return makeOutput(outputType)
}
