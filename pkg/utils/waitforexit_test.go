package utils

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
	"os"
	"testing"
	"time"

	"github.com/ExploratoryEngineering/logging"
	"github.com/stretchr/testify/require"
)

func TestWaitForEnd(t *testing.T) {
	go func() {
		time.Sleep(100 * time.Millisecond)
		p, _ := os.FindProcess(os.Getpid())
		p.Signal(os.Interrupt)
	}()
	sigch = make(chan os.Signal, 2)

	require.Equal(t, os.Interrupt, WaitForSignal())
}

func TestSendInterrupt(t *testing.T) {
	sigch = make(chan os.Signal, 2)
	go func() {
		time.Sleep(10 * time.Millisecond)
		SendInterrupt()
	}()
	require.Equal(t, os.Interrupt, WaitForSignal())
}

func TestLogLevel(t *testing.T) {
	assert := require.New(t)

	assert.Equal(uint(logging.InfoLevel), logLevelFromString(""))
	assert.Equal(uint(logging.DebugLevel), logLevelFromString("Debug"))
	assert.Equal(uint(logging.InfoLevel), logLevelFromString("info"))
	assert.Equal(uint(logging.WarningLevel), logLevelFromString("warning"))
	assert.Equal(uint(logging.ErrorLevel), logLevelFromString("ERROR"))
	assert.Equal(uint(logging.WarningLevel), logLevelFromString("verbose"))

	InitLogs("test", LogParameters{Level: "debug", Type: "plain"})
	InitLogs("test", LogParameters{Level: "info", Type: "plus"})
}
