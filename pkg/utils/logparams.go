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
	"strings"

	"github.com/ExploratoryEngineering/logging"
)

// LogParameters contains the default log parameters
type LogParameters struct {
	Level string `param:"desc=Logging level (debug, info, warning, error);default=info;options=debug,info,warning,error"`
	Type  string `param:"desc=Log type (syslog, plain, plus);default=plain;options=syslog,plus,plain"`
}

// logLevelFromString returns the log level as a value. Unknown levels map to
// warning.
func logLevelFromString(level string) uint {
	if level == "" {
		return logging.InfoLevel
	}
	switch strings.ToLower(level)[0] {
	case 'd':
		return logging.DebugLevel
	case 'i':
		return logging.InfoLevel
	case 'w':
		return logging.WarningLevel
	case 'e':
		return logging.ErrorLevel
	default:
		return logging.WarningLevel
	}
}

const (
	plusLogs = "plus"
	sysLogs  = "syslog"
)

// InitLogs configures logging for a service. Syslog is used if it's
// selected, otherwise logs go to stderr, with or without the extra
// information that the "plus" type adds.
func InitLogs(service string, params LogParameters) {
	logging.SetLogLevel(logLevelFromString(params.Level))
	switch params.Type {
	case sysLogs:
		logging.EnableNamedSyslog(service)
	case plusLogs:
		logging.EnableStderr(false)
	default:
		logging.EnableStderr(true)
	}
}
