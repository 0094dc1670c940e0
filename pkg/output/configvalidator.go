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
	"fmt"
	"reflect"
)

// fieldSpec describes a single configuration parameter. Numbers are
// float64 since the configuration is usually decoded from JSON.
type fieldSpec struct {
	name      string
	fieldType reflect.Kind
	required  bool
	min, max  float64
}

func stringField(name string, required bool) fieldSpec {
	return fieldSpec{name: name, fieldType: reflect.String, required: required}
}

func boolField(name string) fieldSpec {
	return fieldSpec{name: name, fieldType: reflect.Bool}
}

func numberField(name string, required bool, min, max float64) fieldSpec {
	return fieldSpec{name: name, fieldType: reflect.Float64, required: required, min: min, max: max}
}

// validateConfig checks the configuration against the field list. The
// returned map is empty when the configuration is valid.
func validateConfig(config Config, fields []fieldSpec) ErrorMessage {
	errs := make(ErrorMessage)
	for _, f := range fields {
		exists, okType := config.HasParameterOfType(f.name, f.fieldType)
		switch {
		case !exists && f.required:
			errs[f.name] = "required parameter is missing"
		case exists && !okType:
			errs[f.name] = fmt.Sprintf("parameter must be a %s", f.fieldType)
		case exists && f.fieldType == reflect.Float64:
			v := config[f.name].(float64)
			if v < f.min || v > f.max || v != float64(int(v)) {
				errs[f.name] = fmt.Sprintf("parameter must be an integer in the range %d-%d", int(f.min), int(f.max))
			}
		}
	}
	return errs
}

// configString returns a string parameter or an empty string if it is
// missing or of the wrong type.
func configString(config Config, name string) string {
	s, _ := config[name].(string)
	return s
}

func configBool(config Config, name string) bool {
	b, _ := config[name].(bool)
	return b
}

// configInt returns a numeric parameter or def if it is missing
func configInt(config Config, name string, def int) int {
	switch v := config[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}
