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
	"sort"
	"sync"
)

type outputGenerator func() Output

// outputRegistry maps output type names to constructors. The outputs
// register themselves in init().
type outputRegistry struct {
	mutex      sync.RWMutex
	generators map[string]outputGenerator
}

var registry = &outputRegistry{generators: make(map[string]outputGenerator)}

func registerOutput(name string, generator outputGenerator) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	if _, exists := registry.generators[name]; exists {
		panic(fmt.Sprintf("output type %s is registered twice", name))
	}
	registry.generators[name] = generator
}

// Types returns the registered output types in sorted order
func Types() []string {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	ret := make([]string, 0, len(registry.generators))
	for name := range registry.generators {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

func makeOutput(name string) (Output, error) {
	registry.mutex.RLock()
	generator, ok := registry.generators[name]
	registry.mutex.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOutputType, name)
	}
	return generator(), nil
}
