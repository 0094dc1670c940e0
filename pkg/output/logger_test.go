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
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	assert := require.New(t)
	logger := NewLogger()

	assert.Len(logger.Entries(), 0)
	assert.Equal(0, logger.Messages())

	for _, s := range []string{"1", "2", "2", "3", "4", "4", "4", "4", "4"} {
		logger.Append(s)
	}
	le := logger.Entries()
	assert.Len(le, 4)
	assert.Equal(4, logger.Messages())
	assert.Equal("1", le[0].Message)
	assert.Equal(0, le[0].Repeated)
	assert.Equal("2", le[1].Message)
	assert.Equal(1, le[1].Repeated)
	assert.Equal("3", le[2].Message)
	assert.Equal("4", le[3].Message)
	assert.Equal(4, le[3].Repeated)

	for _, s := range []string{"5", "6", "7", "8", "9", "9", "9", "9", "10"} {
		logger.Append(s)
	}
	assert.Len(logger.Entries(), maxEntries)

	for _, s := range []string{"11", "12", "13", "13", "13", "13", "13", "14", "15"} {
		logger.Append(s)
	}
	// The ring buffer wraps and keeps the latest entries in order
	le = logger.Entries()
	for i, v := range le {
		assert.Equal(fmt.Sprintf("%d", i+6), v.Message)
	}
}

func TestLoggerConcurrent(t *testing.T) {
	assert := require.New(t)
	logger := NewLogger()

	wg := &sync.WaitGroup{}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				logger.Append(fmt.Sprintf("%d-%d", n, j))
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(200, logger.Messages())
	assert.Len(logger.Entries(), maxEntries)
}
