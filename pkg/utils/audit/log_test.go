package audit

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
	"testing"

	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/stretchr/testify/require"
)

func TestAuditLog(t *testing.T) {
	assert := require.New(t)

	assert.False(Enabled())
	Log("not logged %d", 1)

	Enable()
	defer Disable()
	assert.True(Enabled())

	Log("logged %d", 2)
	Received("127.0.0.1:4711", sbd.Message{IMEI: "300234010753370"}, "/tmp/x.sbd", false)
	Received("127.0.0.1:4711", sbd.Message{IMEI: "300234010753370"}, "/tmp/x.sbd", true)
	Rejected("127.0.0.1:4711", errors.New("truncated"))
}
