package sqlstore

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
	"database/sql"
	"fmt"
	"strings"
)

// Schema contains a database schema.
type Schema struct {
	driver     string
	statements string
}

// DBSchema is the message store schema. It's split into separate statements
// by the Statements function. Data types are converted on the fly for
// PostgreSQL.
const DBSchema = `
-- Received MO messages. The message column holds the encoded message exactly
-- as it was received (minus unknown elements). The remaining columns are
-- copies of the header fields for lookups and ordering.
CREATE TABLE IF NOT EXISTS sbd_message (
	imei            VARCHAR(15) NOT NULL, -- IMEI of the modem
	cdr_reference   BIGINT      NOT NULL, -- Call detail record reference
	momsn           INT         NOT NULL, -- MO message sequence number
	session_status  SMALLINT    NOT NULL,
	time_of_session BIGINT      NOT NULL, -- Seconds since epoch
	stored          BIGINT      NOT NULL, -- Time stored, ms since epoch
	message         BYTES       NOT NULL,

	CONSTRAINT sbd_message_pk PRIMARY KEY (imei, cdr_reference, momsn)
);

CREATE INDEX IF NOT EXISTS sbd_message_imei ON sbd_message(imei);
CREATE INDEX IF NOT EXISTS sbd_message_time ON sbd_message(time_of_session);
`

func (s *Schema) removeComments(schema string) string {
	ret := ""
	lines := strings.Split(schema, "\n")
	for _, v := range lines {
		line := v
		pos := strings.Index(line, "--")
		if pos == 0 {
			continue
		}
		if pos > 0 {
			line = line[0:pos]
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		ret += line + "\n"
	}
	return ret
}

// SQLite3 accepts any type name so the types are only changed for PostgreSQL
func (s *Schema) changeDataTypes(cmd string) string {
	if s.driver != "postgres" {
		return cmd
	}
	cmd = strings.Replace(cmd, "BYTES ", "BYTEA ", -1)
	return cmd
}

// DDL dumps the DDL statements including comments
func (s *Schema) DDL() []string {
	ret := []string{
		"-- --------------------------------------------------------------",
		fmt.Sprintf("-- DDL for database driver %s", s.driver),
		"-- --------------------------------------------------------------",
	}
	for _, v := range strings.Split(s.statements, "\n") {
		ret = append(ret, s.changeDataTypes(v))
	}
	return ret
}

// Statements returns an array of DDL statements
func (s *Schema) Statements() []string {
	var ret []string

	commands := strings.Split(s.removeComments(s.statements), ";")
	for _, v := range commands {
		if len(strings.TrimSpace(v)) > 0 {
			ret = append(ret, s.changeDataTypes(strings.TrimSpace(v)))
		}
	}
	return ret
}

// Create creates the database schema
func (s *Schema) Create(db *sql.DB) error {
	for i, v := range s.Statements() {
		if _, err := db.Exec(v); err != nil {
			return fmt.Errorf("unable to execute command #%d %s: %v", i, v, err)
		}
	}
	return nil
}

// NewSchema creates a new schema
func NewSchema(driver string, statements ...string) *Schema {
	return &Schema{driver: driver, statements: strings.Join(statements, "\n")}
}
