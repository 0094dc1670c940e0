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
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ExploratoryEngineering/logging"
	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/storage"

	// SQLite3 driver for testing, local instances and in-memory database
	_ "github.com/mattn/go-sqlite3"
	//PostgreSQL driver for production servers and Real Backends (tm)
	_ "github.com/lib/pq"
)

// rowScanner implements Scan - ie read from both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(...interface{}) error
}

type messageStatements struct {
	insert   *sql.Stmt
	retrieve *sql.Stmt
	list     *sql.Stmt
}

// sqlStore is a message store backed by a SQL database
type sqlStore struct {
	db         *sql.DB
	driver     string
	statements messageStatements
}

// NewSQLStoreWithConnection creates a Store with an existing sql.DB connection.
func NewSQLStoreWithConnection(driver string, db *sql.DB) (storage.Store, error) {
	ret := &sqlStore{db: db, driver: driver}
	if err := ret.initMessageStatements(); err != nil {
		return nil, fmt.Errorf("error preparing message statements: %v", err)
	}
	return ret, nil
}

// NewSQLStore creates a new SQL-backed store. The schema is created if
// create is set or the database is in-memory.
func NewSQLStore(driver string, connectionString string, create bool) (storage.Store, error) {
	db, err := sql.Open(driver, connectionString)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("unable to ping %s database: %v", driver, err)
	}

	// Always create schema if this is a memory-backed instance
	memory := strings.HasPrefix(connectionString, ":memory:")
	if memory {
		// Each connection gets its own in-memory database
		db.SetMaxOpenConns(1)
	}
	if create || memory {
		logging.Info("Creating schema")
		schema := NewSchema(driver, DBSchema)
		if err := schema.Create(db); err != nil {
			return nil, err
		}
	}

	return NewSQLStoreWithConnection(driver, db)
}

// NewMemoryStore creates a memory-backed SQLite3 instance. Panics if the
// store can't be created. Use for testing
func NewMemoryStore() storage.Store {
	s, err := NewSQLMutexStore("sqlite3", ":memory:", true)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *sqlStore) initMessageStatements() error {
	var err error
	if s.statements.insert, err = s.db.Prepare(`
		INSERT INTO sbd_message (
			imei, cdr_reference, momsn, session_status, time_of_session, stored, message)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT DO NOTHING`); err != nil {
		return err
	}
	if s.statements.retrieve, err = s.db.Prepare(`
		SELECT message
			FROM sbd_message
			WHERE imei = $1 AND cdr_reference = $2 AND momsn = $3`); err != nil {
		return err
	}
	if s.statements.list, err = s.db.Prepare(`
		SELECT imei, cdr_reference, momsn, message
			FROM sbd_message`); err != nil {
		return err
	}
	return nil
}

func (s *sqlStore) location(key storage.Key) string {
	return fmt.Sprintf("%s:sbd_message/%s", s.driver, key.String())
}

func (s *sqlStore) Put(msg sbd.Message) (string, bool, error) {
	key := storage.KeyFor(msg)
	buf, err := sbd.Encode(msg)
	if err != nil {
		return "", false, storage.NewError("put", storage.KeyFor(msg), storage.ErrInvalidMessage, err)
	}
	res, err := s.statements.insert.Exec(
		msg.IMEI, int64(msg.CDRReference), int(msg.MOMSN), int(msg.SessionStatus),
		msg.TimeOfSession.Unix(), time.Now().UnixNano()/int64(time.Millisecond), buf)
	if err != nil {
		return "", false, storage.NewError("put", key, storage.ErrUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", false, storage.NewError("put", key, storage.ErrUnavailable, err)
	}
	return s.location(key), n == 0, nil
}

func (s *sqlStore) Get(key storage.Key) (sbd.Message, error) {
	var buf []byte
	err := s.statements.retrieve.QueryRow(key.IMEI, int64(key.CDRReference), int(key.MOMSN)).Scan(&buf)
	if err == sql.ErrNoRows {
		return sbd.Message{}, storage.NewError("get", key, storage.ErrNotFound, nil)
	}
	if err != nil {
		return sbd.Message{}, storage.NewError("get", key, storage.ErrUnavailable, err)
	}
	return storage.DecodeMessage(key, buf)
}

type storedRow struct {
	key storage.Key
	buf []byte
}

func (s *sqlStore) readRow(r rowScanner) (storedRow, error) {
	var (
		ret   storedRow
		cdr   int64
		momsn int
	)
	if err := r.Scan(&ret.key.IMEI, &cdr, &momsn, &ret.buf); err != nil {
		return ret, err
	}
	ret.key.CDRReference = uint32(cdr)
	ret.key.MOMSN = uint16(momsn)
	return ret, nil
}

// List reads the rows up front so the connection is released before the
// caller starts consuming the channel. Decoding is done lazily.
func (s *sqlStore) List(ctx context.Context) (<-chan storage.Entry, error) {
	rows, err := s.statements.list.QueryContext(ctx)
	if err != nil {
		return nil, storage.NewError("list", storage.Key{}, storage.ErrUnavailable, err)
	}
	defer rows.Close()

	var stored []storedRow
	for rows.Next() {
		r, err := s.readRow(rows)
		if err != nil {
			return nil, storage.NewError("list", storage.Key{}, storage.ErrUnavailable, err)
		}
		stored = append(stored, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.NewError("list", storage.Key{}, storage.ErrUnavailable, err)
	}

	ch := make(chan storage.Entry)
	go func() {
		defer close(ch)
		for _, r := range stored {
			select {
			case ch <- storage.DecodeEntry(r.key, s.location(r.key), r.buf):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (s *sqlStore) Close() error {
	s.statements.insert.Close()
	s.statements.retrieve.Close()
	s.statements.list.Close()
	return s.db.Close()
}
