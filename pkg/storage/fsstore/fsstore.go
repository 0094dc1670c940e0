package fsstore

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
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/eesrc/iridium/pkg/sbd"
	"github.com/eesrc/iridium/pkg/storage"
)

const (
	fileSuffix = ".sbd"
	tempPrefix = ".tmp-"
)

// Store is the file system message store
type Store struct {
	root string
}

// New creates a store rooted at the directory. The directory is created if
// it doesn't exist and create is set.
func New(root string, create bool) (*Store, error) {
	fi, err := os.Stat(root)
	if os.IsNotExist(err) && create {
		if err := os.MkdirAll(root, 0755); err != nil {
			return nil, storage.NewError("open", storage.Key{}, storage.ErrUnavailable, err)
		}
		fi, err = os.Stat(root)
	}
	if err != nil {
		return nil, storage.NewError("open", storage.Key{}, storage.ErrUnavailable, err)
	}
	if !fi.IsDir() {
		return nil, storage.NewError("open", storage.Key{}, storage.ErrUnavailable, fmt.Errorf("%s is not a directory", root))
	}
	return &Store{root: root}, nil
}

// Root returns the root directory of the store
func (s *Store) Root() string {
	return s.root
}

// Path returns the file name for a key
func (s *Store) Path(key storage.Key) string {
	return filepath.Join(s.root, storage.EscapeIMEI(key.IMEI), key.String()+fileSuffix)
}

func kindOf(err error) error {
	if os.IsNotExist(err) {
		return storage.ErrNotFound
	}
	return storage.ErrUnavailable
}

// Put writes the message to a temporary file and publishes it. If the file
// already exists the temporary file is discarded.
func (s *Store) Put(msg sbd.Message) (string, bool, error) {
	key := storage.KeyFor(msg)
	target := s.Path(key)
	if _, err := os.Stat(target); err == nil {
		return target, true, nil
	}

	buf, err := sbd.Encode(msg)
	if err != nil {
		return "", false, storage.NewError("put", storage.KeyFor(msg), storage.ErrInvalidMessage, err)
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", false, storage.NewError("put", key, storage.ErrUnavailable, err)
	}
	tmp, err := writeTemp(dir, buf)
	if err != nil {
		return "", false, storage.NewError("put", key, storage.ErrUnavailable, err)
	}
	exists, err := publish(tmp, target)
	if err != nil {
		os.Remove(tmp)
		return "", false, storage.NewError("put", key, storage.ErrUnavailable, err)
	}
	return target, exists, nil
}

func writeTemp(dir string, buf []byte) (string, error) {
	f, err := ioutil.TempFile(dir, tempPrefix+"*")
	if err != nil {
		return "", err
	}
	name := f.Name()
	fail := func(err error) (string, error) {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if _, err := f.Write(buf); err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Chmod(0644); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// linkPublish publishes the file by hard linking it to the target. The
// temporary file is always removed.
func linkPublish(tmp, target string) (bool, error) {
	defer os.Remove(tmp)
	err := os.Link(tmp, target)
	if err == nil {
		return false, nil
	}
	if os.IsExist(err) {
		return true, nil
	}
	return false, err
}

// Get reads a message
func (s *Store) Get(key storage.Key) (sbd.Message, error) {
	buf, err := ioutil.ReadFile(s.Path(key))
	if err != nil {
		return sbd.Message{}, storage.NewError("get", key, kindOf(err), err)
	}
	return storage.DecodeMessage(key, buf)
}

var errCancelled = errors.New("list cancelled")

// List walks the directory tree and returns every message file it finds.
// Temporary files are skipped.
func (s *Store) List(ctx context.Context) (<-chan storage.Entry, error) {
	if _, err := os.Stat(s.root); err != nil {
		return nil, storage.NewError("list", storage.Key{}, storage.ErrUnavailable, err)
	}
	ch := make(chan storage.Entry)
	send := func(e storage.Entry) error {
		select {
		case ch <- e:
			return nil
		case <-ctx.Done():
			return errCancelled
		}
	}
	go func() {
		defer close(ch)
		filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				// Unreadable directories are reported and skipped
				return send(storage.Entry{Location: path, Err: storage.NewError("list", storage.Key{}, storage.ErrUnavailable, err)})
			}
			name := info.Name()
			if info.IsDir() || strings.HasPrefix(name, tempPrefix) || !strings.HasSuffix(name, fileSuffix) {
				return nil
			}
			key, err := storage.ParseKey(strings.TrimSuffix(name, fileSuffix))
			if err != nil {
				return send(storage.Entry{Location: path, Err: storage.NewError("list", storage.Key{}, storage.ErrCorrupt, err)})
			}
			buf, err := ioutil.ReadFile(path)
			if err != nil {
				return send(storage.Entry{Key: key, Location: path, Err: storage.NewError("list", key, kindOf(err), err)})
			}
			return send(storage.DecodeEntry(key, path, buf))
		})
	}()
	return ch, nil
}

// Close is a no-op for the file system store
func (s *Store) Close() error {
	return nil
}
