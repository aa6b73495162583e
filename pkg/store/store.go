// Package store persists UI state, such as which windows and folds are open,
// in a bbolt database.
package store

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/go-drift/rosetta/pkg/errors"
	"github.com/go-drift/rosetta/pkg/reactive"
)

const bucketFlags = "flags"

var (
	valTrue  = []byte{1}
	valFalse = []byte{0}
)

// ErrNoFlag is returned by Bool when the flag was never stored.
var ErrNoFlag = stderrors.New("no such flag")

// Store is a handle to the state database.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketFlags))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: initialize %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

// Bool returns a stored flag, or ErrNoFlag.
func (s *Store) Bool(key string) (bool, error) {
	var value bool
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketFlags)).Get([]byte(key))
		if v == nil {
			return ErrNoFlag
		}
		value = len(v) > 0 && v[0] != 0
		return nil
	})
	return value, err
}

// PutBool stores a flag.
func (s *Store) PutBool(key string, value bool) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		v := valFalse
		if value {
			v = valTrue
		}
		return tx.Bucket([]byte(bucketFlags)).Put([]byte(key), v)
	})
}

// Delete removes a flag.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketFlags)).Delete([]byte(key))
	})
}

// Keys lists the stored flag keys in order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketFlags)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	sort.Strings(keys)
	return keys, err
}

// BindFlag restores prop from the stored flag, if any, and stores every
// later write to prop. Failures are reported, not returned, so a broken
// database never stops the UI.
func (s *Store) BindFlag(key string, prop *reactive.Property[bool]) (unbind func()) {
	if v, err := s.Bool(key); err == nil {
		prop.Set(v)
	} else if !stderrors.Is(err, ErrNoFlag) {
		report("store.Bool", err)
	}
	first := true
	return prop.Subscribe(func(v bool) {
		// Subscribe pushes the current value first; it is already stored
		// or still the default.
		if first {
			first = false
			return
		}
		if err := s.PutBool(key, v); err != nil {
			report("store.PutBool", err)
		}
	})
}

func report(op string, err error) {
	errors.Report(&errors.UIError{Op: op, Kind: errors.KindStore, Err: err})
}
