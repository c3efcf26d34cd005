// Package store persists automaton definitions and run records in a
// bbolt file.
package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"log"
	"time"

	"go.etcd.io/bbolt"
)

var (
	definitionsBucket = []byte("definitions")
	runsBucket        = []byte("runs")
)

// NotFound occurs when a name has no stored definition.
var NotFound = errors.New("not found")

// RunRecord is one stored simulation outcome.
type RunRecord struct {
	Input    []string  `json:"input"`
	Accepted bool      `json:"accepted"`
	Reason   string    `json:"reason,omitempty"`
	At       time.Time `json:"at"`
}

// Storage is a bbolt-backed store.  Definitions are stored as their
// source text; run records are appended in arrival order under the
// automaton's name.
type Storage struct {
	Debug bool

	filename string
	db       *bbolt.DB
}

func NewStorage(filename string) (*Storage, error) {
	return &Storage{
		filename: filename,
	}, nil
}

func (s *Storage) Open() error {
	opts := &bbolt.Options{
		Timeout: time.Second,
	}

	db, err := bbolt.Open(s.filename, 0644, opts)
	if err != nil {
		return err
	}
	s.db = db

	return db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(definitionsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	})
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) logf(format string, args ...interface{}) {
	if s.Debug {
		log.Printf("store.Storage."+format, args...)
	}
}

// PutDefinition stores definition source text under the given name,
// replacing any previous definition.
func (s *Storage) PutDefinition(ctx context.Context, name, definition string) error {
	s.logf("PutDefinition %s", name)
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(definitionsBucket).Put([]byte(name), []byte(definition))
	})
}

// GetDefinition returns the stored definition source text.
func (s *Storage) GetDefinition(ctx context.Context, name string) (string, error) {
	s.logf("GetDefinition %s", name)
	var definition string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bs := tx.Bucket(definitionsBucket).Get([]byte(name))
		if bs == nil {
			return NotFound
		}
		definition = string(bs)
		return nil
	})
	return definition, err
}

// RemDefinition removes the stored definition and its run records.
func (s *Storage) RemDefinition(ctx context.Context, name string) error {
	s.logf("RemDefinition %s", name)
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(definitionsBucket).Delete([]byte(name)); err != nil {
			return err
		}
		if tx.Bucket(runsBucket).Bucket([]byte(name)) == nil {
			return nil
		}
		return tx.Bucket(runsBucket).DeleteBucket([]byte(name))
	})
}

// Definitions returns the names of the stored definitions.
func (s *Storage) Definitions(ctx context.Context) ([]string, error) {
	names := make([]string, 0, 32)
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(definitionsBucket).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			names = append(names, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// AppendRun appends one run record for the named automaton.
func (s *Storage) AppendRun(ctx context.Context, name string, rec *RunRecord) error {
	s.logf("AppendRun %s", name)
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.Bucket(runsBucket).CreateBucketIfNotExists([]byte(name))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		bs, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put(key, bs)
	})
}

// Runs returns the named automaton's run records in append order.
func (s *Storage) Runs(ctx context.Context, name string) ([]*RunRecord, error) {
	recs := make([]*RunRecord, 0, 32)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(runsBucket).Bucket([]byte(name))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, bs := c.First(); k != nil; k, bs = c.Next() {
			var rec RunRecord
			if err := json.Unmarshal(bs, &rec); err != nil {
				return err
			}
			recs = append(recs, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}
