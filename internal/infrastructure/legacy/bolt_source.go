// Package legacy reads the embedded store left behind by the old offline
// point-of-sale. Each collection lives in its own bbolt bucket; every value is
// one JSON row keyed by an 8-byte big-endian sequence, so cursor order is
// insertion order.
package legacy

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ErrClosed is returned by reads after Close
var ErrClosed = errors.New("legacy store is closed")

// BoltSource is a read-only view over a legacy bbolt file
type BoltSource struct {
	db *bolt.DB
}

// OpenBoltSource opens path read-only. It fails fast if another process
// holds the file lock.
func OpenBoltSource(path string) (*BoltSource, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{ReadOnly: true, Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy store %s: %w", path, err)
	}
	return &BoltSource{db: db}, nil
}

// ReadAll returns every row of collection in insertion order.
// A collection with no bucket yields no rows.
func (s *BoltSource) ReadAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	var rows []json.RawMessage
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return nil
		}
		rows = make([]json.RawMessage, 0, b.Stats().KeyN)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			// bolt values are only valid inside the transaction
			row := make(json.RawMessage, len(v))
			copy(row, v)
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}
	return rows, nil
}

// Collections lists the bucket names present in the file
func (s *BoltSource) Collections() ([]string, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	return names, err
}

// Close releases the file lock
func (s *BoltSource) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// BoltWriter appends JSON rows to a legacy-format file. It is used to export
// snapshots from the old client and to build fixtures.
type BoltWriter struct {
	db *bolt.DB
}

// CreateBoltFile opens (or creates) path for writing
func CreateBoltFile(path string) (*BoltWriter, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to create legacy store %s: %w", path, err)
	}
	return &BoltWriter{db: db}, nil
}

// Append marshals rows and stores them at the end of collection
func (w *BoltWriter) Append(collection string, rows ...any) error {
	return w.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(collection))
		if err != nil {
			return err
		}
		for _, row := range rows {
			data, err := json.Marshal(row)
			if err != nil {
				return fmt.Errorf("failed to encode %s row: %w", collection, err)
			}
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, seq)
			if err := b.Put(key, data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close flushes and closes the file
func (w *BoltWriter) Close() error {
	return w.db.Close()
}
