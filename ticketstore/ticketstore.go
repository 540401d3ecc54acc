// Package ticketstore persists the dispatch engine's resumption pack()
// output across process restarts. It is a supplemental feature, not
// part of the core dispatch contract: the engine's Pack/Unpack only
// produce and consume a byte slice, and this package is one concrete
// place to put that slice at rest.
//
// Built on bbolt for the durable local cache and klauspost/compress
// for compressing entries at rest.
package ticketstore

import (
	"errors"
	"time"

	"github.com/klauspost/compress/zstd"
	"go.etcd.io/bbolt"
)

var ticketBucket = []byte("tickets")

var ErrNotFound = errors.New("ticket not found")

// Store is a bolt-backed, zstd-compressed cache of resumption blobs,
// keyed by session identifier (a string form of session.Session.ID).
type Store struct {
	db  *bbolt.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open creates or opens the bolt database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(ticketBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, enc: enc, dec: dec}, nil
}

// Close releases the underlying bolt database and compression streams.
func (s *Store) Close() error {
	if err := s.enc.Close(); err != nil {
		s.dec.Close()
		s.db.Close()
		return err
	}
	s.dec.Close()
	return s.db.Close()
}

// Put compresses and stores a packed resumption blob under key.
func (s *Store) Put(key string, packed []byte) error {
	compressed := s.enc.EncodeAll(packed, nil)
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(ticketBucket).Put([]byte(key), compressed)
	})
}

// Get retrieves and decompresses the packed resumption blob stored
// under key, or ErrNotFound if none exists.
func (s *Store) Get(key string) ([]byte, error) {
	var compressed []byte
	if err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(ticketBucket).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		compressed = append(compressed, v...)
		return nil
	}); err != nil {
		return nil, err
	}
	return s.dec.DecodeAll(compressed, nil)
}

// Delete removes the ticket stored under key, if any.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(ticketBucket).Delete([]byte(key))
	})
}
