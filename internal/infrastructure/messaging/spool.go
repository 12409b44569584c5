package messaging

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var spoolBucket = []byte("events")

// Spool is an on-disk FIFO of encoded events awaiting delivery.
type Spool struct {
	db *bolt.DB
}

// spooled is one pending entry. key is the bucket sequence, big-endian, so
// cursor order is insertion order.
type spooled struct {
	key  []byte
	msg  Message
	body []byte
}

func OpenSpool(path string) (*Spool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(spoolBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Spool{db: db}, nil
}

// Put appends encoded events in order.
func (s *Spool) Put(bodies ...[]byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(spoolBucket)
		for _, body := range bodies {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, seq)
			if err := b.Put(key, body); err != nil {
				return err
			}
		}
		return nil
	})
}

// Batch returns up to limit of the oldest entries without removing them.
// Entries that no longer decode are dropped.
func (s *Spool) Batch(limit int) ([]spooled, error) {
	var out []spooled
	var corrupt [][]byte
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(spoolBucket).Cursor()
		for k, v := c.First(); k != nil && len(out) < limit; k, v = c.Next() {
			key := append([]byte(nil), k...)
			body := append([]byte(nil), v...)
			msg, err := Decode(body)
			if err != nil {
				corrupt = append(corrupt, key)
				continue
			}
			out = append(out, spooled{key: key, msg: msg, body: body})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(corrupt) > 0 {
		if err := s.remove(corrupt...); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Spool) remove(keys ...[]byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(spoolBucket)
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Pending reports whether any entry awaits delivery.
func (s *Spool) Pending() (bool, error) {
	var ok bool
	err := s.db.View(func(tx *bolt.Tx) error {
		k, _ := tx.Bucket(spoolBucket).Cursor().First()
		ok = k != nil
		return nil
	})
	return ok, err
}

func (s *Spool) Size() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(spoolBucket).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *Spool) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
