// Package bbolt implements the ports.DictionaryStore interface using bbolt
// (embedded B+ tree). All dictionaries live under one top-level bucket; each
// dictionary is a sub-bucket holding an "entries" blob and a "settings" blob.
// Writes are transactional: a crash mid-write cannot corrupt previously
// committed data.
package bbolt

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/corey/flashtext/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var (
	bucketDictionaries = []byte("dictionaries")
	keyEntries         = []byte("entries")
	keySettings        = []byte("settings")
)

// Store implements ports.DictionaryStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

var _ ports.DictionaryStore = (*Store)(nil)

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// dictBucket returns the bucket of dict, creating it (and the root bucket)
// when create is set. Returns nil if it does not exist and create is false.
func dictBucket(tx *bolt.Tx, dict string, create bool) (*bolt.Bucket, error) {
	if dict == "" {
		return nil, fmt.Errorf("empty dictionary name")
	}
	if !create {
		root := tx.Bucket(bucketDictionaries)
		if root == nil {
			return nil, nil
		}
		return root.Bucket([]byte(dict)), nil
	}
	root, err := tx.CreateBucketIfNotExists(bucketDictionaries)
	if err != nil {
		return nil, err
	}
	return root.CreateBucketIfNotExists([]byte(dict))
}

// SaveSettings persists the settings of a dictionary.
func (s *Store) SaveSettings(dict string, settings *ports.Settings) error {
	if settings == nil {
		return fmt.Errorf("nil settings")
	}
	data, err := encodeGob(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := dictBucket(tx, dict, true)
		if err != nil {
			return err
		}
		return b.Put(keySettings, data)
	})
}

// LoadSettings retrieves the settings of a dictionary.
// Returns nil, nil if the dictionary does not exist. A dictionary created by
// PutEntries alone has default settings.
func (s *Store) LoadSettings(dict string) (*ports.Settings, error) {
	var data []byte
	found := false

	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := dictBucket(tx, dict, false)
		if err != nil || b == nil {
			return err
		}
		found = true
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get(keySettings); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var settings ports.Settings
	if data == nil {
		return &settings, nil
	}
	if err := decodeGob(data, &settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &settings, nil
}

// updateEntries runs fn over the decoded entry map of dict inside one write
// transaction and stores the result.
func (s *Store) updateEntries(dict string, fn func(entries map[string]string)) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := dictBucket(tx, dict, true)
		if err != nil {
			return err
		}

		entries := make(map[string]string)
		if v := b.Get(keyEntries); v != nil {
			entries, err = decodeEntries(v)
			if err != nil {
				return fmt.Errorf("decode entries: %w", err)
			}
		}

		fn(entries)

		data, err := encodeEntries(entries)
		if err != nil {
			return fmt.Errorf("encode entries: %w", err)
		}
		return b.Put(keyEntries, data)
	})
}

// PutEntries inserts or overwrites entries.
func (s *Store) PutEntries(dict string, entries []ports.Entry) error {
	for _, e := range entries {
		if e.Keyword == "" {
			return fmt.Errorf("empty keyword")
		}
	}
	return s.updateEntries(dict, func(m map[string]string) {
		for _, e := range entries {
			m[e.Keyword] = e.CleanName
		}
	})
}

// DeleteEntries removes the given keywords.
func (s *Store) DeleteEntries(dict string, keywords []string) error {
	return s.updateEntries(dict, func(m map[string]string) {
		for _, kw := range keywords {
			delete(m, kw)
		}
	})
}

// LoadEntries returns all entries of a dictionary sorted by keyword.
// Returns nil, nil if the dictionary does not exist.
func (s *Store) LoadEntries(dict string) ([]ports.Entry, error) {
	var data []byte
	found := false

	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := dictBucket(tx, dict, false)
		if err != nil || b == nil {
			return err
		}
		found = true
		if v := b.Get(keyEntries); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	if data == nil {
		return []ports.Entry{}, nil
	}

	m, err := decodeEntries(data)
	if err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	entries := make([]ports.Entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, ports.Entry{Keyword: k, CleanName: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Keyword < entries[j].Keyword })
	return entries, nil
}

// ListDictionaries returns the names of all dictionaries, sorted.
func (s *Store) ListDictionaries() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketDictionaries)
		if root == nil {
			return nil
		}
		return root.ForEach(func(k, v []byte) error {
			if v == nil { // nested bucket
				names = append(names, string(k))
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// DeleteDictionary removes a dictionary.
// Idempotent: deleting a nonexistent dictionary is not an error.
func (s *Store) DeleteDictionary(dict string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketDictionaries)
		if root == nil {
			return nil
		}
		if err := root.DeleteBucket([]byte(dict)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		return nil
	})
}
