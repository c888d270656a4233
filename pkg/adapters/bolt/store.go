// Package bolt provides a single-file embedded SaveStore backed by bbolt.
package bolt

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/grunberg/pkg/domain"
	"go.etcd.io/bbolt"
)

const savesBucket = "saves"

// Store implements ports.SaveStore on a BoltDB file.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("save key is required")
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(savesBucket))
		if bucket == nil {
			return fmt.Errorf("saves bucket is missing")
		}
		// bbolt may retain the slice until commit
		return bucket.Put([]byte(key), slices.Clone(data))
	})
	if err != nil {
		return domain.KindStorageWriteFailed.Wrap(err, "key", key)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(savesBucket))
		if bucket == nil {
			return fmt.Errorf("saves bucket is missing")
		}
		payload := bucket.Get([]byte(key))
		if payload == nil {
			return domain.ErrSaveNotFound
		}
		// payload is only valid inside the transaction
		out = slices.Clone(payload)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(savesBucket))
		if bucket == nil {
			return fmt.Errorf("saves bucket is missing")
		}
		return bucket.Delete([]byte(key))
	})
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys := []string{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(savesBucket))
		if bucket == nil {
			return fmt.Errorf("saves bucket is missing")
		}
		return bucket.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(savesBucket)); err != nil {
			return fmt.Errorf("create saves bucket: %w", err)
		}
		return nil
	})
}
