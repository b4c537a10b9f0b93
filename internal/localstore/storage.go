package localstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage is a textual key/value medium with the shape of a browser's local
// storage. A missing key is reported with ok == false, not an error.
type Storage interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// Backend is a Storage that can hand out per-guest views of itself.
type Backend interface {
	Storage
	Namespace(id string) Storage
}

const namespacePrefix = "guest:"

type namespaced struct {
	base   Storage
	prefix string
}

func newNamespaced(base Storage, id string) Storage {
	return &namespaced{base: base, prefix: namespacePrefix + id + ":"}
}

func (n *namespaced) GetItem(key string) (string, bool, error) {
	return n.base.GetItem(n.prefix + key)
}

func (n *namespaced) SetItem(key, value string) error {
	return n.base.SetItem(n.prefix+key, value)
}

func (n *namespaced) RemoveItem(key string) error {
	return n.base.RemoveItem(n.prefix + key)
}

// MemoryStorage keeps items in process memory. Used in development and tests.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

// Namespace returns a view of the storage private to one guest.
func (m *MemoryStorage) Namespace(id string) Storage {
	return newNamespaced(m, id)
}

func (m *MemoryStorage) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.items[key]
	return value, ok, nil
}

func (m *MemoryStorage) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = value
	return nil
}

func (m *MemoryStorage) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

// BadgerStorage persists items in an embedded BadgerDB so guest data
// survives restarts.
type BadgerStorage struct {
	db *badger.DB
}

func NewBadgerStorage(db *badger.DB) *BadgerStorage {
	return &BadgerStorage{db: db}
}

// Namespace returns a view of the storage private to one guest.
func (b *BadgerStorage) Namespace(id string) Storage {
	return newNamespaced(b, id)
}

func (b *BadgerStorage) GetItem(key string) (string, bool, error) {
	var value string
	found := true

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			found = false
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if err != nil {
		return "", false, fmt.Errorf("get item %q: %w", key, err)
	}

	return value, found, nil
}

func (b *BadgerStorage) SetItem(key, value string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("set item %q: %w", key, err)
	}
	return nil
}

func (b *BadgerStorage) RemoveItem(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove item %q: %w", key, err)
	}
	return nil
}

// RunValueLogGC reclaims badger value-log space every interval until ctx is
// done. The returned channel is closed once the loop has returned, after
// which the db may be closed.
func RunValueLogGC(ctx context.Context, db *badger.DB, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for ctx.Err() == nil && db.RunValueLogGC(0.5) == nil {
				}
			}
		}
	}()

	return done
}
