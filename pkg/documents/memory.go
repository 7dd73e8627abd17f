package documents

import (
	"context"
	"iter"
	"maps"
	"sync"

	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/errors"
)

// Memory is an in-memory document store. Collections keep insertion order.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]Record

	failDelete map[string]error
	failList   map[string]error

	deletes []string
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory document store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string][]Record),
		failDelete:  make(map[string]error),
		failList:    make(map[string]error),
	}
}

// Put stores a document, replacing any existing one with the same id.
func (m *Memory) Put(collection, id string, fields map[string]any) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := Decode(collection, id, maps.Clone(fields))
	docs := m.collections[collection]
	for i := range docs {
		if docs[i].ID == id {
			docs[i] = rec
			return m
		}
	}
	m.collections[collection] = append(docs, rec)
	return m
}

// FailDelete makes Delete(collection, id) return err.
func (m *Memory) FailDelete(collection, id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failDelete[key(collection, id)] = err
}

// FailList makes List(collection) yield err after every stored document.
func (m *Memory) FailList(collection string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failList[collection] = err
}

// Deletes returns "collection/id" for every Delete call, in call order.
func (m *Memory) Deletes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.deletes...)
}

// Has reports whether a document exists.
func (m *Memory) Has(collection, id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index(collection, id) >= 0
}

// Count returns the number of documents in a collection.
func (m *Memory) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections[collection])
}

// List implements Store. The sequence ranges over a snapshot taken when
// iteration starts.
func (m *Memory) List(ctx context.Context, collection string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		m.mu.RLock()
		snapshot := append([]Record(nil), m.collections[collection]...)
		failErr := m.failList[collection]
		m.mu.RUnlock()

		for _, rec := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(Record{}, errors.WrapUnavailable(constants.DocumentStore, "list", err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if failErr != nil {
			yield(Record{}, errors.WrapUnavailable(constants.DocumentStore, "list", failErr))
		}
	}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, collection, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.index(collection, id); i >= 0 {
		return m.collections[collection][i], nil
	}
	return Record{}, errors.NewNotFoundError("document", key(collection, id))
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletes = append(m.deletes, key(collection, id))
	if err, ok := m.failDelete[key(collection, id)]; ok {
		return errors.WrapDelete(constants.DocumentStore, collection, id, err)
	}
	if i := m.index(collection, id); i >= 0 {
		docs := m.collections[collection]
		m.collections[collection] = append(docs[:i:i], docs[i+1:]...)
	}
	return nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

func (m *Memory) index(collection, id string) int {
	for i, rec := range m.collections[collection] {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func key(collection, id string) string {
	return collection + "/" + id
}
