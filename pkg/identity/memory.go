package identity

import (
	"context"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/errors"
)

// Memory is an in-memory identity store. It paginates like the remote store
// and can be told to fail individual calls.
type Memory struct {
	mu       sync.RWMutex
	records  []Record
	pageSize int

	failDelete map[string]error
	failList   error
	failAfter  int

	deletes []string
}

var _ Store = (*Memory)(nil)

// NewMemory creates an in-memory identity store holding the given records.
func NewMemory(records ...Record) *Memory {
	return &Memory{
		records:    append([]Record(nil), records...),
		pageSize:   constants.DefaultPageSize,
		failDelete: make(map[string]error),
	}
}

// SetPageSize changes the internal page size used by List.
func (m *Memory) SetPageSize(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n > 0 {
		m.pageSize = n
	}
}

// FailDelete makes Delete(id) return err without removing the record.
func (m *Memory) FailDelete(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failDelete[id] = err
}

// FailList makes List yield err after n records.
func (m *Memory) FailList(after int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failList = err
	m.failAfter = after
}

// Deletes returns the ids passed to Delete, in call order, including failed calls.
func (m *Memory) Deletes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.deletes...)
}

// Len returns the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// List implements Store. Accounts are returned in id order and paged by the
// last id seen, like the remote store, so deletes made while ranging never
// cause later accounts to be skipped.
func (m *Memory) List(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		var cursor string
		emitted := 0
		for {
			if err := ctx.Err(); err != nil {
				yield(Record{}, errors.WrapUnavailable(constants.IdentityStore, "list", err))
				return
			}
			page, more, failErr := m.page(cursor, emitted)
			for _, rec := range page {
				if !yield(rec, nil) {
					return
				}
				emitted++
				cursor = rec.ID
			}
			if failErr != nil {
				yield(Record{}, errors.WrapUnavailable(constants.IdentityStore, "list", failErr))
				return
			}
			if !more {
				return
			}
		}
	}
}

// page returns up to pageSize records with ids after cursor, whether more
// remain, and the injected list error once emitted reaches failAfter.
func (m *Memory) page(cursor string, emitted int) ([]Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var after []Record
	for _, rec := range m.records {
		if rec.ID > cursor {
			after = append(after, rec)
		}
	}
	slices.SortFunc(after, func(a, b Record) int { return strings.Compare(a.ID, b.ID) })

	page := after[:min(m.pageSize, len(after))]
	if m.failList != nil && emitted+len(page) >= m.failAfter {
		return page[:max(0, m.failAfter-emitted)], false, m.failList
	}
	return page, len(after) > len(page), nil
}

// FindByEmail implements Store. Emails compare case-insensitively.
func (m *Memory) FindByEmail(_ context.Context, email string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rec := range m.records {
		if strings.EqualFold(rec.Email, email) {
			return rec, nil
		}
	}
	return Record{}, errors.NewNotFoundError("user", email)
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletes = append(m.deletes, id)
	if err, ok := m.failDelete[id]; ok {
		return errors.WrapDelete(constants.IdentityStore, "", id, err)
	}
	for i, rec := range m.records {
		if rec.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return errors.WrapDelete(constants.IdentityStore, "", id, errors.NewNotFoundError("user", id))
}

// Ping implements Store.
func (m *Memory) Ping(ctx context.Context) error {
	return errors.WrapUnavailable(constants.IdentityStore, "ping", ctx.Err())
}
