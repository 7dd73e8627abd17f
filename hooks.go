package usersweep

import (
	"sync"

	"github.com/agentstation/usersweep/pkg/purge"
)

// Hook function types for purge events
type (
	// DeletedHook is called when a record is deleted
	DeletedHook func(entry purge.Entry)

	// FailedHook is called when a record could not be deleted
	FailedHook func(failure purge.Failure)

	// PurgeCompletedHook is called when a purge finishes, even a partial one
	PurgeCompletedHook func(outcome *purge.Outcome)
)

// hooks manages event callbacks for purge progress. It is the engine's
// observer.
type hooks struct {
	mu               sync.RWMutex
	onDeleted        []DeletedHook
	onFailed         []FailedHook
	onPurgeCompleted []PurgeCompletedHook
}

var _ purge.Observer = (*hooks)(nil)

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnDeleted registers a callback for when records are deleted
func (h *hooks) OnDeleted(fn DeletedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDeleted = append(h.onDeleted, fn)
}

// OnFailed registers a callback for when deletes fail
func (h *hooks) OnFailed(fn FailedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFailed = append(h.onFailed, fn)
}

// OnPurgeCompleted registers a callback for when purges finish
func (h *hooks) OnPurgeCompleted(fn PurgeCompletedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPurgeCompleted = append(h.onPurgeCompleted, fn)
}

// Deleted implements purge.Observer.
func (h *hooks) Deleted(entry purge.Entry) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onDeleted {
		hook(entry)
	}
}

// Failed implements purge.Observer.
func (h *hooks) Failed(failure purge.Failure) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onFailed {
		hook(failure)
	}
}

func (h *hooks) triggerPurgeCompleted(outcome *purge.Outcome) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onPurgeCompleted {
		hook(outcome)
	}
}
