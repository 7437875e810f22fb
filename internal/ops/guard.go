// Package ops admits one state-changing launcher operation at a time and
// keeps a short history of what those operations reported.
package ops

import (
	"errors"
	"sync"

	"retreivr-launcher/internal/domain"
)

// ErrOperationInProgress is returned when a second operation is started
// while another one is still running.
var ErrOperationInProgress = errors.New("another launcher operation is in progress")

// ErrNoRunningOperation is returned when Finish is called while idle.
var ErrNoRunningOperation = errors.New("no running operation")

// Guard tracks the single allowed running operation.
type Guard struct {
	mu      sync.RWMutex
	current domain.Operation
}

// NewGuard creates an idle guard.
func NewGuard() *Guard {
	return &Guard{current: domain.Operation{Status: domain.OperationStatusIdle}}
}

// Begin marks a new operation as running. Finished operations may be
// replaced; a running one may not.
func (g *Guard) Begin(id, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current.Status == domain.OperationStatusRunning {
		return ErrOperationInProgress
	}
	g.current = domain.Operation{ID: id, Name: name, Status: domain.OperationStatusRunning}
	return nil
}

// Finish records the outcome of the running operation.
func (g *Guard) Finish(err error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current.Status != domain.OperationStatusRunning {
		return ErrNoRunningOperation
	}
	if err != nil {
		g.current.Status = domain.OperationStatusFailed
	} else {
		g.current.Status = domain.OperationStatusDone
	}
	return nil
}

// Current returns a snapshot of the last operation.
func (g *Guard) Current() domain.Operation {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current
}

// IsRunning reports whether an operation holds the guard.
func (g *Guard) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current.Status == domain.OperationStatusRunning
}

// Reset returns the guard to idle.
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = domain.Operation{Status: domain.OperationStatusIdle}
}
