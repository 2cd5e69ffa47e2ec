package services

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/ports"
	"fmt"
	"slices"
	"sync"
)

// keyedMutex hands out one mutex per key and drops it once nobody holds it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refLock)}
}

func (k *keyedMutex) Lock(key string) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
}

func (k *keyedMutex) Unlock(key string) {
	k.mu.Lock()
	l := k.locks[key]
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	l.Unlock()
}

// AssignmentPersister serializes write-backs per job id so concurrent runs
// touching the same job apply in full, one after the other.
type AssignmentPersister struct {
	writer ports.AssignmentWriter
	locks  *keyedMutex
}

func NewAssignmentPersister(w ports.AssignmentWriter) *AssignmentPersister {
	return &AssignmentPersister{writer: w, locks: newKeyedMutex()}
}

// Save writes the assignments while holding the lock of every job involved.
// Locks are taken in sorted id order.
func (p *AssignmentPersister) Save(ctx context.Context, assignments []domain.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.JobID)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	for _, id := range ids {
		p.locks.Lock(id)
	}
	defer func() {
		for _, id := range ids {
			p.locks.Unlock(id)
		}
	}()

	if err := p.writer.SaveAssignments(ctx, assignments); err != nil {
		return fmt.Errorf("save assignments: %w", err)
	}
	return nil
}
