package services

import (
	"context"
	"crew-route-service/internal/domain"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// overlapWriter fails the test if two writes for the same job run at once.
type overlapWriter struct {
	t      *testing.T
	active sync.Map
	writes atomic.Int32
	err    error
}

func (w *overlapWriter) SaveAssignments(_ context.Context, as []domain.Assignment) error {
	ids := map[string]struct{}{}
	for _, a := range as {
		ids[a.JobID] = struct{}{}
	}
	for id := range ids {
		if _, busy := w.active.LoadOrStore(id, true); busy {
			w.t.Errorf("concurrent write for job %s", id)
		}
	}
	time.Sleep(2 * time.Millisecond)
	for id := range ids {
		w.active.Delete(id)
	}
	w.writes.Add(1)
	return w.err
}

func TestAssignmentPersisterSerializesPerJob(t *testing.T) {
	w := &overlapWriter{t: t}
	p := NewAssignmentPersister(w)

	batch := []domain.Assignment{{JobID: "j2"}, {JobID: "j1"}, {JobID: "j2"}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Save(context.Background(), batch))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(8), w.writes.Load())
	assert.Empty(t, p.locks.locks)
}

func TestAssignmentPersisterWrapsErrors(t *testing.T) {
	w := &overlapWriter{t: t, err: errors.New("constraint violation")}
	p := NewAssignmentPersister(w)

	err := p.Save(context.Background(), []domain.Assignment{{JobID: "j1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save assignments")

	require.NoError(t, p.Save(context.Background(), nil))
	assert.Equal(t, int32(1), w.writes.Load())
}
