// Package trap tracks hits on the decoy payment-proof page.
package trap

import (
	"context"
	"sync"

	"scamtrap-lab/internal/domain/models"
)

// Store holds the most recent trap hit. The slot is last-write-wins:
// concurrent hits race and only the newest survives, which is an
// accepted approximation for a provenance hint, not an audit log.
type Store interface {
	Record(ctx context.Context, hit models.TrapHit) error
	Latest(ctx context.Context) (*models.TrapHit, error)
}

// MemoryStore keeps the slot in process memory. Lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	latest *models.TrapHit
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Record(_ context.Context, hit models.TrapHit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = &hit
	return nil
}

// Latest returns nil when no hit has been recorded yet.
func (s *MemoryStore) Latest(_ context.Context) (*models.TrapHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, nil
	}
	hit := *s.latest
	return &hit, nil
}
