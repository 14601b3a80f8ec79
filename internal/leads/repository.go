package leads

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for lead storage. Upsert is keyed on
// email: resubmitting replaces every field of the prior row
// (last-write-wins, no merge).
type Repository interface {
	Upsert(ctx context.Context, lead *Lead) error
	GetByEmail(ctx context.Context, email string) (*Lead, error)
	Ping(ctx context.Context) error
}

// InMemoryRepository stores leads in memory, keyed by email. Used in tests
// and for credential-less local runs.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]*Lead
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads: make(map[string]*Lead),
	}
}

// Upsert inserts or fully replaces the row for the lead's email. Identity
// and creation time survive a replace; everything else is overwritten.
func (r *InMemoryRepository) Upsert(ctx context.Context, lead *Lead) error {
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(lead.Email)
	stored := *lead
	if prev, ok := r.leads[key]; ok {
		stored.ID = prev.ID
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.ID = uuid.New()
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.leads[key] = &stored

	lead.ID = stored.ID
	lead.CreatedAt = stored.CreatedAt
	lead.UpdatedAt = stored.UpdatedAt
	return nil
}

// GetByEmail retrieves a lead by its email key.
func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[strings.ToLower(email)]
	if !ok {
		return nil, ErrLeadNotFound
	}
	copied := *lead
	return &copied, nil
}

// Ping always succeeds for the in-memory store.
func (r *InMemoryRepository) Ping(ctx context.Context) error {
	return nil
}

// Len reports the number of stored leads.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}
