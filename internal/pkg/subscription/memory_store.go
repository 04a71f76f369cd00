package subscription

import (
	"context"
	"sync"

	"github.com/dentaqr/dashboard/app/models"
)

// MemoryStore is an in-memory SubscriptionStore and ChannelStore.
// Records are copied on the way in and out so callers cannot mutate its state.
type MemoryStore struct {
	mu       sync.RWMutex
	records  map[uint]models.Subscription
	channels map[uint]int64

	// RecordErr and CountErr, when set, are returned by the respective lookups.
	RecordErr error
	CountErr  error
	// CountCalls counts CountByClinic invocations.
	CountCalls int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:  make(map[uint]models.Subscription),
		channels: make(map[uint]int64),
	}
}

// Put stores a copy of rec under its clinic ID.
func (m *MemoryStore) Put(rec models.Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ClinicID] = rec
}

// SetChannelCount sets the channel count of a clinic.
func (m *MemoryStore) SetChannelCount(clinicID uint, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[clinicID] = n
}

func (m *MemoryStore) GetByClinic(ctx context.Context, clinicID uint) (*models.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.RecordErr != nil {
		return nil, m.RecordErr
	}
	rec, ok := m.records[clinicID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *MemoryStore) CountByClinic(ctx context.Context, clinicID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CountCalls++
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return m.channels[clinicID], nil
}
