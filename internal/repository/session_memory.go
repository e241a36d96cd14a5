package repository

import (
	"context"
	"sync"
	"time"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
	drepo "github.com/shashankreddy3k/inventory-forecast-app/internal/domain/repository"
)

type sessionEntry struct {
	dataset  *models.Dataset
	expireAt time.Time
}

func (e *sessionEntry) expired() bool {
	return time.Now().After(e.expireAt)
}

// MemorySessionStore keeps session datasets in process memory with TTL
// expiry. The default backend for single-instance deployments.
type MemorySessionStore struct {
	mu     sync.RWMutex
	data   map[string]*sessionEntry
	ttl    time.Duration
	ticker *time.Ticker
	done   chan struct{}
}

// NewMemorySessionStore creates an in-memory session store. Expired entries
// are swept in the background every cleanupInterval.
func NewMemorySessionStore(ttl, cleanupInterval time.Duration) *MemorySessionStore {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	s := &MemorySessionStore{
		data:   make(map[string]*sessionEntry),
		ttl:    ttl,
		ticker: time.NewTicker(cleanupInterval),
		done:   make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *MemorySessionStore) Put(_ context.Context, id string, ds *models.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[id] = &sessionEntry{
		dataset:  ds,
		expireAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*models.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.data[id]
	if !ok || entry.expired() {
		if ok {
			delete(s.data, id)
		}
		return nil, drepo.ErrSessionNotFound
	}

	// Sliding expiry: an active session stays alive.
	entry.expireAt = time.Now().Add(s.ttl)
	return entry.dataset, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, id)
	return nil
}

func (s *MemorySessionStore) sweep() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.mu.Lock()
			for id, entry := range s.data {
				if entry.expired() {
					delete(s.data, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close stops the background sweeper.
func (s *MemorySessionStore) Close() error {
	s.ticker.Stop()
	close(s.done)
	return nil
}

var _ drepo.SessionStore = (*MemorySessionStore)(nil)
