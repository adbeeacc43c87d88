package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mtlprog/catpage/internal/domain"
)

// MemoryStore keeps page state in process memory. It is used when no
// database is configured; state is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.PageState
	now      func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]domain.PageState),
		now:      time.Now,
	}
}

// Load returns the stored state for sessionID.
func (s *MemoryStore) Load(_ context.Context, sessionID string) (*domain.PageState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	state.Ratings = append([]int(nil), state.Ratings...)
	return &state, nil
}

// Put stores a complete state, replacing any previous value for its session.
func (s *MemoryStore) Put(_ context.Context, state *domain.PageState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *state
	stored.Ratings = append([]int(nil), state.Ratings...)
	stored.UpdatedAt = s.now()
	state.UpdatedAt = stored.UpdatedAt
	s.sessions[state.SessionID] = stored
	return nil
}

// SaveRating updates a single breed rating of an existing session.
func (s *MemoryStore) SaveRating(_ context.Context, sessionID string, index, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if index < 0 || index >= len(state.Ratings) {
		return fmt.Errorf("%w: index %d", domain.ErrBreedNotFound, index)
	}

	// Copy so a Load result handed out earlier is not mutated.
	state.Ratings = append([]int(nil), state.Ratings...)
	state.Ratings[index] = rating
	state.UpdatedAt = s.now()
	s.sessions[sessionID] = state
	return nil
}

// SaveSession updates the active tab and fun fact of an existing session,
// leaving its ratings alone.
func (s *MemoryStore) SaveSession(_ context.Context, sessionID string, tab domain.Tab, funFact string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	state.ActiveTab = tab
	state.FunFact = funFact
	state.UpdatedAt = s.now()
	s.sessions[sessionID] = state
	return nil
}

// ResetRatings sets every stored rating back to zero and returns how many
// sessions had at least one rating.
func (s *MemoryStore) ResetRatings(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, state := range s.sessions {
		if !hasRatings(state.Ratings) {
			continue
		}
		state.Ratings = make([]int, len(state.Ratings))
		s.sessions[id] = state
		n++
	}
	return n, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func hasRatings(ratings []int) bool {
	for _, r := range ratings {
		if r > 0 {
			return true
		}
	}
	return false
}
