package session

import (
	"time"

	"github.com/patrickmn/go-cache"

	"station-advisor-backend/internal/advisor"
)

// Store keeps recent recommendation results keyed by conversation id so a
// follow-up request can replay them without recomputing.
type Store struct {
	cache *cache.Cache
}

// NewStore creates a session store whose entries expire after ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{cache: cache.New(ttl, 2*ttl)}
}

// Put stores the result for the given conversation, resetting its TTL.
func (s *Store) Put(conversationID string, result *advisor.Result) {
	s.cache.SetDefault(conversationID, result)
}

// Get returns the stored result, or false when the conversation is unknown
// or expired.
func (s *Store) Get(conversationID string) (*advisor.Result, bool) {
	v, ok := s.cache.Get(conversationID)
	if !ok {
		return nil, false
	}
	return v.(*advisor.Result), true
}
