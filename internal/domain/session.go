package domain

import "time"

// Session is the per-user conversation state. It is owned by exactly one
// turn at a time; the session store enforces that.
type Session struct {
	UserID             string
	Slots              Slots
	LastIntent         Intent
	LastQuestionKey    SlotKey // set only while a question is unanswered
	Page               int
	WaitingFor         WaitingFor
	SeenItemIDs        map[string]struct{}
	LastRecommendedIDs []string
	LastActivity       time.Time
}

// NewSession returns an idle session with empty slots.
func NewSession(userID string, now time.Time) *Session {
	return &Session{
		UserID:       userID,
		Page:         1,
		SeenItemIDs:  make(map[string]struct{}),
		LastActivity: now,
	}
}

// Reset clears every piece of conversation state, keeping the owner and
// the activity timestamp.
func (s *Session) Reset() {
	*s = *NewSession(s.UserID, s.LastActivity)
}

// IdleSince reports whether the session has been inactive for longer than
// ttl at time now. A non-positive ttl disables expiry.
func (s *Session) IdleSince(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 || s.LastActivity.IsZero() {
		return false
	}
	return now.Sub(s.LastActivity) > ttl
}

// HasRecommended reports whether a recommendation was shown since the
// last reset.
func (s *Session) HasRecommended() bool {
	return len(s.LastRecommendedIDs) > 0
}

func (s *Session) MarkSeen(id string) {
	if s.SeenItemIDs == nil {
		s.SeenItemIDs = make(map[string]struct{})
	}
	s.SeenItemIDs[id] = struct{}{}
}

func (s *Session) HasSeen(id string) bool {
	_, ok := s.SeenItemIDs[id]
	return ok
}

// ClearSeen forgets every shown item and rewinds pagination.
func (s *Session) ClearSeen() {
	s.SeenItemIDs = make(map[string]struct{})
	s.Page = 1
}
