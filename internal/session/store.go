package session

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*userLock),
	}
}

func (s *Session) clone() Session {
	return Session{
		List:          s.List.Clone(),
		Editing:       s.Editing,
		ListMessageID: s.ListMessageID,
	}
}

// Get returns a copy of the user's session.
func (s *Store) Get(userID int64) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return sess.clone(), true
}

// Put creates or replaces the user's session.
func (s *Store) Put(userID int64, sess Session) {
	stored := sess.clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = &stored
}

// Update runs fn on the stored session. It returns false when the user has no session.
func (s *Store) Update(userID int64, fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return false
	}
	fn(sess)
	return true
}

// Delete removes the user's session and returns what it held.
func (s *Store) Delete(userID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, false
	}
	delete(s.sessions, userID)
	return *sess, true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// Lock blocks until no other operation holds the user's processing lock and
// returns the function that releases it. Different users never wait on each other.
func (s *Store) Lock(userID int64) (unlock func()) {
	s.locksMu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, userID)
		}
		s.locksMu.Unlock()
	}
}
