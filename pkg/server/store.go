package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Store keeps one wizard per session in memory.
type Store struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*wizard.Wizard
	newWizard func() *wizard.Wizard
	newID     func() uuid.UUID
}

// NewStore returns a store that builds wizards with factory. A nil factory
// uses wizard.New with no options.
func NewStore(factory func() *wizard.Wizard) *Store {
	if factory == nil {
		factory = func() *wizard.Wizard { return wizard.New() }
	}
	return &Store{
		sessions:  make(map[uuid.UUID]*wizard.Wizard),
		newWizard: factory,
		newID:     uuid.New,
	}
}

// Create starts a new session.
func (s *Store) Create() (uuid.UUID, *wizard.Wizard) {
	w := s.newWizard()
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	for {
		if _, taken := s.sessions[id]; !taken {
			break
		}
		id = s.newID()
	}
	s.sessions[id] = w
	return id, w
}

// Get returns the wizard for id.
func (s *Store) Get(id uuid.UUID) (*wizard.Wizard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.sessions[id]
	return w, ok
}

// Delete drops the session. Unknown ids are ignored.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Take removes the session and returns its wizard. Only one caller can take
// a given session; the others see ok == false.
func (s *Store) Take(id uuid.UUID) (*wizard.Wizard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	return w, ok
}

// Put stores w under id, replacing any existing session.
func (s *Store) Put(id uuid.UUID, w *wizard.Wizard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = w
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
