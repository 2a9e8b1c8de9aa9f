package picker

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionTTL = 15 * time.Minute

// Sessions tracks one Picker per open create-order form. Sessions expire
// after being idle; expiry closes the picker and its event stream.
type Sessions struct {
	geocoder Geocoder
	cfg      Config

	mu   sync.Mutex
	byID map[string]*session
}

type session struct {
	picker *Picker
	expiry *time.Timer
}

func NewSessions(g Geocoder, cfg Config) *Sessions {
	return &Sessions{
		geocoder: g,
		cfg:      cfg,
		byID:     make(map[string]*session),
	}
}

func (s *Sessions) Create() (string, *Picker) {
	id := uuid.NewString()
	p := New(s.geocoder, s.cfg)

	s.mu.Lock()
	s.byID[id] = &session{
		picker: p,
		expiry: time.AfterFunc(sessionTTL, func() { s.Close(id) }),
	}
	s.mu.Unlock()
	return id, p
}

// Get returns the session's picker and pushes its expiry back.
func (s *Sessions) Get(id string) (*Picker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	sess.expiry.Reset(sessionTTL)
	return sess.picker, true
}

func (s *Sessions) Close(id string) {
	s.mu.Lock()
	sess, ok := s.byID[id]
	if ok {
		delete(s.byID, id)
	}
	s.mu.Unlock()

	if ok {
		sess.expiry.Stop()
		sess.picker.Close()
	}
}
