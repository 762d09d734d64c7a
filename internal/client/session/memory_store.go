package session

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu  sync.RWMutex
	rec *Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rec == nil {
		return nil, ErrNotFound
	}
	cp := copyRecord(s.rec)
	return cp, nil
}

func (s *MemoryStore) Save(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = copyRecord(rec)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return nil
}

func copyRecord(rec *Record) *Record {
	cp := *rec
	if rec.UserInfo != nil {
		info := *rec.UserInfo
		cp.UserInfo = &info
	}
	return &cp
}
