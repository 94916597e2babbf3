package service

import "sync"

// slotLocks hands out one mutex per slot key so that concurrent
// admission attempts for the same (date, time) serialize, while
// attempts for different slots proceed in parallel. Entries are never
// removed; the table is bounded by the number of distinct slots ever
// booked.
type slotLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSlotLocks() *slotLocks {
	return &slotLocks{locks: make(map[string]*sync.Mutex)}
}

func (s *slotLocks) get(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}
