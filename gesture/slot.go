package gesture

import "sync"

// Slot is a latest-value mailbox between the detector feed goroutine
// and the frame tick. The producer overwrites, the consumer reads the
// newest frame exactly once as "fresh"; older frames are dropped, never
// queued. This keeps the tick synchronous: stale frames simply leave
// the previous control signal in effect.
type Slot struct {
	mu    sync.Mutex
	hands []Hand
	seq   uint64
	taken uint64
}

// Put stores a detection frame, replacing any unconsumed one.
func (s *Slot) Put(hands []Hand) {
	s.mu.Lock()
	s.hands = hands
	s.seq++
	s.mu.Unlock()
}

// Take returns the latest frame and whether it is fresh (not yet seen
// by a previous Take). The frame itself is always the newest delivered,
// so a consumer can also reuse it when stale.
func (s *Slot) Take() ([]Hand, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := s.seq != s.taken
	s.taken = s.seq
	return s.hands, fresh
}
