package breakout

// BallID identifies a ball for its whole life. Ids are never reused within
// a BallSet, so a stale id simply misses.
type BallID uint32

// BallSet is a slot map of balls: a dense slice for iteration plus an
// id-to-slot index for O(1) lookup and removal. Removal swaps the last ball
// into the freed slot, so slot order is not insertion order.
type BallSet struct {
	balls []Ball
	ids   []BallID
	slots map[BallID]int
	next  BallID
}

// NewBallSet creates an empty ball set.
func NewBallSet() *BallSet {
	return &BallSet{
		slots: make(map[BallID]int),
		next:  1,
	}
}

// Add inserts a ball and returns its fresh id.
func (s *BallSet) Add(b Ball) BallID {
	id := s.next
	s.next++
	s.slots[id] = len(s.balls)
	s.balls = append(s.balls, b)
	s.ids = append(s.ids, id)
	return id
}

// Get returns the ball with the given id. The pointer is valid until the
// next Add or Remove.
func (s *BallSet) Get(id BallID) (*Ball, bool) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, false
	}
	return &s.balls[slot], true
}

// Remove deletes a ball. Removing an unknown id is a no-op.
func (s *BallSet) Remove(id BallID) bool {
	slot, ok := s.slots[id]
	if !ok {
		return false
	}

	last := len(s.balls) - 1
	if slot != last {
		s.balls[slot] = s.balls[last]
		s.ids[slot] = s.ids[last]
		s.slots[s.ids[slot]] = slot
	}
	s.balls[last] = Ball{}
	s.balls = s.balls[:last]
	s.ids = s.ids[:last]
	delete(s.slots, id)
	return true
}

// Len returns the number of live balls.
func (s *BallSet) Len() int {
	return len(s.balls)
}

// At returns the ball in a dense slot, for iteration with Len.
func (s *BallSet) At(slot int) (BallID, *Ball) {
	return s.ids[slot], &s.balls[slot]
}

// IDs returns a copy of the live ids in slot order.
func (s *BallSet) IDs() []BallID {
	out := make([]BallID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Clear removes every ball. Ids keep increasing afterwards.
func (s *BallSet) Clear() {
	clear(s.balls)
	s.balls = s.balls[:0]
	s.ids = s.ids[:0]
	clear(s.slots)
}

// NextID returns the id the next Add will assign.
func (s *BallSet) NextID() BallID {
	return s.next
}
