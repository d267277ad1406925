// Package iosched implements the disk I/O schedulers that are an
// out-of-scope collaborator of the paging simulator (spec.md §1):
// FIFO, SSTF, LOOK, CLOOK, and FLOOK over a queue of pending track
// requests. It shares no data model with pkg/mmu and is kept
// intentionally thin relative to it.
package iosched

import "errors"

// ErrUnknownScheduler indicates an unrecognized -s algorithm letter.
var ErrUnknownScheduler = errors.New("iosched: unknown scheduler letter")

// Request is one pending I/O operation, queued by arrival order and
// targeting a disk track.
type Request struct {
	ID       int
	Track    int
	Arrival  int
	Start    int
	Finish   int
}

// Scheduler selects the next request to service given the current
// head position. Next returns false if the queue is empty.
type Scheduler interface {
	Add(req Request)
	Next(headTrack int) (Request, bool)
	Len() int
}

// New constructs the scheduler named by the -s flag's single-letter
// code: n (FIFO), s (SSTF), l (LOOK), c (CLOOK), f (FLOOK).
func New(letter byte) (Scheduler, error) {
	switch letter {
	case 'n':
		return &fifoSched{}, nil
	case 's':
		return &sstfSched{}, nil
	case 'l':
		return &lookSched{dir: 1}, nil
	case 'c':
		return &clookSched{}, nil
	case 'f':
		return &flookSched{add: &fifoSched{}}, nil
	default:
		return nil, ErrUnknownScheduler
	}
}

// fifoSched services requests strictly in arrival order.
type fifoSched struct {
	q []Request
}

var _ Scheduler = (*fifoSched)(nil)

func (s *fifoSched) Add(r Request) { s.q = append(s.q, r) }
func (s *fifoSched) Len() int      { return len(s.q) }
func (s *fifoSched) Next(int) (Request, bool) {
	if len(s.q) == 0 {
		return Request{}, false
	}
	r := s.q[0]
	s.q = s.q[1:]
	return r, true
}

// sstfSched always services the request whose track is closest to
// the current head position (shortest seek time first).
type sstfSched struct {
	q []Request
}

var _ Scheduler = (*sstfSched)(nil)

func (s *sstfSched) Add(r Request) { s.q = append(s.q, r) }
func (s *sstfSched) Len() int      { return len(s.q) }
func (s *sstfSched) Next(head int) (Request, bool) {
	if len(s.q) == 0 {
		return Request{}, false
	}
	best := 0
	for i := 1; i < len(s.q); i++ {
		if dist(s.q[i].Track, head) < dist(s.q[best].Track, head) {
			best = i
		}
	}
	r := s.q[best]
	s.q = append(s.q[:best], s.q[best+1:]...)
	return r, true
}

func dist(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}

// lookSched sweeps in one direction servicing every pending request
// along the way, reversing at the last request in that direction
// instead of running to the end of the disk (unlike a full elevator
// scan).
type lookSched struct {
	q   []Request
	dir int // +1 or -1
}

var _ Scheduler = (*lookSched)(nil)

func (s *lookSched) Add(r Request) { s.q = append(s.q, r) }
func (s *lookSched) Len() int      { return len(s.q) }
func (s *lookSched) Next(head int) (Request, bool) {
	if len(s.q) == 0 {
		return Request{}, false
	}
	idx, ok := s.nearestInDirection(head, s.dir)
	if !ok {
		s.dir = -s.dir
		idx, ok = s.nearestInDirection(head, s.dir)
		if !ok {
			return Request{}, false
		}
	}
	r := s.q[idx]
	s.q = append(s.q[:idx], s.q[idx+1:]...)
	return r, true
}

func (s *lookSched) nearestInDirection(head, dir int) (int, bool) {
	best := -1
	for i, r := range s.q {
		if dir > 0 && r.Track < head {
			continue
		}
		if dir < 0 && r.Track > head {
			continue
		}
		if best == -1 || dist(r.Track, head) < dist(s.q[best].Track, head) {
			best = i
		}
	}
	return best, best != -1
}

// clookSched sweeps in one direction only, jumping back to the
// lowest pending track (rather than reversing) once nothing remains
// ahead of the head.
type clookSched struct {
	q []Request
}

var _ Scheduler = (*clookSched)(nil)

func (s *clookSched) Add(r Request) { s.q = append(s.q, r) }
func (s *clookSched) Len() int      { return len(s.q) }
func (s *clookSched) Next(head int) (Request, bool) {
	if len(s.q) == 0 {
		return Request{}, false
	}
	best := -1
	for i, r := range s.q {
		if r.Track >= head && (best == -1 || r.Track < s.q[best].Track) {
			best = i
		}
	}
	if best == -1 {
		// nothing ahead: wrap to the lowest pending track.
		for i, r := range s.q {
			if best == -1 || r.Track < s.q[best].Track {
				best = i
			}
		}
	}
	r := s.q[best]
	s.q = append(s.q[:best], s.q[best+1:]...)
	return r, true
}

// flookSched alternates between two queues: requests Added arrive
// into the FIFO "add" queue while the "active" queue (built from a
// prior batch) is drained via LOOK order; the two swap once the
// active queue empties. It is grounded on the same look ordering as
// lookSched, wrapping a fresh look scan over whatever has
// accumulated each time the active queue runs dry.
type flookSched struct {
	add    *fifoSched
	active *lookSched
}

var _ Scheduler = (*flookSched)(nil)

func (s *flookSched) Add(r Request) { s.add.Add(r) }
func (s *flookSched) Len() int {
	n := s.add.Len()
	if s.active != nil {
		n += s.active.Len()
	}
	return n
}
func (s *flookSched) Next(head int) (Request, bool) {
	if s.active == nil || s.active.Len() == 0 {
		s.active = &lookSched{dir: 1}
		for s.add.Len() > 0 {
			r, _ := s.add.Next(head)
			s.active.Add(r)
		}
	}
	return s.active.Next(head)
}
