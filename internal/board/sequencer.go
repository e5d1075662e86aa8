package board

// Resource names a piece of state that is replaced by a backend response.
type Resource string

const (
	ResourceItems   Resource = "items"
	ResourceHistory Resource = "history"
	ResourceSubmit  Resource = "submit"
)

// Sequencer hands out increasing sequence numbers per resource so a
// response can be checked against the newest request issued for it.
// The zero value is ready to use.
type Sequencer struct {
	latest map[Resource]uint64
}

// Next records a new request for r and returns its sequence number.
func (s *Sequencer) Next(r Resource) uint64 {
	if s.latest == nil {
		s.latest = make(map[Resource]uint64)
	}
	s.latest[r]++
	return s.latest[r]
}

// Current reports whether seq is the newest request issued for r.
func (s *Sequencer) Current(r Resource, seq uint64) bool {
	return seq != 0 && s.latest[r] == seq
}
