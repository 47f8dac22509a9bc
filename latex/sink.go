package latex

import "strings"

// sink is an append-only sequence of output fragments. Exactly one sink
// is active at a time: the main document sink, or a table's private
// sink while a table is being built. Citations use Checkpoint/Capture
// to slice out everything appended since a recorded position; line
// blocks use PopLast to drop the trailing line terminator.
type sink struct {
	frags []string
}

func newSink() *sink {
	return &sink{}
}

func (s *sink) append(text string) {
	s.frags = append(s.frags, text)
}

func (s *sink) len() int {
	return len(s.frags)
}

// checkpoint records the current fragment count for a later capture.
func (s *sink) checkpoint() int {
	return len(s.frags)
}

// capture removes every fragment appended since the checkpoint and
// returns their concatenation. A stale checkpoint past the current
// length captures nothing.
func (s *sink) capture(mark int) string {
	if mark < 0 {
		mark = 0
	}
	if mark >= len(s.frags) {
		return ""
	}
	captured := strings.Join(s.frags[mark:], "")
	s.frags = s.frags[:mark]
	return captured
}

// popLast removes the most recently appended fragment, if any.
func (s *sink) popLast() {
	if len(s.frags) > 0 {
		s.frags = s.frags[:len(s.frags)-1]
	}
}

// extend appends every fragment of other in order.
func (s *sink) extend(other *sink) {
	s.frags = append(s.frags, other.frags...)
}

func (s *sink) String() string {
	return strings.Join(s.frags, "")
}
