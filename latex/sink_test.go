package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinkCheckpointCapture(t *testing.T) {
	s := newSink()
	s.append("keep")
	mark := s.checkpoint()
	s.append("a")
	s.append("b")

	assert.Equal(t, "ab", s.capture(mark))
	assert.Equal(t, "keep", s.String())

	// A stale checkpoint past the current length captures nothing.
	assert.Equal(t, "", s.capture(10))
	assert.Equal(t, "keep", s.String())
}

func TestSinkPopLast(t *testing.T) {
	s := newSink()
	s.append("a")
	s.append("b")
	s.popLast()

	assert.Equal(t, "a", s.String())

	s.popLast()
	s.popLast() // no-op on empty
	assert.Equal(t, "", s.String())
}

func TestSinkExtend(t *testing.T) {
	outer := newSink()
	outer.append("head ")
	inner := newSink()
	inner.append("x")
	inner.append("y")

	outer.extend(inner)
	assert.Equal(t, "head xy", outer.String())
}
