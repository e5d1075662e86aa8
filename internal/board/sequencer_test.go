package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencer(t *testing.T) {
	var s Sequencer

	a := s.Next(ResourceItems)
	b := s.Next(ResourceItems)
	h := s.Next(ResourceHistory)

	assert.False(t, s.Current(ResourceItems, a))
	assert.True(t, s.Current(ResourceItems, b))
	assert.True(t, s.Current(ResourceHistory, h), "resources are independent")
	assert.False(t, s.Current(ResourceSubmit, 0))
}
