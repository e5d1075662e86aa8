package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecent_EvictsOldest(t *testing.T) {
	r := NewRecent(2)

	r.Save(Notification{Message: "one"})
	r.Save(Notification{Message: "two"})
	id := r.Save(Notification{Message: "three"})

	got := r.List()
	require.Len(t, got, 2)
	assert.Equal(t, "three", got[0].Message)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "two", got[1].Message)
}

func TestRecent_Clear(t *testing.T) {
	r := NewRecent(0)
	r.Save(Notification{Message: "x"})
	r.Clear()

	assert.Empty(t, r.List())
}
