package validate

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscript(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"sentence", "Alice will send the report by Friday", false},
		{"padded", "  notes  ", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only newlines and tabs", "\n\t\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Transcript(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "Transcript(%q) error = %v", tt.input, err)
		})
	}
}

func TestTask(t *testing.T) {
	assert.NoError(t, Task("Draft agenda"))
	assert.ErrorIs(t, Task(""), ErrTaskRequired)
	assert.ErrorIs(t, Task(" \t"), ErrTaskRequired)
}

func TestNewItem(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, NewItem(3, "Draft agenda"))
	})

	t.Run("missing transcript and task", func(t *testing.T) {
		err := NewItem(0, " ")

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Len(t, fieldErrs, 2)
	})

	t.Run("missing task only", func(t *testing.T) {
		err := NewItem(3, "")

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Len(t, fieldErrs, 1)
		assert.Equal(t, "task", fieldErrs[0].Field)
		assert.ErrorIs(t, fieldErrs[0].Err, ErrTaskRequired)
	})
}
