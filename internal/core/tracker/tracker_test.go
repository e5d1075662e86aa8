package tracker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_QueryValue(t *testing.T) {
	tests := []struct {
		filter Filter
		want   string
	}{
		{FilterAll, ""},
		{"", ""},
		{FilterOpen, "open"},
		{FilterDone, "done"},
		{"archived", "archived"},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.QueryValue())
		})
	}
}

func TestFilter_Next(t *testing.T) {
	assert.Equal(t, FilterOpen, FilterAll.Next())
	assert.Equal(t, FilterDone, FilterOpen.Next())
	assert.Equal(t, FilterAll, FilterDone.Next())
	assert.Equal(t, FilterAll, Filter("archived").Next())
}

func TestStatus(t *testing.T) {
	assert.Equal(t, StatusDone, StatusFor(true))
	assert.Equal(t, StatusOpen, StatusFor(false))
}

func TestTimestamp_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"sqlite", `"2024-01-10 09:30:00"`, time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)},
		{"rfc3339", `"2024-01-10T09:30:00Z"`, time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)},
		{"iso without zone", `"2024-01-10T09:30:00"`, time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
		{"empty", `""`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %v want %v", ts.Time, tt.want)
		})
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestTranscript_DecodesBackendRow(t *testing.T) {
	var got []Transcript
	raw := `[{"id": 3, "created_at": "2024-01-10 09:30:00", "item_count": 2}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &got))

	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, 2, got[0].ItemCount)
	assert.Equal(t, 2024, got[0].CreatedAt.Year())
}

func TestActionItem_NullOptionalFields(t *testing.T) {
	var item ActionItem
	raw := `{"id": 7, "transcript_id": 3, "task": "Ship it", "owner": null, "due_date": null, "status": "open"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &item))

	assert.Empty(t, item.Owner)
	assert.Empty(t, item.DueDate)
	assert.False(t, item.Done())
}

func TestFieldsUpdate_OmitsEmptyOptionalFields(t *testing.T) {
	data, err := json.Marshal(FieldsUpdate("Draft agenda", "", ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"task": "Draft agenda"}`, string(data))

	data, err = json.Marshal(FieldsUpdate("Draft agenda", "Bob", "2024-01-10"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"task": "Draft agenda", "owner": "Bob", "due_date": "2024-01-10"}`, string(data))
}

func TestStatusUpdate(t *testing.T) {
	data, err := json.Marshal(StatusUpdate(StatusDone))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status": "done"}`, string(data))
	assert.True(t, ItemUpdate{}.IsEmpty())
	assert.False(t, StatusUpdate(StatusOpen).IsEmpty())
}

func TestBackendStatus_Healthy(t *testing.T) {
	assert.True(t, BackendStatus{Backend: "healthy", Database: "connected"}.Healthy())
	assert.False(t, BackendStatus{Backend: "healthy", Database: "error"}.Healthy())
}
