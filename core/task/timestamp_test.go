package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantValid bool
		wantTime  time.Time
	}{
		{name: "empty", raw: ""},
		{name: "garbage", raw: "next tuesday"},
		{name: "naive is local", raw: "2025-01-10T08:00:00", wantValid: true, wantTime: time.Date(2025, 1, 10, 8, 0, 0, 0, time.Local)},
		{name: "naive with space", raw: "2025-01-10 08:00:00", wantValid: true, wantTime: time.Date(2025, 1, 10, 8, 0, 0, 0, time.Local)},
		{name: "naive minutes", raw: "2025-01-10T08:00", wantValid: true, wantTime: time.Date(2025, 1, 10, 8, 0, 0, 0, time.Local)},
		{name: "date only", raw: "2025-01-10", wantValid: true, wantTime: time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local)},
		{name: "utc", raw: "2025-01-10T08:00:00Z", wantValid: true, wantTime: time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)},
		{name: "fractional utc", raw: "2025-01-10T08:00:00.123456Z", wantValid: true, wantTime: time.Date(2025, 1, 10, 8, 0, 0, 123456000, time.UTC)},
		{name: "offset", raw: "2025-01-10T16:00:00+08:00", wantValid: true, wantTime: time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(tt.raw)
			assert.Equal(t, tt.raw, got.Raw)
			require.Equal(t, tt.wantValid, got.Valid())
			if tt.wantValid {
				assert.True(t, tt.wantTime.Equal(got.Time), "got %v, want %v", got.Time, tt.wantTime)
			}
		})
	}
}

func TestTimestamp_JSON(t *testing.T) {
	var tsk Task
	body := `{"task_id": 12, "title": " Report ", "deadline": "2025-01-10T09:00:00", "creation_date": null,
		"completion_date": 20250110, "links": "https://drive.example/doc", "task_status": "complete"}`
	require.NoError(t, json.Unmarshal([]byte(body), &tsk))

	assert.Equal(t, "12", tsk.ID.String())
	assert.True(t, tsk.Deadline.Valid())
	assert.True(t, tsk.CreationDate.IsNull())
	assert.False(t, tsk.CompletionDate.Valid())
	assert.Equal(t, Links{"https://drive.example/doc"}, tsk.Links)

	tsk = tsk.Normalize()
	assert.Equal(t, "Report", tsk.Title)
	assert.Equal(t, DefaultSection, tsk.Section)
	assert.Equal(t, StatusComplete, tsk.Status)
	assert.Equal(t, []string{}, tsk.SchoolsRequired)
	assert.Equal(t, RemarksPending, tsk.Remarks)

	b, err := json.Marshal(tsk)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "2025-01-10T09:00:00", out["deadline"])
	assert.Nil(t, out["creation_date"])
	assert.Nil(t, out["completedTime"])
}
