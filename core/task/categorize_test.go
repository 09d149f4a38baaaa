package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketOf(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)
	past := ts("2025-01-10T09:00:00")
	future := ts("2025-02-10T09:00:00")

	tests := []struct {
		name string
		task Task
		want Bucket
	}{
		{name: "complete", task: Task{Status: StatusComplete, Deadline: future}, want: BucketHistory},
		{name: "complete past deadline", task: Task{Status: StatusComplete, Deadline: past}, want: BucketHistory},
		{name: "incomplete before deadline", task: Task{Status: StatusIncomplete, Deadline: future}, want: BucketIncomplete},
		{name: "ongoing past deadline", task: Task{Status: StatusOngoing, Deadline: past}, want: BucketIncomplete},
		{name: "ongoing", task: Task{Status: StatusOngoing, Deadline: future}, want: BucketOngoing},
		{name: "lowercase status", task: Task{Status: "complete"}, want: BucketHistory},
		{name: "missing status", task: Task{Deadline: future}, want: BucketOngoing},
		{name: "unknown deadline", task: Task{Status: StatusOngoing, Deadline: ts("someday")}, want: BucketOngoing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketOf(tt.task, now))
		})
	}
}

func TestCategorize_assignmentsDoNotPromote(t *testing.T) {
	now := time.Date(2025, 1, 10, 7, 0, 0, 0, time.Local)
	tsk := Task{ID: "1", Status: "ONGOING", Deadline: ts("2025-01-10T09:00:00")}
	tsk.Aggregate = AggregateAssignments([]Assignment{
		{SchoolName: "A", AccountName: "x", Status: StatusComplete, StatusUpdatedAt: ts("2025-01-10T08:00:00")},
	})

	assert.Equal(t, []string{"A"}, tsk.SchoolsRequired)
	assert.Equal(t, []string{"A"}, tsk.SchoolsSubmitted)
	assert.Equal(t, "2025-01-10T08:00:00", tsk.CompletedTime.Raw)
	assert.Equal(t, time.Local, tsk.CompletedTime.Time.Location())
	assert.False(t, IsLate(tsk))

	board := Categorize([]Task{tsk}, now)
	require.Len(t, board.Ongoing, 1)
	assert.Empty(t, board.Incomplete)
	assert.Empty(t, board.History)
	assert.Equal(t, Summary{Pending: 1}, board.Summary)
}

func TestCategorize_partition(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)
	tasks := []Task{
		{ID: "1", Status: StatusComplete, Office: "Planning"},
		{ID: "2", Status: StatusIncomplete, Deadline: ts("2025-03-01"), Office: "Dental"},
		{ID: "3", Status: StatusOngoing, Deadline: ts("2025-01-01")},
		{ID: "4", Status: StatusOngoing, Deadline: ts("2025-02-01"), Office: "Planning"},
		{ID: "5", Status: StatusOngoing, Deadline: ts("not a date")},
		{ID: "6", Status: StatusComplete, CompletionDate: ts("2025-01-02")},
	}

	board := Categorize(tasks, now)

	seen := make(map[string]int)
	for _, bucket := range [][]Task{board.Ongoing, board.Incomplete, board.History} {
		for _, tsk := range bucket {
			seen[tsk.ID.String()]++
		}
	}
	assert.Len(t, seen, len(tasks))
	for id, n := range seen {
		assert.Equal(t, 1, n, "task %s", id)
	}

	assert.Equal(t, Summary{Complete: 2, PastDue: 2, Pending: 2}, board.Summary)
	assert.Equal(t, []string{"Dental", "Planning"}, board.Offices)
	assert.Equal(t, board, Categorize(tasks, now), "categorizing twice gives the same board")
	assert.Equal(t, now, board.Now)
	assert.Equal(t, now, board.Sorted(SortToday, now.Add(time.Hour)).Now, "sorting keeps the categorization instant")
}

func TestCategorize_historyCompletionTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		task Task
		want string
	}{
		{
			name: "from assignments",
			task: Task{
				Status:         StatusComplete,
				CompletionDate: ts("2025-01-05"),
				Aggregate:      Aggregate{CompletedTime: ts("2025-01-04T10:00:00")},
			},
			want: "2025-01-04T10:00:00",
		},
		{
			name: "completion date",
			task: Task{Status: StatusComplete, CompletionDate: ts("2025-01-05"), ModifiedDate: ts("2025-01-06")},
			want: "2025-01-05",
		},
		{
			name: "modified date",
			task: Task{Status: StatusComplete, ModifiedDate: ts("2025-01-06"), CreationDate: ts("2025-01-01")},
			want: "2025-01-06",
		},
		{
			name: "creation date",
			task: Task{Status: StatusComplete, CreationDate: ts("2025-01-01")},
			want: "2025-01-01",
		},
		{name: "no date", task: Task{Status: StatusComplete}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := Categorize([]Task{tt.task}, now)
			require.Len(t, board.History, 1)
			assert.Equal(t, tt.want, board.History[0].CompletedTime.Raw)
		})
	}
}

func TestIndicatorOf(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)
	deadline := ts("2025-01-10T09:00:00")

	tests := []struct {
		name     string
		task     Task
		wantLate bool
		want     Indicator
	}{
		{name: "pending", task: Task{Status: StatusOngoing, Deadline: ts("2025-01-20")}, want: IndicatorPending},
		{name: "overdue", task: Task{Status: StatusOngoing, Deadline: deadline}, want: IndicatorOverdue},
		{
			name: "on time",
			task: Task{Status: StatusComplete, Deadline: deadline, Aggregate: Aggregate{CompletedTime: ts("2025-01-10T08:59:59"), Remarks: RemarksOnTime}},
			want: IndicatorOnTime,
		},
		{
			name:     "late by timestamp",
			task:     Task{Status: StatusComplete, Deadline: deadline, Aggregate: Aggregate{CompletedTime: ts("2025-01-10T09:00:01")}},
			wantLate: true,
			want:     IndicatorLate,
		},
		{
			name:     "late by remarks",
			task:     Task{Status: StatusComplete, Deadline: deadline, Aggregate: Aggregate{CompletedTime: ts("2025-01-09"), Remarks: RemarksLate}},
			wantLate: true,
			want:     IndicatorLate,
		},
		{
			name: "zoned completion compared in absolute time",
			task: Task{Status: StatusComplete, Deadline: ts("2025-01-10T09:00:00Z"), Aggregate: Aggregate{CompletedTime: ts("2025-01-10T10:00:00+02:00")}},
			want: IndicatorOnTime,
		},
		{
			name: "unknown completion is not late",
			task: Task{Status: StatusComplete, Deadline: deadline},
			want: IndicatorOnTime,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLate, IsLate(tt.task))
			assert.Equal(t, tt.want, IndicatorOf(tt.task, now))
		})
	}
}

func TestBoard_View(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)
	tsk := Task{ID: "7", Status: StatusOngoing, Deadline: ts("2025-01-20")}
	tsk.Aggregate = AggregateAssignments([]Assignment{
		done("A", "a", "2025-01-12"),
		pending("B", "b"),
		pending("C", "c"),
	})

	view := Categorize([]Task{tsk}, now).View(now)
	require.Len(t, view.Ongoing, 1)
	assert.Equal(t, Completion{Total: 3, Completed: 1, Percent: 33}, view.Ongoing[0].Completion)
	assert.Equal(t, IndicatorPending, view.Ongoing[0].Indicator)
	assert.NotNil(t, view.Incomplete)
	assert.NotNil(t, view.History)
}
