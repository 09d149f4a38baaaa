package task

import (
	"sort"
	"time"
)

type Bucket string

const (
	BucketOngoing    Bucket = "ongoing"
	BucketIncomplete Bucket = "incomplete"
	BucketHistory    Bucket = "history"
)

// Indicator is the display state of a task.
type Indicator string

const (
	IndicatorPending Indicator = "pending"
	IndicatorOverdue Indicator = "overdue"
	IndicatorOnTime  Indicator = "on_time"
	IndicatorLate    Indicator = "late"
)

type Summary struct {
	Complete int `json:"complete"`
	PastDue  int `json:"past_due"`
	Pending  int `json:"pending"`
}

// Board partitions tasks in three disjoint buckets. Now is the instant the tasks were
// categorized against, views of the board must use it too.
type Board struct {
	Ongoing    []Task    `json:"ongoing"`
	Incomplete []Task    `json:"incomplete"`
	History    []Task    `json:"history"`
	Summary    Summary   `json:"summary"`
	Offices    []string  `json:"offices"`
	Now        time.Time `json:"-"`
}

// BucketOf classifies a task. The task status is authoritative: completion of every
// assignment does not move an ONGOING task to history.
func BucketOf(t Task, now time.Time) Bucket {
	switch t.Status.Normalize() {
	case StatusComplete:
		return BucketHistory
	case StatusIncomplete:
		return BucketIncomplete
	}
	if t.Deadline.Valid() && t.Deadline.Time.Before(now) {
		return BucketIncomplete
	}
	return BucketOngoing
}

// Categorize is pure: tasks are copied into the buckets, history entries get their completion
// time resolved.
func Categorize(tasks []Task, now time.Time) Board {
	b := Board{
		Ongoing:    []Task{},
		Incomplete: []Task{},
		History:    []Task{},
		Offices:    []string{},
		Now:        now,
	}
	offices := make(map[string]bool)
	for _, t := range tasks {
		switch BucketOf(t, now) {
		case BucketHistory:
			t.CompletedTime = completionTime(t)
			b.History = append(b.History, t)
		case BucketIncomplete:
			b.Incomplete = append(b.Incomplete, t)
		default:
			b.Ongoing = append(b.Ongoing, t)
		}
		if t.Office != "" && !offices[t.Office] {
			offices[t.Office] = true
			b.Offices = append(b.Offices, t.Office)
		}
	}
	sort.Strings(b.Offices)
	b.Summary = Summary{
		Complete: len(b.History),
		PastDue:  len(b.Incomplete),
		Pending:  len(b.Ongoing),
	}
	return b
}

// completionTime prefers what the assignments say, then the task's own dates.
func completionTime(t Task) Timestamp {
	for _, ts := range []Timestamp{t.CompletedTime, t.CompletionDate, t.ModifiedDate, t.CreationDate} {
		if !ts.IsNull() {
			return ts
		}
	}
	return Timestamp{}
}

// IsLate reports a late turn-in. Explicit remarks win over the timestamp comparison.
func IsLate(t Task) bool {
	if t.Remarks == RemarksLate {
		return true
	}
	return t.CompletedTime.After(t.Deadline)
}

func IndicatorOf(t Task, now time.Time) Indicator {
	if !t.IsComplete() {
		if t.Deadline.Valid() && now.After(t.Deadline.Time) {
			return IndicatorOverdue
		}
		return IndicatorPending
	}
	if IsLate(t) {
		return IndicatorLate
	}
	return IndicatorOnTime
}

// Sorted returns a copy of the board with every bucket sorted or filtered by key.
func (b Board) Sorted(key SortKey, now time.Time) Board {
	b.Ongoing = Sort(b.Ongoing, key, now)
	b.Incomplete = Sort(b.Incomplete, key, now)
	b.History = Sort(b.History, key, now)
	return b
}

// View is a task with its derived display fields.
type View struct {
	Task
	Late       bool       `json:"late"`
	Indicator  Indicator  `json:"indicator"`
	Completion Completion `json:"completion"`
}

func NewView(t Task, now time.Time) View {
	return View{
		Task:       t,
		Late:       IsLate(t),
		Indicator:  IndicatorOf(t, now),
		Completion: t.Completion(),
	}
}

type BoardView struct {
	Ongoing    []View   `json:"ongoing"`
	Incomplete []View   `json:"incomplete"`
	History    []View   `json:"history"`
	Summary    Summary  `json:"summary"`
	Offices    []string `json:"offices"`
}

func (b Board) View(now time.Time) BoardView {
	views := func(tasks []Task) []View {
		out := make([]View, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, NewView(t, now))
		}
		return out
	}
	return BoardView{
		Ongoing:    views(b.Ongoing),
		Incomplete: views(b.Incomplete),
		History:    views(b.History),
		Summary:    b.Summary,
		Offices:    b.Offices,
	}
}
