package task

import (
	"sort"
	"strings"
	"time"
)

type SortKey string

const (
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
	SortToday  SortKey = "today"
	SortWeek   SortKey = "week"
	SortMonth  SortKey = "month"
)

var SortKeys = []SortKey{SortNewest, SortOldest, SortToday, SortWeek, SortMonth}

func ParseSortKey(s string) SortKey {
	return SortKey(strings.ToLower(strings.TrimSpace(s)))
}

// Sort orders or filters tasks by key and never modifies its input. Tasks with an unknown
// creation date sort last; tasks with an unknown deadline are left out of date filters.
// An unknown key returns tasks as is.
func Sort(tasks []Task, key SortKey, now time.Time) []Task {
	switch key {
	case SortNewest:
		return sortByCreation(tasks, func(a, b time.Time) bool { return a.After(b) })
	case SortOldest:
		return sortByCreation(tasks, func(a, b time.Time) bool { return a.Before(b) })
	case SortToday:
		start := startOfDay(now)
		return filterByDeadline(tasks, start, start.AddDate(0, 0, 1))
	case SortWeek:
		start := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
		return filterByDeadline(tasks, start, start.AddDate(0, 0, 7))
	case SortMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return filterByDeadline(tasks, start, start.AddDate(0, 1, 0))
	default:
		return tasks
	}
}

func sortByCreation(tasks []Task, less func(a, b time.Time) bool) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CreationDate, out[j].CreationDate
		switch {
		case !a.Valid():
			return false
		case !b.Valid():
			return true
		default:
			return less(a.Time, b.Time)
		}
	})
	return out
}

// filterByDeadline keeps tasks due within [from, to).
func filterByDeadline(tasks []Task, from, to time.Time) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Deadline.Valid() {
			continue
		}
		if d := t.Deadline.Time; !d.Before(from) && d.Before(to) {
			out = append(out, t)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
