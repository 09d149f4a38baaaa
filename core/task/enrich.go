package task

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

// Enricher merges the aggregated assignments onto tasks. Fetches run concurrently, at most
// `workers` at a time, and are joined back by task ID.
type Enricher struct {
	fetcher *AssignmentFetcher
	workers int
}

func NewEnricher(fetcher *AssignmentFetcher, workers int) *Enricher {
	return &Enricher{fetcher: fetcher, workers: workers}
}

// Enrich returns a new map of the same shape. No task is ever dropped: a task whose
// assignments could not be fetched carries the empty aggregate.
func (e *Enricher) Enrich(ctx context.Context, cred auth.Credential, grouped map[string][]Task) map[string][]Task {
	aggs := e.aggregate(ctx, cred, distinctIDs(grouped))

	out := make(map[string][]Task, len(grouped))
	for section, tasks := range grouped {
		enriched := make([]Task, len(tasks))
		for i, t := range tasks {
			if agg, ok := aggs[t.ID.String()]; ok {
				t.Aggregate = agg
			} else {
				t.Aggregate = AggregateAssignments(nil)
			}
			enriched[i] = t
		}
		out[section] = enriched
	}
	return out
}

func (e *Enricher) EnrichOne(ctx context.Context, cred auth.Credential, t Task) Task {
	if t.ID == "" {
		t.Aggregate = AggregateAssignments(nil)
		return t
	}
	t.Aggregate = AggregateAssignments(e.fetcher.Fetch(ctx, cred, t.ID.String()))
	return t
}

func (e *Enricher) aggregate(ctx context.Context, cred auth.Credential, ids []string) map[string]Aggregate {
	var (
		mu   sync.Mutex
		g    errgroup.Group
		aggs = make(map[string]Aggregate, len(ids))
	)
	if e.workers > 0 {
		g.SetLimit(e.workers)
	}
	for _, id := range ids {
		id := id
		g.Go(func() error {
			agg := AggregateAssignments(e.fetcher.Fetch(ctx, cred, id))
			mu.Lock()
			aggs[id] = agg
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // fetches fail open, nothing to report
	return aggs
}

func distinctIDs(grouped map[string][]Task) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, tasks := range grouped {
		for _, t := range tasks {
			id := t.ID.String()
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// GroupBySection files tasks under their section, DefaultSection when they have none.
func GroupBySection(tasks []Task) map[string][]Task {
	grouped := make(map[string][]Task)
	for _, t := range tasks {
		section := t.Section
		if section == "" {
			section = DefaultSection
		}
		grouped[section] = append(grouped[section], t)
	}
	return grouped
}

// Flatten lists the tasks of every section, sections in name order.
func Flatten(grouped map[string][]Task) []Task {
	sections := make([]string, 0, len(grouped))
	for section := range grouped {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	var tasks []Task
	for _, section := range sections {
		tasks = append(tasks, grouped[section]...)
	}
	return tasks
}
