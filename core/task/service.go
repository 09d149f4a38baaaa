package task

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

var (
	// errors
	ErrNotFound           = errors.New("task not found")
	ErrSectionNotAssigned = errors.New("your account has not been assigned to a section yet")
)

type (
	ServiceInterface interface {
		Board(ctx context.Context, cred auth.Credential, filter BoardFilter) (Board, error)
		Get(ctx context.Context, cred auth.Credential, id string) (Task, error)
		Now() time.Time
	}

	// BoardFilter selects the tasks of a board and how its buckets are ordered.
	BoardFilter struct {
		Sort    SortKey `query:"sort"`
		Section string  `query:"section"`
		FocalID string  `query:"focal_id"`
	}

	Options struct {
		Timeout time.Duration // per assignment fetch
		Workers int           // concurrent assignment fetches
	}

	Service struct {
		repo     Repository
		enricher *Enricher
		logger   core.Logger
		now      func() time.Time
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, logger core.Logger, opts Options) *Service {
	fetcher := NewAssignmentFetcher(repo, opts.Timeout, logger)
	return &Service{
		repo:     repo,
		enricher: NewEnricher(fetcher, opts.Workers),
		logger:   logger,
		now:      time.Now,
	}
}

func (f BoardFilter) Scope() Scope {
	return Scope{
		Section: core.CleanString(f.Section),
		FocalID: core.CleanString(f.FocalID),
	}
}

func (svc *Service) Now() time.Time { return svc.now() }

func (svc *Service) checkAccess(cred auth.Credential) error {
	if cred.IsOfficeWithoutSection() {
		return ErrSectionNotAssigned
	}
	return nil
}

// Board lists, enriches, categorizes and sorts the tasks in scope. Failing to list the tasks
// is the only error surfaced; assignment failures only understate completion.
func (svc *Service) Board(ctx context.Context, cred auth.Credential, filter BoardFilter) (Board, error) {
	if err := svc.checkAccess(cred); err != nil {
		return Board{}, err
	}

	tasks, err := svc.repo.QueryTasks(ctx, cred, filter.Scope())
	if err != nil {
		return Board{}, core.NewUnavailableError("tasks", err)
	}

	for i := range tasks {
		tasks[i] = tasks[i].Normalize()
	}
	enriched := svc.enricher.Enrich(ctx, cred, GroupBySection(tasks))
	now := svc.now()
	board := Categorize(Flatten(enriched), now)
	return board.Sorted(filter.Sort, now), nil
}

func (svc *Service) Get(ctx context.Context, cred auth.Credential, id string) (Task, error) {
	if err := svc.checkAccess(cred); err != nil {
		return Task{}, err
	}

	tasks, err := svc.repo.QueryTasks(ctx, cred, Scope{})
	if err != nil {
		return Task{}, core.NewUnavailableError("task", err)
	}
	for _, t := range tasks {
		if t.ID.String() == id {
			t = svc.enricher.EnrichOne(ctx, cred, t.Normalize())
			if BucketOf(t, svc.now()) == BucketHistory {
				t.CompletedTime = completionTime(t)
			}
			return t, nil
		}
	}
	return Task{}, ErrNotFound
}
