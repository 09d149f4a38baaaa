package task

import (
	"context"
	"time"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

// Repository is the backend holding tasks and their assignments.
type Repository interface {
	QueryTasks(ctx context.Context, cred auth.Credential, scope Scope) ([]Task, error)
	QueryAssignments(ctx context.Context, cred auth.Credential, taskID string) ([]Assignment, error)
}

// AssignmentFetcher retrieves the assignments of a task and fails open: any error
// (transport, status, decoding, timeout) is logged and reads as "no assignments known".
type AssignmentFetcher struct {
	repo    Repository
	timeout time.Duration
	logger  core.Logger
}

func NewAssignmentFetcher(repo Repository, timeout time.Duration, logger core.Logger) *AssignmentFetcher {
	return &AssignmentFetcher{repo: repo, timeout: timeout, logger: logger}
}

func (f *AssignmentFetcher) Fetch(ctx context.Context, cred auth.Credential, taskID string) []Assignment {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	assignments, err := f.repo.QueryAssignments(ctx, cred, taskID)
	if err != nil {
		f.logger.Warn("fetching assignments of task "+taskID, err)
		return []Assignment{}
	}
	if assignments == nil {
		return []Assignment{}
	}
	return assignments
}
