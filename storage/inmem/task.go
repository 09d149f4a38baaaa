package inmemdb

import (
	"context"
	"strings"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/task"
)

type taskRepository struct {
	db *taskTable
}

func NewTaskRepository(db *DB) task.Repository {
	return &taskRepository{db: db.task}
}

func (repo *taskRepository) QueryTasks(_ context.Context, _ auth.Credential, scope task.Scope) ([]task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tasks := make([]task.Task, 0, len(repo.db.table))
	for _, id := range sortedKeys(repo.db.table) {
		t := *repo.db.table[id]
		switch {
		case scope.FocalID != "":
			if t.CreatorID.String() != scope.FocalID {
				continue
			}
		case scope.Section != "":
			if !strings.EqualFold(t.Section, scope.Section) && !strings.EqualFold(t.SectionDesignation, scope.Section) {
				continue
			}
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (repo *taskRepository) QueryAssignments(_ context.Context, _ auth.Credential, taskID string) ([]task.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if _, ok := repo.db.table[taskID]; !ok {
		return nil, notFound("task")
	}
	assignments := make([]task.Assignment, len(repo.db.assignments[taskID]))
	copy(assignments, repo.db.assignments[taskID])
	return assignments, nil
}
