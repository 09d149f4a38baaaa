package restapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/task"
)

const (
	tasksPath       = "/admin/tasks/all"
	focalTasksPath  = "/admin/tasks/all/focal_id/"
	assignmentsPath = "/admin/task/assignments"
)

type taskRepository struct {
	c *Client
}

func NewTaskRepository(c *Client) task.Repository {
	return &taskRepository{c: c}
}

func (repo *taskRepository) QueryTasks(ctx context.Context, cred auth.Credential, scope task.Scope) ([]task.Task, error) {
	req := request{resource: resourceTasks, method: http.MethodGet, path: tasksPath, query: make(url.Values)}
	switch {
	case scope.FocalID != "":
		req.path = focalTasksPath
		req.query.Set("user_id", scope.FocalID)
	case scope.Section != "":
		req.query.Set("section", scope.Section)
	}

	tasks := make([]task.Task, 0)
	if err := repo.c.do(ctx, cred, req, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *taskRepository) QueryAssignments(ctx context.Context, cred auth.Credential, taskID string) ([]task.Assignment, error) {
	req := request{
		resource: resourceAssignments,
		method:   http.MethodGet,
		path:     assignmentsPath,
		query:    url.Values{"task_id": {taskID}},
	}
	assignments := make([]task.Assignment, 0)
	if err := repo.c.do(ctx, cred, req, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}
