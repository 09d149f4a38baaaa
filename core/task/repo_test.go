package task

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

var errBackendDown = errors.New("backend down")

type repoMock struct {
	tasks       []Task
	tasksErr    error
	assignments map[string][]Assignment
	failing     map[string]bool
	delays      map[string]time.Duration

	mu       sync.Mutex
	scopes   []Scope
	inFlight int32
	maxSeen  int32
}

func (r *repoMock) QueryTasks(_ context.Context, _ auth.Credential, scope Scope) ([]Task, error) {
	r.mu.Lock()
	r.scopes = append(r.scopes, scope)
	r.mu.Unlock()
	if r.tasksErr != nil {
		return nil, r.tasksErr
	}
	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out, nil
}

func (r *repoMock) QueryAssignments(ctx context.Context, _ auth.Credential, taskID string) ([]Assignment, error) {
	n := atomic.AddInt32(&r.inFlight, 1)
	defer atomic.AddInt32(&r.inFlight, -1)
	for {
		max := atomic.LoadInt32(&r.maxSeen)
		if n <= max || atomic.CompareAndSwapInt32(&r.maxSeen, max, n) {
			break
		}
	}

	if d := r.delays[taskID]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.failing[taskID] {
		return nil, errBackendDown
	}
	return r.assignments[taskID], nil
}

type logMock struct {
	mu    sync.Mutex
	warns []string
}

func (l *logMock) Debug(string, ...interface{}) {}
func (l *logMock) Info(string, ...interface{})  {}
func (l *logMock) Error(string, ...interface{}) {}
func (l *logMock) Fatal(string, ...interface{}) {}

func (l *logMock) Warn(msg string, _ ...interface{}) {
	l.mu.Lock()
	l.warns = append(l.warns, msg)
	l.mu.Unlock()
}

func coreID(id string) core.FlexString { return core.FlexString(id) }

func ts(raw string) Timestamp { return ParseTimestamp(raw) }

func done(school, account, at string, remarks ...string) Assignment {
	a := Assignment{SchoolName: school, AccountName: account, Status: StatusComplete, StatusUpdatedAt: ts(at)}
	if len(remarks) > 0 {
		a.Remarks.SetValid(remarks[0])
	}
	return a
}

func pending(school, account string) Assignment {
	return Assignment{SchoolName: school, AccountName: account, Status: StatusOngoing}
}
