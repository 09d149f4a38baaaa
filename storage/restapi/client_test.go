package restapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/account"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/task"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

var cred = auth.Credential{Token: "upstream-token", Email: "admin@deped.test", Role: auth.RoleAdmin}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(&core.Config{
		Backend: core.BackendConfig{BaseURL: srv.URL + "/", Timeout: time.Second},
		Breaker: core.BreakerConfig{MaxRequests: 1, Timeout: time.Minute, Failures: 2},
	}, nopLogger{})
}

type capture struct {
	method string
	path   string
	query  string
	auth   string
	reqID  string
	body   map[string]string
}

// recorder replies with status and payload, and records the last request.
func recorder(last *capture, status int, payload string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*last = capture{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			reqID:  r.Header.Get(requestIDHeader),
		}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &last.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, payload)
	}
}

func TestTaskRepository_QueryTasks(t *testing.T) {
	tests := []struct {
		name      string
		scope     task.Scope
		wantPath  string
		wantQuery string
	}{
		{name: "all", wantPath: "/admin/tasks/all"},
		{name: "section", scope: task.Scope{Section: "Dental"}, wantPath: "/admin/tasks/all", wantQuery: "section=Dental"},
		{name: "focal", scope: task.Scope{FocalID: "7", Section: "Dental"}, wantPath: "/admin/tasks/all/focal_id/", wantQuery: "user_id=7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var last capture
			payload := `[{"task_id": 1, "title": "Report", "deadline": "2025-01-10T09:00:00", "task_status": "ONGOING"}]`
			repo := NewTaskRepository(newTestClient(t, recorder(&last, http.StatusOK, payload)))

			ctx := core.WithRequestID(context.Background(), "req-1")
			tasks, err := repo.QueryTasks(ctx, cred, tt.scope)
			require.NoError(t, err)
			require.Len(t, tasks, 1)
			assert.Equal(t, "1", tasks[0].ID.String())
			assert.Equal(t, tt.wantPath, last.path)
			assert.Equal(t, tt.wantQuery, last.query)
			assert.Equal(t, "Bearer upstream-token", last.auth)
			assert.Equal(t, "req-1", last.reqID)
		})
	}
}

func TestTaskRepository_QueryAssignments(t *testing.T) {
	var last capture
	payload := `[{"school_name": "A", "account_name": "x", "status": "COMPLETE", "status_updated_at": "2025-01-10T08:00:00", "remarks": null}]`
	repo := NewTaskRepository(newTestClient(t, recorder(&last, http.StatusOK, payload)))

	assignments, err := repo.QueryAssignments(context.Background(), cred, "12")
	require.NoError(t, err)
	assert.Equal(t, "task_id=12", last.query)
	require.Len(t, assignments, 1)
	assert.True(t, assignments[0].IsComplete())
	assert.False(t, assignments[0].Remarks.Valid)
}

func TestClient_errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
		wantMsg string
	}{
		{name: "message", status: http.StatusNotFound, payload: `{"message": "Task not found"}`, wantMsg: "Task not found"},
		{name: "detail", status: http.StatusForbidden, payload: `{"detail": "Not authorized"}`, wantMsg: "Not authorized"},
		{name: "detail list", status: http.StatusUnprocessableEntity, payload: `{"detail": [{"msg": "bad"}]}`, wantMsg: `[{"msg": "bad"}]`},
		{name: "plain text", status: http.StatusBadGateway, payload: "bad gateway", wantMsg: "bad gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var last capture
			repo := NewTaskRepository(newTestClient(t, recorder(&last, tt.status, tt.payload)))

			_, err := repo.QueryAssignments(context.Background(), cred, "1")
			var upErr *core.UpstreamError
			require.True(t, errors.As(err, &upErr), "unexpected error %v", err)
			assert.Equal(t, tt.status, upErr.Status)
			assert.Equal(t, tt.wantMsg, upErr.Message)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		var last capture
		repo := NewTaskRepository(newTestClient(t, recorder(&last, http.StatusOK, `{"oops"`)))
		_, err := repo.QueryTasks(context.Background(), cred, task.Scope{})
		assert.Error(t, err)
	})
}

func TestClient_breaker(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Query().Get("task_id") == "missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})
	repo := NewTaskRepository(c)
	ctx := context.Background()

	// client errors do not count
	for i := 0; i < 3; i++ {
		_, err := repo.QueryAssignments(ctx, cred, "missing")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, c.breaker(resourceAssignments).State())

	for i := 0; i < 2; i++ {
		_, err := repo.QueryAssignments(ctx, cred, "1")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, c.breaker(resourceAssignments).State())

	_, err := repo.QueryAssignments(ctx, cred, "1")
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestClient_breakerPerResource(t *testing.T) {
	var taskCalls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/admin/task/assignments":
			w.WriteHeader(http.StatusInternalServerError)
		case "/admin/tasks/all":
			atomic.AddInt32(&taskCalls, 1)
			_, _ = io.WriteString(w, `[{"task_id": 1, "title": "Report", "task_status": "ONGOING"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	repo := NewTaskRepository(c)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.QueryAssignments(ctx, cred, "1")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, c.breaker(resourceAssignments).State())

	tasks, err := repo.QueryTasks(ctx, cred, task.Scope{})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&taskCalls))
	assert.Equal(t, gobreaker.StateClosed, c.breaker(resourceTasks).State())
	assert.Equal(t, gobreaker.StateClosed, c.breaker(resourceAccounts).State())
	assert.Equal(t, gobreaker.StateClosed, c.breaker(resourceAuth).State())
}

func TestTaskService_failingAssignments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/admin/task/assignments":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"detail": "database is down"}`)
		case "/admin/tasks/all":
			_, _ = io.WriteString(w, `[
				{"task_id": 1, "title": "Report", "task_status": "ONGOING"},
				{"task_id": 2, "title": "Inventory", "task_status": "ONGOING", "deadline": "2999-01-10T09:00:00"},
				{"task_id": 3, "title": "Survey", "task_status": "ONGOING", "section": "Dental"}
			]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	svc := task.NewService(NewTaskRepository(c), nopLogger{}, task.Options{Timeout: time.Second, Workers: 1})

	// the assignments breaker opens on the first board, later boards must still be served
	for i := 0; i < 4; i++ {
		board, err := svc.Board(context.Background(), cred, task.BoardFilter{})
		require.NoError(t, err, "board %d", i)
		require.Len(t, board.Ongoing, 3, "board %d", i)
		for _, tk := range board.Ongoing {
			assert.Equal(t, task.RemarksPending, tk.Aggregate.Remarks)
			assert.Empty(t, tk.Aggregate.SchoolsRequired)
		}
	}
	assert.Equal(t, gobreaker.StateOpen, c.breaker(resourceAssignments).State())
	assert.Equal(t, gobreaker.StateClosed, c.breaker(resourceTasks).State())
}

func TestAccountRepository(t *testing.T) {
	var last capture
	c := newTestClient(t, recorder(&last, http.StatusOK, `[{"user_id": 3, "email": "s@deped.test"}]`))
	repo := NewAccountRepository(c)
	ctx := context.Background()

	accounts, err := repo.QueryAccounts(ctx, cred, account.TypeSchool, false)
	require.NoError(t, err)
	assert.Equal(t, "/admin/school/account/request", last.path)
	require.Len(t, accounts, 1)
	assert.Equal(t, "3", accounts[0].ID())

	_, err = repo.QueryAccounts(ctx, cred, account.TypeFocal, true)
	require.NoError(t, err)
	assert.Equal(t, "/admin/focal/verified/accounts", last.path)

	_, err = repo.QueryAccounts(ctx, cred, account.TypeAll, true)
	assert.Error(t, err)

	tests := []struct {
		name       string
		call       func() error
		wantMethod string
		wantPath   string
		wantQuery  string
		wantBody   map[string]string
	}{
		{
			name:       "verify",
			call:       func() error { return repo.VerifyAccount(ctx, cred, "3") },
			wantMethod: http.MethodPost, wantPath: "/admin/account/verification", wantQuery: "user_id=3",
		},
		{
			name:       "deny focal",
			call:       func() error { return repo.DenyAccount(ctx, cred, account.TypeFocal, "4") },
			wantMethod: http.MethodDelete, wantPath: "/admin/focal/request/delete/id/", wantQuery: "user_id=4",
		},
		{
			name:       "terminate",
			call:       func() error { return repo.TerminateAccount(ctx, cred, "5") },
			wantMethod: http.MethodDelete, wantPath: "/admin/account/verified-delete/user/5",
		},
		{
			name:       "designate",
			call:       func() error { return repo.DesignateAccount(ctx, cred, "6", "Dental") },
			wantMethod: http.MethodPut, wantPath: "/admin/focal/designation/id/",
			wantBody: map[string]string{"user_id": "6", "designation": "Dental"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.wantMethod, last.method)
			assert.Equal(t, tt.wantPath, last.path)
			assert.Equal(t, tt.wantQuery, last.query)
			assert.Equal(t, tt.wantBody, last.body)
		})
	}
}

func TestAuthenticator_Login(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		payload  string
		want     auth.Credential
		wantErr  error
		anyError bool
	}{
		{
			name:    "flat",
			status:  http.StatusOK,
			payload: `{"token": "abc", "user_id": 1, "first_name": "Ana", "last_name": "Reyes", "role": "Office", "section_designation": "Dental"}`,
			want:    auth.Credential{Token: "abc", UserID: "1", Email: "ana@deped.test", Name: "Ana Reyes", Role: auth.RoleOffice, SectionDesignation: "Dental"},
		},
		{
			name:    "nested",
			status:  http.StatusOK,
			payload: `{"access_token": "xyz", "user": {"user_id": "u-2", "email": "ANA@deped.test", "name": "Ana", "role": "admin", "section_designation": null}}`,
			want:    auth.Credential{Token: "xyz", UserID: "u-2", Email: "ANA@deped.test", Name: "Ana", Role: auth.RoleAdmin},
		},
		{name: "bad password", status: http.StatusUnauthorized, payload: `{"detail": "Invalid credentials"}`, wantErr: auth.ErrInvalidCredentials},
		{name: "no token", status: http.StatusOK, payload: `{"user_id": 1}`, anyError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var last capture
			authenticator := NewAuthenticator(newTestClient(t, recorder(&last, tt.status, tt.payload)))

			got, err := authenticator.Login(context.Background(), " Ana@DepEd.test ", "pwd")
			assert.Equal(t, map[string]string{"email": "ana@deped.test", "password": "pwd"}, last.body)
			assert.Empty(t, last.auth)
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.anyError:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
