package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/apps/api/echo"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/account"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/services/email"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/storage/inmem"
)

func listAccounts(t *testing.T, app testApp, path, token string) []AccountView {
	req, rec := newAuthRequest(http.MethodGet, path, token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var views []AccountView
	decode(t, rec, &views)
	return views
}

func accountIDs(views []AccountView) []string {
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID())
	}
	return ids
}

func TestListAccounts(t *testing.T) {
	app := newApp()
	token := getToken(t, adminCred)

	tests := []struct {
		name    string
		path    string
		wantIDs []string
	}{
		{"pending requests", "/v1/accounts/verification", []string{"105", "203"}},
		{"pending schools", "/v1/accounts/verification?type=school", []string{"105"}},
		{"verified focal persons", "/v1/accounts/termination?type=Focal", []string{"201", "202"}},
		{"verified accounts", "/v1/accounts/termination", []string{"101", "102", "103", "104", "201", "202"}},
		{"designation lists focal persons only", "/v1/accounts/designation?type=school", []string{"201", "202"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantIDs, accountIDs(listAccounts(t, app, tt.path, token)))
		})
	}

	t.Run("display fields", func(t *testing.T) {
		views := listAccounts(t, app, "/v1/accounts/verification", token)
		require.Len(t, views, 2)
		assert.Equal(t, "Carla Gomez", views[0].DisplayName)
		assert.Equal(t, "Luna Elementary School", views[0].Affiliation)
		assert.Equal(t, "Dan Uy", views[1].DisplayName)
		assert.Equal(t, "Health", views[1].Affiliation)
	})
}

func TestAccountsAccess(t *testing.T) {
	app := newApp()
	token := getToken(t, adminCred)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "no token",
			method:   http.MethodGet,
			path:     "/v1/accounts/verification",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "office user",
			method:   http.MethodGet,
			path:     "/v1/accounts/verification",
			token:    getToken(t, officeCred),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name:     "unknown tab",
			method:   http.MethodGet,
			path:     "/v1/accounts/archive",
			token:    token,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "unknown type",
			method:   http.MethodGet,
			path:     "/v1/accounts/verification?type=teacher",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"type":"must be one of School or Focal"}`),
		},
		{
			name:     "sections are open to office users",
			method:   http.MethodGet,
			path:     "/v1/sections",
			token:    getToken(t, officeCred),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, account.Sections),
		},
	})
}

func TestVerifyAccount(t *testing.T) {
	app := newApp()
	token := getToken(t, adminCred)
	emailsvc.ResetSentMessages()

	runHTTPTests(t, app, []httpTest{
		{
			name:     "missing user",
			method:   http.MethodPost,
			path:     "/v1/accounts/verify",
			body:     []byte(`{}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"user_id":"this field is required"}`),
		},
		{
			name:     "not pending",
			method:   http.MethodPost,
			path:     "/v1/accounts/verify",
			body:     []byte(`{"user_id":"101"}`),
			token:    token,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	})

	req, rec := newAuthRequest(http.MethodPost, "/v1/accounts/verify", token, []byte(`{"user_id":"105","type":"school"}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ActionResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "105", resp.Account.ID())

	assert.NotContains(t, accountIDs(listAccounts(t, app, "/v1/accounts/verification", token)), "105")
	assert.Contains(t, accountIDs(listAccounts(t, app, "/v1/accounts/termination", token)), "105")

	sent := emailsvc.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "cgomez@luna-es.test", sent[0].To[0].Address)
	assert.Contains(t, sent[0].TextContent, "Carla Gomez")
}

func TestDenyAccount(t *testing.T) {
	app := newApp()
	token := getToken(t, adminCred)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "type required",
			method:   http.MethodPost,
			path:     "/v1/accounts/deny",
			body:     []byte(`{"user_id":"203"}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"type":"account type is required"}`),
		},
		{
			name:     "wrong type",
			method:   http.MethodPost,
			path:     "/v1/accounts/deny",
			body:     []byte(`{"user_id":"203","type":"School"}`),
			token:    token,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "denied",
			method:   http.MethodPost,
			path:     "/v1/accounts/deny",
			body:     []byte(`{"user_id":"203","type":"Focal"}`),
			token:    token,
			wantCode: http.StatusOK,
		},
	})

	assert.Equal(t, []string{"105"}, accountIDs(listAccounts(t, app, "/v1/accounts/verification", token)))
}

func TestTerminateAccount(t *testing.T) {
	app := newApp()
	token := getToken(t, adminCred)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "password required",
			method:   http.MethodPost,
			path:     "/v1/accounts/terminate",
			body:     []byte(`{"user_id":"104"}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"password":"this field is required"}`),
		},
		{
			name:     "incorrect password",
			method:   http.MethodPost,
			path:     "/v1/accounts/terminate",
			body:     []byte(`{"user_id":"104","password":"guess"}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"password":"incorrect password"}`),
		},
		{
			name:     "pending accounts cannot be terminated",
			method:   http.MethodPost,
			path:     "/v1/accounts/terminate",
			body:     marchallObj(t, account.TerminateAction{UserID: "105", Password: inmemdb.DemoAdminPassword}),
			token:    token,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "terminated",
			method:   http.MethodPost,
			path:     "/v1/accounts/terminate",
			body:     marchallObj(t, account.TerminateAction{UserID: "104", Password: inmemdb.DemoAdminPassword}),
			token:    token,
			wantCode: http.StatusOK,
		},
	})

	assert.NotContains(t, accountIDs(listAccounts(t, app, "/v1/accounts/termination", token)), "104")
}

func TestDesignateAccount(t *testing.T) {
	app := newApp()
	token := getToken(t, adminCred)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "unknown section",
			method:   http.MethodPut,
			path:     "/v1/accounts/designation",
			body:     []byte(`{"user_id":"202","section":"Reserch"}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"section":"unknown section, did you mean \"Research\"?"}`),
		},
		{
			name:     "schools cannot be designated",
			method:   http.MethodPut,
			path:     "/v1/accounts/designation",
			body:     []byte(`{"user_id":"101","section":"Research"}`),
			token:    token,
			wantCode: http.StatusNotFound,
		},
	})

	req, rec := newAuthRequest(http.MethodPut, "/v1/accounts/designation", token, []byte(`{"user_id":"202","section":"  research "}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ActionResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Research", resp.Account.Designation)

	for _, v := range listAccounts(t, app, "/v1/accounts/designation", token) {
		if v.ID() == "202" {
			assert.Equal(t, "Research", v.Designation)
		}
	}
}

func TestSchools(t *testing.T) {
	app := newApp()
	req, rec := newAuthRequest(http.MethodGet, "/v1/schools", getToken(t, adminCred))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var schools []SchoolView
	decode(t, rec, &schools)
	require.Len(t, schools, 3)
	assert.Equal(t, "bonifacio-high-school", schools[0].Slug)
	assert.Equal(t, "San Isidro", schools[0].Address)
	assert.Equal(t, "Rizal Elementary School", schools[2].Name)
	assert.Equal(t, []string{"101", "102"}, accountIDs(schools[2].Accounts))
}
