package restapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/account"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

const (
	verifyPath    = "/admin/account/verification"
	terminatePath = "/admin/account/verified-delete/user/"
	designatePath = "/admin/focal/designation/id/"
)

var errUnknownType = errors.New("unknown account type")

type accountRepository struct {
	c *Client
}

func NewAccountRepository(c *Client) account.Repository {
	return &accountRepository{c: c}
}

// segment is how the backend names the account type in its paths.
func segment(typ account.Type) (string, error) {
	switch typ {
	case account.TypeSchool, account.TypeFocal:
		return strings.ToLower(string(typ)), nil
	}
	return "", errors.Wrap(errUnknownType, string(typ))
}

func (repo *accountRepository) QueryAccounts(ctx context.Context, cred auth.Credential, typ account.Type, verified bool) ([]account.Account, error) {
	seg, err := segment(typ)
	if err != nil {
		return nil, err
	}
	path := "/admin/" + seg + "/account/request"
	if verified {
		path = "/admin/" + seg + "/verified/accounts"
	}

	accounts := make([]account.Account, 0)
	if err := repo.c.do(ctx, cred, request{resource: resourceAccounts, method: http.MethodGet, path: path}, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (repo *accountRepository) VerifyAccount(ctx context.Context, cred auth.Credential, userID string) error {
	req := request{
		resource: resourceAccounts,
		method:   http.MethodPost,
		path:     verifyPath,
		query:    url.Values{"user_id": {userID}},
	}
	return repo.c.do(ctx, cred, req, nil)
}

func (repo *accountRepository) DenyAccount(ctx context.Context, cred auth.Credential, typ account.Type, userID string) error {
	seg, err := segment(typ)
	if err != nil {
		return err
	}
	req := request{
		resource: resourceAccounts,
		method:   http.MethodDelete,
		path:     "/admin/" + seg + "/request/delete/id/",
		query:    url.Values{"user_id": {userID}},
	}
	return repo.c.do(ctx, cred, req, nil)
}

func (repo *accountRepository) TerminateAccount(ctx context.Context, cred auth.Credential, userID string) error {
	req := request{
		resource: resourceAccounts,
		method:   http.MethodDelete,
		path:     terminatePath + url.PathEscape(userID),
	}
	return repo.c.do(ctx, cred, req, nil)
}

func (repo *accountRepository) DesignateAccount(ctx context.Context, cred auth.Credential, userID, section string) error {
	req := request{
		resource: resourceAccounts,
		method:   http.MethodPut,
		path:     designatePath,
		body: map[string]string{
			"user_id":     userID,
			"designation": section,
		},
	}
	return repo.c.do(ctx, cred, req, nil)
}
