package restapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

const loginPath = "/auth/login"

type (
	loginUser struct {
		UserID             core.FlexString `json:"user_id"`
		Email              string          `json:"email"`
		Name               string          `json:"name"`
		FirstName          string          `json:"first_name"`
		LastName           string          `json:"last_name"`
		Role               string          `json:"role"`
		SectionDesignation null.String     `json:"section_designation"`
	}

	// the backend has sent both a flat and a nested user over time
	loginResponse struct {
		loginUser
		Token       string     `json:"token"`
		AccessToken string     `json:"access_token"`
		User        *loginUser `json:"user"`
	}

	authenticator struct {
		c *Client
	}
)

func NewAuthenticator(c *Client) auth.Authenticator {
	return &authenticator{c: c}
}

func (a *authenticator) Login(ctx context.Context, email, password string) (auth.Credential, error) {
	email = core.CleanString(email, true /* lower */)
	req := request{
		resource: resourceAuth,
		method:   http.MethodPost,
		path:     loginPath,
		body: map[string]string{
			"email":    email,
			"password": password,
		},
	}

	var res loginResponse
	if err := a.c.do(ctx, auth.Anonymous, req, &res); err != nil {
		var upErr *core.UpstreamError
		if errors.As(err, &upErr) && (upErr.Status == http.StatusUnauthorized || upErr.Status == http.StatusBadRequest) {
			return auth.Credential{}, auth.ErrInvalidCredentials
		}
		return auth.Credential{}, err
	}

	usr := res.loginUser
	if res.User != nil {
		usr = *res.User
	}
	cred := auth.Credential{
		Token:              core.FirstNonEmpty(res.AccessToken, res.Token),
		UserID:             usr.UserID.String(),
		Email:              core.FirstNonEmpty(usr.Email, email),
		Name:               core.FirstNonEmpty(usr.Name, strings.TrimSpace(usr.FirstName+" "+usr.LastName)),
		Role:               strings.ToLower(usr.Role),
		SectionDesignation: usr.SectionDesignation.String,
	}
	if !cred.IsAuthenticated() {
		return auth.Credential{}, errors.New("login response carries no token")
	}
	return cred, nil
}
