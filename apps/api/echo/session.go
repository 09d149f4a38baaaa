package echoapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

// roles allowed in the console
var consoleRoles = []string{auth.RoleAdmin, auth.RoleOffice}

type sessionApi struct {
	auth     auth.Authenticator
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, authenticator auth.Authenticator, validate *validator.Validate) {
	api := sessionApi{auth: authenticator, validate: validate}

	ag := g.Group("/auth")
	// TODO: rate limit `/login`
	ag.POST("/login", api.login)
	ag.POST("/token-refresh", api.refreshToken, jwt)
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string       `json:"token"`
		User  *SessionUser `json:"user,omitempty"`
	}

	SessionUser struct {
		UserID             string `json:"user_id"`
		Email              string `json:"email"`
		Name               string `json:"full_name"`
		Role               string `json:"role"`
		SectionDesignation string `json:"section_designation"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}

func (api *sessionApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cred, err := api.auth.Login(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		if errors.Cause(err) == auth.ErrInvalidCredentials {
			return errAuthenticationFailed
		}
		return errors.Wrap(err, "authenticating")
	}
	if !hasConsoleRole(cred) {
		return errHttpForbidden
	}

	token, err := GenerateToken(GetCredentialClaims(cred))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	usr := &SessionUser{
		UserID:             cred.UserID,
		Email:              cred.Email,
		Name:               cred.Name,
		Role:               cred.Role,
		SectionDesignation: cred.SectionDesignation,
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: usr})
}

func (api *sessionApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func hasConsoleRole(cred auth.Credential) bool {
	for _, role := range consoleRoles {
		if strings.EqualFold(cred.Role, role) {
			return true
		}
	}
	return false
}
