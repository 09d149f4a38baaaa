package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

// requestIDMiddleware makes the request ID set by middleware.RequestID available to the
// backend client through the request context.
func requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		req := ctx.Request()
		id := req.Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = ctx.Response().Header().Get(echo.HeaderXRequestID)
		}
		if id != "" {
			ctx.SetRequest(req.WithContext(core.WithRequestID(req.Context(), id)))
		}
		return next(ctx)
	}
}

// roleMiddleware lets through callers having one of roles. Admins are always let through.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if strings.EqualFold(claims.Role, auth.RoleAdmin) {
				return next(ctx)
			}
			for _, role := range roles {
				if strings.EqualFold(claims.Role, role) {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

func adminMiddleware() echo.MiddlewareFunc {
	return roleMiddleware()
}
