package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

var (
	// appJWTConfig is the default JWT auth middleware config.
	appJWTConfig = middleware.JWTConfig{
		SigningKey:    []byte(core.Conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
		Claims:        new(Claims),
	}
	contextCredentialKey = "credential"
)

// Claims represents the authorization claims transmitted via a JWT. The backend token is
// carried along so every request can be replayed against the backend on the caller's behalf.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt       int64  `json:"oriat,omitempty"`
	BackendToken       string `json:"bkt"`
	Email              string `json:"email,omitempty"`
	Name               string `json:"name,omitempty"`
	Role               string `json:"role"`
	SectionDesignation string `json:"section_designation,omitempty"`
}

func GetCredentialClaims(cred auth.Credential, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   cred.UserID,
			Audience:  "DTRACS",
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt:       oriat,
		BackendToken:       cred.Token,
		Email:              cred.Email,
		Name:               cred.Name,
		Role:               cred.Role,
		SectionDesignation: cred.SectionDesignation,
	}
	return claims
}

func (c Claims) Credential() auth.Credential {
	return auth.Credential{
		Token:              c.BackendToken,
		UserID:             c.Subject,
		Email:              c.Email,
		Name:               c.Name,
		Role:               c.Role,
		SectionDesignation: c.SectionDesignation,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextCredential(ctx echo.Context) (auth.Credential, error) {
	if cred, ok := ctx.Get(contextCredentialKey).(auth.Credential); ok {
		return cred, nil
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return auth.Credential{}, errors.Wrap(err, "getting context claims")
	}
	cred := claims.Credential()
	ctx.Set(contextCredentialKey, cred)
	return cred, nil
}

func refreshToken(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(core.Conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	newClaims := GetCredentialClaims(claims.Credential(), claims.OrigIssuedAt)
	token, err := GenerateToken(newClaims)
	return token, errors.Wrap(err, "generating token")
}
