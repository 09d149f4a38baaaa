package inmemdb

import (
	"context"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

type authenticator struct {
	db *userTable
}

func NewAuthenticator(db *DB) auth.Authenticator {
	return &authenticator{db: db.user}
}

func (a *authenticator) Login(_ context.Context, email, password string) (auth.Credential, error) {
	a.db.RLock()
	defer a.db.RUnlock()

	email = core.CleanString(email, true /* lower */)
	cred, ok := a.db.table[email]
	if !ok || a.db.passwords[email] != password {
		return auth.Credential{}, auth.ErrInvalidCredentials
	}
	return cred, nil
}
