package inmemdb

import (
	"context"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/account"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

type accountRepository struct {
	db *accountTable
}

func NewAccountRepository(db *DB) account.Repository {
	return &accountRepository{db: db.account}
}

func (repo *accountRepository) QueryAccounts(_ context.Context, _ auth.Credential, typ account.Type, verified bool) ([]account.Account, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	table := repo.db.pending
	if verified {
		table = repo.db.verified
	}
	accounts := make([]account.Account, 0, len(table))
	for _, id := range sortedKeys(table) {
		if acc := table[id]; acc.Type == typ {
			accounts = append(accounts, *acc)
		}
	}
	return accounts, nil
}

func (repo *accountRepository) VerifyAccount(_ context.Context, _ auth.Credential, userID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	acc, ok := repo.db.pending[userID]
	if !ok {
		return notFound("account")
	}
	delete(repo.db.pending, userID)
	repo.db.verified[userID] = acc
	return nil
}

func (repo *accountRepository) DenyAccount(_ context.Context, _ auth.Credential, typ account.Type, userID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if acc, ok := repo.db.pending[userID]; !ok || acc.Type != typ {
		return notFound("account")
	}
	delete(repo.db.pending, userID)
	return nil
}

func (repo *accountRepository) TerminateAccount(_ context.Context, _ auth.Credential, userID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.verified[userID]; !ok {
		return notFound("account")
	}
	delete(repo.db.verified, userID)
	return nil
}

func (repo *accountRepository) DesignateAccount(_ context.Context, _ auth.Credential, userID, section string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	acc, ok := repo.db.verified[userID]
	if !ok || acc.Type != account.TypeFocal {
		return notFound("focal account")
	}
	acc.SectionDesignation.SetValid(section)
	return nil
}
