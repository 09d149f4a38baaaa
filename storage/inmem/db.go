// Package inmemdb is an in-memory stand-in for the DTRACS backend, used by tests and the
// offline demo mode.
package inmemdb

import (
	"net/http"
	"sort"
	"sync"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/account"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/task"
)

type (
	DB struct {
		task    *taskTable
		account *accountTable
		user    *userTable
	}

	taskTable struct {
		sync.RWMutex
		table       map[string]*task.Task
		assignments map[string][]task.Assignment
	}

	accountTable struct {
		sync.RWMutex
		pending  map[string]*account.Account
		verified map[string]*account.Account
	}

	// users who can log in, by lowered email
	userTable struct {
		sync.RWMutex
		table     map[string]auth.Credential
		passwords map[string]string
	}
)

func Open() *DB {
	return &DB{
		task: &taskTable{
			table:       make(map[string]*task.Task),
			assignments: make(map[string][]task.Assignment),
		},
		account: &accountTable{
			pending:  make(map[string]*account.Account),
			verified: make(map[string]*account.Account),
		},
		user: &userTable{
			table:     make(map[string]auth.Credential),
			passwords: make(map[string]string),
		},
	}
}

func (db *DB) AddTask(t task.Task, assignments ...task.Assignment) {
	db.task.Lock()
	defer db.task.Unlock()
	id := t.ID.String()
	db.task.table[id] = &t
	db.task.assignments[id] = append(db.task.assignments[id], assignments...)
}

func (db *DB) AddAccount(acc account.Account, verified bool) {
	db.account.Lock()
	defer db.account.Unlock()
	if verified {
		db.account.verified[acc.ID()] = &acc
	} else {
		db.account.pending[acc.ID()] = &acc
	}
}

func (db *DB) AddUser(cred auth.Credential, password string) {
	db.user.Lock()
	defer db.user.Unlock()
	email := core.CleanString(cred.Email, true /* lower */)
	db.user.table[email] = cred
	db.user.passwords[email] = password
}

func notFound(what string) error {
	return core.NewUpstreamError(http.StatusNotFound, what+" not found")
}

func sortedKeys(m interface{}) []string {
	var keys []string
	switch m := m.(type) {
	case map[string]*task.Task:
		for k := range m {
			keys = append(keys, k)
		}
	case map[string]*account.Account:
		for k := range m {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
