package apps

import (
	"time"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/account"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/task"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/storage/inmem"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/storage/restapi"
)

// Backend gathers the repositories of the DTRACS backend.
type Backend struct {
	Tasks         task.Repository
	Accounts      account.Repository
	Authenticator auth.Authenticator
}

// NewBackend talks to the backend at conf.Backend.BaseURL, or to a seeded in-memory one when
// conf.Backend.InMem is set.
func NewBackend(conf *core.Config, logger core.Logger) Backend {
	if conf.Backend.InMem {
		db := inmemdb.Open()
		inmemdb.Seed(db, time.Now())
		logger.Info("serving the in-memory backend; log in as " + inmemdb.DemoAdminEmail)
		return Backend{
			Tasks:         inmemdb.NewTaskRepository(db),
			Accounts:      inmemdb.NewAccountRepository(db),
			Authenticator: inmemdb.NewAuthenticator(db),
		}
	}

	client := restapi.NewClient(conf, logger)
	return Backend{
		Tasks:         restapi.NewTaskRepository(client),
		Accounts:      restapi.NewAccountRepository(client),
		Authenticator: restapi.NewAuthenticator(client),
	}
}

// Services builds the core services over the backend.
func (b Backend) Services(conf *core.Config, mailSvc core.EmailService, logger core.Logger) (*task.Service, *account.Service) {
	taskSvc := task.NewService(b.Tasks, logger, task.Options{
		Timeout: conf.Backend.Timeout,
		Workers: conf.Backend.Workers,
	})
	accountSvc := account.NewService(b.Accounts, b.Authenticator, mailSvc, logger)
	return taskSvc, accountSvc
}
