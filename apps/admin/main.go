package main

import (
	"fmt"
	"os"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/apps"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	emailsvc "github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/services/email"
	logsvc "github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/services/logger"
)

func main() {
	conf := core.Conf
	logger := logsvc.New(conf)

	backend := apps.NewBackend(conf, logger)
	taskSvc, accountSvc := backend.Services(conf, emailsvc.NewService(conf, logger), logger)

	// start CLI
	cli := commandLine{
		auth:       backend.Authenticator,
		taskSvc:    taskSvc,
		accountSvc: accountSvc,
		out:        os.Stdout,
	}
	// TODO: wait for the notification emails of account actions before exiting
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		if apps.IsArgumentError(err) {
			fmt.Fprintln(os.Stderr, "run `admin` without arguments for usage")
		}
		os.Exit(1)
	}
}
