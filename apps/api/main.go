package main

import (
	"context"
	"expvar"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/apps"
	echoapi "github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/apps/api/echo"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	emailsvc "github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/services/email"
	logsvc "github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/services/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.Conf
	logger := logsvc.New(conf)

	backend := apps.NewBackend(conf, logger)
	mailSvc := emailsvc.NewService(conf, logger)
	taskSvc, accountSvc := backend.Services(conf, mailSvc, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	// =========================================================================
	// Start API Service

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(&echoapi.Options{
		Address:        conf.Server.Address,
		DisableReqLogs: conf.Env == "PROD",
		Logger:         logger,
		SignalShutdown: func() { shutdown <- syscall.SIGTERM },
		Authenticator:  backend.Authenticator,
		TaskSvc:        taskSvc,
		AccountSvc:     accountSvc,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}
