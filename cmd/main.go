package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/dinehall/dinehall/config"
	"github.com/dinehall/dinehall/database"
	"github.com/dinehall/dinehall/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.Init()

	if err := database.ConnectAndMigrate(config.DatabaseURL()); err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	logrus.Println("migration is successful")

	svr := server.SetupRoutes()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Printf("listening on %s", config.Port())
		if err := svr.Run(config.Port()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()

	<-done
	logrus.Info("shutting down...")

	var result *multierror.Error
	if err := svr.Shutdown(shutdownTimeout); err != nil {
		result = multierror.Append(result, err)
	}
	if err := database.ShutdownDatabase(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		logrus.WithError(err).Error("shutdown finished with errors")
		return
	}

	logrus.Info("shutdown complete")
}
