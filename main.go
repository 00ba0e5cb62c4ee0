package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/almahera/storefront/cmd"
	"github.com/almahera/storefront/internal/log"
)

func main() {
	logger := log.Get("/var/log/storefront.log", os.Getenv("APP_ENV"))

	c, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	c = logger.WithContext(c)
	if err := cmd.Execute(c); err != nil {
		logger.Fatal().Err(err).Msg(err.Error())
	}
}
