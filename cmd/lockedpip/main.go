package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ralt/lockedpip/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	// Setup logging format
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Interrupting cancels pip and lets deferred cleanup run
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
