package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"wcbustats/internal/config"
	"wcbustats/internal/logging"
	"wcbustats/internal/server"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := server.Run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
