package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/lumora-ai/chatbot-admin/internal/app"
	"github.com/lumora-ai/chatbot-admin/internal/config"
	"github.com/lumora-ai/chatbot-admin/internal/logging"
)

func main() {
	cfg, errLoad := config.Load()
	if errLoad != nil {
		log.Fatalf("load config: %v", errLoad)
	}
	logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if errRun := app.RunServer(ctx, cfg); errRun != nil {
		log.Fatalf("server: %v", errRun)
	}
}
