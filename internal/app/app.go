package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lumora-ai/chatbot-admin/internal/auth"
	"github.com/lumora-ai/chatbot-admin/internal/config"
	"github.com/lumora-ai/chatbot-admin/internal/credstore"
	"github.com/lumora-ai/chatbot-admin/internal/db"
	adminhttp "github.com/lumora-ai/chatbot-admin/internal/http"
	"github.com/lumora-ai/chatbot-admin/internal/tenant"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 10 * time.Second

// Components holds the wired application graph.
type Components struct {
	Router        *db.Router
	Credentials   *credstore.Gateway
	Directory     *tenant.Directory
	Authenticator *auth.Authenticator
}

// Build wires the application components from configuration.
func Build(cfg *config.Config) Components {
	router := db.NewRouter(cfg.BaseDSN, cfg.DSNOptions)
	gateway := credstore.New(router, cfg.CredentialsDatabase)
	return Components{
		Router:        router,
		Credentials:   gateway,
		Directory:     tenant.NewDirectory(gateway),
		Authenticator: auth.NewAuthenticator(gateway, cfg.SuperAdminUsername, cfg.SuperAdminPassword, cfg.AuthKey),
	}
}

// RunServer boots the admin backend and blocks until ctx is cancelled or
// the server fails.
func RunServer(ctx context.Context, cfg *config.Config) error {
	components := Build(cfg)

	engine := adminhttp.NewEngine(adminhttp.Services{
		Config:        cfg,
		Router:        components.Router,
		Directory:     components.Directory,
		Credentials:   components.Credentials,
		Authenticator: components.Authenticator,
	})

	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.ServerAddr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return errShutdown
		}
		return nil
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}
