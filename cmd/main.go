package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/zlog"

	"github.com/awscbba/registry-frontend-sub000/cmd/buildCFG"
	"github.com/awscbba/registry-frontend-sub000/internal/api/api"
	"github.com/awscbba/registry-frontend-sub000/internal/audit"
	"github.com/awscbba/registry-frontend-sub000/internal/console"
	"github.com/awscbba/registry-frontend-sub000/internal/registry"
	"github.com/awscbba/registry-frontend-sub000/internal/service"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	serverCfg := buildCFG.BuildServerConfig(cfg, &log)
	port := serverCfg.Port

	backendCfg, err := buildCFG.BuildBackendConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build backend config")
	}
	client := registry.New(registry.Config{
		BaseURL: backendCfg.BaseURL,
		Timeout: backendCfg.Timeout,
	}, &log)

	var auditor *audit.Publisher
	rabbitCfg := buildCFG.BuildRabbitConfig(cfg, &log)
	if rabbitCfg.Enabled {
		auditor, err = audit.NewPublisher(rabbitCfg.Url, rabbitCfg.Exchange, rabbitCfg.Queue)
		if err != nil {
			log.Fatal().Msgf("Failed to connect to RabbitMQ: %v", err)
		}
		defer auditor.Close()
	}

	sessions := console.NewManager(client, auditor, &log)
	serviceInstance := service.NewService(sessions, &log)
	app := api.NewRouters(&api.Routers{Service: serviceInstance})

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", port)
		if err := app.Run(":" + port); err != nil {
			serverErrChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("Received signal %s. Initiating shutdown...", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("Server error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if closer, ok := interface{}(app).(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(shutdownCtx); err != nil {
			log.Error().Msgf("Error shutting down server: %v", err)
		}
	}

	log.Info().Msg("Shutdown complete")
}
