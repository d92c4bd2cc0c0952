package buildCFG

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
)

type ServerConfig struct {
	Port string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RabbitConfig struct {
	Enabled  bool
	Url      string
	Exchange string
	Queue    string
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
		log.Warn().Msg("server.port not set, defaulting to 8080")
	}
	return ServerConfig{Port: port}
}

// BuildBackendConfig reads the registry backend settings. The base URL is
// the one required configuration value of the console.
func BuildBackendConfig(cfg *config.Config, log *zerolog.Logger) (BackendConfig, error) {
	baseURL := cfg.GetString("backend.base_url")
	if baseURL == "" {
		return BackendConfig{}, fmt.Errorf("backend.base_url is required")
	}

	timeoutSec := cfg.GetInt("backend.timeout_seconds")
	if timeoutSec <= 0 {
		timeoutSec = 15
	}
	log.Info().Str("base_url", baseURL).Int("timeout_seconds", timeoutSec).Msg("backend configured")

	return BackendConfig{
		BaseURL: baseURL,
		Timeout: time.Duration(timeoutSec) * time.Second,
	}, nil
}

// BuildRabbitConfig reads the optional audit broker settings. An empty URL
// disables audit publishing entirely.
func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) RabbitConfig {
	url := cfg.GetString("rabbit.url")
	if url == "" {
		log.Info().Msg("rabbit.url not set, audit publishing disabled")
		return RabbitConfig{}
	}

	exchange := cfg.GetString("rabbit.exchange")
	if exchange == "" {
		exchange = "registry.audit"
	}
	queue := cfg.GetString("rabbit.queue")
	if queue == "" {
		queue = "registry.audit.events"
	}

	return RabbitConfig{
		Enabled:  true,
		Url:      url,
		Exchange: exchange,
		Queue:    queue,
	}
}
