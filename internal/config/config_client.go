package config

import (
	"flag"
	"time"
)

// ClientConfig is the configuration container for the headless sync
// client. It is populated from environment variables first, then
// overridden by command-line flags.
type ClientConfig struct {
	// App holds the upstream-issued bearer token and the logical device
	// identifier presented at session start.
	App ClientApp `envPrefix:"APP_"`

	// Storage holds the local mirror database settings.
	Storage ClientStorage `envPrefix:"STORAGE_"`

	// Adapter holds the server connection settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the background sync job settings.
	Workers ClientWorkers `envPrefix:"WORKERS_"`
}

// ClientApp holds client identity settings.
type ClientApp struct {
	// Token is the bearer token obtained from the upstream auth service.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// ClientID is the logical device identifier. Sessions started with it
	// are unusable from any other device.
	// Env: APP_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`
}

// ClientStorage groups local persistence settings.
type ClientStorage struct {
	DB ClientDB `envPrefix:"DB_"`
}

// ClientDB holds the local SQLite mirror settings.
type ClientDB struct {
	// DSN is the SQLite file path of the local mirror.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds connection settings for the sync server.
type Adapter struct {
	// HTTPAddress is the base URL of the sync server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds each outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientWorkers holds background sync job settings.
type ClientWorkers struct {
	// SyncInterval is how often the client reconciles with the server.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetClientConfig loads the client configuration from environment
// variables, overrides non-zero values with command-line flags, and
// validates the result.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	var serverAddress string
	var databaseDSN string
	var token string
	var clientID string
	var requestTimeout time.Duration
	var syncInterval time.Duration

	flag.StringVar(&serverAddress, "a", "", "Sync server base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local mirror database path")
	flag.StringVar(&token, "token", "", "Bearer token")
	flag.StringVar(&clientID, "client-id", "", "Logical device identifier")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")

	flag.Parse()

	if serverAddress != "" {
		cfg.Adapter.HTTPAddress = serverAddress
	}
	if databaseDSN != "" {
		cfg.Storage.DB.DSN = databaseDSN
	}
	if token != "" {
		cfg.App.Token = token
	}
	if clientID != "" {
		cfg.App.ClientID = clientID
	}
	if requestTimeout != 0 {
		cfg.Adapter.RequestTimeout = requestTimeout
	}
	if syncInterval != 0 {
		cfg.Workers.SyncInterval = syncInterval
	}

	return cfg, cfg.validate()
}
