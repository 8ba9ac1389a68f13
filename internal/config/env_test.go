package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesNestedFields(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "secret")
	t.Setenv("APP_TOKEN_ISSUER", "digest-auth")
	t.Setenv("SYNC_SESSION_TTL", "45m")
	t.Setenv("SYNC_MAX_PAGE_LIMIT", "250")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost/digest")
	t.Setenv("STORAGE_SESSIONS_REDIS_ADDRESS", "localhost:6379")
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:8080")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "30s")
	t.Setenv("WORKERS_STORE_CHECK_INTERVAL", "15s")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "digest-auth", cfg.App.TokenIssuer)
	assert.Equal(t, 45*time.Minute, cfg.Sync.SessionTTL)
	assert.Equal(t, 250, cfg.Sync.MaxPageLimit)
	assert.Equal(t, "postgres://localhost/digest", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:6379", cfg.Storage.Sessions.RedisAddress)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.Workers.StoreCheckInterval)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("SYNC_SESSION_TTL", "not-a-duration")

	cfg := &StructuredConfig{}
	assert.Error(t, parseEnv(cfg))
}

func TestValidate_AppliesDefaults(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, cfg.validate())

	assert.Equal(t, DefaultSessionTTL, cfg.Sync.SessionTTL)
	assert.Equal(t, DefaultPageLimit, cfg.Sync.DefaultPageLimit)
	assert.Equal(t, DefaultMinLimit, cfg.Sync.MinPageLimit)
	assert.Equal(t, DefaultMaxLimit, cfg.Sync.MaxPageLimit)
}

func TestValidate_RejectsInconsistentLimits(t *testing.T) {
	tests := []struct {
		name string
		sync Sync
	}{
		{
			name: "min above max",
			sync: Sync{MinPageLimit: 500, MaxPageLimit: 100, DefaultPageLimit: 200},
		},
		{
			name: "default below min",
			sync: Sync{MinPageLimit: 50, MaxPageLimit: 500, DefaultPageLimit: 10},
		},
		{
			name: "default above max",
			sync: Sync{MinPageLimit: 10, MaxPageLimit: 100, DefaultPageLimit: 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &StructuredConfig{Sync: tt.sync}
			assert.ErrorIs(t, cfg.validate(), ErrInvalidSyncConfigs)
		})
	}
}

func TestClientConfigValidate(t *testing.T) {
	valid := func() *ClientConfig {
		return &ClientConfig{
			App:     ClientApp{Token: "tok", ClientID: "device-a"},
			Storage: ClientStorage{DB: ClientDB{DSN: "digest.db"}},
			Adapter: Adapter{HTTPAddress: "http://localhost:8080", RequestTimeout: 15 * time.Second},
			Workers: ClientWorkers{SyncInterval: 5 * time.Minute},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, valid().validate())
	})

	t.Run("missing dsn", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.DB.DSN = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
	})

	t.Run("missing adapter address", func(t *testing.T) {
		cfg := valid()
		cfg.Adapter.HTTPAddress = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidAdapterConfigs)
	})

	t.Run("zero sync interval", func(t *testing.T) {
		cfg := valid()
		cfg.Workers.SyncInterval = 0
		assert.ErrorIs(t, cfg.validate(), ErrInvalidWorkerConfigs)
	})

	t.Run("missing token", func(t *testing.T) {
		cfg := valid()
		cfg.App.Token = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)
	})
}
