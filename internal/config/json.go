package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		Version      string `json:"version"`
	} `json:"app,omitempty"`

	Sync struct {
		SessionTTL       Duration `json:"session_ttl"`
		DefaultPageLimit int      `json:"default_page_limit"`
		MinPageLimit     int      `json:"min_page_limit"`
		MaxPageLimit     int      `json:"max_page_limit"`
	} `json:"sync,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Sessions struct {
			RedisAddress  string `json:"redis_address"`
			RedisPassword string `json:"redis_password"`
			RedisDB       int    `json:"redis_db"`
		} `json:"sessions,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		StoreCheckInterval Duration `json:"store_check_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			Version:      jsonCfg.App.Version,
		},
		Sync: Sync{
			SessionTTL:       time.Duration(jsonCfg.Sync.SessionTTL),
			DefaultPageLimit: jsonCfg.Sync.DefaultPageLimit,
			MinPageLimit:     jsonCfg.Sync.MinPageLimit,
			MaxPageLimit:     jsonCfg.Sync.MaxPageLimit,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Sessions: Sessions{
				RedisAddress:  jsonCfg.Storage.Sessions.RedisAddress,
				RedisPassword: jsonCfg.Storage.Sessions.RedisPassword,
				RedisDB:       jsonCfg.Storage.Sessions.RedisDB,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			StoreCheckInterval: time.Duration(jsonCfg.Workers.StoreCheckInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON
// unmarshaling from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
