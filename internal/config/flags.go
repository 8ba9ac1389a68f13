package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all server configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-redis-address shared session store address in format [host]:[port]
//	-redis-password shared session store password
//	-redis-db shared session store logical database
//	-c/-config json file path with configs
//	-token-sign-key token verification key
//	-token-issuer expected token issuer name
//	-session-ttl sync session lifetime (e.g., "30m", "1h")
//	-default-page-limit default sync page size
//	-min-page-limit minimum negotiable sync page size
//	-max-page-limit maximum negotiable sync page size
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-store-check-interval session store health check interval
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var redisAddress string
	var redisPassword string
	var redisDB int
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var sessionTTL time.Duration
	var defaultPageLimit, minPageLimit, maxPageLimit int
	var requestTimeout time.Duration
	var storeCheckInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&redisAddress, "redis-address", "", "Shared session store address host:port")
	flag.StringVar(&redisPassword, "redis-password", "", "Shared session store password")
	flag.IntVar(&redisDB, "redis-db", 0, "Shared session store logical database")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token verification key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Expected token issuer")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Sync session lifetime (e.g., 30m, 1h)")
	flag.IntVar(&defaultPageLimit, "default-page-limit", 0, "Default sync page size")
	flag.IntVar(&minPageLimit, "min-page-limit", 0, "Minimum negotiable sync page size")
	flag.IntVar(&maxPageLimit, "max-page-limit", 0, "Maximum negotiable sync page size")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&storeCheckInterval, "store-check-interval", 0, "Session store health check interval")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
		},
		Sync: Sync{
			SessionTTL:       sessionTTL,
			DefaultPageLimit: defaultPageLimit,
			MinPageLimit:     minPageLimit,
			MaxPageLimit:     maxPageLimit,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Sessions: Sessions{
				RedisAddress:  redisAddress,
				RedisPassword: redisPassword,
				RedisDB:       redisDB,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			StoreCheckInterval: storeCheckInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
