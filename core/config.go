package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Debug            bool
	TestMode         bool
	Env              string
	AppName          string
	Build            string
	SecretKey        string
	DefaultFromEmail mail.Address

	// persistence
	StorageBackend string // file | postgres | memory
	DataDir        string // filekv root
	DatabaseURL    string // sqlkv DSN

	// simulated network latency applied by every service call
	Latency      time.Duration
	ShortLatency time.Duration

	SendgridAPIKey string
	RollbarToken   string

	Server struct {
		Host               string
		Addr               string
		JWTExpirationDelta time.Duration
	}
}

// NewConfig loads the app configuration from defaults, an optional
// config/.env.<env> file and environment variables (prefixed with <ENV>_).
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "FlipSpace")
	conf.SetDefault("build", "dev")
	conf.SetDefault("secretKey", "y0(h+ns=k2#$zy&8e)-05r!bma*a0+0ex@p7=1d9vq2b^ln_fs")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("storageBackend", StorageFile)
	conf.SetDefault("dataDir", filepath.Join(Getwd(), "data"))
	conf.SetDefault("databaseUrl", "")
	conf.SetDefault("latency", 300*time.Millisecond)
	conf.SetDefault("shortLatency", 75*time.Millisecond)
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	cfg := &Config{
		Debug:            conf.GetBool("debug"),
		TestMode:         env == "TEST",
		Env:              env,
		AppName:          conf.GetString("appName"),
		Build:            conf.GetString("build"),
		SecretKey:        conf.GetString("secretKey"),
		DefaultFromEmail: mail.Address{Name: conf.GetString("appName"), Address: conf.GetString("defaultFromEmail")},
		StorageBackend:   conf.GetString("storageBackend"),
		DataDir:          conf.GetString("dataDir"),
		DatabaseURL:      conf.GetString("databaseUrl"),
		Latency:          conf.GetDuration("latency"),
		ShortLatency:     conf.GetDuration("shortLatency"),
		SendgridAPIKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
	}
	cfg.Server.Host = conf.GetString("serverHost")
	cfg.Server.Addr = conf.GetString("serverAddr")
	cfg.Server.JWTExpirationDelta = conf.GetDuration("jwtExpirationDelta")

	if cfg.TestMode {
		// tests must not sleep
		cfg.Latency = 0
		cfg.ShortLatency = 0
	}
	return cfg
}

// NewTestConfig returns a Config suitable for unit tests: no simulated
// latency and no external services.
func NewTestConfig() *Config {
	cfg := &Config{
		Debug:            true,
		TestMode:         true,
		Env:              "TEST",
		AppName:          "FlipSpace",
		Build:            "test",
		SecretKey:        "test-secret",
		DefaultFromEmail: mail.Address{Name: "FlipSpace", Address: "noreply@localhost"},
		StorageBackend:   StorageMemory,
	}
	cfg.Server.Addr = ":0"
	cfg.Server.JWTExpirationDelta = time.Hour
	return cfg
}
