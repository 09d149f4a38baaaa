package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf = NewConfig()

type (
	ServerConfig struct {
		Address                   string
		Host                      string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	BackendConfig struct {
		BaseURL string
		Timeout time.Duration
		Workers int
		InMem   bool // serve the seeded in-memory backend instead of the upstream API
	}

	BreakerConfig struct {
		MaxRequests uint32
		Timeout     time.Duration
		Failures    uint32 // consecutive failures before the breaker opens
	}

	LogConfig struct {
		File  string
		Level string
	}

	Config struct {
		Env              string
		Build            string
		Debug            bool
		TestMode         bool
		AppName          string
		SecretKey        string
		DefaultFromEmail string
		FrontendBaseURL  string
		RollbarToken     string
		SendgridAPIKey   string

		Server  ServerConfig
		Backend BackendConfig
		Breaker BreakerConfig
		Log     LogConfig
	}
)

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "DTRACS Admin")
	v.SetDefault("secretKey", "k3u!f0z$8r+t2m(q@x7d#w^e9n*a1l)c-v6j&b4p%h5s=g")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("backend.baseURL", "http://192.168.10.104:8000")
	v.SetDefault("backend.timeout", 5*time.Second)
	v.SetDefault("backend.workers", 8)
	v.SetDefault("backend.inmem", false)
	v.SetDefault("breaker.maxRequests", 1)
	v.SetDefault("breaker.timeout", 5*time.Second)
	v.SetDefault("breaker.failures", 3)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(configDir(), ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         env == "TEST",
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		Server: ServerConfig{
			Address:                   v.GetString("server.address"),
			Host:                      v.GetString("server.host"),
			JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimSpace(v.GetString("backend.baseURL")),
			Timeout: v.GetDuration("backend.timeout"),
			Workers: v.GetInt("backend.workers"),
			InMem:   v.GetBool("backend.inmem"),
		},
		Breaker: BreakerConfig{
			MaxRequests: v.GetUint32("breaker.maxRequests"),
			Timeout:     v.GetDuration("breaker.timeout"),
			Failures:    v.GetUint32("breaker.failures"),
		},
		Log: LogConfig{
			File:  v.GetString("log.file"),
			Level: v.GetString("log.level"),
		},
	}
}

// configDir is where the .env.<env> files live. CONFIG_DIR overrides the default "config"
// directory relative to the working directory.
func configDir() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	return "config"
}
