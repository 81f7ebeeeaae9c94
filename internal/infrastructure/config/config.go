package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AdminUsernames lists accounts promoted to Admin at registration.
	AdminUsernames []string `env:"ADMIN_USERNAMES"`

	// PublicDir is the app-shell directory served with index.html
	// fallback. Empty disables static serving.
	PublicDir string `env:"PUBLIC_DIR, default=public"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	SigningKeyPath string        `env:"JWT_SIGNING_KEY_PATH, default=jwt-keys/user_auth.pem"`
	VerifyKeyPath  string        `env:"JWT_VERIFY_KEY_PATH,  default=jwt-keys/user_auth.pub.pem"`
	TokenTTL       time.Duration `env:"TOKEN_TTL,            default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=quizdeck"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
