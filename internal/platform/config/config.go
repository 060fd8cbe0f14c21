// Package config loads process configuration from INSURECAR_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures everything cmd/server needs to wire the process.
// Empty backend URLs select the in-memory implementations.
type Server struct {
	Addr        string        `env:"INSURECAR_ADDR" envDefault:":8080"`
	MetricsAddr string        `env:"INSURECAR_METRICS_ADDR" envDefault:":9090"`
	LogLevel    string        `env:"INSURECAR_LOG_LEVEL" envDefault:"info"`
	DatabaseURL string        `env:"INSURECAR_DATABASE_URL"`
	PolicyTx    time.Duration `env:"INSURECAR_POLICY_TX_TIMEOUT" envDefault:"5s"`
	ShutdownIn  time.Duration `env:"INSURECAR_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Redis RedisConfig
	Audit AuditConfig
	Auth  AuthConfig
}

// RedisConfig configures the policy-number registry connection.
type RedisConfig struct {
	URL          string        `env:"INSURECAR_REDIS_URL"`
	PoolSize     int           `env:"INSURECAR_REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"INSURECAR_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"INSURECAR_REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"INSURECAR_REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"INSURECAR_REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	NumberTTL    time.Duration `env:"INSURECAR_POLICY_NUMBER_TTL" envDefault:"0s"`
}

// AuditConfig selects where audit events go. No brokers means log only.
type AuditConfig struct {
	Brokers    []string `env:"INSURECAR_KAFKA_BROKERS" envSeparator:","`
	Topic      string   `env:"INSURECAR_AUDIT_TOPIC" envDefault:"insurecar.audit"`
	Partitions int32    `env:"INSURECAR_AUDIT_PARTITIONS" envDefault:"3"`
	Buffer     int      `env:"INSURECAR_AUDIT_BUFFER" envDefault:"256"`
}

// AuthConfig enables bearer-token auth on the API when SigningKey is set.
type AuthConfig struct {
	SigningKey string `env:"INSURECAR_JWT_SIGNING_KEY"`
	Issuer     string `env:"INSURECAR_JWT_ISSUER" envDefault:"insurecar"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PolicyTx <= 0 {
		return Server{}, fmt.Errorf("INSURECAR_POLICY_TX_TIMEOUT must be positive, got %s", cfg.PolicyTx)
	}
	if cfg.Audit.Buffer <= 0 {
		return Server{}, fmt.Errorf("INSURECAR_AUDIT_BUFFER must be positive, got %d", cfg.Audit.Buffer)
	}
	return cfg, nil
}

// KafkaEnabled reports whether audit events should be published to Kafka.
func (s Server) KafkaEnabled() bool {
	return len(s.Audit.Brokers) > 0
}

// AuthEnabled reports whether API requests must carry a bearer token.
func (s Server) AuthEnabled() bool {
	return s.Auth.SigningKey != ""
}
