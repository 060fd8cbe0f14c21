package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.PolicyTx)
	assert.Equal(t, "insurecar.audit", cfg.Audit.Topic)
	assert.Empty(t, cfg.DatabaseURL)
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.AuthEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("INSURECAR_ADDR", ":9000")
	t.Setenv("INSURECAR_DATABASE_URL", "postgres://localhost/insurecar")
	t.Setenv("INSURECAR_KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("INSURECAR_JWT_SIGNING_KEY", "secret")
	t.Setenv("INSURECAR_POLICY_TX_TIMEOUT", "2s")
	t.Setenv("INSURECAR_REDIS_POOL_SIZE", "32")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "postgres://localhost/insurecar", cfg.DatabaseURL)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Audit.Brokers)
	assert.Equal(t, 2*time.Second, cfg.PolicyTx)
	assert.Equal(t, 32, cfg.Redis.PoolSize)
	assert.True(t, cfg.KafkaEnabled())
	assert.True(t, cfg.AuthEnabled())
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Run("unparsable duration", func(t *testing.T) {
		t.Setenv("INSURECAR_POLICY_TX_TIMEOUT", "soon")
		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("zero transaction timeout", func(t *testing.T) {
		t.Setenv("INSURECAR_POLICY_TX_TIMEOUT", "0s")
		_, err := FromEnv()
		assert.Error(t, err)
	})
}

func TestFromEnvRejectsUnbufferedAudit(t *testing.T) {
	t.Setenv("INSURECAR_AUDIT_BUFFER", "0")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "INSURECAR_AUDIT_BUFFER")
}
