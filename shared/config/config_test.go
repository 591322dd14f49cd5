package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Common `mapstructure:",squash"`
	Extra  string `mapstructure:"extra"`
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "missing-env")

	v := viper.New()
	SetCommonDefaults(v, "test-service", "9999", "test_db")

	var cfg testConfig
	require.NoError(t, Load(v, t.TempDir(), "TESTSVC", &cfg))

	assert.Equal(t, "test-service", cfg.ServiceName)
	assert.Equal(t, BusSNS, cfg.Bus.Driver)
	assert.Equal(t, 5, cfg.Bus.MaxDeliveries)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	assert.Equal(t, "test_db", cfg.Database.Database)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ci.json"), []byte(`{
		"extra": "from-file",
		"bus": {"driver": "kafka"},
		"kafka": {"brokers": ["kafka-1:9092", "kafka-2:9092"]}
	}`), 0o600))

	t.Setenv("ENVIRONMENT", "ci")
	t.Setenv("TESTSVC_STORAGE", "memory")

	v := viper.New()
	SetCommonDefaults(v, "test-service", "9999", "test_db")

	var cfg testConfig
	require.NoError(t, Load(v, dir, "TESTSVC", &cfg))

	assert.Equal(t, "from-file", cfg.Extra)
	assert.Equal(t, BusKafka, cfg.Bus.Driver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, DriverMemory, cfg.Storage)
}

func TestCommon_Validate(t *testing.T) {
	valid := Common{
		Storage:     DriverMemory,
		Bus:         Bus{Driver: BusMemory, MaxDeliveries: 3},
		Idempotency: Idempotency{Driver: DriverMemory},
	}
	assert.NoError(t, valid.Validate())

	badBus := valid
	badBus.Bus.Driver = "carrier-pigeon"
	assert.Error(t, badBus.Validate())

	badStorage := valid
	badStorage.Storage = "mongo"
	assert.Error(t, badStorage.Validate())

	zeroDeliveries := valid
	zeroDeliveries.Bus.MaxDeliveries = 0
	assert.Error(t, zeroDeliveries.Validate())
}

func TestDatabase_ConnectionURL(t *testing.T) {
	db := Database{Host: "db", Port: 5432, User: "u", Password: "p", Database: "enrollments", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/enrollments?sslmode=disable", db.ConnectionURL())

	db.URL = "postgres://override"
	assert.Equal(t, "postgres://override", db.ConnectionURL())
}
