package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SharedDefaults(t *testing.T) {
	v, err := Load("TESTSVC")
	require.NoError(t, err)

	assert.Equal(t, "development", GetAppEnv(v))
	assert.Equal(t, ":8080", GetServicePort(v, "SERVICE_PORT"))

	db := LoadDatabaseConfig(v, "DB_NAME")
	assert.Equal(t, "5432", db.Port)
	assert.Equal(t, "disable", db.SSLMode)
	assert.Empty(t, db.Host)

	jwt := LoadJWTConfig(v)
	assert.Equal(t, 15*time.Minute, jwt.AccessExpiry)
	assert.Empty(t, LoadKafkaConfig(v).Brokers)
}

func TestLoad_ReadsPrefixedEnvironment(t *testing.T) {
	t.Setenv("TESTSVC_APP_ENV", " Production ")
	t.Setenv("TESTSVC_SERVICE_PORT", "9000")
	t.Setenv("TESTSVC_DB_HOST", "db.internal")
	t.Setenv("TESTSVC_DB_NAME", "breeds")
	t.Setenv("TESTSVC_JWT_ACCESS_EXPIRY", "5m")
	t.Setenv("TESTSVC_KAFKA_BROKERS", "a:9092,,b:9092")

	v, err := Load("TESTSVC")
	require.NoError(t, err)

	assert.Equal(t, "production", GetAppEnv(v))
	assert.Equal(t, ":9000", GetServicePort(v, "SERVICE_PORT"))
	assert.Equal(t, "db.internal", LoadDatabaseConfig(v, "DB_NAME").Host)
	assert.Equal(t, "breeds", LoadDatabaseConfig(v, "DB_NAME").DBName)
	assert.Equal(t, 5*time.Minute, LoadJWTConfig(v).AccessExpiry)
	assert.Equal(t, []string{"a:9092", "b:9092"}, LoadKafkaConfig(v).Brokers)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Equal(t, []string{"x", "y"}, SplitList(" x , ,y "))
}
