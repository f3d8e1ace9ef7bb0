package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_SUSU_PG_HOST", "db.internal")

	path := writeConfig(t, `
service:
  name: axiom-susu
  http_port: ${TEST_SUSU_HTTP_PORT:9090}
postgres:
  host: ${TEST_SUSU_PG_HOST:localhost}
  database: axiom_susu
susu:
  admin_wallets:
    - ${TEST_SUSU_ADMIN:0x8d7892cf226b43d48b6e3ce988a1274e6d114c96}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// 环境变量优先, 未设置时取默认值
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 9090, cfg.Service.HTTPPort)
	require.Len(t, cfg.Susu.AdminWallets, 1)
	assert.Equal(t, "0x8d7892cf226b43d48b6e3ce988a1274e6d114c96", cfg.Susu.AdminWallets[0])
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
postgres:
  database: axiom_susu
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "axiom-susu", cfg.Service.Name)
	assert.Equal(t, 8080, cfg.Service.HTTPPort)
	assert.Equal(t, "dev", cfg.Service.Env)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "axiom-susu", cfg.Kafka.ClientID)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
