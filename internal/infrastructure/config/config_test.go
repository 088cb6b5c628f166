package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
database:
  driver: postgres
  host: db
  port: 5432
  user: books
  password: secret
  dbname: shop
jwt:
  secret: s3cret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "host=db port=5432 user=books password=secret dbname=shop sslmode=disable TimeZone=UTC",
		cfg.Database.ConnectionString())
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenExpire)
	assert.Equal(t, "bookshop.events", cfg.MQ.Exchange)
	assert.False(t, cfg.Auth.BootstrapAdmin())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("BOOKSTORE_SERVER_PORT", "9100")
	t.Setenv("BOOKSTORE_DATABASE_DRIVER", "sqlite")
	t.Setenv("BOOKSTORE_DATABASE_DSN", "file:test.db")
	t.Setenv("BOOKSTORE_AUTH_ADMIN_EMAIL", "root@example.com")
	t.Setenv("BOOKSTORE_AUTH_ADMIN_PASSWORD", "rootpass1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file:test.db", cfg.Database.ConnectionString())
	assert.True(t, cfg.Auth.BootstrapAdmin())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad port", "server:\n  port: 70000\n"},
		{"bad driver", "database:\n  driver: oracle\n"},
		{"default secret in release", "server:\n  mode: release\n"},
		{"grpc clashes with http", "server:\n  port: 8080\ngrpc:\n  port: 8080\n"},
		{"mq without url", "mq:\n  enabled: true\n  url: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_MySQLDSN(t *testing.T) {
	d := DatabaseConfig{
		Driver: DriverMySQL, Host: "localhost", Port: 3306, User: "root", Password: "pw",
		DBName: "bookshop", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t, "root:pw@tcp(localhost:3306)/bookshop?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.ConnectionString())
	assert.Equal(t, "Asia/Shanghai", d.Location().String())
	assert.Equal(t, time.UTC, DatabaseConfig{Loc: "Not/AZone"}.Location())
}
