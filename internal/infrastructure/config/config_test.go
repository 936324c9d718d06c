package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// 测试目录下没有config.yaml，全部使用默认值
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 10*time.Minute, cfg.Redis.BookTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.MQ.Enabled)
	assert.Equal(t, "bookcatalog.events", cfg.MQ.Exchange)
	assert.Equal(t, uint32(5), cfg.MQ.BreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.MQ.BreakerTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  mode: release
database:
  driver: sqlite
  path: /tmp/books.db
redis:
  enabled: true
  host: cache
  port: 6380
  book_ttl: 30s
log:
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/books.db?_pragma=busy_timeout(5000)", cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr())
	assert.Equal(t, 30*time.Second, cfg.Redis.BookTTL)
	assert.Equal(t, "json", cfg.Log.Format)
	// 文件未设置的key保留默认值
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
`)
	t.Setenv("BOOKCATALOG_SERVER_PORT", "7070")
	t.Setenv("BOOKCATALOG_DATABASE_PASSWORD", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"端口越界", "server:\n  port: 70000\n"},
		{"未知运行模式", "server:\n  mode: prod\n"},
		{"未知数据库驱动", "database:\n  driver: oracle\n"},
		{"sqlite缺少路径", "database:\n  driver: sqlite\n  path: \"\"\n"},
		{"启用MQ缺少exchange", "mq:\n  enabled: true\n  exchange: \"\"\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	mysql := DatabaseConfig{
		Driver: DriverMySQL, Host: "db", Port: 3306, User: "root", Password: "pw",
		DBName: "books", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t, "root:pw@tcp(db:3306)/books?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", mysql.DSN())

	pg := DatabaseConfig{
		Driver: DriverPostgres, Host: "pg", Port: 5432, User: "app", Password: "pw",
		DBName: "books", SSLMode: "disable", Loc: "UTC",
	}
	assert.Equal(t, "host=pg port=5432 user=app password=pw dbname=books sslmode=disable TimeZone=UTC", pg.DSN())
}

func TestDatabaseConfig_SQLiteDSN(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"bookcatalog.db", "bookcatalog.db?_pragma=busy_timeout(5000)"},
		{"file::memory:?cache=shared", "file::memory:?cache=shared&_pragma=busy_timeout(5000)"},
	}

	for _, tc := range testCases {
		d := DatabaseConfig{Driver: DriverSQLite, Path: tc.path}
		assert.Equal(t, tc.want, d.DSN())
	}
}

// 仓库自带的config.yaml默认使用sqlite,只开一个连接避免并发写冲突
func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "config", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.Contains(t, cfg.Database.DSN(), "busy_timeout")
}
