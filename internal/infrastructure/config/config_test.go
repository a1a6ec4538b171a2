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

func TestLoadFile(t *testing.T) {
	t.Run("文件值覆盖默认值", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 9000
jwt:
  access_secret: s1
  refresh_secret: s2
  access_token_expire: 5m
`)
		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "s1", cfg.JWT.AccessSecret)
		assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTokenExpire)
		// 未配置的项使用默认值
		assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpire)
		assert.Equal(t, "bookstore.events", cfg.MQ.Exchange)
		assert.Equal(t, 100, cfg.RateLimit.Requests)
	})

	t.Run("环境变量覆盖文件", func(t *testing.T) {
		path := writeConfig(t, "database:\n  password: from-file\n")
		t.Setenv("BOOKSTORE_DATABASE_PASSWORD", "from-env")
		t.Setenv("BOOKSTORE_SERVER_PORT", "8181")

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Database.Password)
		assert.Equal(t, 8181, cfg.Server.Port)
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"默认配置合法", "", false},
		{"端口越界", "server:\n  port: 70000\n", true},
		{"gRPC端口与HTTP冲突", "server:\n  port: 9090\ngrpc:\n  port: 9090\n", true},
		{"生产环境默认密钥", "server:\n  mode: release\n", true},
		{"生产环境自定义密钥", "server:\n  mode: release\njwt:\n  access_secret: prod-secret\n", false},
		{"限流次数为0", "rate_limit:\n  requests: 0\n", true},
		{"限流关闭时不校验", "rate_limit:\n  enabled: false\n  requests: 0\n", false},
		{"采样比例越界", "tracing:\n  sample_ratio: 2\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 3306, User: "u", Password: "p", DBName: "bookstore",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t, "u:p@tcp(db:3306)/bookstore?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
	assert.Equal(t, "localhost:6379", RedisConfig{Host: "localhost", Port: 6379}.Addr())
}
