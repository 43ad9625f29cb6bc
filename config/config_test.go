package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		MongoURI:       "mongodb://localhost:27017",
		JWTSecret:      "0123456789abcdef0123456789abcdef",
		BcryptCost:     10,
		RateLimitStore: "memory",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing mongo uri", func(c *Config) { c.MongoURI = "" }, "MONGO_URI"},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"short jwt secret", func(c *Config) { c.JWTSecret = "too-short" }, "at least 32"},
		{"bcrypt cost too low", func(c *Config) { c.BcryptCost = 3 }, "BCRYPT_COST"},
		{"bcrypt cost too high", func(c *Config) { c.BcryptCost = 32 }, "BCRYPT_COST"},
		{"unknown rate limit store", func(c *Config) { c.RateLimitStore = "memcached" }, "RATE_LIMIT_STORE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	c := Load()

	assert.Equal(t, "go-user-api", c.AppName)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, 168*time.Hour, c.JWTTTL)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "memory", c.RateLimitStore)
	assert.Equal(t, 100, c.RateLimitMax)
	assert.Equal(t, 15*time.Minute, c.RateLimitWindow)
	assert.Equal(t, 5, c.AuthLimitMax)
	assert.Equal(t, 15*time.Minute, c.AuthLimitWindow)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "42")
	t.Setenv("AUTH_LIMIT_WINDOW", "1m")
	t.Setenv("RATE_LIMIT_STORE", "redis")

	c := Load()
	assert.Equal(t, 42, c.RateLimitMax)
	assert.Equal(t, time.Minute, c.AuthLimitWindow)
	assert.Equal(t, "redis", c.RateLimitStore)
}

func TestSplitCSV(t *testing.T) {
	c := &Config{
		CORSAllowedOrigins: "https://a.example, https://b.example ,,",
		ElasticsearchAddrs: "",
	}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins())
	assert.Empty(t, c.ESAddrs())
}
