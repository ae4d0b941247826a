package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB", "portal")
	t.Setenv("AUDIO_BUCKET", "audio")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	t.Setenv("DISCORD_CHANNEL_ID", "channel")
}

func TestLoadConfigWithRequiredEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_ADDRESS", ":9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "portal", cfg.Mongo.DB)
	// 默认值生效
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.True(t, cfg.Browser.Headless)
}

func TestLoadConfigFailsFastOnMissingKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GEMINI_API_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	// 诊断信息要点名缺的是哪个变量
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestBrowserConfigDefaults(t *testing.T) {
	var c BrowserConfig
	assert.Greater(t, c.NavTimeout().Seconds(), 0.0)
	assert.Greater(t, c.LoginWait().Seconds(), 0.0)
}
