package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 所有配置项都通过环境变量提供，例如 SERVER_ADDRESS=:9090
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	AI        AIConfig        `mapstructure:"ai"`
	Messaging MessagingConfig `mapstructure:"messaging"`
	Browser   BrowserConfig   `mapstructure:"browser"`
	Sports    SportsConfig    `mapstructure:"sports"`
	Webscan   WebscanConfig   `mapstructure:"webscan"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// MongoConfig 定义了文档数据库的连接配置
type MongoConfig struct {
	URI string `mapstructure:"uri"`
	DB  string `mapstructure:"db"`
	// AudioBucket 是保存上传音频的GridFS桶名
	AudioBucket string `mapstructure:"audioBucket"`
}

// AIConfig 定义了生成式AI服务的配置
type AIConfig struct {
	APIKey string `mapstructure:"apiKey"`
	Model  string `mapstructure:"model"`
}

// MessagingConfig 定义了消息网关(Discord)的配置
type MessagingConfig struct {
	BotToken  string `mapstructure:"botToken"`
	ChannelID string `mapstructure:"channelId"`
}

// BrowserConfig 定义了浏览器自动化相关的配置
type BrowserConfig struct {
	// ProfileDir 是浏览器用户数据目录，登录状态跨进程保留
	ProfileDir string `mapstructure:"profileDir"`
	Headless   bool   `mapstructure:"headless"`
	// TrendURL 是趋势榜单页面的地址
	TrendURL string `mapstructure:"trendUrl"`
	// NavTimeoutSec / LoginWaitSec 均以秒为单位
	NavTimeoutSec int `mapstructure:"navTimeoutSec"`
	LoginWaitSec  int `mapstructure:"loginWaitSec"`
}

// SportsConfig 定义了体育数据API的配置
type SportsConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	APIKey  string `mapstructure:"apiKey"`
}

// WebscanConfig 定义了搜索结果抓取的配置
type WebscanConfig struct {
	SearchURL string `mapstructure:"searchUrl"`
}

// NavTimeout 返回单次导航/等待的超时
func (c BrowserConfig) NavTimeout() time.Duration {
	if c.NavTimeoutSec <= 0 {
		return 45 * time.Second
	}
	return time.Duration(c.NavTimeoutSec) * time.Second
}

// LoginWait 返回首次运行时等待手动登录的窗口
func (c BrowserConfig) LoginWait() time.Duration {
	if c.LoginWaitSec <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(c.LoginWaitSec) * time.Second
}

// LoadConfig 函数负责加载和校验全部配置
// 它先读取可选的.env文件，再通过viper绑定环境变量
func LoadConfig() (*Config, error) {
	// .env文件不存在时静默跳过
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 默认值
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("browser.profileDir", "./.browser-profile")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.trendUrl", "https://trends.google.com/trending?geo=KR")
	v.SetDefault("webscan.searchUrl", "https://www.google.com/search?q=")

	// 显式绑定各项环境变量，保证Unmarshal时能读到
	for key, env := range map[string]string{
		"server.address":        "SERVER_ADDRESS",
		"mongo.uri":             "MONGO_URI",
		"mongo.db":              "MONGO_DB",
		"mongo.audioBucket":     "AUDIO_BUCKET",
		"ai.apiKey":             "GEMINI_API_KEY",
		"ai.model":              "GEMINI_MODEL",
		"messaging.botToken":    "DISCORD_BOT_TOKEN",
		"messaging.channelId":   "DISCORD_CHANNEL_ID",
		"browser.profileDir":    "BROWSER_PROFILE_DIR",
		"browser.headless":      "BROWSER_HEADLESS",
		"browser.trendUrl":      "TREND_URL",
		"browser.navTimeoutSec": "TREND_NAV_TIMEOUT_SEC",
		"browser.loginWaitSec":  "TREND_LOGIN_WAIT_SEC",
		"sports.baseUrl":        "SPORTS_API_URL",
		"sports.apiKey":         "SPORTS_API_KEY",
		"webscan.searchUrl":     "SEARCH_URL",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 必需项缺失时立刻失败，避免下游出现难以定位的错误
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	Cfg = &cfg
	return Cfg, nil
}

func (c *Config) validate() error {
	required := []struct {
		env string
		val string
	}{
		{"MONGO_URI", c.Mongo.URI},
		{"MONGO_DB", c.Mongo.DB},
		{"AUDIO_BUCKET", c.Mongo.AudioBucket},
		{"GEMINI_API_KEY", c.AI.APIKey},
		{"DISCORD_BOT_TOKEN", c.Messaging.BotToken},
		{"DISCORD_CHANNEL_ID", c.Messaging.ChannelID},
	}
	var missing []string
	for _, r := range required {
		if r.val == "" {
			missing = append(missing, r.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("缺少必需的环境变量: %s", strings.Join(missing, ", "))
	}
	return nil
}
