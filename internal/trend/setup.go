package trend

import (
	"net/url"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/ai"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/browser"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/config"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupModule 组装趋势模块，返回处理器与服务
// 服务会同时被调度器用作整点任务
func SetupModule(manager *browser.Manager, completer ai.Completer, cfg config.BrowserConfig, db *mongo.Database) (*Handler, *Service) {
	service := NewService(NewScraper(manager, cfg), completer, NewRepository(db), sourceLabel(cfg.TrendURL))
	return NewHandler(service), service
}

// sourceLabel 从榜单地址提取来源标记，解析失败时用原始地址
func sourceLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
