package webscan

import (
	"github.com/SlpAus/minigame-portal-backend/internal/platform/config"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/messaging"
)

// SetupModule 组装抓取模块并返回其处理器
func SetupModule(cfg config.WebscanConfig, notifier messaging.Notifier) *Handler {
	return NewHandler(NewService(cfg.SearchURL, notifier))
}
