package sports

import "github.com/SlpAus/minigame-portal-backend/internal/platform/config"

// SetupModule 组装体育数据模块并返回其处理器
func SetupModule(cfg config.SportsConfig) *Handler {
	return NewHandler(NewClient(cfg))
}
