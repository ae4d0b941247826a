package fortune

import (
	"github.com/SlpAus/minigame-portal-backend/internal/platform/ai"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupModule 组装签文模块，返回处理器与服务
// 服务会同时被调度器用作定时任务
func SetupModule(completer ai.Completer, db *mongo.Database) (*Handler, *Service) {
	service := NewService(completer, NewRepository(db))
	return NewHandler(service), service
}
