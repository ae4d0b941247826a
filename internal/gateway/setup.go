package gateway

import "go.mongodb.org/mongo-driver/mongo"

// SetupModule 组装更新网关并返回其处理器
func SetupModule(db *mongo.Database) *Handler {
	return NewHandler(NewService(db))
}
