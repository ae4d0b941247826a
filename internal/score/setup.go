package score

import "go.mongodb.org/mongo-driver/mongo"

// SetupModule 组装成绩模块并返回其处理器
func SetupModule(db *mongo.Database) *Handler {
	return NewHandler(NewRepository(db))
}
