package gateway

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Service 执行封闭枚举内的更新操作
type Service struct {
	db *mongo.Database
}

// NewService 创建更新网关服务
func NewService(db *mongo.Database) *Service {
	return &Service{db: db}
}

// Apply 校验并执行一次更新操作。
// 计划构建失败(未知标签、业务键不全)时不会发生任何数据库调用。
func (s *Service) Apply(ctx context.Context, req UpdateRequest) error {
	plan, err := buildPlan(req, time.Now())
	if err != nil {
		return err
	}

	_, err = s.db.Collection(plan.collection).UpdateOne(
		ctx,
		plan.filter,
		plan.update,
		options.Update().SetUpsert(plan.upsert),
	)
	if err != nil {
		return fmt.Errorf("执行 %s 失败: %w", req.Op, err)
	}
	return nil
}
