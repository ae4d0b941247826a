package score

import (
	"context"
	"fmt"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository 是成绩数据的存取接口
type Repository interface {
	// Insert 插入一条成绩记录
	Insert(ctx context.Context, s *Score) error
	// Ranking 返回按分数从高到低排序的完整排行榜
	Ranking(ctx context.Context, game string) ([]Score, error)
}

// mongoRepository 是基于scores集合的Repository实现
type mongoRepository struct {
	coll *mongo.Collection
}

// NewRepository 创建基于MongoDB的成绩仓库
func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(database.ScoresCollection)}
}

func (r *mongoRepository) Insert(ctx context.Context, s *Score) error {
	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return fmt.Errorf("插入成绩失败: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return nil
}

func (r *mongoRepository) Ranking(ctx context.Context, game string) ([]Score, error) {
	filter := bson.M{}
	if game != "" {
		filter["game"] = game
	}
	// 不分页，排行榜整体返回
	opts := options.Find().SetSort(bson.D{{Key: "score", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("读取排行榜失败: %w", err)
	}
	defer cursor.Close(ctx)

	var list []Score
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("解析排行榜失败: %w", err)
	}
	return list, nil
}
