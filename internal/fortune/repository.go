package fortune

import (
	"context"
	"fmt"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository 是签文列表的存取接口
type Repository interface {
	// ReplaceAll 先清空再按顺序批量写入。
	// 两步之间没有事务保证，读取方必须容忍短暂的空列表。
	ReplaceAll(ctx context.Context, texts []string) error
	// All 按生成顺序返回全部签文
	All(ctx context.Context) ([]string, error)
	// Count 返回当前签文条数
	Count(ctx context.Context) (int64, error)
}

type mongoRepository struct {
	coll *mongo.Collection
}

// NewRepository 创建基于MongoDB的签文仓库
func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(database.FortunesCollection)}
}

func (r *mongoRepository) ReplaceAll(ctx context.Context, texts []string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("清空签文列表失败: %w", err)
	}
	if len(texts) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(texts))
	for i, t := range texts {
		docs = append(docs, Fortune{Text: t, Order: i})
	}
	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("批量写入签文失败: %w", err)
	}
	return nil
}

func (r *mongoRepository) All(ctx context.Context) ([]string, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("读取签文列表失败: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []Fortune
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("解析签文列表失败: %w", err)
	}
	texts := make([]string, 0, len(docs))
	for _, d := range docs {
		texts = append(texts, d.Text)
	}
	return texts, nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
