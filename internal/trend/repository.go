package trend

import (
	"context"
	"errors"
	"fmt"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoSnapshot 表示还没有任何一次成功的抓取
var ErrNoSnapshot = errors.New("尚无趋势快照")

// Repository 是趋势快照的存取接口
type Repository interface {
	// Save 以固定主键覆盖写入快照
	Save(ctx context.Context, s *Snapshot) error
	// Latest 返回当前快照
	Latest(ctx context.Context) (*Snapshot, error)
}

type mongoRepository struct {
	coll *mongo.Collection
}

// NewRepository 创建基于MongoDB的快照仓库
func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(database.TrendsCollection)}
}

func (r *mongoRepository) Save(ctx context.Context, s *Snapshot) error {
	s.ID = snapshotKey
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": snapshotKey},
		s,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("写入趋势快照失败: %w", err)
	}
	return nil
}

func (r *mongoRepository) Latest(ctx context.Context) (*Snapshot, error) {
	var s Snapshot
	err := r.coll.FindOne(ctx, bson.M{"_id": snapshotKey}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("读取趋势快照失败: %w", err)
	}
	return &s, nil
}
