package database

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// 各业务域的集合名
const (
	ScoresCollection   = "scores"
	FortunesCollection = "fortunes"
	TrendsCollection   = "trends"
	SitesCollection    = "sites"
	IssuesCollection   = "issues"
	BalancesCollection = "balances"
)

// Mongo 持有进程生命周期内复用的数据库句柄
// 由main建立一次后显式注入到各模块，连接池策略完全交给驱动本身
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
	// Audio 是保存上传音频的GridFS桶
	Audio *gridfs.Bucket
}

// InitMongo 初始化与文档数据库的连接
func InitMongo(cfg config.MongoConfig) *Mongo {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		panic("无法连接到MongoDB: " + err.Error())
	}

	// 用Ping确认连接可用，失败时直接退出
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		panic("MongoDB Ping失败: " + err.Error())
	}

	db := client.Database(cfg.DB)

	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(cfg.AudioBucket))
	if err != nil {
		panic("无法创建GridFS桶: " + err.Error())
	}

	fmt.Println("MongoDB 连接成功！")
	return &Mongo{Client: client, DB: db, Audio: bucket}
}

// Close 在停机时断开数据库连接
func (m *Mongo) Close(ctx context.Context) {
	if m == nil || m.Client == nil {
		return
	}
	if err := m.Client.Disconnect(ctx); err != nil {
		fmt.Printf("MongoDB 断开连接出错: %v\n", err)
	} else {
		fmt.Println("MongoDB 连接已关闭。")
	}
}
