package startup

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/minigame-portal-backend/internal/fortune"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InitializeApplication 是应用启动时执行的总入口
func InitializeApplication(fortuneService *fortune.Service, db *mongo.Database) error {
	fmt.Println("开始应用初始化...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 排行榜按分数倒序读取，建一个普通索引。
	// 各集合的唯一性只靠upsert时的过滤器保证，这里不建唯一索引。
	_, err := db.Collection(database.ScoresCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "score", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("创建成绩索引失败: %w", err)
	}

	// 首次启动时签文列表为空，先生成一批，失败不阻塞启动
	count, err := fortuneService.Count(ctx)
	if err != nil {
		return fmt.Errorf("检查签文列表失败: %w", err)
	}
	if count == 0 {
		fmt.Println("签文列表为空，正在生成首批签文...")
		if n, err := fortuneService.Regenerate(ctx); err != nil {
			fmt.Printf("首批签文生成失败 (等待下一次定时任务): %v\n", err)
		} else {
			fmt.Printf("首批签文生成完成，共 %d 条。\n", n)
		}
	}

	fmt.Println("应用初始化完成！")
	return nil
}
