package score

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Score 是scores集合中的一条成绩记录
// 只有插入和读取两条路径，没有更新或删除
type Score struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	// Game 是小游戏的名字，例如 wallballshot
	Game  string  `bson:"game" json:"game"`
	Name  string  `bson:"name" json:"name"`
	Score float64 `bson:"score" json:"score"`
	// CreatedAt 由服务端在插入时打上，不信任客户端时间
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
