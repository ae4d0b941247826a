package fortune

import "go.mongodb.org/mongo-driver/bson/primitive"

// Fortune 是fortunes集合中的一条签文
// 整个集合在每次重新生成时被整体替换，单条没有业务身份
type Fortune struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Text string             `bson:"text" json:"text"`
	// Order 保留生成时的顺序
	Order int `bson:"order" json:"order"`
}
