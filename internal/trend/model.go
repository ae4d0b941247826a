package trend

import "time"

// snapshotKey 是快照的固定主键，每次运行原地覆盖，不保留历史
const snapshotKey = "latest"

// Snapshot 是一次趋势抓取的结果
type Snapshot struct {
	ID string `bson:"_id" json:"-"`
	// Keywords 按榜单顺序排列
	Keywords   []string  `bson:"keywords" json:"keywords"`
	CapturedAt time.Time `bson:"capturedAt" json:"capturedAt"`
	// Source 标记榜单来源站点
	Source string `bson:"source" json:"source"`
}
