package gateway

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/database"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrUnknownOperation 表示操作标签不在封闭集合内。
// 未知标签必须在触库之前被拒绝，否则会以空过滤器upsert出一条失控的文档。
var ErrUnknownOperation = errors.New("未知的操作标签")

// Operation 是更新操作的封闭枚举
type Operation string

const (
	// OpBalanceAdjust 原子增减用户在某站点的余额
	OpBalanceAdjust Operation = "balance.adjust"
	// OpSiteRegister 注册或合并站点信息
	OpSiteRegister Operation = "site.register"
	// OpIssueTrack 按站点+轮次记录问题单
	OpIssueTrack Operation = "issue.track"
	// OpFileAdd / OpFileRemove 维护站点的文件清单
	OpFileAdd    Operation = "file.add"
	OpFileRemove Operation = "file.remove"
)

// UpdateRequest 携带一次更新操作的全部业务键和字段
type UpdateRequest struct {
	Op     Operation              `json:"op"`
	Site   string                 `json:"site"`
	Round  string                 `json:"round"`
	UserID string                 `json:"userId"`
	Amount float64                `json:"amount"`
	File   string                 `json:"file"`
	Fields map[string]interface{} `json:"fields"`
}

// upsertPlan 是一次操作对应的{集合, 过滤器, 更新文档}三元组
type upsertPlan struct {
	collection string
	filter     bson.M
	update     bson.M
	// upsert 为false的操作(如文件移除)不允许凭空建档
	upsert bool
}

// buildPlan 把操作请求翻译成强类型的更新计划。
// 每个操作都要求完整的业务键：过滤器是唯一性的全部保证，
// 键不完整的请求在这里就被拒绝，避免串改到别的记录。
func buildPlan(req UpdateRequest, now time.Time) (*upsertPlan, error) {
	switch req.Op {
	case OpBalanceAdjust:
		if req.Site == "" || req.UserID == "" {
			return nil, fmt.Errorf("balance.adjust 需要 site 和 userId")
		}
		return &upsertPlan{
			collection: database.BalancesCollection,
			filter:     bson.M{"site": req.Site, "userId": req.UserID},
			update: bson.M{
				"$inc": bson.M{"balance": req.Amount},
				"$set": bson.M{"updatedAt": now},
			},
			upsert: true,
		}, nil

	case OpSiteRegister:
		if req.Site == "" {
			return nil, fmt.Errorf("site.register 需要 site")
		}
		set := bson.M{"site": req.Site, "updatedAt": now}
		for k, v := range req.Fields {
			set[k] = v
		}
		return &upsertPlan{
			collection: database.SitesCollection,
			filter:     bson.M{"site": req.Site},
			update: bson.M{
				"$set":         set,
				"$setOnInsert": bson.M{"createdAt": now},
			},
			upsert: true,
		}, nil

	case OpIssueTrack:
		if req.Site == "" || req.Round == "" {
			return nil, fmt.Errorf("issue.track 需要 site 和 round")
		}
		set := bson.M{"site": req.Site, "round": req.Round, "updatedAt": now}
		for k, v := range req.Fields {
			set[k] = v
		}
		return &upsertPlan{
			collection: database.IssuesCollection,
			filter:     bson.M{"site": req.Site, "round": req.Round},
			update:     bson.M{"$set": set},
			upsert:     true,
		}, nil

	case OpFileAdd:
		if req.Site == "" || req.File == "" {
			return nil, fmt.Errorf("file.add 需要 site 和 file")
		}
		return &upsertPlan{
			collection: database.SitesCollection,
			filter:     bson.M{"site": req.Site},
			update:     bson.M{"$addToSet": bson.M{"files": req.File}},
			upsert:     true,
		}, nil

	case OpFileRemove:
		if req.Site == "" || req.File == "" {
			return nil, fmt.Errorf("file.remove 需要 site 和 file")
		}
		return &upsertPlan{
			collection: database.SitesCollection,
			filter:     bson.M{"site": req.Site},
			update:     bson.M{"$pull": bson.M{"files": req.File}},
			upsert:     false,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, req.Op)
	}
}
