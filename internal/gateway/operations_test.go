package gateway

import (
	"testing"
	"time"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var now = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestBuildPlanBalanceAdjust(t *testing.T) {
	plan, err := buildPlan(UpdateRequest{
		Op:     OpBalanceAdjust,
		Site:   "wallball",
		UserID: "u-1",
		Amount: -50,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, database.BalancesCollection, plan.collection)
	assert.Equal(t, bson.M{"site": "wallball", "userId": "u-1"}, plan.filter)
	// 余额调整必须是原子自增，而不是读改写
	assert.Equal(t, bson.M{"balance": -50.0}, plan.update["$inc"])
	assert.True(t, plan.upsert)
}

func TestBuildPlanSiteRegisterMergesFields(t *testing.T) {
	plan, err := buildPlan(UpdateRequest{
		Op:     OpSiteRegister,
		Site:   "wallball",
		Fields: map[string]interface{}{"owner": "alice"},
	}, now)
	require.NoError(t, err)

	assert.Equal(t, database.SitesCollection, plan.collection)
	assert.Equal(t, bson.M{"site": "wallball"}, plan.filter)
	set := plan.update["$set"].(bson.M)
	assert.Equal(t, "alice", set["owner"])
	assert.Equal(t, "wallball", set["site"])
}

func TestBuildPlanIssueTrackFilterIsComposite(t *testing.T) {
	plan, err := buildPlan(UpdateRequest{
		Op:    OpIssueTrack,
		Site:  "wallball",
		Round: "2026-08",
	}, now)
	require.NoError(t, err)

	// 过滤器是唯一性的全部保证，必须带全业务键
	assert.Equal(t, bson.M{"site": "wallball", "round": "2026-08"}, plan.filter)
}

func TestBuildPlanFileOps(t *testing.T) {
	add, err := buildPlan(UpdateRequest{Op: OpFileAdd, Site: "s", File: "a.png"}, now)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$addToSet": bson.M{"files": "a.png"}}, add.update)
	assert.True(t, add.upsert)

	remove, err := buildPlan(UpdateRequest{Op: OpFileRemove, Site: "s", File: "a.png"}, now)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$pull": bson.M{"files": "a.png"}}, remove.update)
	// 移除操作不允许凭空建档
	assert.False(t, remove.upsert)
}

func TestBuildPlanRejectsUnknownOperation(t *testing.T) {
	_, err := buildPlan(UpdateRequest{Op: "bet.settle", Site: "s"}, now)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestBuildPlanRejectsIncompleteKeys(t *testing.T) {
	cases := []UpdateRequest{
		{Op: OpBalanceAdjust, Site: "s"},   // 缺userId
		{Op: OpBalanceAdjust, UserID: "u"}, // 缺site
		{Op: OpSiteRegister},               // 缺site
		{Op: OpIssueTrack, Site: "s"},      // 缺round
		{Op: OpFileAdd, Site: "s"},         // 缺file
		{Op: OpFileRemove, File: "f"},      // 缺site
	}
	for _, req := range cases {
		_, err := buildPlan(req, now)
		assert.Error(t, err, "op=%s", req.Op)
		// 键不全是调用方错误，不是未知标签
		assert.NotErrorIs(t, err, ErrUnknownOperation)
	}
}
