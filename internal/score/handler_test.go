package score

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository 按分数倒序维护一份内存排行榜
type memoryRepository struct {
	records    []Score
	insertErr  error
	rankingErr error
}

func (r *memoryRepository) Insert(_ context.Context, s *Score) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.records = append(r.records, *s)
	return nil
}

func (r *memoryRepository) Ranking(_ context.Context, game string) ([]Score, error) {
	if r.rankingErr != nil {
		return nil, r.rankingErr
	}
	list := make([]Score, 0, len(r.records))
	for _, s := range r.records {
		if game == "" || s.Game == game {
			list = append(list, s)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Score > list[j].Score })
	return list, nil
}

func newTestRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/saveScore", NewHandler(repo).SaveScore)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSaveScoreReturnsSortedRanking(t *testing.T) {
	repo := &memoryRepository{records: []Score{
		{Game: "wallballshot", Name: "Bob", Score: 10},
		{Game: "wallballshot", Name: "Carol", Score: 99},
	}}
	r := newTestRouter(repo)

	w := postJSON(r, "/saveScore", `{"game":"wallballshot","name":"Alice","score":42}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result   string  `json:"result"`
		Op       string  `json:"op"`
		Inserted Score   `json:"inserted"`
		Ranking  []Score `json:"ranking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "success", resp.Result)
	assert.Equal(t, "saveScore", resp.Op)
	assert.Equal(t, "Alice", resp.Inserted.Name)
	// 服务端打的时间戳
	assert.False(t, resp.Inserted.CreatedAt.IsZero())

	// 排行榜按分数非递增排序
	require.Len(t, resp.Ranking, 3)
	for i := 1; i < len(resp.Ranking); i++ {
		assert.GreaterOrEqual(t, resp.Ranking[i-1].Score, resp.Ranking[i].Score)
	}
	// 42不是最大值，榜首应当比42高
	assert.Greater(t, resp.Ranking[0].Score, 42.0)
}

func TestSaveScoreAcceptsAbsurdValues(t *testing.T) {
	// 不对分数做校验，负数照单全收
	repo := &memoryRepository{}
	r := newTestRouter(repo)

	w := postJSON(r, "/saveScore", `{"game":"g","name":"n","score":-9999}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"result":"success"`)
}

func TestSaveScoreMissingFieldsRejectedBeforeInsert(t *testing.T) {
	repo := &memoryRepository{}
	r := newTestRouter(repo)

	w := postJSON(r, "/saveScore", `{"score":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"result":"fail"`)
	assert.Empty(t, repo.records)
}

func TestSaveScoreInsertFailure(t *testing.T) {
	repo := &memoryRepository{insertErr: errors.New("数据库不可达")}
	r := newTestRouter(repo)

	w := postJSON(r, "/saveScore", `{"game":"g","name":"n","score":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"result":"fail"`)
}

func TestSaveScorePartialFailureWhenRereadFails(t *testing.T) {
	// 插入成功但重读失败时，必须以partial明确暴露，不能装作成功
	repo := &memoryRepository{rankingErr: errors.New("读超时")}
	r := newTestRouter(repo)

	w := postJSON(r, "/saveScore", `{"game":"g","name":"n","score":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result   string `json:"result"`
		Inserted Score  `json:"inserted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "partial", resp.Result)
	assert.Equal(t, "n", resp.Inserted.Name)
	require.Len(t, repo.records, 1)
}
