package score

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SaveScoreRequestBody 定义了提交成绩时请求体的JSON结构
// 对分数本身不做校验，负数或离谱的值照单全收
type SaveScoreRequestBody struct {
	Game  string  `json:"game" binding:"required"`
	Name  string  `json:"name" binding:"required"`
	Score float64 `json:"score"`
}

// Handler 持有成绩模块的依赖
type Handler struct {
	repo Repository
}

// NewHandler 创建成绩处理器
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// SaveScore 处理 POST /saveScore
// 插入一条成绩后立刻重新读取完整排行榜一并返回。
// 插入成功但重读失败时，以 result:"partial" 明确告知调用方，
// 而不是吞掉错误返回一个与存储状态不一致的响应。
func (h *Handler) SaveScore(c *gin.Context) {
	var body SaveScoreRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "saveScore",
			"message": "请求格式错误: " + err.Error(),
		})
		return
	}

	record := &Score{
		Game:      body.Game,
		Name:      body.Name,
		Score:     body.Score,
		CreatedAt: time.Now(),
	}
	if err := h.repo.Insert(c.Request.Context(), record); err != nil {
		fmt.Printf("saveScore: 插入失败 (game=%s name=%s): %v\n", body.Game, body.Name, err)
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "saveScore",
			"message": err.Error(),
		})
		return
	}

	ranking, err := h.repo.Ranking(c.Request.Context(), body.Game)
	if err != nil {
		// 记录已经落库，但排行榜读不出来
		fmt.Printf("saveScore: 插入成功但重读排行榜失败: %v\n", err)
		c.JSON(http.StatusOK, gin.H{
			"result":   "partial",
			"op":       "saveScore",
			"inserted": record,
			"message":  "成绩已保存，但排行榜读取失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":   "success",
		"op":       "saveScore",
		"inserted": record,
		"ranking":  ranking,
	})
}
