package sports

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler 持有体育数据模块的依赖
type Handler struct {
	fetcher Fetcher
}

// NewHandler 创建体育数据处理器
func NewHandler(fetcher Fetcher) *Handler {
	return &Handler{fetcher: fetcher}
}

// Fixtures 处理 GET /sports?date=YYYY-MM-DD，缺省为当天
func (h *Handler) Fixtures(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "sports",
			"message": "date格式应为YYYY-MM-DD",
		})
		return
	}

	matches, err := h.fetcher.FixturesByDate(c.Request.Context(), date)
	if err != nil {
		fmt.Printf("sports: 拉取比赛数据失败 (date=%s): %v\n", date, err)
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "sports",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  "success",
		"op":      "sports",
		"matches": matches,
	})
}
