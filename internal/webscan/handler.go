package webscan

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ScrapeRequestBody 定义了 /scrapeSearch 请求体
type ScrapeRequestBody struct {
	Query string `json:"query"`
}

// Handler 持有抓取模块的依赖
type Handler struct {
	service *Service
}

// NewHandler 创建抓取处理器
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ScrapeSearch 处理 POST /scrapeSearch
// 抓取本身失败属于不可恢复的内部错误，返回500；
// 个别通知失败不影响整体结果，以failed/errors的形式报告
func (h *Handler) ScrapeSearch(c *gin.Context) {
	var body ScrapeRequestBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Query == "" {
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "scrapeSearch",
			"message": "缺少query字段",
		})
		return
	}

	matches, err := h.service.Scrape(c.Request.Context(), body.Query)
	if err != nil {
		fmt.Printf("scrapeSearch: 抓取失败 (query=%s): %v\n", body.Query, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"result":  "fail",
			"op":      "scrapeSearch",
			"message": err.Error(),
		})
		return
	}

	notified, failures := h.service.NotifyMatches(c.Request.Context(), body.Query, matches)

	c.JSON(http.StatusOK, gin.H{
		"result":   "success",
		"op":       "scrapeSearch",
		"matched":  len(matches),
		"notified": notified,
		"failed":   len(failures),
		"errors":   failures,
	})
}
