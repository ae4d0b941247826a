package trend

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 持有趋势模块的依赖
type Handler struct {
	service *Service
}

// NewHandler 创建趋势处理器
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Latest 处理 GET /trend，返回当前快照
func (h *Handler) Latest(c *gin.Context) {
	snapshot, err := h.service.Latest(c.Request.Context())
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			fmt.Printf("trend: 读取快照失败: %v\n", err)
		}
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "trend",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":     "success",
		"op":         "trend",
		"keywords":   snapshot.Keywords,
		"capturedAt": snapshot.CapturedAt,
		"source":     snapshot.Source,
	})
}
