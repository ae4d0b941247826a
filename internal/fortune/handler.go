package fortune

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 持有签文模块的依赖
type Handler struct {
	service *Service
}

// NewHandler 创建签文处理器
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List 处理 GET /fortune，按顺序返回当前签文列表
func (h *Handler) List(c *gin.Context) {
	fortunes, err := h.service.List(c.Request.Context())
	if err != nil {
		fmt.Printf("fortune: 读取列表失败: %v\n", err)
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "fortune",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":   "success",
		"op":       "fortune",
		"fortunes": fortunes,
	})
}
