package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 持有更新网关的依赖
type Handler struct {
	service *Service
}

// NewHandler 创建更新网关处理器
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Update 处理 POST /ops/update
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "update",
			"message": "请求格式错误: " + err.Error(),
		})
		return
	}

	if err := h.service.Apply(c.Request.Context(), req); err != nil {
		if !errors.Is(err, ErrUnknownOperation) {
			fmt.Printf("update: 操作 %s 失败: %v\n", req.Op, err)
		}
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "update",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": "success",
		"op":     "update",
	})
}
