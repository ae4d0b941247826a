package assistant

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SearchRequestBody 定义了 /search 请求体
type SearchRequestBody struct {
	Prompt string `json:"prompt"`
	Data   string `json:"data"`
}

// GenerateRequestBody 定义了 /generate 请求体
type GenerateRequestBody struct {
	Prompt string `json:"prompt"`
}

// AudioRequestBody 定义了 /processAudio 请求体，音频为base64编码
type AudioRequestBody struct {
	Audio string `json:"audio"`
}

// Handler 持有问答模块的依赖
type Handler struct {
	service *Service
}

// NewHandler 创建问答处理器
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Search 处理 POST /search
// 任何上游错误都转换为fail信封，绝不向传输层抛出
func (h *Handler) Search(c *gin.Context) {
	var body SearchRequestBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Prompt == "" {
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "search",
			"message": "缺少prompt字段",
		})
		return
	}

	message, err := h.service.Answer(c.Request.Context(), body.Prompt, body.Data)
	if err != nil {
		fmt.Printf("search: 问答失败 (prompt=%s): %v\n", truncate(body.Prompt, 80), err)
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "search",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  "success",
		"op":      "search",
		"message": message,
	})
}

// Generate 处理 POST /generate
// 模型每返回一个片段就立刻用分块传输写给客户端，上游流结束后关闭连接
func (h *Handler) Generate(c *gin.Context) {
	var body GenerateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Prompt == "" {
		// 流还没开始，仍然可以返回标准的fail信封
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "generate",
			"message": "缺少prompt字段",
		})
		return
	}

	// 不设置Content-Length，net/http会自动采用分块传输
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)

	err := h.service.AnswerStream(c.Request.Context(), body.Prompt, func(chunk string) error {
		if _, err := c.Writer.WriteString(chunk); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		// 响应可能已经部分写出，只能记录后结束
		fmt.Printf("generate: 流式补全中断: %v\n", err)
	}
}

// ProcessAudio 处理 POST /processAudio
// 解码并归档音频，转写后按普通问答返回
func (h *Handler) ProcessAudio(c *gin.Context) {
	var body AudioRequestBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Audio == "" {
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "search",
			"message": "缺少audio字段",
		})
		return
	}

	name := "audio-" + uuid.NewString() + ".webm"
	message, err := h.service.TranscribeAndAnswer(c.Request.Context(), body.Audio, name)
	if err != nil {
		fmt.Printf("processAudio: 处理失败: %v\n", err)
		c.JSON(http.StatusOK, gin.H{
			"result":  "fail",
			"op":      "search",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  "success",
		"op":      "search",
		"message": message,
	})
}

// truncate 截断过长的文本，日志里不需要完整的请求内容
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
