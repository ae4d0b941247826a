package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/config"
	"google.golang.org/genai"
)

// ErrInvalidResponseStructure 表示模型返回的内容不符合要求的结构
// (例如要求JSON却返回了散文)。它与网络/配额类错误区分开，
// 调用方可以据此选择用更严格的提示词重试。
var ErrInvalidResponseStructure = errors.New("模型返回的结构不符合要求")

// Completer 是生成式AI能力的抽象，便于在测试中注入替身
type Completer interface {
	// Complete 发送一次补全请求并返回完整文本
	Complete(ctx context.Context, prompt string) (string, error)
	// CompleteStream 发送流式补全请求，每收到一个片段就按序调用emit
	CompleteStream(ctx context.Context, prompt string, emit func(string) error) error
	// Transcribe 把音频数据转写为文本
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Client 是基于google genai的Completer实现
type Client struct {
	client *genai.Client
	model  string
}

// NewClient 创建生成式AI客户端
func NewClient(ctx context.Context, cfg config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("AI API key 不能为空")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("创建genai客户端失败: %w", err)
	}
	return &Client{client: client, model: cfg.Model}, nil
}

// Complete 实现Completer
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("genai补全失败: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("genai未返回任何文本")
	}
	return text, nil
}

// CompleteStream 实现Completer
// 片段严格按照上游到达顺序转发，不做缓冲或重排
func (c *Client) CompleteStream(ctx context.Context, prompt string, emit func(string) error) error {
	for resp, err := range c.client.Models.GenerateContentStream(ctx, c.model, genai.Text(prompt), nil) {
		if err != nil {
			return fmt.Errorf("genai流式补全失败: %w", err)
		}
		chunk := resp.Text()
		if chunk == "" {
			continue
		}
		if err := emit(chunk); err != nil {
			return err
		}
	}
	return nil
}

// Transcribe 实现Completer，通过内联音频部件请求转写
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText("请逐字转写这段音频的内容，只输出转写文本。"),
		genai.NewPartFromBytes(audio, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("genai音频转写失败: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("genai转写未返回任何文本")
	}
	return text, nil
}

// ParseStringList 把要求为JSON字符串数组的模型回复解析出来。
// 模型经常把JSON包在Markdown代码块里，这里先剥掉围栏再解析。
// 解析失败返回ErrInvalidResponseStructure。
func ParseStringList(reply string) ([]string, error) {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var items []string
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponseStructure, err)
	}
	return items, nil
}
