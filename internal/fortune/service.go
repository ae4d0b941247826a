package fortune

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/ai"
)

// fortunePrompt 要求模型一行一条地生成签文
const fortunePrompt = "请生成30条今日运势短句，每行一条，积极向上，不要编号，不要任何额外说明。"

// listMarkerPattern 匹配行首的列表记号或编号
var listMarkerPattern = regexp.MustCompile(`^(\d+[.)]\s*|[-*]\s+)`)

// Service 封装签文列表的生成与读取
type Service struct {
	ai   ai.Completer
	repo Repository
}

// NewService 创建签文服务
func NewService(completer ai.Completer, repo Repository) *Service {
	return &Service{ai: completer, repo: repo}
}

// Regenerate 请求模型生成新一批签文并整体替换旧列表，返回写入的条数。
// 模型输出先经过ParseFortunes清理，清理后一条都不剩视为本次失败，旧列表保留。
func (s *Service) Regenerate(ctx context.Context) (int, error) {
	reply, err := s.ai.Complete(ctx, fortunePrompt)
	if err != nil {
		return 0, err
	}

	texts := ParseFortunes(reply)
	if len(texts) == 0 {
		return 0, fmt.Errorf("模型没有生成任何可用的签文")
	}

	if err := s.repo.ReplaceAll(ctx, texts); err != nil {
		return 0, err
	}
	return len(texts), nil
}

// List 返回当前的签文列表
func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.repo.All(ctx)
}

// Count 返回当前签文条数
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// ParseFortunes 把模型的多行回复清理成签文列表。
// 逐行修剪空白、去掉行首的列表记号；清理后仍以 - 开头的行
// 说明格式异常，整行丢弃。
func ParseFortunes(reply string) []string {
	var out []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = listMarkerPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		out = append(out, line)
	}
	return out
}
