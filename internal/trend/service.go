package trend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/ai"
)

// summarizePrompt 要求模型把页面原始文本整理成排好序的关键词JSON数组
const summarizePrompt = "下面是从趋势榜单页面提取的原始文本。请按榜单顺序整理出关键词，严格输出JSON字符串数组，例如 [\"关键词1\",\"关键词2\"]，不要输出其他任何内容。\n\n"

// Service 编排一次趋势抓取运行：抓取、总结、落库
type Service struct {
	scraper Scraper
	ai      ai.Completer
	repo    Repository
	source  string
}

// NewService 创建趋势服务
func NewService(scraper Scraper, completer ai.Completer, repo Repository, source string) *Service {
	return &Service{scraper: scraper, ai: completer, repo: repo, source: source}
}

// RunOnce 执行一次完整的抓取运行。
// 相同的页面内容会产出相同的关键词序列，只有时间戳不同。
func (s *Service) RunOnce(ctx context.Context) error {
	texts, err := s.scraper.Scrape(ctx)
	if err != nil {
		return err
	}

	keywords, err := s.Summarize(ctx, texts)
	if err != nil {
		return err
	}

	snapshot := &Snapshot{
		Keywords:   keywords,
		CapturedAt: time.Now(),
		Source:     s.source,
	}
	if err := s.repo.Save(ctx, snapshot); err != nil {
		return err
	}
	fmt.Printf("趋势抓取: 快照已更新，共 %d 个关键词。\n", len(keywords))
	return nil
}

// Summarize 让模型把原始文本总结成关键词序列。
// 模型必须返回JSON数组；返回散文时得到的是结构错误，
// 与网络错误区分开，便于上层用更严格的提示词重试。
func (s *Service) Summarize(ctx context.Context, texts []string) ([]string, error) {
	reply, err := s.ai.Complete(ctx, summarizePrompt+strings.Join(texts, "\n"))
	if err != nil {
		return nil, err
	}
	keywords, err := ai.ParseStringList(reply)
	if err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: 关键词列表为空", ai.ErrInvalidResponseStructure)
	}
	return keywords, nil
}

// Latest 返回当前快照
func (s *Service) Latest(ctx context.Context) (*Snapshot, error) {
	return s.repo.Latest(ctx)
}
