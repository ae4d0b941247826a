package webscan

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/messaging"
	"golang.org/x/sync/errgroup"
)

// resultSelector 匹配搜索结果的标题节点
const resultSelector = "h3"

// Service 负责抓取搜索结果页并对每个命中项发出通知
type Service struct {
	client    *http.Client
	searchURL string
	notifier  messaging.Notifier
}

// NewService 创建抓取服务
func NewService(searchURL string, notifier messaging.Notifier) *Service {
	return &Service{
		client:    &http.Client{Timeout: 20 * time.Second},
		searchURL: searchURL,
		notifier:  notifier,
	}
}

// Scrape 拉取搜索结果页面，返回标题中包含查询词的条目
func (s *Service) Scrape(ctx context.Context, query string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.searchURL+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	// 不带UA的请求常被搜索站直接拒绝
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("抓取搜索页失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("搜索页返回状态 %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("解析搜索页失败: %w", err)
	}

	lowered := strings.ToLower(query)
	var matched []string
	doc.Find(resultSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		if strings.Contains(strings.ToLower(text), lowered) {
			matched = append(matched, text)
		}
	})
	return matched, nil
}

// NotifyMatches 对每个命中项并发发送通知，并等待全部完成。
// 单条通知的失败会被收集返回，不会被静默丢弃，也不会取消其余通知。
func (s *Service) NotifyMatches(ctx context.Context, query string, matches []string) (notified int, failures []string) {
	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	g.SetLimit(4)

	for _, m := range matches {
		match := m
		g.Go(func() error {
			err := s.notifier.Notify(ctx, fmt.Sprintf("[抓取命中] %s: %s", query, match))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", match, err))
			} else {
				notified++
			}
			return nil
		})
	}
	_ = g.Wait()
	return notified, failures
}
