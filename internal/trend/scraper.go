package trend

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/browser"
	"github.com/SlpAus/minigame-portal-backend/internal/platform/config"
)

// 榜单条目的DOM选择器，主选择器拿不到结果时退回备用选择器
const (
	primarySelector  = ".mZ3RIc"
	fallbackSelector = "table tbody tr td:nth-child(2)"
)

// Scraper 负责拿到榜单页面上的原始文本
type Scraper interface {
	Scrape(ctx context.Context) ([]string, error)
}

// rodScraper 用绑定到固定用户数据目录的浏览器会话抓取榜单
type rodScraper struct {
	manager *browser.Manager
	cfg     config.BrowserConfig
}

// NewScraper 创建基于浏览器自动化的抓取器
func NewScraper(manager *browser.Manager, cfg config.BrowserConfig) Scraper {
	return &rodScraper{manager: manager, cfg: cfg}
}

// Scrape 执行一次完整的抓取：导航、等待动态内容、提取文本。
// 等待超时是可恢复的，记录后继续用页面上已有的内容；
// 但如果最终一条文本都没拿到，则视为本次运行的硬失败。
// 无论从哪条路径返回，浏览器会话都会被关闭。
func (s *rodScraper) Scrape(ctx context.Context) ([]string, error) {
	session, err := s.manager.Open(ctx)
	if err != nil {
		return nil, err
	}
	// 任何退出路径都必须释放会话，否则下一轮运行会撞上同一个目录
	defer session.Close()

	if err := session.Navigate(s.cfg.TrendURL, s.cfg.NavTimeout()); err != nil {
		return nil, err
	}

	// 首次运行时用户数据目录是全新的，给一个有限的窗口等待人工登录
	if session.FirstRun {
		fmt.Printf("趋势抓取: 检测到全新的浏览器配置目录，等待手动登录 (最长 %v)...\n", s.cfg.LoginWait())
		s.waitForLogin(session)
	}

	// 榜单由脚本动态渲染，等待条目出现；超时不致命
	if err := session.WaitVisible(primarySelector, s.cfg.NavTimeout()); err != nil {
		fmt.Printf("趋势抓取: 等待动态内容超时，继续尝试提取: %v\n", err)
	}

	texts, err := session.ElementsText(primarySelector, 10*time.Second)
	if err != nil || len(texts) == 0 {
		fmt.Println("趋势抓取: 主选择器没有命中，退回备用选择器。")
		texts, err = session.ElementsText(fallbackSelector, 10*time.Second)
		if err != nil {
			return nil, fmt.Errorf("备用选择器提取失败: %w", err)
		}
	}

	if len(texts) == 0 {
		return nil, fmt.Errorf("页面上没有提取到任何榜单内容")
	}
	return texts, nil
}

// loginPollInterval 是登录等待期间单次轮询的最长时长
const loginPollInterval = 10 * time.Second

// waitForLogin 在登录窗口内轮询榜单元素，元素出现说明登录态已建立
func (s *rodScraper) waitForLogin(session *browser.Session) {
	deadline := time.Now().Add(s.cfg.LoginWait())
	for {
		timeout := pollTimeout(time.Now(), deadline, loginPollInterval)
		if timeout <= 0 {
			break
		}
		if err := session.WaitVisible(primarySelector, timeout); err == nil {
			fmt.Println("趋势抓取: 页面内容已就绪，结束登录等待。")
			return
		}
	}
	fmt.Println("趋势抓取: 登录等待窗口结束，按当前页面状态继续。")
}

// pollTimeout 返回下一次轮询允许的等待时长，保证总等待不会越过deadline。
// deadline已过时返回0。
func pollTimeout(now, deadline time.Time, max time.Duration) time.Duration {
	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return 0
	}
	if remaining < max {
		return remaining
	}
	return max
}
