package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/config"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ErrProfileBusy 表示浏览器用户数据目录已被另一个会话占用。
// 同一个目录绝不允许同时被两个浏览器进程打开。
var ErrProfileBusy = errors.New("浏览器用户数据目录正在被占用")

// Manager 负责创建绑定到固定用户数据目录的浏览器会话
// 目录上的互斥由进程内的TryLock保证
type Manager struct {
	cfg config.BrowserConfig
	mu  sync.Mutex

	// launch 执行真正的浏览器启动，测试中可以替换
	launch func(ctx context.Context, release func()) (*Session, error)
}

// NewManager 创建浏览器会话管理器
func NewManager(cfg config.BrowserConfig) *Manager {
	m := &Manager{cfg: cfg}
	m.launch = m.rodLaunch
	return m
}

// Session 是一次持久化的浏览器会话
// Close可以被安全地调用多次，任何退出路径都必须调用它
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	release func()
	// FirstRun 表示用户数据目录此前不存在，登录状态尚未建立
	FirstRun bool

	closeOnce sync.Once
}

// Open 获取用户数据目录的独占权后启动浏览器。
// 如果目录已被占用，立刻返回ErrProfileBusy而不是排队等待；
// 启动失败时独占权立刻归还，目录本身原封不动。
func (m *Manager) Open(ctx context.Context) (*Session, error) {
	if !m.mu.TryLock() {
		return nil, ErrProfileBusy
	}

	s, err := m.launch(ctx, m.mu.Unlock)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	return s, nil
}

// rodLaunch 启动(或复用)绑定到用户数据目录的浏览器并打开一个空白页。
// 用户数据目录是跨运行保留登录状态的载体，任何失败路径都只杀进程，
// 绝不删除目录本身。
func (m *Manager) rodLaunch(ctx context.Context, release func()) (*Session, error) {
	firstRun := false
	if _, err := os.Stat(m.cfg.ProfileDir); os.IsNotExist(err) {
		firstRun = true
	}

	l := launcher.New().
		UserDataDir(m.cfg.ProfileDir).
		Headless(m.cfg.Headless)
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("启动浏览器失败: %w", err)
	}

	b := rod.New().ControlURL(url).Context(ctx)
	if err := b.Connect(); err != nil {
		// 连接失败时浏览器进程还活着，直接杀掉
		l.Kill()
		return nil, fmt.Errorf("连接浏览器失败: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("打开页面失败: %w", err)
	}

	s := &Session{
		browser:  b,
		page:     page,
		FirstRun: firstRun,
	}
	s.release = func() {
		_ = b.Close()
		release()
	}
	return s, nil
}

// Navigate 跳转到指定地址并等待页面加载完成
func (s *Session) Navigate(url string, timeout time.Duration) error {
	p := s.page.Timeout(timeout)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("导航到 %s 失败: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("等待 %s 加载失败: %w", url, err)
	}
	return nil
}

// WaitVisible 在超时内等待选择器对应的元素出现，用于动态内容
func (s *Session) WaitVisible(selector string, timeout time.Duration) error {
	el, err := s.page.Timeout(timeout).Element(selector)
	if err != nil {
		return err
	}
	return el.WaitVisible()
}

// ElementsText 提取选择器命中的全部元素文本，跳过取不到文本的元素
func (s *Session) ElementsText(selector string, timeout time.Duration) ([]string, error) {
	els, err := s.page.Timeout(timeout).Elements(selector)
	if err != nil {
		return nil, err
	}
	var texts []string
	for _, el := range els {
		t, err := el.Text()
		if err != nil {
			continue
		}
		if t != "" {
			texts = append(texts, t)
		}
	}
	return texts, nil
}

// Close 关闭浏览器并释放用户数据目录
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.release != nil {
			s.release()
		}
	})
}
