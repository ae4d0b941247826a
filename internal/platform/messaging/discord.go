package messaging

import (
	"context"
	"fmt"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/config"
	"github.com/bwmarrin/discordgo"
)

// Notifier 是消息网关的抽象，便于在测试中注入替身
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// DiscordNotifier 通过Discord REST接口向固定频道发送消息
// 只做出站通知，不开网关长连接
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordNotifier 创建Discord消息客户端
func NewDiscordNotifier(cfg config.MessagingConfig) (*DiscordNotifier, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("创建Discord会话失败: %w", err)
	}
	return &DiscordNotifier{
		session:   session,
		channelID: cfg.ChannelID,
	}, nil
}

// Notify 实现Notifier
func (n *DiscordNotifier) Notify(ctx context.Context, message string) error {
	_, err := n.session.ChannelMessageSend(n.channelID, message, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("发送Discord消息失败: %w", err)
	}
	return nil
}
