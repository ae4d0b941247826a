package assistant

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/ai"
)

// answerInstruction 是拼在所有问答请求前面的固定指令
const answerInstruction = "你是小游戏门户的助手。请根据下面提供的资料回答用户的问题，控制在100个单词以内，不要编造资料里没有的内容。"

// AudioStore 负责归档上传的音频原始数据
type AudioStore interface {
	Save(ctx context.Context, name string, data []byte) error
}

// Service 封装了AI问答的编排逻辑
type Service struct {
	ai    ai.Completer
	audio AudioStore
}

// NewService 创建问答服务
func NewService(completer ai.Completer, audio AudioStore) *Service {
	return &Service{ai: completer, audio: audio}
}

// Answer 把固定指令、用户问题和调用方提供的资料拼成一次补全请求，
// 并把模型回复清理成前端可用的文本
func (s *Service) Answer(ctx context.Context, prompt, data string) (string, error) {
	full := fmt.Sprintf("%s\n\n资料:\n%s\n\n问题: %s", answerInstruction, data, prompt)
	reply, err := s.ai.Complete(ctx, full)
	if err != nil {
		return "", err
	}
	return CleanReply(reply), nil
}

// AnswerStream 发起流式补全，每个片段按到达顺序交给emit
func (s *Service) AnswerStream(ctx context.Context, prompt string, emit func(string) error) error {
	full := fmt.Sprintf("%s\n\n问题: %s", answerInstruction, prompt)
	return s.ai.CompleteStream(ctx, full, emit)
}

// TranscribeAndAnswer 解码base64音频，归档后转写为文本，再按普通问答处理。
// 归档失败不阻断转写，只记录在返回错误之外。
func (s *Service) TranscribeAndAnswer(ctx context.Context, audioB64, name string) (string, error) {
	// 容忍 data:audio/webm;base64,xxxx 形式的前缀
	if idx := strings.Index(audioB64, ","); idx >= 0 && strings.Contains(audioB64[:idx], "base64") {
		audioB64 = audioB64[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(audioB64)
	if err != nil {
		return "", fmt.Errorf("音频base64解码失败: %w", err)
	}

	if err := s.audio.Save(ctx, name, data); err != nil {
		fmt.Printf("processAudio: 音频归档失败 (继续转写): %v\n", err)
	}

	transcript, err := s.ai.Transcribe(ctx, data, "audio/webm")
	if err != nil {
		return "", err
	}

	return s.Answer(ctx, transcript, "")
}
