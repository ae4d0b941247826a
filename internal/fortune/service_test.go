package fortune

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(context.Context, string) (string, error) {
	return s.reply, s.err
}

func (s *stubCompleter) CompleteStream(context.Context, string, func(string) error) error {
	return errors.New("未实现")
}

func (s *stubCompleter) Transcribe(context.Context, []byte, string) (string, error) {
	return "", errors.New("未实现")
}

type memoryRepository struct {
	texts    []string
	replaced int
	err      error
}

func (r *memoryRepository) ReplaceAll(_ context.Context, texts []string) error {
	if r.err != nil {
		return r.err
	}
	r.texts = texts
	r.replaced++
	return nil
}

func (r *memoryRepository) All(context.Context) ([]string, error) {
	return r.texts, nil
}

func (r *memoryRepository) Count(context.Context) (int64, error) {
	return int64(len(r.texts)), nil
}

func TestParseFortunes(t *testing.T) {
	reply := "1. 今天适合尝试新事物\n- 保持微笑\n\n* 好运在路上\n意外之喜即将到来\n"
	got := ParseFortunes(reply)
	assert.Equal(t, []string{
		"今天适合尝试新事物",
		"保持微笑",
		"好运在路上",
		"意外之喜即将到来",
	}, got)
}

func TestParseFortunesDropsDisallowedPrefix(t *testing.T) {
	// 清理后仍以-开头的行是格式异常，整行丢弃
	got := ParseFortunes("-- 连续横线\n正常的一条")
	require.Len(t, got, 1)
	for _, f := range got {
		assert.False(t, strings.HasPrefix(f, "-"))
	}
}

func TestRegenerateReplacesWholeList(t *testing.T) {
	repo := &memoryRepository{texts: []string{"旧签文"}}
	svc := NewService(&stubCompleter{reply: "一\n二\n三"}, repo)

	n, err := svc.Regenerate(context.Background())
	require.NoError(t, err)

	// 返回的条数与持久化的条数一致
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"一", "二", "三"}, repo.texts)
	assert.Equal(t, 1, repo.replaced)
}

func TestRegenerateKeepsOldListWhenModelReturnsNothing(t *testing.T) {
	repo := &memoryRepository{texts: []string{"旧签文"}}
	svc := NewService(&stubCompleter{reply: "\n\n"}, repo)

	_, err := svc.Regenerate(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"旧签文"}, repo.texts)
	assert.Zero(t, repo.replaced)
}

func TestRegeneratePropagatesProviderError(t *testing.T) {
	repo := &memoryRepository{}
	svc := NewService(&stubCompleter{err: errors.New("模型不可用")}, repo)

	_, err := svc.Regenerate(context.Background())
	require.Error(t, err)
	assert.Zero(t, repo.replaced)
}
