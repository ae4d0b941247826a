package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringList(t *testing.T) {
	got, err := ParseStringList(`["一","二","三"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"一", "二", "三"}, got)
}

func TestParseStringListStripsCodeFence(t *testing.T) {
	got, err := ParseStringList("```json\n[\"关键词\"]\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"关键词"}, got)

	got, err = ParseStringList("```\n[\"关键词\"]\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"关键词"}, got)
}

func TestParseStringListNonJSON(t *testing.T) {
	_, err := ParseStringList("这不是JSON")
	require.Error(t, err)
	// 结构错误必须可以用errors.Is识别出来
	assert.ErrorIs(t, err, ErrInvalidResponseStructure)
}

func TestParseStringListWrongShape(t *testing.T) {
	// 合法JSON但不是字符串数组，同样算结构错误
	_, err := ParseStringList(`{"keywords":["a"]}`)
	assert.ErrorIs(t, err, ErrInvalidResponseStructure)
}
