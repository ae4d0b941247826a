package assistant

import (
	"regexp"
	"strings"
)

// 模型回复里要清理的记号：
//   - 括号里的旁白整体去掉（连同前导空白）
//   - 成对的粗体记号 **x** 换成 ]x[
//   - 残留的孤立 ** 直接删除
var (
	parenPattern = regexp.MustCompile(`\s*\([^)]*\)`)
	boldPattern  = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// CleanReply 是一个纯函数，把模型回复中的Markdown记号替换为前端使用的格式。
// 输入输出都是完整的字符串，不依赖任何外部状态。
func CleanReply(reply string) string {
	out := parenPattern.ReplaceAllString(reply, "")
	out = boldPattern.ReplaceAllString(out, "]$1[")
	out = strings.ReplaceAll(out, "**", "")
	return strings.TrimSpace(out)
}
