package normalize

import (
	"regexp"
	"strings"
)

const fenceMarker = "```"

var (
	// 开头 fence：可选语言标签，后接可选换行
	leadingFence = regexp.MustCompile("^```[A-Za-z0-9_+#.-]*[ \\t]*\\r?\\n?")
	// 结尾 fence
	trailingFence = regexp.MustCompile("\\s*```\\s*$")
	// 完整 fenced block：标签独占一行，内部非贪婪到下一个 fence
	fencedBlock = regexp.MustCompile("(?s)```([^\\n`]*)\\n(.*?)```")
)

// Block 一个 fenced 代码块
type Block struct {
	Language string
	Code     string
}

// FencedBlocks 按出现顺序返回所有 fenced 代码块，内容已 trim
func FencedBlocks(raw string) []Block {
	matches := fencedBlock.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}
	blocks := make([]Block, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, Block{
			Language: strings.TrimSpace(m[1]),
			Code:     strings.TrimSpace(m[2]),
		})
	}
	return blocks
}

// LeadingText 返回第一个 fence 之前的说明文字；没有 fence 时返回整段文本
func LeadingText(raw string) string {
	if loc := fencedBlock.FindStringIndex(raw); loc != nil {
		return strings.TrimSpace(raw[:loc[0]])
	}
	return strings.TrimSpace(raw)
}

// stripOuterFence 去掉最外层的一个开头 fence 与一个结尾 fence
func stripOuterFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, fenceMarker) {
		s = leadingFence.ReplaceAllString(s, "")
	}
	if strings.HasSuffix(s, fenceMarker) {
		s = trailingFence.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// isInlineFence 单行的 ```code```，没有语言标签行
func isInlineFence(s string) bool {
	return len(s) >= 2*len(fenceMarker) &&
		!strings.Contains(s, "\n") &&
		strings.HasPrefix(s, fenceMarker) &&
		strings.HasSuffix(s, fenceMarker)
}
