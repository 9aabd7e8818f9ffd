package normalize

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"shopee-seller-ai-api/pkg/metrics"
)

const (
	StrategyText     = "text"
	StrategyFallback = "fallback"
	StrategyJSON     = "json"
	StrategyLines    = "lines"
	StrategyWhole    = "whole"
	StrategyEmpty    = "empty"
	StrategyFenced   = "fenced_language"
	StrategyAnyFence = "fenced_any"
	StrategyBare     = "bare"
)

// strategy 纯函数：命中返回 true
type strategy struct {
	name string
	fn   func(raw string, shape Shape) (Result, bool)
}

var (
	scalarChain = []strategy{
		{StrategyText, scalarText},
		{StrategyFallback, scalarFallback},
	}
	listChain = []strategy{
		{StrategyJSON, listFromJSON},
		{StrategyLines, listFromLines},
		{StrategyWhole, listWhole},
	}
	codeChain = []strategy{
		{StrategyFenced, codeFencedLanguage},
		{StrategyAnyFence, codeFencedAny},
		{StrategyBare, codeBare},
	}
)

var (
	numberedLine = regexp.MustCompile(`^\d+\.`)
	quotedKey    = regexp.MustCompile(`^"[^"]*"\s*:`)
)

// Normalize 按 shape 对 raw 执行策略链，返回第一个命中的结果
func Normalize(raw string, shape Shape) Result {
	var chain []strategy
	switch shape.Kind {
	case KindTextList:
		if shape.MaxItems < 1 {
			shape.MaxItems = 1
		}
		chain = listChain
	case KindCodeBlock:
		chain = codeChain
	default:
		shape.Kind = KindScalarText
		chain = scalarChain
	}

	res := run(chain, raw, shape)
	metrics.NormalizeStrategyTotal.WithLabelValues(string(shape.Kind), res.Strategy).Inc()
	return res
}

func run(chain []strategy, raw string, shape Shape) Result {
	for _, s := range chain {
		if res, ok := s.fn(raw, shape); ok {
			res.Strategy = s.name
			return res
		}
	}
	// 每条链最后一个策略总是命中
	return Result{Strategy: StrategyEmpty}
}

func scalarText(raw string, _ Shape) (Result, bool) {
	text := stripOuterFence(raw)
	if text == "" {
		return Result{}, false
	}
	return Result{Text: text}, true
}

func scalarFallback(_ string, shape Shape) (Result, bool) {
	return Result{Text: shape.Fallback}, true
}

func listFromJSON(raw string, shape Shape) (Result, bool) {
	doc := jsonCandidate(stripOuterFence(raw))
	if doc == "" || !gjson.Valid(doc) {
		return Result{}, false
	}

	root := gjson.Parse(doc)
	var list gjson.Result
	switch {
	case shape.Field != "" && root.IsObject():
		list = root.Get(shape.Field)
	case root.IsArray():
		list = root
	case root.IsObject():
		// 根数组模式下模型偶尔包一层对象，取第一个数组字段
		root.ForEach(func(_, v gjson.Result) bool {
			if v.IsArray() {
				list = v
				return false
			}
			return true
		})
	}
	if !list.IsArray() {
		return Result{}, false
	}

	items := make([]string, 0, shape.MaxItems)
	for _, el := range list.Array() {
		if el.Type != gjson.String {
			continue
		}
		s := strings.TrimSpace(el.String())
		if s == "" {
			continue
		}
		items = append(items, s)
		if len(items) == shape.MaxItems {
			break
		}
	}
	if len(items) == 0 {
		return Result{}, false
	}
	return Result{Items: items}, true
}

// jsonCandidate 截取第一个 JSON 对象/数组，容忍前后夹杂的说明文字
func jsonCandidate(s string) string {
	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")
	start, end := -1, -1
	switch {
	case objStart >= 0 && (arrStart < 0 || objStart < arrStart):
		start = objStart
		end = strings.LastIndex(s, "}")
	case arrStart >= 0:
		start = arrStart
		end = strings.LastIndex(s, "]")
	}
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func listFromLines(raw string, shape Shape) (Result, bool) {
	items := make([]string, 0, shape.MaxItems)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if skipLine(line, shape) {
			continue
		}
		items = append(items, unquoteLine(line))
		if len(items) == shape.MaxItems {
			break
		}
	}
	if len(items) == 0 {
		return Result{}, false
	}
	return Result{Items: items}, true
}

func skipLine(line string, shape Shape) bool {
	switch {
	case line == "":
		return true
	case strings.HasPrefix(line, "{"), strings.HasPrefix(line, "}"):
		return true
	case line == "[", line == "]", line == "],":
		return true
	case strings.HasPrefix(line, fenceMarker):
		return true
	case quotedKey.MatchString(line):
		return true
	case shape.DropNumbered && numberedLine.MatchString(line):
		return true
	}
	return false
}

// unquoteLine 把残缺 JSON 中的 "xxx", 行还原为纯文本
func unquoteLine(line string) string {
	lit := strings.TrimSuffix(line, ",")
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' || !gjson.Valid(lit) {
		return line
	}
	if s := strings.TrimSpace(gjson.Parse(lit).String()); s != "" {
		return s
	}
	return line
}

// listWhole 只有 raw 为空串时返回空列表；纯空白也算一项
func listWhole(raw string, _ Shape) (Result, bool) {
	if raw == "" {
		return Result{Items: []string{}}, true
	}
	if text := strings.TrimSpace(raw); text != "" {
		return Result{Items: []string{text}}, true
	}
	return Result{Items: []string{raw}}, true
}

func codeFencedLanguage(raw string, shape Shape) (Result, bool) {
	want := strings.TrimSpace(shape.Language)
	if want == "" {
		return Result{}, false
	}
	for _, b := range FencedBlocks(raw) {
		if strings.EqualFold(b.Language, want) {
			return Result{Text: b.Code}, true
		}
	}
	return Result{}, false
}

func codeFencedAny(raw string, _ Shape) (Result, bool) {
	blocks := FencedBlocks(raw)
	if len(blocks) == 0 {
		return Result{}, false
	}
	return Result{Text: blocks[0].Code}, true
}

// codeBare 没有完整 fenced block：去掉未闭合或单行的 fence 后返回
func codeBare(raw string, _ Shape) (Result, bool) {
	s := strings.TrimSpace(raw)
	if isInlineFence(s) {
		return Result{Text: strings.TrimSpace(s[len(fenceMarker) : len(s)-len(fenceMarker)])}, true
	}
	return Result{Text: stripOuterFence(s)}, true
}
