// Package normalize 将模型返回的自由文本归一化为期望的结构（标量文本、有限列表、代码块）。
//
// 归一化永不失败：每种结构都有终端兜底策略，畸形输出只会降级而不会报错。
package normalize

// Kind 期望结构类型
type Kind string

const (
	KindScalarText Kind = "scalar_text"
	KindTextList   Kind = "text_list"
	KindCodeBlock  Kind = "code_block"
)

// Shape 期望的输出结构
type Shape struct {
	Kind Kind

	// MaxItems 列表最大条数（TextList）
	MaxItems int
	// Field JSON 对象中承载列表的字段；为空表示根数组
	Field string
	// DropNumbered 逐行兜底时丢弃 "1." 形式的编号行（features 模式）
	DropNumbered bool

	// Language 期望的代码块语言标签（CodeBlock）
	Language string

	// Fallback 标量文本为空时的提示文案
	Fallback string
}

// ScalarText 标量文本
func ScalarText(fallback string) Shape {
	return Shape{Kind: KindScalarText, Fallback: fallback}
}

// TextList 最多 max 条的文本列表，field 为 JSON 字段名
func TextList(max int, field string) Shape {
	if max < 1 {
		max = 1
	}
	return Shape{Kind: KindTextList, MaxItems: max, Field: field}
}

// FeatureList 特性列表：根数组，逐行兜底时过滤编号行
func FeatureList(max int) Shape {
	s := TextList(max, "")
	s.DropNumbered = true
	return s
}

// CodeBlock 指定语言的代码块
func CodeBlock(language string) Shape {
	return Shape{Kind: KindCodeBlock, Language: language}
}

// Result 归一化结果
type Result struct {
	// Text 标量文本或代码
	Text string
	// Items 列表结果
	Items []string
	// Strategy 命中的策略名
	Strategy string
}
