package prompt

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AllPromptsLoad(t *testing.T) {
	r := NewRegistry()
	ids := []PromptID{
		PromptCaptionV1, PromptDescriptionV1,
		PromptProductDescriptionV1, PromptProductShortDescriptionV1, PromptProductFeaturesV1,
		PromptImageV1, PromptCodeGenerateV1,
		PromptChatV1, PromptCodeChatV1, PromptExplainCodeV1, PromptReviewCodeV1,
	}
	for _, id := range ids {
		tpl, err := r.ChatTemplate(id)
		require.NoError(t, err, id)
		require.NotNil(t, tpl)

		again, err := r.ChatTemplate(id)
		require.NoError(t, err)
		assert.Same(t, tpl, again)
	}

	_, err := r.ChatTemplate("nope_v1")
	assert.Error(t, err)
}

func TestRegistry_FormatCaption(t *testing.T) {
	msgs, err := NewRegistry().Format(context.Background(), PromptCaptionV1, map[string]any{
		"name":         "Áo thun",
		"keywords":     "cotton, mát",
		"style":        "vui nhộn",
		"platform":     "",
		"content_type": "",
		"length":       "",
		"description":  "",
	})
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "Tên sản phẩm: Áo thun")
	assert.Contains(t, msgs[1].Content, "từ khóa: cotton, mát (nếu có). Phong cách: vui nhộn.")
	assert.Contains(t, msgs[1].Content, "Shopee hoặc Lazada")
	assert.Contains(t, msgs[1].Content, `{ "captions": ["...", "...", "..."] }`)
	assert.NotContains(t, msgs[1].Content, "Mô tả:")
}

func TestRegistry_FormatChatWithHistory(t *testing.T) {
	history := []*schema.Message{
		schema.UserMessage("Xin chào"),
		schema.AssistantMessage("Chào bạn!", nil),
	}
	msgs, err := NewRegistry().Format(context.Background(), PromptChatV1, map[string]any{
		"context":  "Shop thời trang",
		"message":  "Gợi ý tên shop?",
		HistoryKey: history,
	})
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	assert.Contains(t, msgs[0].Content, "Context: Shop thời trang")
	assert.Equal(t, "Xin chào", msgs[1].Content)
	assert.Equal(t, schema.Assistant, msgs[2].Role)
	assert.Equal(t, "Gợi ý tên shop?", msgs[3].Content)
}

func TestRegistry_RenderTextWithoutSystem(t *testing.T) {
	text, err := NewRegistry().RenderText(context.Background(), PromptImageV1, map[string]any{
		"name":        "Bình giữ nhiệt",
		"description": "Inox 304, giữ nhiệt 12h.",
		"style":       "",
	})
	require.NoError(t, err)
	assert.Contains(t, text, `"Bình giữ nhiệt"`)
	assert.Contains(t, text, "Inox 304")
	assert.NotContains(t, text, "Style:")
}
