package codegen

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "shopee-seller-ai-api/internal/workflow/model"
	"shopee-seller-ai-api/pkg/errors"
)

// promptEcho 把用户提示词包进 fence 返回；提示词包含 failOn 时报错
type promptEcho struct {
	mu      sync.Mutex
	prompts []string
	failOn  string
	lang    string
}

func (m *promptEcho) Generate(_ context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	user := in[len(in)-1].Content
	m.mu.Lock()
	m.prompts = append(m.prompts, user)
	m.mu.Unlock()
	if m.failOn != "" && strings.Contains(user, m.failOn) {
		return nil, stderrors.New("provider unavailable")
	}
	lang := m.lang
	if lang == "" {
		lang = "tsx"
	}
	return schema.AssistantMessage("Đây là code:\n```"+lang+"\nexport const X = 1;\n```\nHết.", nil), nil
}

func (m *promptEcho) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, in, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

type factory struct{ m model.BaseChatModel }

func (f factory) Get(context.Context, string) (model.BaseChatModel, error) { return f.m, nil }

type router struct{}

func (router) ProviderFor(string) string { return "mock" }

func TestTemplates(t *testing.T) {
	s := NewService(factory{m: &promptEcho{}}, router{})

	tpls := s.Templates()
	require.Len(t, tpls, 6)
	assert.Equal(t, TemplateReactComponent, tpls[0].ID)
	assert.Equal(t, "tsx", tpls[0].Language)
	assert.Equal(t, "prisma", tpls[3].Language)

	assert.True(t, s.IsValidTemplate("react-hook"))
	assert.False(t, s.IsValidTemplate("vue-component"))
	assert.Equal(t,
		"Missing or invalid 'template' field. Must be one of: react-component, react-hook, api-endpoint, database-model, component-test, utility-function",
		s.InvalidTemplateMessage())
}

func TestGenerate_AppliesDefaultsAndExtractsCode(t *testing.T) {
	m := &promptEcho{}
	s := NewService(factory{m: m}, router{})

	res, err := s.Generate(context.Background(), &wfmodel.CodeGenerateInput{Template: TemplateReactComponent})
	require.NoError(t, err)
	assert.Equal(t, "export const X = 1;", res.Code)
	assert.Equal(t, "tsx", res.Language)
	assert.Equal(t, "React functional component with TypeScript", res.Description)

	require.Len(t, m.prompts, 1)
	assert.Contains(t, m.prompts[0], "MyComponent")
	assert.Contains(t, m.prompts[0], "Không có props cụ thể")
}

func TestGenerate_FallsBackToAnyFence(t *testing.T) {
	s := NewService(factory{m: &promptEcho{lang: "typescript"}}, router{})

	res, err := s.Generate(context.Background(), &wfmodel.CodeGenerateInput{Template: TemplateDatabaseModel, ComponentName: "User"})
	require.NoError(t, err)
	assert.Equal(t, "export const X = 1;", res.Code)
	assert.Equal(t, "prisma", res.Language)
}

func TestGenerate_Errors(t *testing.T) {
	s := NewService(factory{m: &promptEcho{failOn: "Broken"}}, router{})

	_, err := s.Generate(context.Background(), &wfmodel.CodeGenerateInput{Template: "nope"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errors.AsAppError(err).HTTPStatus)

	_, err = s.Generate(context.Background(), &wfmodel.CodeGenerateInput{Template: TemplateReactHook, ComponentName: "Broken"})
	require.Error(t, err)
	appErr := errors.AsAppError(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	assert.Equal(t, MsgGenerateFailed, appErr.Message)
}

func TestValidateBatch(t *testing.T) {
	s := NewService(factory{m: &promptEcho{}}, router{})
	ok := wfmodel.CodeGenerateInput{Template: TemplateUtilityFunction}

	tests := []struct {
		name    string
		reqs    []wfmodel.CodeGenerateInput
		wantMsg string
	}{
		{name: "empty", reqs: nil, wantMsg: "Missing or invalid 'requests' field. Must be a non-empty array"},
		{name: "too many", reqs: []wfmodel.CodeGenerateInput{ok, ok, ok, ok, ok, ok}, wantMsg: "Too many requests. Maximum 5 requests per batch"},
		{
			name:    "bad template reported one-based",
			reqs:    []wfmodel.CodeGenerateInput{ok, {Template: "x"}},
			wantMsg: "Invalid template in request 2. Must be one of: react-component, react-hook, api-endpoint, database-model, component-test, utility-function",
		},
		{name: "valid", reqs: []wfmodel.CodeGenerateInput{ok, ok, ok, ok, ok}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ValidateBatch(tt.reqs)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, errors.AsAppError(err).Message)
		})
	}
}

func TestGenerateBatch_PartialFailure(t *testing.T) {
	m := &promptEcho{failOn: "Broken"}
	s := NewService(factory{m: m}, router{})

	results, err := s.GenerateBatch(context.Background(), []wfmodel.CodeGenerateInput{
		{Template: TemplateReactComponent, ComponentName: "Card"},
		{Template: TemplateReactHook, ComponentName: "Broken"},
		{Template: TemplateUtilityFunction},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
	assert.True(t, results[0].Success)
	assert.Equal(t, "export const X = 1;", results[0].Result.Code)

	assert.False(t, results[1].Success)
	assert.Nil(t, results[1].Result)
	assert.Equal(t, MsgGenerateFailed, results[1].Error)
	assert.Equal(t, TemplateReactHook, results[1].Template)

	assert.True(t, results[2].Success)
}

func TestGenerateBatch_ValidatesBeforeGenerating(t *testing.T) {
	m := &promptEcho{}
	s := NewService(factory{m: m}, router{})

	_, err := s.GenerateBatch(context.Background(), []wfmodel.CodeGenerateInput{
		{Template: TemplateReactComponent},
		{Template: "bad"},
	})
	require.Error(t, err)
	assert.Empty(t, m.prompts)
}
