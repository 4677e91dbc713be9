package bedrock

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	smithy "github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmakoed/wordpan/runtime/agent/model"
)

type mockRuntime struct {
	captured *bedrockruntime.ConverseInput
	output   *bedrockruntime.ConverseOutput
	err      error
}

func (m *mockRuntime) Converse(_ context.Context, params *bedrockruntime.ConverseInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	m.captured = params
	return m.output, m.err
}

func translationRequest() *model.Request {
	return &model.Request{
		Messages: []*model.Message{
			{Role: model.ConversationRoleSystem, Content: "You are a translator."},
			{Role: model.ConversationRoleUser, Content: "Translate hello into es."},
		},
	}
}

func TestComplete(t *testing.T) {
	rt := &mockRuntime{output: &bedrockruntime.ConverseOutput{
		Output: &brtypes.ConverseOutputMemberMessage{Value: brtypes.Message{
			Role:    brtypes.ConversationRoleAssistant,
			Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: `{"translation":"hola"}`}},
		}},
		StopReason: brtypes.StopReasonEndTurn,
		Usage:      &brtypes.TokenUsage{InputTokens: aws.Int32(10), OutputTokens: aws.Int32(5), TotalTokens: aws.Int32(15)},
	}}
	client, err := New(Options{Runtime: rt, DefaultModel: "anthropic.claude-3-haiku", MaxTokens: 256, Temperature: 0.2})
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), translationRequest())
	require.NoError(t, err)
	assert.Equal(t, `{"translation":"hola"}`, resp.Text())
	assert.Equal(t, "end_turn", resp.StopReason)
	assert.Equal(t, model.TokenUsage{Model: "anthropic.claude-3-haiku", InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, resp.Usage)

	in := rt.captured
	require.NotNil(t, in)
	assert.Equal(t, "anthropic.claude-3-haiku", aws.ToString(in.ModelId))
	require.Len(t, in.System, 1)
	sys, ok := in.System[0].(*brtypes.SystemContentBlockMemberText)
	require.True(t, ok)
	assert.Equal(t, "You are a translator.", sys.Value)
	require.Len(t, in.Messages, 1)
	assert.Equal(t, brtypes.ConversationRoleUser, in.Messages[0].Role)
	require.NotNil(t, in.InferenceConfig)
	assert.Equal(t, int32(256), aws.ToInt32(in.InferenceConfig.MaxTokens))
	assert.InDelta(t, 0.2, aws.ToFloat32(in.InferenceConfig.Temperature), 1e-6)
}

func TestInferenceConfigOmittedWithoutDefaults(t *testing.T) {
	client, err := New(Options{Runtime: &mockRuntime{}, DefaultModel: "m"})
	require.NoError(t, err)
	assert.Nil(t, client.inferenceConfig(0, 0))
}

func TestIsRateLimited_IdempotentOnSentinel(t *testing.T) {
	require.True(t, isRateLimited(model.ErrRateLimited))
	require.True(t, isRateLimited(fmt.Errorf("provider: %w", model.ErrRateLimited)))
	require.False(t, isRateLimited(nil))
}

func TestComplete_WrapsThrottling(t *testing.T) {
	rt := &mockRuntime{err: &smithy.GenericAPIError{Code: "ThrottlingException", Message: "Too many requests"}}
	client, err := New(Options{Runtime: rt, DefaultModel: "m", MaxTokens: 10})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), translationRequest())
	require.ErrorIs(t, err, model.ErrRateLimited)
	pe, ok := model.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, "ThrottlingException", pe.Code())
	assert.Equal(t, 429, pe.HTTPStatus())
}

func TestComplete_ClassifiesErrorCodes(t *testing.T) {
	cases := map[string]model.ProviderErrorKind{
		"AccessDeniedException":       model.ProviderErrorKindAuth,
		"ValidationException":         model.ProviderErrorKindInvalidRequest,
		"ServiceUnavailableException": model.ProviderErrorKindUnavailable,
		"SomethingElse":               model.ProviderErrorKindUnknown,
	}
	for code, want := range cases {
		rt := &mockRuntime{err: &smithy.GenericAPIError{Code: code, Message: "m"}}
		client, err := New(Options{Runtime: rt, DefaultModel: "m"})
		require.NoError(t, err)
		_, err = client.Complete(context.Background(), translationRequest())
		pe, ok := model.AsProviderError(err)
		require.True(t, ok, code)
		assert.Equal(t, want, pe.Kind(), code)
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(Options{DefaultModel: "m"})
	assert.Error(t, err)
	_, err = New(Options{Runtime: &mockRuntime{}})
	assert.Error(t, err)
	_, err = NewRuntime("", StaticCredentials{AccessKeyID: "a", SecretAccessKey: "b"})
	assert.Error(t, err)
	_, err = NewRuntime("us-east-1", StaticCredentials{})
	assert.Error(t, err)
	rt, err := NewRuntime("us-east-1", StaticCredentials{AccessKeyID: "a", SecretAccessKey: "b"})
	require.NoError(t, err)
	assert.NotNil(t, rt)
}
