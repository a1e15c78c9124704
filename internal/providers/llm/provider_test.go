package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/chatrel/internal/models"
	"github.com/yoockh/chatrel/internal/utils"
)

func TestModelSetFor(t *testing.T) {
	m := ModelSet{Deep: "pro", Fast: "flash"}
	assert.Equal(t, "pro", m.For(models.TaskDeepAnalysis))
	assert.Equal(t, "pro", m.For(models.TaskChat))
	assert.Equal(t, "flash", m.For(models.TaskQuickScan))
}

func TestResponseText(t *testing.T) {
	assert.Equal(t, "", responseText(nil))
	assert.Equal(t, "", responseText(&vertexgenai.GenerateContentResponse{}))

	resp := &vertexgenai.GenerateContentResponse{
		Candidates: []*vertexgenai.Candidate{
			{Content: nil},
			{Content: &vertexgenai.Content{Parts: []vertexgenai.Part{vertexgenai.Text(`{"a":`), vertexgenai.Text(`1}`)}}},
			{Content: &vertexgenai.Content{Parts: []vertexgenai.Part{vertexgenai.Text("ignored")}}},
		},
	}
	assert.Equal(t, `{"a":1}`, responseText(resp))
}

func TestToContentsKeepsOrderAndRoles(t *testing.T) {
	turns := []models.Turn{
		{Role: models.RoleModel, Text: "welcome"},
		{Role: models.RoleUser, Text: "q1"},
		{Role: models.RoleModel, Text: "a1"},
	}
	got := toContents(turns)
	require.Len(t, got, 3)
	for i, c := range got {
		assert.Equal(t, string(turns[i].Role), c.Role)
		assert.Equal(t, vertexgenai.Text(turns[i].Text), c.Parts[0])
	}
}

func TestOpenAIParams(t *testing.T) {
	o := NewOpenAIResponses("k", ModelSet{Deep: "deep-model", Fast: "fast-model"})

	deep := o.params(Request{
		Kind:       models.TaskDeepAnalysis,
		Prompt:     "analyze",
		Schema:     GenerateSchema[models.AnalysisResult](),
		SchemaName: "AnalysisResult",
		Effort:     EffortHigh,
	})
	assert.Equal(t, "deep-model", deep.Model)
	assert.Equal(t, shared.ReasoningEffortHigh, deep.Reasoning.Effort)
	require.NotNil(t, deep.Text.Format.OfJSONSchema)
	assert.Equal(t, "AnalysisResult", deep.Text.Format.OfJSONSchema.Name)
	require.Len(t, deep.Input.OfInputItemList, 1)

	quick := o.params(Request{Kind: models.TaskQuickScan, Prompt: "scan", Effort: EffortLow})
	assert.Equal(t, "fast-model", quick.Model)
	assert.Equal(t, shared.ReasoningEffortLow, quick.Reasoning.Effort)

	chat := o.params(Request{
		Kind:              models.TaskChat,
		SystemInstruction: "grounding",
		Prompt:            "new question",
		History: []models.Turn{
			{Role: models.RoleModel, Text: "welcome"},
			{Role: models.RoleUser, Text: "q1"},
		},
	})
	assert.Equal(t, "grounding", chat.Instructions.Value)
	assert.Nil(t, chat.Text.Format.OfJSONSchema)
	items := chat.Input.OfInputItemList
	require.Len(t, items, 3)
	assert.Equal(t, responses.EasyInputMessageRoleAssistant, items[0].OfMessage.Role)
	assert.Equal(t, responses.EasyInputMessageRoleUser, items[1].OfMessage.Role)
	assert.Equal(t, responses.EasyInputMessageRoleUser, items[2].OfMessage.Role)
}

func newTestOpenAI(t *testing.T, status int, body string) *OpenAIResponses {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewOpenAIResponses("k", ModelSet{}, option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
}

func TestOpenAIGenerate(t *testing.T) {
	t.Run("returns output text", func(t *testing.T) {
		o := newTestOpenAI(t, http.StatusOK, `{
			"id": "resp_1",
			"object": "response",
			"status": "completed",
			"output": [{
				"type": "message",
				"id": "msg_1",
				"role": "assistant",
				"status": "completed",
				"content": [{"type": "output_text", "text": "they seem close", "annotations": []}]
			}]
		}`)
		got, err := o.Generate(context.Background(), Request{Kind: models.TaskChat, Prompt: "hi"})
		require.NoError(t, err)
		assert.Equal(t, "they seem close", got)
	})

	t.Run("empty output is unavailable", func(t *testing.T) {
		o := newTestOpenAI(t, http.StatusOK, `{"id":"resp_2","object":"response","status":"completed","output":[]}`)
		_, err := o.Generate(context.Background(), Request{Kind: models.TaskChat, Prompt: "hi"})
		require.Error(t, err)
		assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
		assert.True(t, errors.Is(err, ErrEmptyResponse))
	})

	t.Run("server error is unavailable", func(t *testing.T) {
		o := newTestOpenAI(t, http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`)
		_, err := o.Generate(context.Background(), Request{Kind: models.TaskQuickScan, Prompt: "hi"})
		require.Error(t, err)
		assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
		assert.False(t, errors.Is(err, ErrEmptyResponse))
	})
}
