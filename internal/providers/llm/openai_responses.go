package llm

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"

	"github.com/yoockh/chatrel/internal/models"
)

// OpenAIResponses talks to the OpenAI Responses API. Structured requests use
// strict json_schema output; effort maps onto reasoning.effort.
type OpenAIResponses struct {
	client openai.Client
	models ModelSet
}

func NewOpenAIResponses(apiKey string, models ModelSet, opts ...option.RequestOption) *OpenAIResponses {
	if models.Deep == "" {
		models.Deep = "gpt-5"
	}
	if models.Fast == "" {
		models.Fast = "gpt-5-mini"
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIResponses{client: openai.NewClient(opts...), models: models}
}

func (o *OpenAIResponses) Close() error { return nil }

func (o *OpenAIResponses) Generate(ctx context.Context, req Request) (string, error) {
	const op = "OpenAIResponses.Generate"

	resp, err := o.client.Responses.New(ctx, o.params(req))
	if err != nil {
		return "", unavailable(op, err)
	}

	text := resp.OutputText()
	if strings.TrimSpace(text) == "" {
		return "", emptyResponse(op)
	}
	return text, nil
}

func (o *OpenAIResponses) params(req Request) responses.ResponseNewParams {
	items := make([]responses.ResponseInputItemUnionParam, 0, len(req.History)+1)
	for _, t := range req.History {
		role := responses.EasyInputMessageRoleUser
		if t.Role == models.RoleModel {
			role = responses.EasyInputMessageRoleAssistant
		}
		items = append(items, responses.ResponseInputItemParamOfMessage(t.Text, role))
	}
	items = append(items, responses.ResponseInputItemParamOfMessage(req.Prompt, responses.EasyInputMessageRoleUser))

	params := responses.ResponseNewParams{
		Model: o.models.For(req.Kind),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: items,
		},
	}
	if req.SystemInstruction != "" {
		params.Instructions = openai.String(req.SystemInstruction)
	}
	if req.Schema != nil {
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   req.SchemaName,
					Schema: StrictSchema(req.Schema),
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		}
	}
	switch req.Effort {
	case EffortHigh:
		params.Reasoning = shared.ReasoningParam{Effort: shared.ReasoningEffortHigh}
	case EffortLow:
		params.Reasoning = shared.ReasoningParam{Effort: shared.ReasoningEffortLow}
	}
	return params
}
