package llm

import (
	"context"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"

	"github.com/yoockh/chatrel/internal/models"
)

// Output token budgets per effort. The Vertex SDK exposes no thinking knob,
// so high effort is expressed through the pro model and a larger budget.
const (
	highEffortMaxTokens = 32768
	lowEffortMaxTokens  = 1024
)

type VertexGemini struct {
	client *vertexgenai.Client
	models ModelSet
}

func NewVertexGemini(ctx context.Context, projectID, location string, models ModelSet, opts ...option.ClientOption) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, err
	}

	if models.Deep == "" {
		models.Deep = "gemini-2.5-pro"
	}
	if models.Fast == "" {
		models.Fast = "gemini-2.5-flash-lite"
	}
	return &VertexGemini{client: c, models: models}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) Generate(ctx context.Context, req Request) (string, error) {
	const op = "VertexGemini.Generate"

	m := v.client.GenerativeModel(v.models.For(req.Kind))
	configureModel(m, req)

	var (
		resp *vertexgenai.GenerateContentResponse
		err  error
	)
	if req.Kind == models.TaskChat {
		cs := m.StartChat()
		cs.History = toContents(req.History)
		resp, err = cs.SendMessage(ctx, vertexgenai.Text(req.Prompt))
	} else {
		resp, err = m.GenerateContent(ctx, vertexgenai.Text(req.Prompt))
	}
	if err != nil {
		return "", unavailable(op, err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", emptyResponse(op)
	}
	return text, nil
}

func configureModel(m *vertexgenai.GenerativeModel, req Request) {
	if req.SystemInstruction != "" {
		m.SystemInstruction = &vertexgenai.Content{
			Parts: []vertexgenai.Part{vertexgenai.Text(req.SystemInstruction)},
		}
	}
	if req.Schema != nil {
		m.ResponseMIMEType = "application/json"
		m.ResponseSchema = toGenaiSchema(req.Schema)
	}
	switch req.Effort {
	case EffortHigh:
		m.SetMaxOutputTokens(highEffortMaxTokens)
	case EffortLow:
		m.SetMaxOutputTokens(lowEffortMaxTokens)
	}
}

func toContents(turns []models.Turn) []*vertexgenai.Content {
	out := make([]*vertexgenai.Content, 0, len(turns))
	for _, t := range turns {
		out = append(out, &vertexgenai.Content{
			Role:  string(t.Role),
			Parts: []vertexgenai.Part{vertexgenai.Text(t.Text)},
		})
	}
	return out
}

func responseText(resp *vertexgenai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(vertexgenai.Text); ok {
				b.WriteString(string(t))
			}
		}
		// first candidate with content wins
		if b.Len() > 0 {
			break
		}
	}
	return b.String()
}

// toGenaiSchema converts a reflected JSON schema map into the Vertex schema
// type. Keywords Vertex does not understand are dropped.
func toGenaiSchema(m map[string]any) *vertexgenai.Schema {
	if m == nil {
		return nil
	}
	s := &vertexgenai.Schema{}

	switch m[typeKey] {
	case "object":
		s.Type = vertexgenai.TypeObject
	case "array":
		s.Type = vertexgenai.TypeArray
	case "string":
		s.Type = vertexgenai.TypeString
	case "number":
		s.Type = vertexgenai.TypeNumber
	case "integer":
		s.Type = vertexgenai.TypeInteger
	case "boolean":
		s.Type = vertexgenai.TypeBoolean
	}

	if d, ok := m[descriptionKey].(string); ok {
		s.Description = d
	}
	if enum, ok := m[enumKey].([]any); ok {
		for _, e := range enum {
			if str, ok := e.(string); ok {
				s.Enum = append(s.Enum, str)
			}
		}
	}
	if props, ok := m[propertiesKey].(map[string]any); ok {
		s.Properties = make(map[string]*vertexgenai.Schema, len(props))
		for name, p := range props {
			if pm, ok := p.(map[string]any); ok {
				s.Properties[name] = toGenaiSchema(pm)
			}
		}
	}
	if items, ok := m[itemsKey].(map[string]any); ok {
		s.Items = toGenaiSchema(items)
	}
	s.Required = RequiredFields(m)
	return s
}
