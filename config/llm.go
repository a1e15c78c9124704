package config

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"github.com/yoockh/chatrel/internal/providers/llm"
)

// InitLLM builds the inference provider selected by cfg.LLMProvider.
func InitLLM(ctx context.Context, cfg *Config) (llm.Provider, error) {
	models := llm.ModelSet{Deep: cfg.DeepModel, Fast: cfg.FastModel}

	switch cfg.LLMProvider {
	case ProviderOpenAI:
		return llm.NewOpenAIResponses(cfg.OpenAIAPIKey, models), nil
	case ProviderVertex:
		var opts []option.ClientOption
		if cfg.VertexCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.VertexCredentialsFile))
		}
		p, err := llm.NewVertexGemini(ctx, cfg.VertexProjectID, cfg.VertexLocation, models, opts...)
		if err != nil {
			return nil, fmt.Errorf("vertex client: %w", err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
}
