package enrich

import (
	"context"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// OpenAIEnricher satisfies Enricher via the Chat Completions API, using the
// same fixed-layout reply format as AnthropicEnricher so both adapters
// share one response parser.
type OpenAIEnricher struct {
	client openai.Client
	model  openai.ChatModel
}

func NewOpenAIEnricher(apiKey string, model openai.ChatModel) *OpenAIEnricher {
	return &OpenAIEnricher{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (o *OpenAIEnricher) Enrich(ctx context.Context, text, docContext string) (Result, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(enrichmentPrompt(text, docContext)),
		},
	})
	if err != nil {
		return Result{}, err
	}
	if len(completion.Choices) == 0 {
		return Result{}, nil
	}
	return parseEnrichmentReply(completion.Choices[0].Message.Content), nil
}
