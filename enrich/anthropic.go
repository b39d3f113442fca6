package enrich

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicEnricher satisfies Enricher via the Claude Messages API. The
// model is asked for a fixed "Summary: ...\nKeywords: a, b, c" layout so the
// response can be parsed without a structured-output schema round trip.
type AnthropicEnricher struct {
	client anthropic.Client
	model  anthropic.Model
}

func NewAnthropicEnricher(apiKey string, model anthropic.Model) *AnthropicEnricher {
	return &AnthropicEnricher{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (a *AnthropicEnricher) Enrich(ctx context.Context, text, docContext string) (Result, error) {
	prompt := enrichmentPrompt(text, docContext)

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 512,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return Result{}, err
	}

	var out string
	for _, block := range msg.Content {
		if block.Type == "text" {
			out += block.Text
		}
	}
	return parseEnrichmentReply(out), nil
}

func enrichmentPrompt(text, docContext string) string {
	if docContext == "" {
		return fmt.Sprintf(enrichmentPromptTemplate, text)
	}
	return fmt.Sprintf(enrichmentPromptTemplateWithContext, docContext, text)
}

const enrichmentPromptTemplate = `Summarize the following passage in one or two sentences, then list up to 5 keywords.
Reply in exactly this format:
Summary: <summary>
Keywords: <comma-separated keywords>

Passage:
%s`

const enrichmentPromptTemplateWithContext = `Document context: %s

Summarize the following passage in one or two sentences, then list up to 5 keywords.
Reply in exactly this format:
Summary: <summary>
Keywords: <comma-separated keywords>

Passage:
%s`
