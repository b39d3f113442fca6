package imageproc

import (
	"context"
	"encoding/base64"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// visionCaptionPrompt keeps the model to a single descriptive sentence;
// anything longer reads oddly inline in a chunk's body text.
const visionCaptionPrompt = "Describe this image in one short sentence, suitable as a figure caption. Reply with only the caption."

// VisionCaptioner asks a multimodal Claude model to describe an image.
type VisionCaptioner struct {
	client anthropic.Client
	model  anthropic.Model
}

func NewVisionCaptioner(apiKey string, model anthropic.Model) *VisionCaptioner {
	return &VisionCaptioner{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (v *VisionCaptioner) Caption(ctx context.Context, data []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	msg, err := v.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     v.model,
		MaxTokens: 128,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mimeType, encoded),
				anthropic.NewTextBlock(visionCaptionPrompt),
			),
		},
	})
	if err != nil {
		return "", err
	}

	var out string
	for _, block := range msg.Content {
		if block.Type == "text" {
			out += block.Text
		}
	}
	return out, nil
}
