package gcp

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

// GeminiInvoker is the production model adapter behind the analysis pipeline.
// Every Invoke is one independent generation call: the system prompt is set
// per call, so the two passes share no session state beyond what the caller
// re-injects through prompt text.
type GeminiInvoker struct {
	client    *genai.Client
	modelName string
}

// NewGeminiInvoker creates a Vertex AI client configured for the given model.
func NewGeminiInvoker(ctx context.Context, projectID, region, modelName string) (*GeminiInvoker, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewGeminiInvoker: projectID and region cannot be empty")
	}

	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	return &GeminiInvoker{client: client, modelName: modelName}, nil
}

// Invoke sends one multimodal generation request: the file inline as a blob
// part plus the user instruction, under the supplied system prompt. Returns
// the concatenated text of the first candidate.
func (g *GeminiInvoker) Invoke(ctx context.Context, systemPrompt, userPrompt string, data []byte, mimeType string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		// Forensic output should be stable run-to-run.
		Temperature: genai.Ptr[float32](0.2),
	}
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
	}

	filePart := genai.Blob{
		MIMEType: mimeType,
		Data:     data,
	}

	resp, err := model.GenerateContent(ctx, filePart, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content from gemini: %w", err)
	}

	return extractText(resp), nil
}

func (g *GeminiInvoker) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// extractText robustly gets the raw text content from the model response.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}

	var contentBuilder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			contentBuilder.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(contentBuilder.String())
}
