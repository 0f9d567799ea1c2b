package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// SystemInstruction frames every conversation with the model.
const SystemInstruction = "You are a helpful assistant to book hostel services."

// Model turns a prompt into the raw text of the model's reply.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var errEmptyCandidate = errors.New("model returned no content")

// GeminiModel talks to Google's Gemini API. The key is supplied by the
// caller, never read from code.
type GeminiModel struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiModel(ctx context.Context, apiKey, modelName string, temperature float32) (*GeminiModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = genai.NewUserContent(genai.Text(SystemInstruction))

	return &GeminiModel{client: client, model: model}, nil
}

func (g *GeminiModel) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyCandidate
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (g *GeminiModel) Close() error {
	return g.client.Close()
}
