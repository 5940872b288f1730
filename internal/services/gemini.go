package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/Kruthisver/AI-Interview-Coach/internal/interview"
)

// GeminiGateway is the hosted alternative to OllamaGateway, selected with
// LLM_PROVIDER=gemini. It applies the same sampling settings.
type GeminiGateway struct {
	client   *genai.Client
	sampling interview.Sampling
	log      *zap.Logger
}

func NewGeminiGateway(ctx context.Context, apiKey string, sampling interview.Sampling, log *zap.Logger) (*GeminiGateway, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGateway{
		client:   client,
		sampling: sampling,
		log:      log,
	}, nil
}

func (g *GeminiGateway) Close() error {
	return g.client.Close()
}

func (g *GeminiGateway) Generate(ctx context.Context, model, prompt string, timeout time.Duration) string {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	m := g.client.GenerativeModel(model)
	configureModel(m, g.sampling)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.log.Warn("gemini request failed", zap.String("model", model), zap.Error(err))
		return ""
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop && cand.FinishReason != genai.FinishReasonMaxTokens {
			g.log.Warn("gemini stopped early",
				zap.Int("candidate", i),
				zap.String("finish_reason", cand.FinishReason.String()),
			)
		}
	}

	return strings.TrimSpace(extractText(resp))
}

func configureModel(m *genai.GenerativeModel, sampling interview.Sampling) {
	m.SetTemperature(float32(sampling.Temperature))
	m.SetTopP(float32(sampling.TopP))
	m.SetMaxOutputTokens(int32(sampling.MaxTokens))
	m.StopSequences = append([]string(nil), sampling.Stop...)
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
