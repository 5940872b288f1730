package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Kruthisver/AI-Interview-Coach/internal/interview"
	"github.com/Kruthisver/AI-Interview-Coach/internal/logger"
)

// Generator produces a single completion for a prompt. Implementations never
// fail loudly: any upstream problem yields an empty string, and callers
// substitute their own fallback text.
type Generator interface {
	Generate(ctx context.Context, model, prompt string, timeout time.Duration) string
}

type ollamaOptions struct {
	Temperature float64  `json:"temperature"`
	TopP        float64  `json:"top_p"`
	NumPredict  int      `json:"num_predict"`
	Stop        []string `json:"stop"`
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// OllamaGateway calls the /api/generate endpoint of a local Ollama server.
type OllamaGateway struct {
	client   *resty.Client
	sampling interview.Sampling
	log      *zap.Logger
}

func NewOllamaGateway(baseURL string, sampling interview.Sampling, log *zap.Logger) *OllamaGateway {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json")

	return &OllamaGateway{
		client:   client,
		sampling: sampling,
		log:      log,
	}
}

// Generate issues one non-streaming generate call. The call is detached from
// ctx cancellation and bounded only by timeout.
func (g *OllamaGateway) Generate(ctx context.Context, model, prompt string, timeout time.Duration) string {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	payload := ollamaRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: g.sampling.Temperature,
			TopP:        g.sampling.TopP,
			NumPredict:  g.sampling.MaxTokens,
			Stop:        g.sampling.Stop,
		},
	}

	start := time.Now()
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/api/generate")
	if err != nil {
		g.log.Warn("ollama request failed", zap.String("model", model), zap.Error(err))
		return ""
	}
	if resp.IsError() {
		g.log.Warn("ollama returned error status",
			zap.String("model", model),
			zap.Int("status", resp.StatusCode()),
			zap.String("body", logger.TruncateForLog(resp.String(), 200)),
		)
		return ""
	}

	var out ollamaResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		g.log.Warn("ollama response is not valid JSON", zap.String("model", model), zap.Error(err))
		return ""
	}

	text := strings.TrimSpace(out.Response)
	g.log.Debug("ollama completion",
		zap.String("model", model),
		zap.Duration("took", time.Since(start)),
		zap.Int("chars", len(text)),
	)
	return text
}
