// Package headline generates one-sentence press headlines for a policy
// outcome via an LLM. It is a collaborator, not part of the engine: its
// failure never invalidates a numeric result that was already computed.
package headline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog/log"

	"github.com/harsahib2907/climate-policy-simulator/internal/httputil"
	"github.com/harsahib2907/climate-policy-simulator/internal/metrics"
	"github.com/harsahib2907/climate-policy-simulator/internal/sim"
)

// Generator produces headlines through the OpenAI chat API.
type Generator struct {
	client openai.Client
	model  openai.ChatModel
}

// NewGenerator reads OPENAI_API_KEY. Callers treat a missing key as
// "headlines disabled" rather than a startup failure.
func NewGenerator() (*Generator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httputil.NewClient()),
	)

	return &Generator{
		client: client,
		model:  openai.ChatModelGPT4oMini,
	}, nil
}

// Request carries the policy levels and projection context the headline
// is written from.
type Request struct {
	Policy sim.PolicyParameters

	// EmissionReductionPct is the final-year reduction against the
	// baseline, in percent.
	EmissionReductionPct float64

	// AvoidedTons is the cumulative CO2 avoided over the horizon.
	AvoidedTons float64

	HorizonYears int
}

// Generate returns a single cleaned headline sentence. Transient API
// failures are retried briefly; persistent failure is returned to the
// caller, who degrades gracefully.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	prompt := BuildPrompt(req)

	start := time.Now()
	var text string
	operation := func() error {
		resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: g.model,
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return backoff.Permanent(errors.New("no completion returned"))
		}
		text = resp.Choices[0].Message.Content
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 45 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		metrics.CollaboratorCalls.WithLabelValues("headline", "error").Inc()
		return "", fmt.Errorf("headline generation: %w", err)
	}

	metrics.CollaboratorCalls.WithLabelValues("headline", "ok").Inc()
	metrics.CollaboratorLatency.WithLabelValues("headline").Observe(time.Since(start).Seconds())

	headline := CleanHeadline(text)
	if headline == "" {
		return "", errors.New("model returned empty headline")
	}

	log.Debug().Int("length", len(headline)).Msg("generated headline")
	return headline, nil
}
