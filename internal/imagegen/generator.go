// Package imagegen renders the visual side of a scenario: AI-generated
// urban "before and after" street scenes, and composited share cards.
package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog/log"

	"github.com/harsahib2907/climate-policy-simulator/internal/httputil"
	"github.com/harsahib2907/climate-policy-simulator/internal/metrics"
)

// Variant selects which side of the before/after pair to render.
type Variant string

const (
	VariantCurrent  Variant = "current"
	VariantImproved Variant = "improved"
)

// ImpactBand buckets a pollution-index reduction so that similar
// scenarios share one generated image instead of paying for a fresh one.
type ImpactBand string

const (
	BandMinimal        ImpactBand = "minimal"
	BandModerate       ImpactBand = "moderate"
	BandStrong         ImpactBand = "strong"
	BandTransformative ImpactBand = "transformative"
)

// BandForReduction maps a pollution-index reduction percentage to its band.
func BandForReduction(pct float64) ImpactBand {
	switch {
	case pct < 10:
		return BandMinimal
	case pct < 30:
		return BandModerate
	case pct < 60:
		return BandStrong
	default:
		return BandTransformative
	}
}

// Generator handles urban impact image generation using OpenAI's API.
type Generator struct {
	client openai.Client
	model  string
}

// NewGenerator creates a new image generator.
// It reads the OPENAI_API_KEY environment variable for authentication.
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
		model:  "gpt-image-1",
	}, nil
}

// Generate creates one side of the before/after pair for a band.
// Returns the image as PNG bytes.
func (g *Generator) Generate(ctx context.Context, variant Variant, band ImpactBand) ([]byte, error) {
	prompt := BuildScenePrompt(variant, band)

	log.Info().Str("variant", string(variant)).Str("band", string(band)).Msg("generating urban impact image")

	start := time.Now()
	resp, err := g.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:        g.model,
		Prompt:       prompt,
		Size:         openai.ImageGenerateParamsSize1536x1024,
		Quality:      openai.ImageGenerateParamsQualityLow,
		OutputFormat: openai.ImageGenerateParamsOutputFormatPNG,
	})
	if err != nil {
		metrics.CollaboratorCalls.WithLabelValues("imagegen", "error").Inc()
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	if len(resp.Data) == 0 {
		metrics.CollaboratorCalls.WithLabelValues("imagegen", "error").Inc()
		return nil, errors.New("no image data returned")
	}

	imageData := resp.Data[0].B64JSON
	if imageData == "" {
		metrics.CollaboratorCalls.WithLabelValues("imagegen", "error").Inc()
		return nil, errors.New("empty image data returned")
	}

	imageBytes, err := base64.StdEncoding.DecodeString(imageData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}

	metrics.CollaboratorCalls.WithLabelValues("imagegen", "ok").Inc()
	metrics.CollaboratorLatency.WithLabelValues("imagegen").Observe(time.Since(start).Seconds())

	log.Info().Str("variant", string(variant)).Str("band", string(band)).Int("bytes", len(imageBytes)).
		Msg("generated urban impact image")
	return imageBytes, nil
}

// BuildScenePrompt renders the image prompt for a variant and band.
// Both variants describe the same street so the pair reads as one place.
func BuildScenePrompt(variant Variant, band ImpactBand) string {
	base := "Photorealistic wide shot of a busy main street in a large Indian metropolitan city, " +
		"mid-morning light, consistent camera angle at street level."

	if variant == VariantCurrent {
		return base + " Dense combustion-engine traffic, visible exhaust haze, grey smoggy sky, " +
			"sparse dusty roadside trees, coal plant chimneys on the horizon."
	}

	switch band {
	case BandMinimal:
		return base + " Mostly petrol traffic with a few electric cars at a new charging point, " +
			"slightly clearer sky, a handful of freshly planted saplings along the footpath."
	case BandModerate:
		return base + " Mixed traffic with many electric vehicles and buses, noticeably clearer sky, " +
			"young trees lining the street, rooftop solar panels on several buildings."
	case BandStrong:
		return base + " Electric vehicles dominate the road, blue sky with light haze only, " +
			"mature green trees forming a partial canopy, solar panels and a wind turbine visible beyond the rooftops."
	default:
		return base + " Quiet electric traffic and cycle lanes, crisp blue sky, a full green tree canopy " +
			"over the street, solar rooftops everywhere and wind turbines on the horizon, people walking comfortably."
	}
}
