// Package api exposes the simulation engine over HTTP as a JSON API.
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/harsahib2907/climate-policy-simulator/internal/headline"
	"github.com/harsahib2907/climate-policy-simulator/internal/imagegen"
	"github.com/harsahib2907/climate-policy-simulator/internal/sim"
	"github.com/harsahib2907/climate-policy-simulator/internal/store"
	"github.com/harsahib2907/climate-policy-simulator/internal/summary"
)

// DefaultHorizonYears is used when a request omits the horizon.
const DefaultHorizonYears = 25

type Server struct {
	store          *store.Store
	engine         *sim.Engine
	summarizer     *summary.Summarizer
	fallback       sim.Baseline
	baselineSource string
	port           string

	headlines  *headline.Generator
	imageGen   *imagegen.Generator
	imageCache *imagegen.Cache
	cardCache  *imagegen.ShareCardCache
	genMu      sync.Mutex // Prevents concurrent generation of the same image
}

func NewServer(st *store.Store, engine *sim.Engine, fallback sim.Baseline, baselineSource, port string) *Server {
	// Collaborators are optional, the numeric API works without a key.
	var headlines *headline.Generator
	if gen, err := headline.NewGenerator(); err != nil {
		log.Info().Err(err).Msg("headline generation disabled")
	} else {
		headlines = gen
	}

	var imageGen *imagegen.Generator
	if gen, err := imagegen.NewGenerator(); err != nil {
		log.Info().Err(err).Msg("urban impact image generation disabled")
	} else {
		imageGen = gen
	}

	return &Server{
		store:          st,
		engine:         engine,
		summarizer:     summary.NewSummarizer(summary.DefaultFactors()),
		fallback:       fallback,
		baselineSource: baselineSource,
		port:           port,
		headlines:      headlines,
		imageGen:       imageGen,
		imageCache:     imagegen.NewCache("data/images"),
		cardCache:      imagegen.NewShareCardCache(10 * time.Minute),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/init", s.handleInit)
	mux.HandleFunc("POST /api/calculate", s.handleCalculate)
	mux.HandleFunc("POST /api/compare", s.handleCompare)
	mux.HandleFunc("POST /api/news", s.handleNews)
	mux.HandleFunc("POST /api/urban-impact/generate", s.handleUrbanImpact)
	mux.HandleFunc("GET /api/scenarios", s.handleListScenarios)
	mux.HandleFunc("POST /api/scenarios", s.handleSaveScenario)
	mux.HandleFunc("GET /api/scenarios/{name}", s.handleGetScenario)
	mux.HandleFunc("DELETE /api/scenarios/{name}", s.handleDeleteScenario)
	mux.HandleFunc("GET /scenario-card", s.handleScenarioCard)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", s.port).Msg("listening")
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// currentBaseline prefers the most recent stored snapshot and falls back
// to the configured baseline when none has been ingested yet.
func (s *Server) currentBaseline() sim.Baseline {
	b, err := s.store.GetLatestBaseline(s.baselineSource)
	if err != nil {
		log.Warn().Err(err).Msg("baseline snapshot lookup failed")
		return s.fallback
	}
	if b == nil {
		return s.fallback
	}
	return *b
}
