package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/harsahib2907/climate-policy-simulator/internal/headline"
	"github.com/harsahib2907/climate-policy-simulator/internal/imagegen"
	"github.com/harsahib2907/climate-policy-simulator/internal/sim"
)

// reductionPct returns the final-year drop against the base-year value,
// in percent.
func reductionPct(base, final float64) float64 {
	if base <= 0 {
		return 0
	}
	return (base - final) / base * 100
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if s.headlines == nil {
		writeError(w, &sim.Error{Kind: sim.KindDataUnavailable, Message: "headline generation is not configured"})
		return
	}

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	if req.HorizonYears == 0 {
		req.HorizonYears = DefaultHorizonYears
	}

	result, _, err := s.project(req.Policy, req.HorizonYears)
	if err != nil {
		writeError(w, err)
		return
	}

	final := result.Points[len(result.Points)-1]
	text, err := s.headlines.Generate(r.Context(), headline.Request{
		Policy:               req.Policy,
		EmissionReductionPct: reductionPct(result.Baseline.BaseYearEmissionsTons, final.CO2EmissionsTons),
		AvoidedTons:          result.CumulativeAvoidedCO2(),
		HorizonYears:         req.HorizonYears,
	})
	if err != nil {
		writeError(w, &sim.Error{Kind: sim.KindDataUnavailable, Message: err.Error()})
		return
	}

	writeData(w, map[string]string{"headline": text})
}

type urbanImpactResponse struct {
	Band     string `json:"band"`
	Current  string `json:"current"`
	Improved string `json:"improved"`
}

// handleUrbanImpact returns the before/after street scenes for a policy,
// base64-encoded. Scenarios with similar pollution outcomes share cached
// images.
func (s *Server) handleUrbanImpact(w http.ResponseWriter, r *http.Request) {
	if s.imageGen == nil {
		writeError(w, &sim.Error{Kind: sim.KindDataUnavailable, Message: "image generation is not configured"})
		return
	}

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	if req.HorizonYears == 0 {
		req.HorizonYears = DefaultHorizonYears
	}

	result, _, err := s.project(req.Policy, req.HorizonYears)
	if err != nil {
		writeError(w, err)
		return
	}

	final := result.Points[len(result.Points)-1]
	band := imagegen.BandForReduction(100 - final.PollutionIndex)

	current, err := s.urbanImage(r.Context(), imagegen.VariantCurrent, band)
	if err != nil {
		writeError(w, &sim.Error{Kind: sim.KindDataUnavailable, Message: err.Error()})
		return
	}
	improved, err := s.urbanImage(r.Context(), imagegen.VariantImproved, band)
	if err != nil {
		writeError(w, &sim.Error{Kind: sim.KindDataUnavailable, Message: err.Error()})
		return
	}

	writeData(w, urbanImpactResponse{
		Band:     string(band),
		Current:  base64.StdEncoding.EncodeToString(current),
		Improved: base64.StdEncoding.EncodeToString(improved),
	})
}

// urbanImage serves from the file cache, generating at most one image at
// a time for a cold key.
func (s *Server) urbanImage(ctx context.Context, variant imagegen.Variant, band imagegen.ImpactBand) ([]byte, error) {
	if data, ok := s.imageCache.Get(variant, band); ok {
		return data, nil
	}

	s.genMu.Lock()
	defer s.genMu.Unlock()

	// Another request may have filled the cache while we waited.
	if data, ok := s.imageCache.Get(variant, band); ok {
		return data, nil
	}

	genCtx, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	data, err := s.imageGen.Generate(genCtx, variant, band)
	if err != nil {
		return nil, err
	}
	if err := s.imageCache.Set(variant, band, data); err != nil {
		log.Warn().Err(err).Msg("image cache write failed")
	}
	return data, nil
}

// handleScenarioCard renders a shareable PNG for a saved scenario.
func (s *Server) handleScenarioCard(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeBadRequest(w, "missing scenario name")
		return
	}

	saved, err := s.store.GetScenario(name)
	if err != nil {
		writeError(w, err)
		return
	}
	if saved == nil {
		http.NotFound(w, r)
		return
	}

	result, _, err := s.project(saved.Policy, DefaultHorizonYears)
	if err != nil {
		writeError(w, err)
		return
	}

	key := s.engine.Fingerprint(result.Baseline, saved.Policy, DefaultHorizonYears)
	if card, ok := s.cardCache.Get(key); ok {
		writePNG(w, card)
		return
	}

	final := result.Points[len(result.Points)-1]
	band := imagegen.BandForReduction(100 - final.PollutionIndex)
	background, _ := s.imageCache.Get(imagegen.VariantImproved, band)

	card, err := imagegen.GenerateShareCard(background, imagegen.ShareCardData{
		ScenarioName:         saved.Name,
		EmissionReductionPct: reductionPct(result.Baseline.BaseYearEmissionsTons, final.CO2EmissionsTons),
		AvoidedTons:          result.CumulativeAvoidedCO2(),
		HorizonYears:         DefaultHorizonYears,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.cardCache.Set(key, card)
	writePNG(w, card)
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=600")
	w.Write(data)
}
