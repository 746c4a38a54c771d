package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/harsahib2907/climate-policy-simulator/internal/metrics"
	"github.com/harsahib2907/climate-policy-simulator/internal/sim"
	"github.com/harsahib2907/climate-policy-simulator/internal/store"
	"github.com/harsahib2907/climate-policy-simulator/internal/summary"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, map[string]any{
		"status":               "ok",
		"headlines_enabled":    s.headlines != nil,
		"urban_impact_enabled": s.imageGen != nil,
	})
}

type initResponse struct {
	Baseline            sim.Baseline               `json:"baseline"`
	BAUProjection       *sim.ProjectionResult      `json:"bau_projection"`
	HistoricalEmissions []store.HistoricalEmission `json:"historical_emissions"`
	HorizonYears        int                        `json:"horizon_years"`
}

// handleInit returns everything a fresh client needs: the active
// baseline, the no-policy trajectory, and the recorded historical series.
func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	baseline := s.currentBaseline()

	bau, err := s.engine.Project(baseline, sim.PolicyParameters{}, DefaultHorizonYears)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.ProjectionsComputed.WithLabelValues("single").Inc()

	history, err := s.store.GetHistoricalEmissions()
	if err != nil {
		log.Warn().Err(err).Msg("historical emissions lookup failed")
		history = nil
	}

	writeData(w, initResponse{
		Baseline:            baseline,
		BAUProjection:       bau,
		HistoricalEmissions: history,
		HorizonYears:        DefaultHorizonYears,
	})
}

type calculateRequest struct {
	Policy       sim.PolicyParameters `json:"policy"`
	HorizonYears int                  `json:"horizon_years"`
}

type calculateResponse struct {
	Projection   *sim.ProjectionResult `json:"projection"`
	Equivalences []summary.Equivalence `json:"equivalences"`
	Cached       bool                  `json:"cached"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	if req.HorizonYears == 0 {
		req.HorizonYears = DefaultHorizonYears
	}

	result, cached, err := s.project(req.Policy, req.HorizonYears)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, calculateResponse{
		Projection:   result,
		Equivalences: s.summarizer.Summarize(result),
		Cached:       cached,
	})
}

// project runs a single projection through the cache. Identical inputs
// produce identical results, so a fingerprint hit is always safe to serve.
func (s *Server) project(policy sim.PolicyParameters, horizonYears int) (*sim.ProjectionResult, bool, error) {
	baseline := s.currentBaseline()
	fp := s.engine.Fingerprint(baseline, policy, horizonYears)

	cached, err := s.store.GetCachedProjection(fp)
	switch {
	case err != nil:
		metrics.ProjectionCacheLookups.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("projection cache lookup failed")
	case cached != nil:
		metrics.ProjectionCacheLookups.WithLabelValues("hit").Inc()
		return cached, true, nil
	default:
		metrics.ProjectionCacheLookups.WithLabelValues("miss").Inc()
	}

	result, err := s.engine.Project(baseline, policy, horizonYears)
	if err != nil {
		return nil, false, err
	}
	metrics.ProjectionsComputed.WithLabelValues("single").Inc()

	if err := s.store.PutCachedProjection(fp, result); err != nil {
		log.Warn().Err(err).Msg("projection cache write failed")
	}
	return result, false, nil
}

type compareRequest struct {
	Scenarios    []sim.NamedPolicy `json:"scenarios"`
	HorizonYears int               `json:"horizon_years"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	if req.HorizonYears == 0 {
		req.HorizonYears = DefaultHorizonYears
	}

	result, err := s.engine.Compare(s.currentBaseline(), req.Scenarios, req.HorizonYears)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.ProjectionsComputed.WithLabelValues("comparison").Inc()

	writeData(w, result)
}
