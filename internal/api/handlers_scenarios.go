package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/harsahib2907/climate-policy-simulator/internal/sim"
)

// maxScenarioNameLen keeps saved names usable as cache keys and labels.
const maxScenarioNameLen = 80

type saveScenarioRequest struct {
	Name   string               `json:"name"`
	Policy sim.PolicyParameters `json:"policy"`
}

func (s *Server) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	var req saveScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxScenarioNameLen {
		writeBadRequest(w, "scenario name must be 1-80 characters")
		return
	}

	if err := req.Policy.Validate(); err != nil {
		writeError(w, err)
		return
	}

	if err := s.store.UpsertScenario(name, req.Policy); err != nil {
		writeError(w, err)
		return
	}

	saved, err := s.store.GetScenario(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, saved)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := s.store.ListScenarios()
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, scenarios)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	saved, err := s.store.GetScenario(name)
	if err != nil {
		writeError(w, err)
		return
	}
	if saved == nil {
		http.NotFound(w, r)
		return
	}
	writeData(w, saved)
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteScenario(r.PathValue("name")); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, map[string]bool{"deleted": true})
}
