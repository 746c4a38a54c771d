package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/harsahib2907/climate-policy-simulator/internal/sim"
)

// Every JSON endpoint responds with the same envelope: {"success": true,
// "data": ...} or {"success": false, "error": {"kind", "message"}}.

type envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

// writeError maps a simulation error kind to an HTTP status. Caller
// mistakes are 400, missing upstream data is 503, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	kind := "Internal"
	status := http.StatusInternalServerError

	var simErr *sim.Error
	if errors.As(err, &simErr) {
		kind = string(simErr.Kind)
		switch simErr.Kind {
		case sim.KindDataUnavailable:
			status = http.StatusServiceUnavailable
		default:
			status = http.StatusBadRequest
		}
	} else {
		log.Error().Err(err).Msg("request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   &apiError{Kind: kind, Message: err.Error()},
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   &apiError{Kind: "InvalidRequest", Message: message},
	})
}
