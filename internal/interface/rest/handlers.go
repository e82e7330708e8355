package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"boardingpass-service/internal/domain/entity"
)

type scanItem struct {
	Source  string `json:"source" validate:"required,max=255"`
	Payload string `json:"payload" validate:"max=4096"`
}

type scanRequest struct {
	Scans []scanItem `json:"scans" validate:"required,min=1,max=100,dive"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) submitScans(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: validationDetails(err)})
		return
	}

	payloads := make([]entity.RawPayload, len(req.Scans))
	for i, item := range req.Scans {
		payloads[i] = entity.RawPayload{Source: item.Source, Text: item.Payload}
	}

	report, err := s.scans.ProcessPayloads(r.Context(), payloads)
	if err != nil {
		s.logger.Error("Failed to process scans", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to store flight legs"})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) listLegs(w http.ResponseWriter, r *http.Request) {
	legs, err := s.scans.Legs(r.Context())
	if err != nil {
		s.logger.Error("Failed to load legs", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load flight legs"})
		return
	}
	if legs == nil {
		legs = []entity.FlightLeg{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"legs":  legs,
		"count": len(legs),
	})
}

func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "scanRequest.")
		if fe.Param() != "" {
			details = append(details, fmt.Sprintf("%s: %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			details = append(details, fmt.Sprintf("%s: %s", field, fe.Tag()))
		}
	}
	return details
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
