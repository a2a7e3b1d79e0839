package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/roach88/mutantd/internal/dna"
)

type mutantRequest struct {
	DNA []string `json:"dna"`
}

func (s *Server) handleMutant(w http.ResponseWriter, r *http.Request) {
	var req mutantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, msgTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}

	switch {
	case req.DNA == nil:
		writeError(w, http.StatusBadRequest, msgNullDNA)
		return
	case len(req.DNA) < dna.MinSize:
		writeError(w, http.StatusBadRequest, msgTooShort)
		return
	}

	mutant, err := s.ledger.Classify(r.Context(), req.DNA)
	if err != nil {
		var verr *dna.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		s.logger.Error("classify failed", "request_id", RequestIDFrom(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	if mutant {
		writeJSON(w, http.StatusOK, messageResponse{Message: msgMutant})
		return
	}
	writeJSON(w, http.StatusForbidden, messageResponse{Message: msgHuman})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ledger.Statistics(r.Context())
	if err != nil {
		s.logger.Error("statistics failed", "request_id", RequestIDFrom(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
