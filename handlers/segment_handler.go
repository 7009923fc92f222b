// Package handlers implements the HTTP surface of the wordbreak service.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/alphagov/wordbreak/segmenter"
	"github.com/alphagov/wordbreak/trie"
)

const (
	outcomeSegmented     = "segmented"
	outcomeUnmatchable   = "unmatchable"
	outcomeNonAlphabetic = "non-alphabetic"
	outcomeBadRequest    = "bad-request"
	outcomeInternalError = "internal-error"
)

// SegmentService is the part of the wordbreak service the handler needs.
type SegmentService interface {
	Segment(input string) ([]string, error)
}

type SegmentRequest struct {
	Input string `json:"input"`
}

type SegmentResponse struct {
	Input    string   `json:"input"`
	Segments []string `json:"segments"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewSegmentHandler makes an http.Handler which segments the input string of
// a POSTed JSON request body into dictionary words. Inputs containing
// non-alphabetic characters are rejected before segmentation; inputs for
// which no segmentation exists get a 422 with a JSON error body.
func NewSegmentHandler(svc SegmentService, logger zerolog.Logger) http.Handler {
	return &segmentHandler{svc: svc, logger: logger}
}

type segmentHandler struct {
	svc    SegmentService
	logger zerolog.Logger
}

func (handler *segmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req SegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.logger.Warn().Err(err).Msg("failed to decode segment request")
		writeError(w, http.StatusBadRequest, "request body must be JSON with an \"input\" string")
		observe(outcomeBadRequest, start)
		return
	}

	if err := trie.CheckAlphabetic(req.Input); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		observe(outcomeNonAlphabetic, start)
		return
	}

	segments, err := handler.svc.Segment(req.Input)
	switch {
	case errors.Is(err, segmenter.ErrUnmatchable):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		observe(outcomeUnmatchable, start)
		return
	case err != nil:
		handler.logger.Error().Err(err).Msg("segmentation failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		observe(outcomeInternalError, start)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(SegmentResponse{Input: req.Input, Segments: segments}); err != nil {
		handler.logger.Warn().Err(err).Msg("failed to write response")
	}
	observe(outcomeSegmented, start)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

func observe(outcome string, start time.Time) {
	labels := prometheus.Labels{"outcome": outcome}
	SegmentHandlerRequestCountMetric.With(labels).Inc()
	SegmentHandlerDurationSecondsMetric.With(labels).Observe(time.Since(start).Seconds())
}
