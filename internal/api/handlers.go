package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"lumina/internal/analysis"
	"lumina/internal/errors"
	"lumina/internal/journal"
)

// bodyOverhead allows for JSON framing around the code field.
const bodyOverhead = 64 * 1024

// maxEscapeRatio is the worst case JSON growth of one code byte ("\u00XX").
const maxEscapeRatio = 6

// analyzeRequest mirrors analysis.Request with presence tracking.
type analyzeRequest struct {
	Language *string `json:"language"`
	Code     *string `json:"code"`
	Filename *string `json:"filename"`
}

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message *string `json:"message"`
}

// ChatResponse is returned by POST /chat
type ChatResponse struct {
	Response string `json:"response"`
}

// HistoryResponse is returned by GET /history
type HistoryResponse struct {
	Runs  []journal.Run `json:"runs"`
	Total int           `json:"total"`
	Limit int           `json:"limit"`
}

// handleAnalyze runs the engine over the submitted code, replaces the
// project snapshot and journals the run.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowed(w, http.MethodPost)
		return
	}

	maxCode := s.config.Analysis.MaxCodeBytes
	var body analyzeRequest
	if err := decodeBody(w, r, int64(maxCode)*maxEscapeRatio+bodyOverhead, &body); err != nil {
		WriteLuminaError(w, err)
		return
	}

	switch {
	case body.Language == nil:
		BadRequest(w, "Missing required field: language")
		return
	case body.Code == nil:
		BadRequest(w, "Missing required field: code")
		return
	}
	if len(*body.Code) > maxCode {
		WriteLuminaError(w, errors.New(errors.PayloadTooLarge, "Code exceeds the configured size limit", nil).
			WithDetails(map[string]int{"size": len(*body.Code), "limit": maxCode}))
		return
	}

	req := analysis.Request{Language: *body.Language, Code: *body.Code}
	if body.Filename != nil {
		req.Filename = *body.Filename
	}

	ctx := r.Context()
	if err := simulateLatency(ctx, s.config.Analysis.SimulatedLatencyMs); err != nil {
		WriteLuminaError(w, errors.New(errors.Timeout, "Request cancelled during analysis", err))
		return
	}

	res := analysis.Analyze(req)
	s.snapshots.Apply(res)

	if s.journal != nil {
		if _, err := s.journal.Record(ctx, req, res); err != nil {
			s.logger.Warn("Failed to journal analysis",
				"error", err.Error(),
				"requestID", GetRequestID(ctx),
			)
		}
	}

	s.logger.Debug("Analysis complete",
		"language", req.Language,
		"filename", req.Filename,
		"issues", res.IssuesOpen(),
		"complexity", res.Complexity.Label,
	)

	WriteJSON(w, res.Response(), http.StatusOK)
}

// handleSystemHealth returns the current project snapshot
func (s *Server) handleSystemHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w, http.MethodGet)
		return
	}

	WriteJSON(w, s.snapshots.Get(), http.StatusOK)
}

// handleChat answers a message from the canned rule table
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowed(w, http.MethodPost)
		return
	}

	var body ChatRequest
	if err := decodeBody(w, r, bodyOverhead, &body); err != nil {
		WriteLuminaError(w, err)
		return
	}
	if body.Message == nil {
		BadRequest(w, "Missing required field: message")
		return
	}

	ctx := r.Context()
	if err := simulateLatency(ctx, s.config.Chat.SimulatedLatencyMs); err != nil {
		WriteLuminaError(w, errors.New(errors.Timeout, "Request cancelled while composing a reply", err))
		return
	}

	response, rule := s.responder.Respond(*body.Message)
	s.logger.Debug("Chat reply", "rule", rule, "requestID", GetRequestID(ctx))

	WriteJSON(w, ChatResponse{Response: response}, http.StatusOK)
}

// handleHistory lists journaled analyses, newest first
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w, http.MethodGet)
		return
	}

	if s.journal == nil {
		WriteLuminaError(w, errors.New(errors.JournalUnavailable, "Analysis journal is disabled", nil))
		return
	}

	limit, err := parseLimit(r, s.config.Journal.HistoryLimit)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	runs, err := s.journal.Recent(ctx, limit)
	if err != nil {
		WriteLuminaError(w, errors.New(errors.JournalUnavailable, "Failed to read analysis journal", err))
		return
	}
	total, err := s.journal.Count(ctx)
	if err != nil {
		WriteLuminaError(w, errors.New(errors.JournalUnavailable, "Failed to count journal entries", err))
		return
	}

	WriteJSON(w, HistoryResponse{Runs: runs, Total: total, Limit: limit}, http.StatusOK)
}

// parseLimit reads ?limit=N, defaulting to and capped by max.
func parseLimit(r *http.Request, max int) (int, error) {
	if max <= 0 {
		max = 50
	}
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return max, nil
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return 0, stderrors.New("invalid limit parameter: " + limitStr)
	}
	if limit <= 0 {
		return 0, stderrors.New("limit must be positive")
	}
	if limit > max {
		limit = max
	}
	return limit, nil
}

// decodeBody decodes a JSON body of at most limit bytes into v.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v interface{}) *errors.LuminaError {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			return errors.New(errors.PayloadTooLarge, "Request body too large", err).
				WithDetails(map[string]int64{"limit": tooLarge.Limit})
		case stderrors.Is(err, io.EOF):
			return errors.New(errors.InvalidRequest, "Request body is empty", nil)
		default:
			return errors.New(errors.InvalidRequest, "Invalid JSON body", err)
		}
	}
	return nil
}

// simulateLatency waits ms milliseconds unless ctx ends first.
func simulateLatency(ctx context.Context, ms int) error {
	if ms <= 0 {
		return nil
	}
	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
