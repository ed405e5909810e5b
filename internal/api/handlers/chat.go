package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scamtrap-lab/internal/api/middleware"
	"scamtrap-lab/internal/domain/models"
	"scamtrap-lab/internal/domain/services"
	"scamtrap-lab/internal/domain/services/ai"
	"scamtrap-lab/internal/infrastructure/database/repository"
	"scamtrap-lab/internal/trap"
	"scamtrap-lab/pkg/logger"
)

// ChatHandler runs the full honeypot turn: extract, classify, compose
// a persona reply, assemble the response, and log intelligence.
type ChatHandler struct {
	aggregator *services.Aggregator
	classifier *services.Classifier
	composer   *ai.Composer
	assembler  *services.Assembler
	trapStore  trap.Store
	repo       repository.IntelRepository
	logger     *logger.Logger
}

func NewChatHandler(deps Dependencies) *ChatHandler {
	return &ChatHandler{
		aggregator: deps.Aggregator,
		classifier: deps.Classifier,
		composer:   deps.Composer,
		assembler:  deps.Assembler,
		trapStore:  deps.TrapStore,
		repo:       deps.IntelRepo,
		logger:     deps.Logger.WithComponent("chat"),
	}
}

// Chat handles POST /api/chat. The endpoint contract is JSON in, JSON
// out, always: any internal panic is converted to a structured 500.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error().Interface("panic", rec).Msg("chat handler panicked")
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"status":  "error",
				"error":   "INTERNAL_SERVER_ERROR",
				"message": "Internal Server Error",
			})
		}
	}()

	req, err := parseChatRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"error":   "INVALID_REQUEST_BODY",
			"message": "request body is not valid JSON",
		})
		return
	}

	text := req.MessageText()
	if text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"error":   "INVALID_REQUEST_BODY",
			"message": "no usable message text in request",
		})
		return
	}

	history := req.ConversationHistory
	intel := h.aggregator.Aggregate(history, text)
	classification := h.classifier.Classify(history, text)
	reply := h.composer.Compose(r.Context(), history, text, intel, requestBaseURL(r))

	report := h.assembler.BuildReport(reply, classification, intel)
	response := h.assembler.Render(report)

	h.logger.Info().
		Str("category", string(classification.Category)).
		Int("mobiles", len(intel.Mobiles)).
		Int("accounts", len(intel.Accounts)).
		Msg("chat turn completed")

	if h.repo != nil && intel.HasIntel() {
		rec := h.assembler.BuildRecord(report, h.capturedIP(r), text)
		// Fire and forget: the response never waits on persistence.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.repo.Insert(ctx, rec); err != nil {
				h.logger.Warn().Err(err).Msg("intel persistence failed")
			}
		}()
	}

	writeJSON(w, http.StatusOK, response)
}

// capturedIP prefers the latest trap hit's address over the chat
// request's own, since the trap page is what the scammer's real
// device touches.
func (h *ChatHandler) capturedIP(r *http.Request) string {
	if h.trapStore != nil {
		if hit, err := h.trapStore.Latest(r.Context()); err == nil && hit != nil {
			return hit.IP
		}
	}
	return middleware.ClientIP(r)
}

// parseChatRequest tolerates the shapes callers actually send: a
// plain request object, a double-encoded JSON string, or bare text.
// A text/plain body is coerced straight into the message text; a body
// claiming to be JSON but failing to parse stays a client error.
func parseChatRequest(r *http.Request) (*models.ChatRequest, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	var req models.ChatRequest
	if err := json.Unmarshal(raw, &req); err == nil {
		return &req, nil
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &req); err == nil {
			return &req, nil
		}
		return &models.ChatRequest{Text: inner}, nil
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/") {
		return &models.ChatRequest{Text: string(raw)}, nil
	}

	return nil, fmt.Errorf("unrecognized request body")
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
