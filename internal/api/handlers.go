package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/alexanderramin/moodflix/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

// HistoryResponse is the body of GET /v1/users/{userID}/history.
type HistoryResponse struct {
	UserID string         `json:"user_id"`
	Turns  []*domain.Turn `json:"turns"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	reply, err := h.chat.HandleMessage(r.Context(), req.UserID, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrEmptyUserID) {
			writeError(w, http.StatusBadRequest, "user_id is required")
			return
		}
		h.logger.ErrorContext(r.Context(), "chat turn failed",
			"request_id", chiMiddleware.GetReqID(r.Context()),
			"user_id", req.UserID,
			"error", err,
		)
		writeError(w, http.StatusServiceUnavailable, "chat unavailable")
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	turns, err := h.history.ListByUser(r.Context(), userID, limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "listing history failed",
			"request_id", chiMiddleware.GetReqID(r.Context()),
			"user_id", userID,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	if turns == nil {
		turns = []*domain.Turn{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{UserID: userID, Turns: turns})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
