// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/zr6b/voteapp/auth"
	"github.com/zr6b/voteapp/cliparse"
	"github.com/zr6b/voteapp/ledger"
	"github.com/zr6b/voteapp/middleware"
	"github.com/zr6b/voteapp/models"
)

type BroadcastHandler struct {
	ledger *ledger.Ledger
	cfg    cliparse.Config
}

func NewBroadcastHandler(lg *ledger.Ledger, cfg cliparse.Config) *BroadcastHandler {
	return &BroadcastHandler{ledger: lg, cfg: cfg}
}

// ListBroadcasts handles GET /api/danmaku
func (h *BroadcastHandler) ListBroadcasts(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledger.Broadcasts(r.Context())
	if err != nil {
		slog.Error("failed to query broadcasts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgBroadcastFailed)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}

// PostBroadcast handles POST /api/danmaku
func (h *BroadcastHandler) PostBroadcast(w http.ResponseWriter, r *http.Request) {
	var req models.BroadcastRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	entry, err := h.ledger.PostBroadcast(r.Context(), req.Message, originOf(r, h.cfg))
	if err != nil {
		writeLedgerError(w, err, "broadcast")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BroadcastResponse{
		Success:  true,
		Message:  msgBroadcastSent,
		NewEntry: &entry,
	})
}

// SetEnabled handles PUT /api/admin/danmaku
// Requires X-Admin-Key header
func (h *BroadcastHandler) SetEnabled(w http.ResponseWriter, r *http.Request) {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(auth.AdminScope, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.BroadcastToggleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if req.Enabled == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "enabled is required")
		return
	}

	if err := h.ledger.SetBroadcastEnabled(r.Context(), *req.Enabled); err != nil {
		writeLedgerError(w, err, "toggle broadcast")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BroadcastToggleResponse{
		Enabled: *req.Enabled,
	})
}

// GetEnabled handles GET /api/admin/danmaku
// Requires X-Admin-Key header
func (h *BroadcastHandler) GetEnabled(w http.ResponseWriter, r *http.Request) {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(auth.AdminScope, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	enabled, err := h.ledger.BroadcastEnabled(r.Context())
	if err != nil {
		writeLedgerError(w, err, "read broadcast switch")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BroadcastToggleResponse{
		Enabled: enabled,
	})
}
