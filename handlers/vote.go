// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/zr6b/voteapp/cliparse"
	"github.com/zr6b/voteapp/ledger"
	"github.com/zr6b/voteapp/middleware"
	"github.com/zr6b/voteapp/models"
)

type VoteHandler struct {
	ledger *ledger.Ledger
	cfg    cliparse.Config
}

func NewVoteHandler(lg *ledger.Ledger, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{ledger: lg, cfg: cfg}
}

// CastVote handles POST /api/vote
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if req.Region == "" || strings.TrimSpace(req.Surname) == "" || req.Gender == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgIncomplete)
		return
	}

	if _, err := h.ledger.CastVote(r.Context(), req, originOf(r, h.cfg)); err != nil {
		writeLedgerError(w, err, "vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ActionResponse{
		Success: true,
		Message: msgVoteAccepted,
	})
}
