// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/zr6b/voteapp/auth"
	"github.com/zr6b/voteapp/cliparse"
	"github.com/zr6b/voteapp/ledger"
	"github.com/zr6b/voteapp/middleware"
)

// Client-facing messages. The browser shows them verbatim.
const (
	msgVoteAccepted    = "投票成功！"
	msgIncomplete      = "信息不完整"
	msgInvalidGender   = "性別參數無效"
	msgInvalidRegion   = "地區參數無效"
	msgInvalidSurname  = "姓氏格式不正確 (1-4個中英文字)"
	msgAlreadyVoted    = "您今天已經投過了 (IP 限制)"
	msgBroadcastSent   = "彈幕已發送!"
	msgEmptyMessage    = "彈幕不能為空"
	msgMessageTooLong  = "彈幕過長 (最多30字)"
	msgCooldown        = "操作過於頻繁，請 5 秒後再試"
	msgBroadcastOff    = "彈幕功能已暫時關閉"
	msgDatabaseError   = "數據庫錯誤"
	msgStatsFailed     = "獲取數據失敗"
	msgFeedFailed      = "獲取日誌失敗"
	msgBroadcastFailed = "獲取彈幕失敗"
	msgInvalidJSON     = "Invalid JSON"
)

var errMessages = []struct {
	err error
	msg string
}{
	{ledger.ErrUnknownRegion, msgInvalidRegion},
	{ledger.ErrInvalidSurname, msgInvalidSurname},
	{ledger.ErrInvalidGender, msgInvalidGender},
	{ledger.ErrAlreadyVoted, msgAlreadyVoted},
	{ledger.ErrEmptyMessage, msgEmptyMessage},
	{ledger.ErrMessageTooLong, msgMessageTooLong},
	{ledger.ErrCooldown, msgCooldown},
	{ledger.ErrBroadcastDisabled, msgBroadcastOff},
}

// writeLedgerError maps a ledger error onto a status code and message.
// Anything outside the known categories is logged and reported as a
// storage failure.
func writeLedgerError(w http.ResponseWriter, err error, op string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, ledger.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		slog.Error("ledger operation failed", "op", op, "error", err)
		middleware.ErrorResponse(w, status, msgDatabaseError)
		return
	}

	msg := err.Error()
	for _, m := range errMessages {
		if errors.Is(err, m.err) {
			msg = m.msg
			break
		}
	}
	middleware.ErrorResponse(w, status, msg)
}

// originOf derives the rate-limit key for a request. Raw addresses never
// leave this function.
func originOf(r *http.Request, cfg cliparse.Config) string {
	return auth.HashIP(middleware.GetClientIP(r, cfg.TrustProxy), cfg.AdminKeySalt)
}
