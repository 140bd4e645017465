// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/stats", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms). The request ID is taken from X-Request-ID or
generated, and echoed back in the response header.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

ErrorResponse writes {"success": false, "message": ...}, the same shape as
successful writes, so the client reads one field regardless of outcome.

# Client IP Extraction

	ip := middleware.GetClientIP(r, cfg.TrustProxy)

Proxy headers are only honoured when the server is configured to sit
behind a proxy. The result keys the vote and message rate limiters.
*/
package middleware
