// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth derives the admin key and the origin identifiers.

# Admin Key

The broadcast switch is guarded by an HMAC key derived from ADMIN_KEY_SALT:

	key := auth.GenerateAdminKey(auth.AdminScope, salt)
	err := auth.ValidateAdminKey(auth.AdminScope, provided, salt)

Print it with `voteapp -print-admin-key`. Validation is constant-time.

# Origin Hashing

The rate limiters key on the caller's network address, but only a salted
hash of it is kept in memory or written to logs:

	origin := auth.HashIP(middleware.GetClientIP(r, trustProxy), salt)

Several clients behind one address share a single origin.
*/
package auth
