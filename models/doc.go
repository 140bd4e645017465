// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase because the browser client already consumes
them in that form.

# Request Types

  - VoteRequest: region, surname, gender
  - BroadcastRequest: message
  - BroadcastToggleRequest: enabled (admin)

# Response Types

  - ActionResponse: success, message (votes and all /api errors)
  - BroadcastResponse: success, message, newEntry
  - StatsResponse: mapData, totalVotes, todayVotes
  - BroadcastToggleResponse: enabled

# Domain Types

  - RegionTally: per-region total and today counters
  - VoteLogEntry: one accepted vote, append-only
  - BroadcastEntry: one accepted broadcast message, append-only
  - RolloverMeta: last reset date and the broadcast switch

# Enumerations

	DefaultRegions  // the 22 municipalities and counties
	DefaultGenders  // 先生, 女士, 保密

Both can be replaced through the tunables file (see cliparse).
*/
package models
