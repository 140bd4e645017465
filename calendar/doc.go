// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package calendar answers "which day is it" for the daily vote limit and the
tally rollover.

All day comparisons happen in one fixed reference zone (Asia/Taipei unless
configured otherwise), never in the server's local zone:

	loc, err := calendar.LoadZone(cfg.TimeZone)
	today := calendar.Date(time.Now(), loc) // "2025-03-01"

The zone database is embedded through time/tzdata so containers without
/usr/share/zoneinfo still resolve the zone.
*/
package calendar

import _ "time/tzdata"
