// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ingest merges repeated newest-first polls into a bounded local list
without duplicating entries.

	feed := ingest.NewList(20, func(e models.VoteLogEntry) int64 { return e.ID })
	added := feed.Merge(polled)

Merge walks a batch from oldest to newest, skips IDs it has seen, and
prepends the rest, so the list stays newest-first. Re-merging the same batch
adds nothing. MarkSeen registers an entry the caller produced itself so its
echo in a later poll is ignored.

The seen set is never pruned; a List lives for one client session.
*/
package ingest
