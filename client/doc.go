// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client talks to a voteapp server.

# Client

Client wraps the JSON API:

	c := client.New("http://localhost:3007")
	stats, err := c.Stats(ctx)

Non-2xx answers come back as *APIError carrying the status code and the
server's message; any other error means the request never completed.

# Vote Gate

Gate keeps the timestamp of the last accepted vote in a Store under
LastVoteKey and refuses a second vote on the same local calendar day:

	gate := client.NewGate(client.NewFileStore(path), nil)
	resp, err := gate.Vote(ctx, c, req, time.Now())

A 429 from the server closes the gate just like a success. A transport
error leaves it open. An unparsable stored value is cleared.

# Watcher

Watcher polls the feed and broadcasts every 30 seconds, merges them through
ingest lists (20 votes, 50 broadcasts), and queues unseen broadcast messages
on a lanes.Scheduler. Say refuses a second message within SendCooldown
(5 seconds by default) with ErrSendCooldown before contacting the server.
*/
package client
