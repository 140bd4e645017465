// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command voteapp-watch follows a voteapp server from the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/zr6b/voteapp/client"
	"github.com/zr6b/voteapp/lanes"
	"github.com/zr6b/voteapp/models"
)

const usage = `USAGE:
	%s [-server URL] <COMMAND> [ARGS]

	Available commands:
	- watch                          follow the feed and broadcasts
	- stats                          print region totals
	- vote <region> <surname> <title> cast today's vote
	- say <message>                  post a broadcast message
	- admin <on|off> <admin key>     turn broadcasting on or off
`

func main() {
	fs := flag.NewFlagSet("voteapp-watch", flag.ExitOnError)
	server := fs.String("server", envOr("VOTEAPP_SERVER", "http://localhost:3007"), "Server base URL")
	state := fs.String("state", envOr("VOTEAPP_STATE", defaultStatePath()), "Client state file")
	interval := fs.Duration("interval", client.DefaultPollInterval, "Poll interval for watch")
	fs.Usage = func() { fmt.Fprintf(os.Stderr, usage, os.Args[0]); fs.PrintDefaults() }
	fs.Parse(os.Args[1:])

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(*server)

	var err error
	switch args[0] {
	case "watch":
		err = Watch(ctx, c, *interval, os.Stdout)
	case "stats":
		err = Stats(ctx, c, os.Stdout)
	case "vote":
		if len(args) != 4 {
			err = errors.New("vote needs <region> <surname> <title>")
			break
		}
		gate := client.NewGate(client.NewFileStore(*state), nil)
		req := models.VoteRequest{Region: args[1], Surname: args[2], Gender: args[3]}
		err = Vote(ctx, c, gate, req, os.Stdout)
	case "say":
		if len(args) < 2 {
			err = errors.New("say needs a message")
			break
		}
		var entry models.BroadcastEntry
		entry, err = c.PostBroadcast(ctx, strings.Join(args[1:], " "))
		if err == nil {
			fmt.Printf("sent #%d\n", entry.ID)
		}
	case "admin":
		if len(args) != 3 || (args[1] != "on" && args[1] != "off") {
			err = errors.New("admin needs <on|off> <admin key>")
			break
		}
		err = c.SetBroadcastEnabled(ctx, args[2], args[1] == "on")
	default:
		fs.Usage()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

/******************************************************************************
 * Commands
 *
 *
 ******************************************************************************/

// Watch prints new votes as they arrive and broadcast messages as lanes
// free up.
func Watch(ctx context.Context, c *client.Client, interval time.Duration, out io.Writer) error {
	sched := lanes.New(lanes.DefaultConfig())
	w := client.NewWatcher(c, sched, interval)
	w.OnFeed = func(added []models.VoteLogEntry) {
		for _, e := range added {
			fmt.Fprintln(out, FormatVote(e, time.Now()))
		}
	}

	go w.Run(ctx)
	sched.Run(ctx, func(ev lanes.Event) {
		fmt.Fprintf(out, "%*s💬 %s\n", ev.Lane*2, "", ev.Message)
	})
	return ctx.Err()
}

func Stats(ctx context.Context, c *client.Client, out io.Writer) error {
	stats, err := c.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(out, FormatStats(stats))
	return nil
}

func Vote(ctx context.Context, c *client.Client, gate *client.Gate, req models.VoteRequest, out io.Writer) error {
	resp, err := gate.Vote(ctx, c, req, time.Now())
	if errors.Is(err, client.ErrVotedToday) {
		fmt.Fprintln(out, "already voted today, come back tomorrow")
		return nil
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintln(out, apiErr.Message)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, resp.Message)
	return nil
}

/******************************************************************************
 * Rendering
 *
 *
 ******************************************************************************/

// FormatVote renders one feed line, e.g. "陳先生 voted for 臺北市 (3 minutes ago)".
func FormatVote(e models.VoteLogEntry, now time.Time) string {
	return fmt.Sprintf("%s%s voted for %s (%s)",
		e.Surname, e.Gender, e.Region, humanize.RelTime(e.Timestamp, now, "ago", "from now"))
}

// FormatStats renders the totals and the non-empty regions, largest first.
func FormatStats(s models.StatsResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "total %s, today %s\n", humanize.Comma(s.TotalVotes), humanize.Comma(s.TodayVotes))

	regions := make([]string, 0, len(s.MapData))
	for r, n := range s.MapData {
		if n > 0 {
			regions = append(regions, r)
		}
	}
	sort.Slice(regions, func(i, j int) bool {
		if s.MapData[regions[i]] != s.MapData[regions[j]] {
			return s.MapData[regions[i]] > s.MapData[regions[j]]
		}
		return regions[i] < regions[j]
	})
	for _, r := range regions {
		fmt.Fprintf(&b, "  %s\t%s\n", r, humanize.Comma(s.MapData[r]))
	}
	return b.String()
}

/******************************************************************************
 * Helpers
 *
 *
 ******************************************************************************/

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "voteapp-state.json"
	}
	return filepath.Join(dir, "voteapp", "state.json")
}
