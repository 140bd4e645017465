// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zr6b/voteapp/models"
)

func TestFormatVote(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	e := models.VoteLogEntry{
		Surname:   "陳",
		Gender:    models.GenderMr,
		Region:    "臺北市",
		Timestamp: now.Add(-3 * time.Minute),
	}

	assert.Equal(t, "陳先生 voted for 臺北市 (3 minutes ago)", FormatVote(e, now))
}

func TestFormatStats(t *testing.T) {
	s := models.StatsResponse{
		MapData:    map[string]int64{"臺北市": 1200, "高雄市": 1200, "臺中市": 35, "金門縣": 0},
		TotalVotes: 2435,
		TodayVotes: 17,
	}

	want := "total 2,435, today 17\n" +
		"  臺北市\t1,200\n" +
		"  高雄市\t1,200\n" +
		"  臺中市\t35\n"
	assert.Equal(t, want, FormatStats(s))
}
