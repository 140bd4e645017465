// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Gender values accepted on a ballot
const (
	GenderMr      = "先生"
	GenderMs      = "女士"
	GenderPrivate = "保密"
)

// DefaultGenders is the allowed gender set unless configured otherwise.
var DefaultGenders = []string{GenderMr, GenderMs, GenderPrivate}

// DefaultRegions are the 22 municipalities and counties of Taiwan.
var DefaultRegions = []string{
	"臺北市", "新北市", "桃園市", "臺中市", "臺南市", "高雄市",
	"基隆市", "新竹市", "嘉義市", "宜蘭縣", "新竹縣", "苗栗縣",
	"彰化縣", "南投縣", "雲林縣", "嘉義縣", "屏東縣", "花蓮縣",
	"臺東縣", "澎湖縣", "金門縣", "連江縣",
}

// Request types

type VoteRequest struct {
	Region  string `json:"region"`
	Surname string `json:"surname"`
	Gender  string `json:"gender"`
}

type BroadcastRequest struct {
	Message string `json:"message"`
}

type BroadcastToggleRequest struct {
	Enabled *bool `json:"enabled"`
}

// Response types

// ActionResponse is the body of every /api/* write and of /api/* errors.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type BroadcastResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	NewEntry *BroadcastEntry `json:"newEntry,omitempty"`
}

type StatsResponse struct {
	MapData    map[string]int64 `json:"mapData"`
	TotalVotes int64            `json:"totalVotes"`
	TodayVotes int64            `json:"todayVotes"`
}

type BroadcastToggleResponse struct {
	Enabled bool `json:"enabled"`
}

// Domain types

type RegionTally struct {
	Region     string `json:"region"`
	TotalVotes int64  `json:"totalVotes"`
	TodayVotes int64  `json:"todayVotes"`
}

type VoteLogEntry struct {
	ID        int64     `json:"id"`
	Surname   string    `json:"surname"`
	Gender    string    `json:"gender"`
	Region    string    `json:"region"`
	Timestamp time.Time `json:"timestamp"`
}

type BroadcastEntry struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type RolloverMeta struct {
	LastResetDate    string `json:"lastResetDate"`
	BroadcastEnabled bool   `json:"broadcastEnabled"`
}
